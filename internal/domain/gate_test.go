package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanView(t *testing.T) {
	tests := []struct {
		name   string
		entity Moderated
		actor  Actor
		want   bool
	}{
		{
			name:   "approved event is public",
			entity: Event{ID: 1, Approved: true, OwnerID: 7},
			actor:  Actor{ID: 99, Role: RoleUser},
			want:   true,
		},
		{
			name:   "unapproved event visible to its owner",
			entity: Event{ID: 1, OwnerID: 7},
			actor:  Actor{ID: 7, Role: RoleUser},
			want:   true,
		},
		{
			name:   "unapproved event hidden from other users",
			entity: Event{ID: 1, OwnerID: 7},
			actor:  Actor{ID: 8, Role: RoleUser},
			want:   false,
		},
		{
			name:   "unapproved event visible to moderator",
			entity: Event{ID: 1, OwnerID: 7},
			actor:  Actor{ID: 8, Role: RoleModerator},
			want:   true,
		},
		{
			name:   "unapproved event visible to administrator",
			entity: Event{ID: 1, OwnerID: 7},
			actor:  Actor{ID: 8, Role: RoleAdministrator},
			want:   true,
		},
		{
			name:   "unapproved place has no owner to fall back on",
			entity: Place{ID: 2},
			actor:  Actor{ID: 8, Role: RoleUser},
			want:   false,
		},
		{
			name:   "unapproved place visible to moderator",
			entity: Place{ID: 2},
			actor:  Actor{ID: 8, Role: RoleModerator},
			want:   true,
		},
		{
			name:   "unapproved category hidden from regular user",
			entity: Category{ID: 3},
			actor:  Actor{ID: 8, Role: RoleUser},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.entity, tt.actor))
		})
	}
}

func TestCanEdit(t *testing.T) {
	owner := Actor{ID: 7, Role: RoleUser}
	stranger := Actor{ID: 8, Role: RoleUser}

	t.Run("owner edits unapproved event", func(t *testing.T) {
		assert.NoError(t, CanEdit(Event{ID: 1, OwnerID: 7}, owner))
	})

	t.Run("non-owner denied even while unapproved", func(t *testing.T) {
		err := CanEdit(Event{ID: 1, OwnerID: 7}, stranger)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("approval freezes the event for its owner", func(t *testing.T) {
		err := CanEdit(Event{ID: 1, OwnerID: 7, Approved: true}, owner)
		assert.ErrorIs(t, err, ErrAlreadyApproved)
	})

	t.Run("ownership is checked before the freeze", func(t *testing.T) {
		err := CanEdit(Event{ID: 1, OwnerID: 7, Approved: true}, stranger)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("moderator role grants no edit rights", func(t *testing.T) {
		err := CanEdit(Event{ID: 1, OwnerID: 7}, Actor{ID: 8, Role: RoleModerator})
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestCanApprove(t *testing.T) {
	assert.False(t, CanApprove(Actor{Role: RoleDeactivated}))
	assert.False(t, CanApprove(Actor{Role: RoleUser}))
	assert.True(t, CanApprove(Actor{Role: RoleModerator}))
	assert.True(t, CanApprove(Actor{Role: RoleAdministrator}))
}

func TestCanManageRoles(t *testing.T) {
	assert.False(t, CanManageRoles(Actor{Role: RoleUser}))
	assert.False(t, CanManageRoles(Actor{Role: RoleModerator}))
	assert.True(t, CanManageRoles(Actor{Role: RoleAdministrator}))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("moderator")
	require.NoError(t, err)
	assert.Equal(t, RoleModerator, role)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}
