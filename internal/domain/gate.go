package domain

import "errors"

var (
	ErrNotOwner        = errors.New("actor does not own the entity")
	ErrAlreadyApproved = errors.New("entity is already approved and can no longer be edited")
)

// Moderated is anything that goes through the propose-then-approve
// workflow and has an owner.
type Moderated interface {
	IsApproved() bool
	OwnedBy() uint
}

func (e Event) IsApproved() bool { return e.Approved }
func (e Event) OwnedBy() uint    { return e.OwnerID }

func (p Place) IsApproved() bool { return p.Approved }
func (p Place) OwnedBy() uint    { return 0 }

func (c Category) IsApproved() bool { return c.Approved }
func (c Category) OwnedBy() uint    { return 0 }

// CanView reports whether the actor may see the entity: approved
// entities are public, owners see their own proposals, moderators and
// administrators see everything.
func CanView(entity Moderated, actor Actor) bool {
	if entity.IsApproved() {
		return true
	}
	if owner := entity.OwnedBy(); owner != 0 && owner == actor.ID {
		return true
	}

	return actor.Role.AtLeast(RoleModerator)
}

// CanEdit checks ownership and the approval freeze independently, so a
// non-owner is denied even when the event is still unapproved.
func CanEdit(event Event, actor Actor) error {
	if event.OwnerID != actor.ID {
		return ErrNotOwner
	}
	if event.Approved {
		return ErrAlreadyApproved
	}

	return nil
}

func CanApprove(actor Actor) bool {
	return actor.Role.AtLeast(RoleModerator)
}

func CanManageRoles(actor Actor) bool {
	return actor.Role.AtLeast(RoleAdministrator)
}
