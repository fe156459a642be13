package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventure-app/eventure-api/internal/domain"
)

type memUserRepo struct {
	nextID uint
	users  map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users: make(map[string]domain.User),
	}
}

func (r *memUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := r.users[user.Name]; exists {
		return domain.User{}, ErrUserNameExists
	}

	r.nextID++
	user.ID = r.nextID
	r.users[user.Name] = user

	return user, nil
}

func (r *memUserRepo) FindByName(_ context.Context, name string) (domain.User, error) {
	user, exists := r.users[name]
	if !exists {
		return domain.User{}, ErrUserNotFound
	}

	return user, nil
}

func TestSignup(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Signup(context.Background(), "user1", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	stored := repo.users["user1"]
	assert.NotEqual(t, "hunter2hunter2", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2hunter2")))

	_, err = svc.Signup(context.Background(), "user1", "another-pass1")
	assert.ErrorIs(t, err, ErrUserNameExists)
}

func TestLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), "user1", "hunter2hunter2")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "user1", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, "user1", user.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "user1", "nope")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("deactivated account refused", func(t *testing.T) {
		user := repo.users["user1"]
		user.Role = domain.RoleDeactivated
		repo.users["user1"] = user

		_, err := svc.Login(context.Background(), "user1", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrUserDeactivated)
	})
}
