package domain

import (
	"fmt"
	"time"
)

// Role is the privilege ladder. Values are ordered so that a simple
// numeric comparison grants privilege.
type Role int

const (
	RoleDeactivated Role = iota
	RoleUser
	RoleModerator
	RoleAdministrator
)

var roleNames = map[Role]string{
	RoleDeactivated:   "deactivated",
	RoleUser:          "user",
	RoleModerator:     "moderator",
	RoleAdministrator: "administrator",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}

	return fmt.Sprintf("role(%d)", int(r))
}

func (r Role) AtLeast(other Role) bool {
	return r >= other
}

func ParseRole(name string) (Role, error) {
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}

	return RoleDeactivated, fmt.Errorf("unknown role %q", name)
}

type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the identity performing an operation: a user ID plus the
// role it held when the request was authenticated.
type Actor struct {
	ID   uint
	Role Role
}

func (u User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
