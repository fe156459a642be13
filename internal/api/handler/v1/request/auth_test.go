package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Name:            "user1",
		Password:        "passw0rd1",
		ConfirmPassword: "passw0rd1",
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "pass1"
		req.ConfirmPassword = "pass1"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password needs a digit", func(t *testing.T) {
		req := valid
		req.Password = "passwords"
		req.ConfirmPassword = "passwords"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password needs a letter", func(t *testing.T) {
		req := valid
		req.Password = "123456789"
		req.ConfirmPassword = "123456789"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("confirm mismatch", func(t *testing.T) {
		req := valid
		req.ConfirmPassword = "passw0rd2"
		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})

	t.Run("name required", func(t *testing.T) {
		req := valid
		req.Name = ""
		assert.Error(t, req.Validate())
	})
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Name: "user1", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Name: "user1"}).Validate())
	assert.Error(t, (&LoginRequest{Password: "x"}).Validate())
}
