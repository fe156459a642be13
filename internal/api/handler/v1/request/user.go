package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (req *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required,
			validation.In("deactivated", "user", "moderator", "administrator")),
	)
}
