package request

import validation "github.com/go-ozzo/ozzo-validation"

type CreateAdmissionRequest struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

func (req *CreateAdmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Amount, validation.Min(0)),
	)
}
