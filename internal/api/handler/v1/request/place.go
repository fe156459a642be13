package request

import validation "github.com/go-ozzo/ozzo-validation"

type ProposePlaceRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (req *ProposePlaceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Address, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}
