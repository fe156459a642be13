package request

import validation "github.com/go-ozzo/ozzo-validation"

type ProposeCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
}

func (req *ProposeCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.ParentID, validation.Min(uint(1))),
	)
}
