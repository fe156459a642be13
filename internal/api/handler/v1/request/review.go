package request

import validation "github.com/go-ozzo/ozzo-validation"

type CreateReviewRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

func (req *CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Comment, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(10)),
	)
}
