package request

import validation "github.com/go-ozzo/ozzo-validation"

// AttendRequest optionally names the admission tier the user picks
// when requesting attendance on a gated event.
type AttendRequest struct {
	AdmissionID *uint `json:"admission_id"`
}

func (req *AttendRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AdmissionID, validation.Min(uint(1))),
	)
}
