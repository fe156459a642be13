package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// CreateEventRequest proposes a new event. Category and admission ID
// sets may be empty; an event without admissions confirms attendance
// requests immediately.
type CreateEventRequest struct {
	Name          string    `json:"name"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	Capacity      int       `json:"capacity"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	PlaceID       uint      `json:"place_id"`
	CategoryIDs   []uint    `json:"category_ids"`
	AdmissionIDs  []uint    `json:"admission_ids"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.StartDatetime, validation.Required),
		validation.Field(&req.EndDatetime, validation.Required),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Image, is.URL),
		validation.Field(&req.PlaceID, validation.Required, validation.Min(uint(1))),
	)
}

// EditEventRequest carries the full replacement for the mutable
// fields. The name cannot change; omitted ID sets clear the
// associations.
type EditEventRequest struct {
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	Capacity      int       `json:"capacity"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	PlaceID       uint      `json:"place_id"`
	CategoryIDs   []uint    `json:"category_ids"`
	AdmissionIDs  []uint    `json:"admission_ids"`
}

func (req *EditEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StartDatetime, validation.Required),
		validation.Field(&req.EndDatetime, validation.Required),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Image, is.URL),
		validation.Field(&req.PlaceID, validation.Required, validation.Min(uint(1))),
	)
}
