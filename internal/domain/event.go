package domain

import "time"

type Event struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	StartDatetime time.Time   `json:"start_datetime"`
	EndDatetime   time.Time   `json:"end_datetime"`
	Capacity      int         `json:"capacity"`
	Description   string      `json:"description"`
	Image         string      `json:"image"`
	Approved      bool        `json:"approved"`
	OwnerID       uint        `json:"owner_id"`
	PlaceID       uint        `json:"place_id"`
	Categories    []Category  `json:"categories,omitempty"`
	Admissions    []Admission `json:"admissions,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Gated reports whether attending this event requires owner approval.
// Any attached admission tier makes attendance request-then-approve.
func (e Event) Gated() bool {
	return len(e.Admissions) > 0
}

// EventDraft carries the caller-supplied fields for creating or
// editing an event. Association sets are always replaced wholesale,
// never merged; an omitted set clears the associations.
type EventDraft struct {
	Name          string
	StartDatetime time.Time
	EndDatetime   time.Time
	Capacity      int
	Description   string
	Image         string
	PlaceID       uint
	CategoryIDs   []uint
	AdmissionIDs  []uint
}

// EventFilter narrows an event listing. Empty dimensions impose no
// constraint; non-empty ID lists are OR-within, AND-across.
type EventFilter struct {
	NameSubstring string
	CategoryIDs   []uint
	PlaceIDs      []uint
	OnlyApproved  bool
	HasAdmission  bool
}
