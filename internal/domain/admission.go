package domain

// Admission is a named price tier attachable to events. Amount is in
// the smallest currency unit.
type Admission struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}
