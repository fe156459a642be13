package domain

import "time"

// AttendanceState describes the lifecycle of one (user, event) pair.
// There is no retained cancelled state: cancellation and rejection
// delete the record, returning the pair to "none".
type AttendanceState string

const (
	AttendanceNone      AttendanceState = "none"
	AttendancePending   AttendanceState = "pending"
	AttendanceConfirmed AttendanceState = "confirmed"
)

// Attendance is the association record between a user and an event.
// At most one record exists per (user, event) pair. Admission holds
// the amount of the tier picked at request time, if any.
type Attendance struct {
	UserID    uint      `json:"user_id"`
	EventID   uint      `json:"event_id"`
	Approved  bool      `json:"approved"`
	Admission *int      `json:"admission,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (a Attendance) State() AttendanceState {
	if a.Approved {
		return AttendanceConfirmed
	}

	return AttendancePending
}
