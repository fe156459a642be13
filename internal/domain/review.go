package domain

import "time"

type Review struct {
	ID        uint      `json:"id"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	UserID    uint      `json:"user_id"`
	EventID   uint      `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}
