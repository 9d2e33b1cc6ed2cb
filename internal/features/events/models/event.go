package models

import "time"

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusEnded     = "ended"
)

// Event is a livestream entry. Playback happens in an external player; the
// portal only tracks the catalog and the live window.
type Event struct {
	ID             string     `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StreamURL      string     `json:"streamUrl"`
	CreatorAddress string     `json:"creatorAddress"`
	Status         string     `json:"status"`
	StartsAt       time.Time  `json:"startsAt"`
	EndsAt         *time.Time `json:"endsAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StreamURL   string     `json:"streamUrl" binding:"required"`
	StartsAt    time.Time  `json:"startsAt" binding:"required"`
	EndsAt      *time.Time `json:"endsAt"`
}

type EventResponse struct {
	Event *Event `json:"event"`
}

type EventListResponse struct {
	Events []*Event `json:"events"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
