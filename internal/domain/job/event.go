package job

import (
	"context"
	"time"
)

type EventType string

const (
	EventCreated EventType = "job_created"
	EventUpdated EventType = "job_updated"
	EventDeleted EventType = "job_deleted"
)

type Event struct {
	Type      EventType `json:"type"`
	JobID     string    `json:"jobId"`
	RefUserID string    `json:"refUserId"`
	Timestamp string    `json:"timestamp"`
}

func NewEvent(t EventType, p Posting, now time.Time) Event {
	return Event{
		Type:      t,
		JobID:     p.IDHex(),
		RefUserID: p.RefUserID,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}
