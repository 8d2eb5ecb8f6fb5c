package events

import "time"

const AlertRaisedTopic = "school.attendance.alert.v1"

// AlertRaisedEvent is published through the outbox whenever a principal alert
// should reach an external channel (WhatsApp and friends). Dashboard-only
// alerts never produce one.
type AlertRaisedEvent struct {
	EventType     string    `json:"event_type"`
	SchoolID      string    `json:"school_id"`
	RecipientRole string    `json:"recipient_role"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurred_at"`
}
