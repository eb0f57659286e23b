package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated     EventType = "user_created"
	EventUserUpdated     EventType = "user_updated"
	EventUserDeleted     EventType = "user_deleted"
	EventPasswordReset   EventType = "password_reset"
	EventSessionsRevoked EventType = "sessions_revoked"
	EventResetLinkIssued EventType = "reset_link_issued"
)

// Event represents a lifecycle event emitted by the coordinator.
// SubjectID is the managed account; ActorID is the administrator who
// invoked the operation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Email            string `json:"email"`
	DisplayName      string `json:"display_name"`
	Role             string `json:"role"`
	NotificationSent bool   `json:"notification_sent"`
}

// UserUpdatedPayload payload.
type UserUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Email string `json:"email,omitempty"`
}

// ResetLinkIssuedPayload payload.
type ResetLinkIssuedPayload struct {
	Email string `json:"email"`
}
