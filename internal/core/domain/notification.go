package domain

import "time"

// Notification events emitted by the credential lifecycle.
const (
	EventResetPasswordRequested = "reset-password.requested"
	EventPasswordChanged        = "password.changed"
)

// Notification is an outbound message handed to the delivery side channel.
// Delivery is at-most-once and never awaited by the emitter.
type Notification struct {
	Event      string            `json:"event"`
	Recipient  string            `json:"recipient"`
	Subject    string            `json:"subject"`
	Data       map[string]string `json:"data,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
