package domain

import "time"

// ResetToken is a single-use password recovery token bound to one user. A
// token is only usable while its row exists; confirming it deletes the row.
type ResetToken struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewResetToken returns a token row for userID.
func NewResetToken(id, token, userID string, now time.Time) *ResetToken {
	return &ResetToken{
		ID:        id,
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
