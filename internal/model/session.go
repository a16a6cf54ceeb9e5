package model

import "time"

// Session is a server-side login record. Deleting the row logs the user out
// everywhere, regardless of any token the client still holds.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
