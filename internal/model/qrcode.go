package model

import "time"

// QrCode is a generated association between a vehicle and its check-in URL.
type QrCode struct {
	ID        int64     `json:"id"`
	VehicleID int64     `json:"vehicle_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy int64     `json:"created_by"`

	// Joined field (not always populated).
	VehicleCode string `json:"vehicle_code,omitempty"`
}

// Scan is an audit record of a volunteer opening a check-in link.
type Scan struct {
	ID        int64     `json:"id"`
	QrCodeID  int64     `json:"qr_code_id"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
