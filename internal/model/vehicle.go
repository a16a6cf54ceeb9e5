package model

// Vehicle is a physical unit identified by a plate-like code printed on its
// QR label. Vehicles are immutable once created.
type Vehicle struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}
