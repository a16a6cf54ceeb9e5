package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/albertomt/cricheck/internal/model"
)

// CreateQrCode records a generated QR association for a vehicle. The vehicle
// must exist.
func (s *SQLite) CreateQrCode(ctx context.Context, vehicleID int64, url string, createdBy int64) (*model.QrCode, error) {
	if _, err := s.GetVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO qr_codes (vehicle_id, url, created_at, created_by) VALUES (?, ?, ?, ?)`,
		vehicleID, url, time.Now().UTC(), createdBy)
	if err != nil {
		return nil, fmt.Errorf("creating qr code: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting qr code id: %w", err)
	}
	return s.GetQrCode(ctx, id)
}

// GetQrCode returns a QR code by ID, joined with its vehicle code.
func (s *SQLite) GetQrCode(ctx context.Context, id int64) (*model.QrCode, error) {
	q := &model.QrCode{}
	err := s.db.QueryRowContext(ctx,
		`SELECT q.id, q.vehicle_id, q.url, q.created_at, q.created_by, v.code
		 FROM qr_codes q JOIN vehicles v ON v.id = q.vehicle_id
		 WHERE q.id = ?`, id,
	).Scan(&q.ID, &q.VehicleID, &q.URL, &q.CreatedAt, &q.CreatedBy, &q.VehicleCode)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting qr code: %w", err)
	}
	return q, nil
}

// ListRecentQrCodes returns the most recently generated QR codes.
func (s *SQLite) ListRecentQrCodes(ctx context.Context, limit int) ([]model.QrCode, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.vehicle_id, q.url, q.created_at, q.created_by, v.code
		 FROM qr_codes q JOIN vehicles v ON v.id = q.vehicle_id
		 ORDER BY q.created_at DESC, q.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing qr codes: %w", err)
	}
	defer rows.Close()

	var codes []model.QrCode
	for rows.Next() {
		var q model.QrCode
		if err := rows.Scan(&q.ID, &q.VehicleID, &q.URL, &q.CreatedAt, &q.CreatedBy, &q.VehicleCode); err != nil {
			return nil, fmt.Errorf("scanning qr code: %w", err)
		}
		codes = append(codes, q)
	}
	return codes, rows.Err()
}

// CreateScan records a scan audit entry. The QR code must exist.
func (s *SQLite) CreateScan(ctx context.Context, qrCodeID, userID int64) (*model.Scan, error) {
	if _, err := s.GetQrCode(ctx, qrCodeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO scans (qr_code_id, user_id, timestamp) VALUES (?, ?, ?)`,
		qrCodeID, userID, now)
	if err != nil {
		return nil, fmt.Errorf("creating scan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting scan id: %w", err)
	}
	return &model.Scan{ID: id, QrCodeID: qrCodeID, UserID: userID, Timestamp: now}, nil
}

// DashboardStats aggregates the admin dashboard counts.
func (s *SQLite) DashboardStats(ctx context.Context, lowStockThreshold int, since time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	queries := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&stats.ItemCount, `SELECT COUNT(*) FROM inventory`, nil},
		{&stats.QrCodeCount, `SELECT COUNT(*) FROM qr_codes`, nil},
		{&stats.TodayScans, `SELECT COUNT(*) FROM scans WHERE timestamp >= ?`, []any{since.UTC()}},
		{&stats.LowStockItemCount, `SELECT COUNT(*) FROM inventory WHERE quantity < ?`, []any{lowStockThreshold}},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("computing dashboard stats: %w", err)
		}
	}
	return stats, nil
}
