package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/albertomt/cricheck/internal/model"
)

func scanVehicle(row interface{ Scan(...any) error }) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	err := row.Scan(&v.ID, &v.Code, &v.DisplayName)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning vehicle: %w", err)
	}
	return v, nil
}

// CreateVehicle creates a vehicle. Codes are unique.
func (s *SQLite) CreateVehicle(ctx context.Context, code, displayName string) (*model.Vehicle, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO vehicles (code, display_name) VALUES (?, ?)`, code, displayName)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("creating vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting vehicle id: %w", err)
	}
	return s.GetVehicle(ctx, id)
}

// GetVehicle returns a vehicle by ID.
func (s *SQLite) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	return scanVehicle(s.db.QueryRowContext(ctx,
		`SELECT id, code, display_name FROM vehicles WHERE id = ?`, id))
}

// GetVehicleByCode returns a vehicle by its plate-like code.
func (s *SQLite) GetVehicleByCode(ctx context.Context, code string) (*model.Vehicle, error) {
	return scanVehicle(s.db.QueryRowContext(ctx,
		`SELECT id, code, display_name FROM vehicles WHERE code = ?`, code))
}

// ListVehicles returns all vehicles.
func (s *SQLite) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, display_name FROM vehicles ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}
