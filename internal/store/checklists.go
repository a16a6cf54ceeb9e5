package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/albertomt/cricheck/internal/model"
)

// CreateChecklist creates a checklist and its items in one transaction. The
// referenced user and vehicle must exist.
func (s *SQLite) CreateChecklist(ctx context.Context, userID, vehicleID int64, oxygenLevel int, items []model.ChecklistItemInfo) (*model.ChecklistWithItems, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Weak references: validated at creation time, not maintained afterwards.
	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking user: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles WHERE id = ?`, vehicleID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking vehicle: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO checklists (user_id, vehicle_id, timestamp, oxygen_level) VALUES (?, ?, ?, ?)`,
		userID, vehicleID, time.Now().UTC(), oxygenLevel)
	if err != nil {
		return nil, fmt.Errorf("creating checklist: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting checklist id: %w", err)
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO checklist_items (checklist_id, name, status, taken_from_cabinet) VALUES (?, ?, ?, ?)`,
			id, item.Name, item.Status, item.TakenFromCabinet)
		if err != nil {
			return nil, fmt.Errorf("creating checklist item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing checklist: %w", err)
	}

	return s.GetChecklistWithItems(ctx, id)
}

// GetChecklistWithItems returns a checklist joined with its items and the
// referenced user and vehicle.
func (s *SQLite) GetChecklistWithItems(ctx context.Context, id int64) (*model.ChecklistWithItems, error) {
	c := &model.ChecklistWithItems{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, vehicle_id, timestamp, oxygen_level FROM checklists WHERE id = ?`, id,
	).Scan(&c.ID, &c.UserID, &c.VehicleID, &c.Timestamp, &c.OxygenLevel)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting checklist: %w", err)
	}

	if err := s.attachChecklistDetails(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListChecklists returns all checklists joined with items, user and vehicle,
// newest first.
func (s *SQLite) ListChecklists(ctx context.Context) ([]model.ChecklistWithItems, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, vehicle_id, timestamp, oxygen_level FROM checklists ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing checklists: %w", err)
	}
	defer rows.Close()

	var checklists []model.ChecklistWithItems
	for rows.Next() {
		var c model.ChecklistWithItems
		if err := rows.Scan(&c.ID, &c.UserID, &c.VehicleID, &c.Timestamp, &c.OxygenLevel); err != nil {
			return nil, fmt.Errorf("scanning checklist: %w", err)
		}
		checklists = append(checklists, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range checklists {
		if err := s.attachChecklistDetails(ctx, &checklists[i]); err != nil {
			return nil, err
		}
	}
	return checklists, nil
}

func (s *SQLite) attachChecklistDetails(ctx context.Context, c *model.ChecklistWithItems) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, checklist_id, name, status, taken_from_cabinet
		 FROM checklist_items WHERE checklist_id = ? ORDER BY id`, c.ID)
	if err != nil {
		return fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	c.Items = []model.ChecklistItem{}
	for rows.Next() {
		var item model.ChecklistItem
		if err := rows.Scan(&item.ID, &item.ChecklistID, &item.Name, &item.Status, &item.TakenFromCabinet); err != nil {
			return fmt.Errorf("scanning checklist item: %w", err)
		}
		c.Items = append(c.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Weak references may point at deactivated users; still resolve them for
	// the admin review page.
	user, err := s.GetUser(ctx, c.UserID)
	if err != nil && err != ErrNotFound {
		return err
	}
	c.User = user

	vehicle, err := s.GetVehicle(ctx, c.VehicleID)
	if err != nil && err != ErrNotFound {
		return err
	}
	c.Vehicle = vehicle
	return nil
}
