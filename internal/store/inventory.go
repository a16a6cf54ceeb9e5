package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/albertomt/cricheck/internal/model"
)

func scanInventoryItem(row interface{ Scan(...any) error }) (*model.InventoryItem, error) {
	item := &model.InventoryItem{}
	var expiry sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Quantity, &item.MinimumQuantity, &expiry, &item.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning inventory item: %w", err)
	}
	item.ExpiryDate = expiry.String
	return item, nil
}

// CreateInventoryItem creates a stock record.
func (s *SQLite) CreateInventoryItem(ctx context.Context, item model.NewInventoryItem) (*model.InventoryItem, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO inventory (name, quantity, minimum_quantity, expiry_date, status) VALUES (?, ?, ?, ?, ?)`,
		item.Name, item.Quantity, item.MinimumQuantity, item.ExpiryDate, item.Status)
	if err != nil {
		return nil, fmt.Errorf("creating inventory item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inventory item id: %w", err)
	}
	return s.GetInventoryItem(ctx, id)
}

// GetInventoryItem returns a stock record by ID.
func (s *SQLite) GetInventoryItem(ctx context.Context, id int64) (*model.InventoryItem, error) {
	return scanInventoryItem(s.db.QueryRowContext(ctx,
		`SELECT id, name, quantity, minimum_quantity, expiry_date, status FROM inventory WHERE id = ?`, id))
}

// UpdateInventoryItem applies a partial update: only non-nil patch fields are
// written, everything else is left untouched.
func (s *SQLite) UpdateInventoryItem(ctx context.Context, id int64, patch model.InventoryPatch) (*model.InventoryItem, error) {
	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *patch.Quantity)
	}
	if patch.MinimumQuantity != nil {
		sets = append(sets, "minimum_quantity = ?")
		args = append(args, *patch.MinimumQuantity)
	}
	if patch.ExpiryDate != nil {
		sets = append(sets, "expiry_date = ?")
		args = append(args, *patch.ExpiryDate)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}

	if len(sets) > 0 {
		args = append(args, id)
		result, err := s.db.ExecContext(ctx,
			`UPDATE inventory SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return nil, fmt.Errorf("updating inventory item: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("updating inventory item: %w", err)
		}
		if n == 0 {
			return nil, ErrNotFound
		}
	}

	return s.GetInventoryItem(ctx, id)
}

// DeleteInventoryItem deletes a stock record. Deleting a missing record
// returns ErrNotFound.
func (s *SQLite) DeleteInventoryItem(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListInventory returns all stock records.
func (s *SQLite) ListInventory(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, quantity, minimum_quantity, expiry_date, status FROM inventory ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
