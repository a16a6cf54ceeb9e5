package store

import (
	"context"
	"errors"
	"time"

	"github.com/albertomt/cricheck/internal/model"
)

// Storage errors. Handlers map these to HTTP statuses at the API boundary.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// DashboardStats are the aggregate counts served to the admin dashboard.
type DashboardStats struct {
	ItemCount         int `json:"itemCount"`
	QrCodeCount       int `json:"qrCodeCount"`
	TodayScans        int `json:"todayScans"`
	LowStockItemCount int `json:"lowStockItemCount"`
}

// Store is the persistence boundary. Implementations must enforce unique
// constraints atomically (check-then-create must not race) and assign
// monotonically increasing ids.
type Store interface {
	// Users. Accounts are append-only apart from role/password/last-login
	// updates; deactivation is a soft delete.
	CreateUser(ctx context.Context, u model.NewUser) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByFiscalCode(ctx context.Context, fiscalCode string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64) error
	DeactivateUser(ctx context.Context, id int64) error

	// Vehicles are immutable once created.
	CreateVehicle(ctx context.Context, code, displayName string) (*model.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error)
	GetVehicleByCode(ctx context.Context, code string) (*model.Vehicle, error)
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)

	// Checklists are append-only; a checklist and its items are created in
	// one atomic operation.
	CreateChecklist(ctx context.Context, userID, vehicleID int64, oxygenLevel int, items []model.ChecklistItemInfo) (*model.ChecklistWithItems, error)
	GetChecklistWithItems(ctx context.Context, id int64) (*model.ChecklistWithItems, error)
	ListChecklists(ctx context.Context) ([]model.ChecklistWithItems, error)

	// Inventory supports partial update and delete.
	CreateInventoryItem(ctx context.Context, item model.NewInventoryItem) (*model.InventoryItem, error)
	GetInventoryItem(ctx context.Context, id int64) (*model.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id int64, patch model.InventoryPatch) (*model.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int64) error
	ListInventory(ctx context.Context) ([]model.InventoryItem, error)

	// QR codes and scan audit records.
	CreateQrCode(ctx context.Context, vehicleID int64, url string, createdBy int64) (*model.QrCode, error)
	GetQrCode(ctx context.Context, id int64) (*model.QrCode, error)
	ListRecentQrCodes(ctx context.Context, limit int) ([]model.QrCode, error)
	CreateScan(ctx context.Context, qrCodeID, userID int64) (*model.Scan, error)

	// DashboardStats counts inventory items, QR codes, scans since the given
	// time and items whose quantity is below lowStockThreshold.
	DashboardStats(ctx context.Context, lowStockThreshold int, since time.Time) (*DashboardStats, error)

	// Sessions. DeleteSession is idempotent.
	CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error
}
