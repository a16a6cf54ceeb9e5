package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/albertomt/cricheck/internal/model"
)

// Memory is an in-memory Store used by tests and the no-persistence demo
// mode. A single mutex makes every check-then-create atomic.
type Memory struct {
	mu sync.Mutex

	users      map[int64]*model.User
	vehicles   map[int64]*model.Vehicle
	checklists map[int64]*model.Checklist
	items      map[int64][]model.ChecklistItem
	inventory  map[int64]*model.InventoryItem
	qrCodes    map[int64]*model.QrCode
	scans      map[int64]*model.Scan
	sessions   map[string]*model.Session

	nextUser      int64
	nextVehicle   int64
	nextChecklist int64
	nextItem      int64
	nextInventory int64
	nextQrCode    int64
	nextScan      int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int64]*model.User),
		vehicles:   make(map[int64]*model.Vehicle),
		checklists: make(map[int64]*model.Checklist),
		items:      make(map[int64][]model.ChecklistItem),
		inventory:  make(map[int64]*model.InventoryItem),
		qrCodes:    make(map[int64]*model.QrCode),
		scans:      make(map[int64]*model.Scan),
		sessions:   make(map[string]*model.Session),
	}
}

func (m *Memory) CreateUser(_ context.Context, u model.NewUser) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Globally unique, deactivated accounts included: a retired username or
	// fiscal code is never handed out again.
	code := model.NormalizeFiscalCode(u.FiscalCode)
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.FiscalCode == code {
			return nil, ErrConflict
		}
	}

	m.nextUser++
	user := &model.User{
		ID:           m.nextUser,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Surname:      u.Surname,
		FiscalCode:   code,
		Role:         u.Role,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[user.ID] = user
	out := *user
	return &out, nil
}

func (m *Memory) GetUser(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *user
	return &out, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUserByFiscalCode(_ context.Context, fiscalCode string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := model.NormalizeFiscalCode(fiscalCode)
	for _, user := range m.users {
		if user.FiscalCode == code && user.DeletedAt == nil {
			out := *user
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []model.User
	for _, user := range m.users {
		if user.DeletedAt == nil {
			users = append(users, *user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *Memory) UpdateUserRole(_ context.Context, id int64, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return ErrNotFound
	}
	user.Role = role
	return nil
}

func (m *Memory) UpdateUserPassword(_ context.Context, id int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (m *Memory) TouchLastLogin(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()
	user.LastLogin = &now
	return nil
}

func (m *Memory) DeactivateUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()
	user.DeletedAt = &now
	return nil
}

func (m *Memory) CreateVehicle(_ context.Context, code, displayName string) (*model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vehicles {
		if v.Code == code {
			return nil, ErrConflict
		}
	}
	m.nextVehicle++
	vehicle := &model.Vehicle{ID: m.nextVehicle, Code: code, DisplayName: displayName}
	m.vehicles[vehicle.ID] = vehicle
	out := *vehicle
	return &out, nil
}

func (m *Memory) GetVehicle(_ context.Context, id int64) (*model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *vehicle
	return &out, nil
}

func (m *Memory) GetVehicleByCode(_ context.Context, code string) (*model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, vehicle := range m.vehicles {
		if vehicle.Code == code {
			out := *vehicle
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListVehicles(_ context.Context) ([]model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var vehicles []model.Vehicle
	for _, vehicle := range m.vehicles {
		vehicles = append(vehicles, *vehicle)
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].Code < vehicles[j].Code })
	return vehicles, nil
}

func (m *Memory) CreateChecklist(ctx context.Context, userID, vehicleID int64, oxygenLevel int, items []model.ChecklistItemInfo) (*model.ChecklistWithItems, error) {
	m.mu.Lock()
	if _, ok := m.users[userID]; !ok {
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	if _, ok := m.vehicles[vehicleID]; !ok {
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	m.nextChecklist++
	checklist := &model.Checklist{
		ID:          m.nextChecklist,
		UserID:      userID,
		VehicleID:   vehicleID,
		Timestamp:   time.Now().UTC(),
		OxygenLevel: oxygenLevel,
	}
	m.checklists[checklist.ID] = checklist

	rows := make([]model.ChecklistItem, 0, len(items))
	for _, item := range items {
		m.nextItem++
		rows = append(rows, model.ChecklistItem{
			ID:               m.nextItem,
			ChecklistID:      checklist.ID,
			Name:             item.Name,
			Status:           item.Status,
			TakenFromCabinet: item.TakenFromCabinet,
		})
	}
	m.items[checklist.ID] = rows
	id := checklist.ID
	m.mu.Unlock()

	return m.GetChecklistWithItems(ctx, id)
}

func (m *Memory) GetChecklistWithItems(_ context.Context, id int64) (*model.ChecklistWithItems, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	checklist, ok := m.checklists[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.joinChecklistLocked(checklist), nil
}

func (m *Memory) ListChecklists(_ context.Context) ([]model.ChecklistWithItems, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var checklists []model.ChecklistWithItems
	for _, checklist := range m.checklists {
		checklists = append(checklists, *m.joinChecklistLocked(checklist))
	}
	sort.Slice(checklists, func(i, j int) bool { return checklists[i].ID > checklists[j].ID })
	return checklists, nil
}

func (m *Memory) joinChecklistLocked(checklist *model.Checklist) *model.ChecklistWithItems {
	c := &model.ChecklistWithItems{Checklist: *checklist}
	c.Items = append([]model.ChecklistItem{}, m.items[checklist.ID]...)
	if user, ok := m.users[checklist.UserID]; ok {
		u := *user
		c.User = &u
	}
	if vehicle, ok := m.vehicles[checklist.VehicleID]; ok {
		v := *vehicle
		c.Vehicle = &v
	}
	return c
}

func (m *Memory) CreateInventoryItem(_ context.Context, item model.NewInventoryItem) (*model.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextInventory++
	record := &model.InventoryItem{
		ID:              m.nextInventory,
		Name:            item.Name,
		Quantity:        item.Quantity,
		MinimumQuantity: item.MinimumQuantity,
		ExpiryDate:      item.ExpiryDate,
		Status:          item.Status,
	}
	m.inventory[record.ID] = record
	out := *record
	return &out, nil
}

func (m *Memory) GetInventoryItem(_ context.Context, id int64) (*model.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.inventory[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *record
	return &out, nil
}

func (m *Memory) UpdateInventoryItem(_ context.Context, id int64, patch model.InventoryPatch) (*model.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.inventory[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		record.Name = *patch.Name
	}
	if patch.Quantity != nil {
		record.Quantity = *patch.Quantity
	}
	if patch.MinimumQuantity != nil {
		record.MinimumQuantity = *patch.MinimumQuantity
	}
	if patch.ExpiryDate != nil {
		record.ExpiryDate = *patch.ExpiryDate
	}
	if patch.Status != nil {
		record.Status = *patch.Status
	}
	out := *record
	return &out, nil
}

func (m *Memory) DeleteInventoryItem(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.inventory[id]; !ok {
		return ErrNotFound
	}
	delete(m.inventory, id)
	return nil
}

func (m *Memory) ListInventory(_ context.Context) ([]model.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []model.InventoryItem
	for _, record := range m.inventory {
		items = append(items, *record)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (m *Memory) CreateQrCode(_ context.Context, vehicleID int64, url string, createdBy int64) (*model.QrCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[vehicleID]
	if !ok {
		return nil, ErrNotFound
	}
	m.nextQrCode++
	code := &model.QrCode{
		ID:          m.nextQrCode,
		VehicleID:   vehicleID,
		URL:         url,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   createdBy,
		VehicleCode: vehicle.Code,
	}
	m.qrCodes[code.ID] = code
	out := *code
	return &out, nil
}

func (m *Memory) GetQrCode(_ context.Context, id int64) (*model.QrCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.qrCodes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *code
	return &out, nil
}

func (m *Memory) ListRecentQrCodes(_ context.Context, limit int) ([]model.QrCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var codes []model.QrCode
	for _, code := range m.qrCodes {
		codes = append(codes, *code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].ID > codes[j].ID })
	if limit > 0 && len(codes) > limit {
		codes = codes[:limit]
	}
	return codes, nil
}

func (m *Memory) CreateScan(_ context.Context, qrCodeID, userID int64) (*model.Scan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.qrCodes[qrCodeID]; !ok {
		return nil, ErrNotFound
	}
	m.nextScan++
	scan := &model.Scan{ID: m.nextScan, QrCodeID: qrCodeID, UserID: userID, Timestamp: time.Now().UTC()}
	m.scans[scan.ID] = scan
	out := *scan
	return &out, nil
}

func (m *Memory) DashboardStats(_ context.Context, lowStockThreshold int, since time.Time) (*DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &DashboardStats{
		ItemCount:   len(m.inventory),
		QrCodeCount: len(m.qrCodes),
	}
	for _, scan := range m.scans {
		if !scan.Timestamp.Before(since) {
			stats.TodayScans++
		}
	}
	for _, record := range m.inventory {
		if record.Quantity < lowStockThreshold {
			stats.LowStockItemCount++
		}
	}
	return stats, nil
}

func (m *Memory) CreateSession(_ context.Context, id string, userID int64, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &model.Session{ID: id, UserID: userID, CreatedAt: time.Now().UTC(), ExpiresAt: expiresAt.UTC()}
	for sid, session := range m.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(m.sessions, sid)
		}
	}
	return nil
}

func (m *Memory) GetSession(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *session
	return &out, nil
}

func (m *Memory) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
