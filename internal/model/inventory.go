package model

// InventoryItem is a warehouse stock record, mutated by warehouse managers.
type InventoryItem struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	MinimumQuantity int    `json:"minimum_quantity"`
	ExpiryDate      string `json:"expiry_date,omitempty"`
	Status          string `json:"status"`
}

// Inventory status categories (Italian labels used throughout the committee).
const (
	StatusAvailable = "Disponibile"
	StatusLowStock  = "Bassa Scorta"
	StatusExpiring  = "In Scadenza"
	StatusDepleted  = "Esaurito"
)

// LowStockThreshold is the quantity below which the dashboard counts an item
// as low stock.
const LowStockThreshold = 15

// ValidInventoryStatus reports whether status is one of the known categories.
func ValidInventoryStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusLowStock, StatusExpiring, StatusDepleted:
		return true
	}
	return false
}

// NewInventoryItem holds the fields needed to create a stock record.
type NewInventoryItem struct {
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	MinimumQuantity int    `json:"minimum_quantity"`
	ExpiryDate      string `json:"expiry_date"`
	Status          string `json:"status"`
}

// InventoryPatch is a partial update: nil fields are left untouched.
type InventoryPatch struct {
	Name            *string `json:"name"`
	Quantity        *int    `json:"quantity"`
	MinimumQuantity *int    `json:"minimum_quantity"`
	ExpiryDate      *string `json:"expiry_date"`
	Status          *string `json:"status"`
}

// ValidateInventoryItem checks a new stock record.
func ValidateInventoryItem(item NewInventoryItem) error {
	var problems []string
	if item.Name == "" {
		problems = append(problems, "name is required")
	}
	if item.Quantity < 0 {
		problems = append(problems, "quantity cannot be negative")
	}
	if item.MinimumQuantity < 0 {
		problems = append(problems, "minimum quantity cannot be negative")
	}
	if !ValidInventoryStatus(item.Status) {
		problems = append(problems, "invalid inventory status")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidateInventoryPatch checks only the fields a partial update touches.
func ValidateInventoryPatch(patch InventoryPatch) error {
	var problems []string
	if patch.Name != nil && *patch.Name == "" {
		problems = append(problems, "name cannot be empty")
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		problems = append(problems, "quantity cannot be negative")
	}
	if patch.MinimumQuantity != nil && *patch.MinimumQuantity < 0 {
		problems = append(problems, "minimum quantity cannot be negative")
	}
	if patch.Status != nil && !ValidInventoryStatus(*patch.Status) {
		problems = append(problems, "invalid inventory status")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
