package model

import (
	"fmt"
	"time"
)

// Checklist is one vehicle-equipment inspection event. Checklists are
// append-only: once created they are never updated or deleted.
type Checklist struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	VehicleID   int64     `json:"vehicle_id"`
	Timestamp   time.Time `json:"timestamp"`
	OxygenLevel int       `json:"oxygen_level"`
}

// ChecklistItem is one line of a checklist. The parent checklist owns its
// items; they are created in the same transaction and share its lifecycle.
type ChecklistItem struct {
	ID               int64  `json:"id"`
	ChecklistID      int64  `json:"checklist_id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	TakenFromCabinet bool   `json:"taken_from_cabinet"`
}

// Checklist item statuses.
const (
	ItemPresent = "present"
	ItemMissing = "missing"
)

// ChecklistItemInfo is the client-submitted form of a checklist line.
type ChecklistItemInfo struct {
	Name             string `json:"name"`
	Status           string `json:"status"`
	TakenFromCabinet bool   `json:"taken_from_cabinet"`
}

// ChecklistWithItems is a checklist joined with its items and the referenced
// user and vehicle, as served to the admin review page.
type ChecklistWithItems struct {
	Checklist
	Items   []ChecklistItem `json:"items"`
	User    *User           `json:"user"`
	Vehicle *Vehicle        `json:"vehicle"`
}

// EquipmentCatalog is the fixed set of equipment a checklist line may name.
var EquipmentCatalog = []string{
	"Borsa medica",
	"DAE",
	"Aspiratore",
	"Barella",
	"Collari",
	"Zaino Trauma",
	"Guanti",
	"Mascherine",
	"Kit ustioni",
}

// KnownEquipment reports whether name is in the equipment catalog.
func KnownEquipment(name string) bool {
	for _, e := range EquipmentCatalog {
		if e == name {
			return true
		}
	}
	return false
}

// ValidateChecklist checks the oxygen level and every submitted item,
// collecting all problems.
func ValidateChecklist(oxygenLevel int, items []ChecklistItemInfo) error {
	var problems []string
	if oxygenLevel < 0 || oxygenLevel > 100 {
		problems = append(problems, "oxygen level must be between 0 and 100")
	}
	if len(items) == 0 {
		problems = append(problems, "at least one checklist item is required")
	}
	for i, item := range items {
		if !KnownEquipment(item.Name) {
			problems = append(problems, fmt.Sprintf("item %d: unknown equipment %q", i+1, item.Name))
		}
		if item.Status != ItemPresent && item.Status != ItemMissing {
			problems = append(problems, fmt.Sprintf("item %d: status must be %q or %q", i+1, ItemPresent, ItemMissing))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// NormalizeChecklistItems clears the cabinet flag on present items: a cabinet
// withdrawal only makes sense for missing equipment.
func NormalizeChecklistItems(items []ChecklistItemInfo) []ChecklistItemInfo {
	out := make([]ChecklistItemInfo, len(items))
	for i, item := range items {
		if item.Status == ItemPresent {
			item.TakenFromCabinet = false
		}
		out[i] = item
	}
	return out
}
