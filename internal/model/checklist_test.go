package model

import "testing"

func TestValidateChecklist(t *testing.T) {
	valid := []ChecklistItemInfo{
		{Name: "DAE", Status: ItemPresent},
		{Name: "Barella", Status: ItemMissing, TakenFromCabinet: true},
	}

	tests := []struct {
		name    string
		oxygen  int
		items   []ChecklistItemInfo
		wantErr bool
	}{
		{"valid", 85, valid, false},
		{"oxygen at lower bound", 0, valid, false},
		{"oxygen at upper bound", 100, valid, false},
		{"oxygen negative", -1, valid, true},
		{"oxygen above 100", 101, valid, true},
		{"no items", 85, nil, true},
		{"unknown equipment", 85, []ChecklistItemInfo{{Name: "Motosega", Status: ItemPresent}}, true},
		{"bad status", 85, []ChecklistItemInfo{{Name: "DAE", Status: "broken"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChecklist(tt.oxygen, tt.items)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChecklist() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeChecklistItems(t *testing.T) {
	items := []ChecklistItemInfo{
		{Name: "DAE", Status: ItemPresent, TakenFromCabinet: true},
		{Name: "Collari", Status: ItemMissing, TakenFromCabinet: true},
	}

	out := NormalizeChecklistItems(items)

	if out[0].TakenFromCabinet {
		t.Error("present item should have taken_from_cabinet cleared")
	}
	if !out[1].TakenFromCabinet {
		t.Error("missing item should keep taken_from_cabinet")
	}
	// Input must not be mutated.
	if !items[0].TakenFromCabinet {
		t.Error("input slice was mutated")
	}
}

func TestKnownEquipment(t *testing.T) {
	for _, name := range EquipmentCatalog {
		if !KnownEquipment(name) {
			t.Errorf("catalog entry %q not recognised", name)
		}
	}
	if KnownEquipment("Estintore") {
		t.Error("unknown equipment accepted")
	}
}
