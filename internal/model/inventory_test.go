package model

import "testing"

func TestValidateInventoryItem(t *testing.T) {
	tests := []struct {
		name    string
		item    NewInventoryItem
		wantErr bool
	}{
		{"valid", NewInventoryItem{Name: "Guanti monouso (M)", Quantity: 125, ExpiryDate: "12/2026", Status: StatusAvailable}, false},
		{"zero quantity", NewInventoryItem{Name: "Disinfettante", Quantity: 0, Status: StatusDepleted}, false},
		{"negative quantity", NewInventoryItem{Name: "Disinfettante", Quantity: -1, Status: StatusAvailable}, true},
		{"negative minimum", NewInventoryItem{Name: "Disinfettante", Quantity: 1, MinimumQuantity: -5, Status: StatusAvailable}, true},
		{"missing name", NewInventoryItem{Quantity: 1, Status: StatusAvailable}, true},
		{"bad status", NewInventoryItem{Name: "Disinfettante", Quantity: 1, Status: "Sconosciuto"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInventoryItem(tt.item)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInventoryItem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateInventoryPatch(t *testing.T) {
	negative := -3
	empty := ""
	bad := "Sconosciuto"
	three := 3

	if err := ValidateInventoryPatch(InventoryPatch{Quantity: &three}); err != nil {
		t.Errorf("valid patch rejected: %v", err)
	}
	if err := ValidateInventoryPatch(InventoryPatch{}); err != nil {
		t.Errorf("empty patch rejected: %v", err)
	}
	if err := ValidateInventoryPatch(InventoryPatch{Quantity: &negative}); err == nil {
		t.Error("negative quantity accepted")
	}
	if err := ValidateInventoryPatch(InventoryPatch{Name: &empty}); err == nil {
		t.Error("empty name accepted")
	}
	if err := ValidateInventoryPatch(InventoryPatch{Status: &bad}); err == nil {
		t.Error("unknown status accepted")
	}
}
