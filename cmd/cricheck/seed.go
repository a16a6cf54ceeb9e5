package main

import (
	"context"
	"fmt"
	"os"

	"github.com/albertomt/cricheck/internal/auth"
	"github.com/albertomt/cricheck/internal/db"
	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/store"
)

// seededAccount is a bootstrap account with its generated cleartext password,
// printed once at init time.
type seededAccount struct {
	Role     string
	Username string
	Password string
}

// The committee fleet. Codes are the full CRI plates, display names the short
// form painted on the vehicles.
var fleet = []struct {
	Code        string
	DisplayName string
}{
	{"CRI 433 AF 151201", "CRI 433 AF"},
	{"CRI 990 AE 151203", "CRI 990 AE"},
	{"CRI 454 AC 151205", "CRI 454 AC"},
	{"CRI 434 AF 151206", "CRI 434 AF"},
	{"CRI 704 AF 151208", "CRI 704 AF"},
	{"CRI 033 AH 151209", "CRI 033 AH"},
	{"CRI 363 AA 151210", "CRI 363 AA"},
	{"CRI 197 AH 151211", "CRI 197 AH"},
	{"CRI 499 AB 151212", "CRI 499 AB"},
	{"CRI 281 AE 151217", "CRI 281 AE"},
}

var sampleInventory = []model.NewInventoryItem{
	{Name: "Guanti monouso (M)", Quantity: 125, MinimumQuantity: 50, ExpiryDate: "12/2024", Status: model.StatusAvailable},
	{Name: "Disinfettante", Quantity: 8, MinimumQuantity: 10, ExpiryDate: "05/2024", Status: model.StatusAvailable},
	{Name: "Bombole Ossigeno", Quantity: 3, MinimumQuantity: 5, Status: model.StatusLowStock},
	{Name: "Elettrodi DAE", Quantity: 5, MinimumQuantity: 4, ExpiryDate: "01/2024", Status: model.StatusExpiring},
}

// initDatabase creates a new database, runs migrations and seeds the fleet,
// sample inventory and the two bootstrap accounts.
func initDatabase(path string) ([]seededAccount, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	accounts, err := seedStore(context.Background(), store.NewSQLite(database))
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	return accounts, nil
}

// seedStore fills an empty store with the fleet, sample inventory and the
// bootstrap accounts.
func seedStore(ctx context.Context, s store.Store) ([]seededAccount, error) {
	for _, v := range fleet {
		if _, err := s.CreateVehicle(ctx, v.Code, v.DisplayName); err != nil {
			return nil, fmt.Errorf("seeding vehicle %s: %w", v.Code, err)
		}
	}

	for _, item := range sampleInventory {
		if _, err := s.CreateInventoryItem(ctx, item); err != nil {
			return nil, fmt.Errorf("seeding inventory %s: %w", item.Name, err)
		}
	}

	accounts := []seededAccount{
		{Role: model.RoleAdmin, Username: "admin"},
		{Role: model.RoleWarehouse, Username: "magazzino"},
	}
	// Placeholder fiscal codes, real ones are entered when volunteers
	// register themselves.
	fiscalCodes := map[string]string{
		"admin":     "DMNCRX80A01A562S",
		"magazzino": "MGZCRX80A01A562S",
	}
	for i := range accounts {
		password, err := generatePassword(16)
		if err != nil {
			return nil, fmt.Errorf("generating password: %w", err)
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}

		accounts[i].Password = password
		if _, err := s.CreateUser(ctx, model.NewUser{
			Username:     accounts[i].Username,
			PasswordHash: hash,
			Name:         "Comitato",
			Surname:      "Acqui Terme",
			FiscalCode:   fiscalCodes[accounts[i].Username],
			Role:         accounts[i].Role,
		}); err != nil {
			return nil, fmt.Errorf("creating %s account: %w", accounts[i].Username, err)
		}
	}

	return accounts, nil
}
