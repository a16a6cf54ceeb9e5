package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// User represents an account: a volunteer, a warehouse manager or an admin.
// The fiscal code is a profile attribute, never a credential.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Surname      string     `json:"surname"`
	FiscalCode   string     `json:"fiscal_code"`
	Role         string     `json:"role"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Roles.
const (
	RoleAdmin     = "admin"
	RoleWarehouse = "warehouse"
	RoleVolunteer = "volunteer"
)

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin:     3,
		RoleWarehouse: 2,
		RoleVolunteer: 1,
	}
	return levels[role] >= levels[minimum]
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleWarehouse || role == RoleVolunteer
}

// Italian tax-code format: six letters, two digits, a letter, two digits,
// a letter, three digits, a letter.
var fiscalCodeRe = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)

// NormalizeFiscalCode uppercases and trims a fiscal code for storage and lookup.
func NormalizeFiscalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidatePassword checks the minimum password requirements.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

// NewUser holds the fields needed to create an account.
type NewUser struct {
	Username     string
	PasswordHash string
	Name         string
	Surname      string
	FiscalCode   string
	Role         string
}

// ValidateRegistration checks all registration fields and collects every
// problem, so the client can surface the full list at once.
func ValidateRegistration(username, password, name, surname, fiscalCode string) error {
	var problems []string
	if len(username) < 3 {
		problems = append(problems, "username must be at least 3 characters")
	}
	if err := ValidatePassword(password); err != nil {
		problems = append(problems, err.Error())
	}
	if strings.TrimSpace(name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(surname) == "" {
		problems = append(problems, "surname is required")
	}
	code := NormalizeFiscalCode(fiscalCode)
	if len(code) != 16 {
		problems = append(problems, "fiscal code must be exactly 16 characters")
	} else if !fiscalCodeRe.MatchString(code) {
		problems = append(problems, "fiscal code is not a valid Italian tax code")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
