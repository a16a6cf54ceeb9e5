package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct-horse" {
		t.Fatal("password stored in plaintext")
	}

	if !CheckPassword(hash, "correct-horse") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong-horse") {
		t.Error("wrong password accepted")
	}
	if CheckPassword("not-a-hash", "correct-horse") {
		t.Error("garbage hash accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, _ := HashPassword("same-password")
	b, _ := HashPassword("same-password")
	if a == b {
		t.Error("expected different hashes for the same password")
	}
}
