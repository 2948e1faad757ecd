package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

// An out-of-range cost must fall back to a usable default instead of
// producing an error or an unverifiable hash.
func TestHashPassword_CostClamped(t *testing.T) {
	for _, cost := range []int{-1, 0, bcrypt.MaxCost + 1} {
		hash, err := HashPassword("s3cret", cost)
		if err != nil {
			t.Fatalf("HashPassword(cost=%d) failed: %v", cost, err)
		}
		if !VerifyPassword(hash, "s3cret") {
			t.Errorf("hash from clamped cost %d does not verify", cost)
		}
		got, err := bcrypt.Cost([]byte(hash))
		if err != nil {
			t.Fatalf("bcrypt.Cost failed: %v", err)
		}
		if got != bcrypt.DefaultCost {
			t.Errorf("cost %d clamped to %d, want %d", cost, got, bcrypt.DefaultCost)
		}
	}
}
