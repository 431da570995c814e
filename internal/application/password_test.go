package application

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash := NewPasswordHasher(bcrypt.MinCost)

	t.Run("verify accepts the original password", func(t *testing.T) {
		hashed, err := hash("motdepasse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hashed == "motdepasse" {
			t.Fatal("password stored in plaintext")
		}
		if err := VerifyPassword(hashed, "motdepasse"); err != nil {
			t.Fatalf("expected match, got %v", err)
		}
	})

	t.Run("verify rejects a different password", func(t *testing.T) {
		hashed, err := hash("motdepasse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := VerifyPassword(hashed, "autre"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("out of range cost falls back to the default", func(t *testing.T) {
		hashed, err := NewPasswordHasher(99)("motdepasse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cost, err := bcrypt.Cost([]byte(hashed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cost != DefaultBcryptCost {
			t.Fatalf("expected cost %d, got %d", DefaultBcryptCost, cost)
		}
	})
}
