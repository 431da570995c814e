package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type stubCredentialStore struct {
	byEmail map[string]UserCredentials

	created   []UserCredentials
	getErr    error
	createErr error
}

func newStubCredentialStore() *stubCredentialStore {
	return &stubCredentialStore{byEmail: make(map[string]UserCredentials)}
}

func (s *stubCredentialStore) GetUserCredentialsByEmail(ctx context.Context, email string) (UserCredentials, error) {
	if s.getErr != nil {
		return UserCredentials{}, s.getErr
	}
	creds, ok := s.byEmail[email]
	if !ok {
		return UserCredentials{}, ErrNotFound
	}
	return creds, nil
}

func (s *stubCredentialStore) CreateUser(ctx context.Context, creds UserCredentials) (UserCredentials, error) {
	if s.createErr != nil {
		return UserCredentials{}, s.createErr
	}
	s.created = append(s.created, creds)
	s.byEmail[creds.User.Email] = creds
	return creds, nil
}

func plainHasher(password string) (string, error) {
	return "hash:" + password, nil
}

func plainVerifier(hashedPassword, password string) error {
	if hashedPassword != "hash:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects missing fields", func(t *testing.T) {
		store := newStubCredentialStore()
		service := NewAuthService(store, plainHasher, plainVerifier, sequentialIDs(), fixedClock)

		_, err := service.Login(ctx, LoginParams{Name: " ", Email: "", Password: ""})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "email", "password"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected field error for %q, got %v", field, vErr.FieldErrors)
			}
		}
		if len(store.created) != 0 {
			t.Fatalf("expected no user created, got %d", len(store.created))
		}
	})

	t.Run("registers an unseen email", func(t *testing.T) {
		store := newStubCredentialStore()
		service := NewAuthService(store, plainHasher, plainVerifier, sequentialIDs(), fixedClock)

		profile, err := service.Login(ctx, LoginParams{Name: " Olivier ", Email: " Olivier@Reza.FR ", Password: "secret"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if profile.Name != "Olivier" || profile.Email != "olivier@reza.fr" {
			t.Fatalf("unexpected profile: %+v", profile)
		}
		if len(store.created) != 1 {
			t.Fatalf("expected one created user, got %d", len(store.created))
		}
		created := store.created[0]
		if created.User.ID != "id-1" {
			t.Errorf("expected generated id id-1, got %q", created.User.ID)
		}
		if created.User.Email != "olivier@reza.fr" {
			t.Errorf("expected lowercased email, got %q", created.User.Email)
		}
		if created.PasswordHash != "hash:secret" {
			t.Errorf("expected hashed password, got %q", created.PasswordHash)
		}
		if !created.User.CreatedAt.Equal(fixedClock()) {
			t.Errorf("expected clock timestamp, got %v", created.User.CreatedAt)
		}
	})

	t.Run("accepts a returning user with the right password", func(t *testing.T) {
		store := newStubCredentialStore()
		service := NewAuthService(store, plainHasher, plainVerifier, sequentialIDs(), fixedClock)

		if _, err := service.Login(ctx, LoginParams{Name: "Olivier", Email: "olivier@reza.fr", Password: "secret"}); err != nil {
			t.Fatalf("setup login failed: %v", err)
		}

		profile, err := service.Login(ctx, LoginParams{Name: "Autre Nom", Email: "OLIVIER@reza.fr", Password: "secret"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.Name != "Olivier" {
			t.Errorf("expected stored name, got %q", profile.Name)
		}
		if len(store.created) != 1 {
			t.Fatalf("expected no second registration, got %d created", len(store.created))
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		store := newStubCredentialStore()
		service := NewAuthService(store, plainHasher, plainVerifier, sequentialIDs(), fixedClock)

		if _, err := service.Login(ctx, LoginParams{Name: "Olivier", Email: "olivier@reza.fr", Password: "secret"}); err != nil {
			t.Fatalf("setup login failed: %v", err)
		}

		_, err := service.Login(ctx, LoginParams{Name: "Olivier", Email: "olivier@reza.fr", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("propagates store failures", func(t *testing.T) {
		store := newStubCredentialStore()
		storeErr := errors.New("disk on fire")
		store.getErr = storeErr
		service := NewAuthService(store, plainHasher, plainVerifier, sequentialIDs(), fixedClock)

		_, err := service.Login(ctx, LoginParams{Name: "Olivier", Email: "olivier@reza.fr", Password: "secret"})
		if !errors.Is(err, storeErr) {
			t.Fatalf("expected store error, got %v", err)
		}
	})
}
