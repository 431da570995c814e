package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// CredentialStore exposes the user persistence operations required by the
// auth service.
type CredentialStore interface {
	GetUserCredentialsByEmail(ctx context.Context, email string) (UserCredentials, error)
	CreateUser(ctx context.Context, creds UserCredentials) (UserCredentials, error)
}

// AuthService implements the login flow: verify an existing account, or
// register one on the first attempt with an unseen email.
type AuthService struct {
	credentials    CredentialStore
	hashPassword   PasswordHasher
	verifyPassword PasswordVerifier
	idGenerator    func() string
	now            func() time.Time
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(credentials CredentialStore, hash PasswordHasher, verify PasswordVerifier, idGenerator func() string, now func() time.Time) *AuthService {
	return NewAuthServiceWithLogger(credentials, hash, verify, idGenerator, now, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(credentials CredentialStore, hash PasswordHasher, verify PasswordVerifier, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AuthService {
	if hash == nil {
		hash = NewPasswordHasher(DefaultBcryptCost)
	}
	if verify == nil {
		verify = VerifyPassword
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		credentials:    credentials,
		hashPassword:   hash,
		verifyPassword: verify,
		idGenerator:    idGenerator,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Login authenticates the supplied credentials and returns the public
// profile. An unseen email registers a new account as a side effect; an
// existing account requires the matching password.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (profile Profile, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.credentials == nil {
		err = fmt.Errorf("credential store not configured")
		return
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	name := strings.TrimSpace(params.Name)

	logger := s.loggerWith(ctx, "Login", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "login succeeded")
	}()

	vErr := &ValidationError{}
	if name == "" {
		vErr.add("name", "name is required")
	}
	if email == "" {
		vErr.add("email", "email is required")
	}
	if params.Password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	creds, lookupErr := s.credentials.GetUserCredentialsByEmail(ctx, email)
	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			err = lookupErr
			return
		}
		return s.register(ctx, logger, name, email, params.Password)
	}

	if err = s.verifyPassword(creds.PasswordHash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	profile = Profile{Name: creds.User.Name, Email: creds.User.Email}
	return
}

func (s *AuthService) register(ctx context.Context, logger *slog.Logger, name, email, password string) (Profile, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return Profile{}, err
	}

	creds := UserCredentials{
		User: User{
			ID:        s.idGenerator(),
			Name:      name,
			Email:     email,
			CreatedAt: s.now(),
		},
		PasswordHash: hash,
	}

	persisted, err := s.credentials.CreateUser(ctx, creds)
	if err != nil {
		return Profile{}, err
	}

	logger.With("user_id", persisted.User.ID).InfoContext(ctx, "new account registered")
	return Profile{Name: persisted.User.Name, Email: persisted.User.Email}, nil
}
