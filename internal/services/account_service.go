// Package services orchestrates the user-triggered operations: account
// lifecycle, vehicle management and fuel-up recording. Services validate
// through core, persist through storage, and hold no state of their own
// beyond a clock.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fuelbook/internal/core"
	"fuelbook/internal/storage"
)

var (
	// ErrNotLoggedIn is returned when an operation requires a session and
	// none is stored.
	ErrNotLoggedIn = errors.New("no user is logged in")

	// ErrVehicleNotFound is returned when a referenced vehicle identifier
	// has no matching record; callers render an empty state, not a crash.
	ErrVehicleNotFound = errors.New("vehicle not found")
)

type AccountService struct {
	repo *storage.Repository
	now  func() time.Time
}

func NewAccountService(repo *storage.Repository) *AccountService {
	return &AccountService{repo: repo, now: time.Now}
}

// Register creates a new local account. The password is stored as given;
// credential checks are plaintext equality throughout.
func (s *AccountService) Register(ctx context.Context, name, email, password, repeat string) (core.Account, error) {
	if err := core.ValidateRegistration(name, email, password, repeat); err != nil {
		return core.Account{}, err
	}

	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return core.Account{}, fmt.Errorf("load accounts: %w", err)
	}
	for _, a := range accounts {
		if a.Email == email {
			return core.Account{}, core.ErrEmailTaken
		}
	}

	account := core.Account{Email: email, Name: name, Password: password}
	if err := s.repo.SaveAccounts(ctx, append(accounts, account)); err != nil {
		return core.Account{}, fmt.Errorf("save accounts: %w", err)
	}

	slog.InfoContext(ctx, "account registered", "email", email)
	return account, nil
}

// Login checks the credentials against the stored accounts and records the
// session. A missing account and a wrong password produce the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (core.Session, error) {
	if err := core.ValidateLoginInput(email, password); err != nil {
		return core.Session{}, err
	}

	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return core.Session{}, fmt.Errorf("load accounts: %w", err)
	}

	for _, a := range accounts {
		if a.Email == email && a.Password == password {
			sess := core.Session{Email: a.Email, Name: a.Name}
			if err := s.repo.SaveSession(ctx, sess); err != nil {
				return core.Session{}, fmt.Errorf("save session: %w", err)
			}
			slog.InfoContext(ctx, "login", "email", a.Email)
			return sess, nil
		}
	}

	return core.Session{}, core.ErrInvalidCredentials
}

// Logout clears the stored session. Logging out while not logged in is
// not an error.
func (s *AccountService) Logout(ctx context.Context) error {
	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	slog.InfoContext(ctx, "logout")
	return nil
}

// Current returns the stored session or ErrNotLoggedIn.
func (s *AccountService) Current(ctx context.Context) (core.Session, error) {
	sess, ok, err := s.repo.Session(ctx)
	if err != nil {
		return core.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return core.Session{}, ErrNotLoggedIn
	}
	return sess, nil
}
