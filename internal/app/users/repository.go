package users

import (
	"context"
	"errors"
)

// Sentinel errors returned by Repository implementations.
var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NewUserInput carries the fields required to create an account.
// Password is the plaintext credential; implementations hash it before storing.
type NewUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Repository is the account backend consumed by the session store.
type Repository interface {
	// Authenticate verifies the email/password pair and returns the matching
	// user. It returns ErrInvalidCredentials when no account matches; it never
	// distinguishes a missing account from a wrong password.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// FindByID returns the user with the given ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// Create registers a new account with a generated ID, empty address, and
	// default preferences. It returns ErrEmailTaken when the email is on record.
	Create(ctx context.Context, input NewUserInput) (*User, error)

	// Update replaces the stored profile fields of the user with the given ID.
	// The credential hash is not touched. Returns ErrNotFound for unknown IDs.
	Update(ctx context.Context, id string, patch Patch) (*User, error)
}
