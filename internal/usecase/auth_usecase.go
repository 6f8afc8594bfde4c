// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"warden/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// All fields arrive as raw caller-supplied strings.
type RegisterInput struct {
	Username        string `validate:"required"`
	Password        string `validate:"required"`
	PasswordConfirm string
	Email           string
}

// AuthenticateInput defines the data required to verify a login attempt.
type AuthenticateInput struct {
	Username  string `validate:"required"`
	Password  string `validate:"required"`
	UserAgent string
}

// --- Output DTOs ---

// AuthenticateOutput is the authenticated account's public projection,
// handed to the caller for session establishment. LoginHistory includes the
// event recorded for this very login.
type AuthenticateOutput struct {
	Username     string
	Email        string
	LoginHistory []entity.LoginEvent
}

// AuthUsecase defines the interface for credential-management operations.
// This is the contract the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a new account with a securely hashed password.
	Register(ctx context.Context, input *RegisterInput) error

	// Authenticate verifies a login attempt, records it in the account's
	// login history, and returns the account's public projection.
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)
}
