// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"warden/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for credential persistence. The application layer
// branches on these without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when no account matches the given key.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateUsername is returned when an insert loses the store's
	// uniqueness constraint on username.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrUsernameNotUnique is returned when a username lookup matches more
	// than one account, which means the store's uniqueness invariant is broken.
	ErrUsernameNotUnique = errors.New("multiple accounts share one username")
)

// AccountRepository defines the credential-store contract the Auth Service
// depends on. Implementations must make Insert and AppendLoginEvent single
// atomic store-level operations: a cancelled call has either fully executed
// or not at all, never half-executed.
type AccountRepository interface {
	// Insert persists a new account. It fails with ErrDuplicateUsername when
	// the store rejects the row for a uniqueness violation, distinctly from
	// any other persistence failure.
	Insert(ctx context.Context, account *entity.Account) error

	// FindByUsername retrieves the single account with the exact username,
	// login history included in chronological order. Returns
	// ErrAccountNotFound for zero matches and ErrUsernameNotUnique for more
	// than one.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// AppendLoginEvent atomically appends one event to the account's login
	// history, addressed by the stable account ID rather than any mutable
	// field. Concurrent appends for the same account must all survive.
	AppendLoginEvent(ctx context.Context, accountID uuid.UUID, event *entity.LoginEvent) error
}
