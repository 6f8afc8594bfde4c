// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity of the credential store, representing one
// registered identity. The username is the case-sensitive identity key and is
// globally unique; the store enforces that invariant with a uniqueness
// constraint, not the service.
type Account struct {
	ID           uuid.UUID    // Stable identifier; every mutation after creation targets this key.
	Username     string       // Globally unique, case-sensitive login name.
	PasswordHash string       // Salted one-way hash of the password. The plaintext never appears here.
	Email        string       // Informational contact address; not validated for uniqueness.
	LoginHistory []LoginEvent // Append-only audit trail of successful logins, oldest first.
	CreatedAt    time.Time    // Timestamp of when this account was created.
	UpdatedAt    time.Time    // Timestamp of the last modification to this account's row.
}

// LoginEvent records one successful authentication. Entries are only ever
// appended; this core never removes or reorders them.
type LoginEvent struct {
	ID         uuid.UUID // Unique ID of this history entry.
	AccountID  uuid.UUID // Links the event to the account it belongs to.
	OccurredAt time.Time // When the login succeeded.
	UserAgent  string    // Client description as supplied by the caller; not validated.
}
