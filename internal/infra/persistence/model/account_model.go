// Package model holds the GORM persistence models that mirror the database
// schema. They are kept separate from the domain entities so schema concerns
// never leak upward.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountModel mirrors the 'accounts' table. The unique index on username is
// the store-level enforcement of the one-account-per-username invariant; a
// duplicate insert fails atomically at the database.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	LoginEvents []LoginEventModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *AccountModel) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// LoginEventModel mirrors the 'login_events' table. Each successful login is
// one row keyed by the stable account ID, so a history append is a single
// INSERT and concurrent logins can never overwrite each other's entries.
type LoginEventModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID  uuid.UUID `gorm:"type:uuid;not null;index"`
	OccurredAt time.Time `gorm:"not null;index"`
	UserAgent  string    `gorm:"type:varchar(512)"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (LoginEventModel) TableName() string {
	return "login_events"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *LoginEventModel) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
