// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"warden/internal/domain/entity"
	"warden/internal/domain/repository"
	"warden/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Insert persists a new account row. The unique index on username makes a
// duplicate insert fail atomically; that case is reported distinctly from
// every other persistence failure.
func (repo *accountRepository) Insert(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUsername
		}

		return errors.Wrap(err, "failed to insert account")
	}

	// Propagate generated values back to the entity.
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByUsername retrieves the account with the exact username together with
// its chronologically ordered login history. The query fetches up to two rows
// so a broken uniqueness invariant is observed rather than silently picking
// one row.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var rows []model.AccountModel

	err := repo.db.WithContext(ctx).
		Preload("LoginEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at ASC, created_at ASC")
		}).
		Where("username = ?", username).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query account by username")
	}

	switch len(rows) {
	case 0:
		return nil, repository.ErrAccountNotFound
	case 1:
		return toAccountDomain(&rows[0]), nil
	default:
		return nil, repository.ErrUsernameNotUnique
	}
}

// AppendLoginEvent records one successful login as a single-row INSERT keyed
// by the stable account ID. There is no read-modify-write of the account row,
// so concurrent appends for the same account all survive.
func (repo *accountRepository) AppendLoginEvent(ctx context.Context, accountID uuid.UUID, event *entity.LoginEvent) error {
	eventM := fromLoginEventDomain(accountID, event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return errors.Wrap(err, "failed to append login event")
	}

	event.ID = eventM.ID
	event.AccountID = eventM.AccountID
	event.OccurredAt = eventM.OccurredAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	history := make([]entity.LoginEvent, 0, len(data.LoginEvents))
	for _, eventM := range data.LoginEvents {
		history = append(history, entity.LoginEvent{
			ID:         eventM.ID,
			AccountID:  eventM.AccountID,
			OccurredAt: eventM.OccurredAt,
			UserAgent:  eventM.UserAgent,
		})
	}

	return &entity.Account{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Email:        data.Email,
		LoginHistory: history,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel
// for persistence. Login events are never written through the association;
// they only ever arrive via AppendLoginEvent.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Email:        data.Email,
	}
}

// fromLoginEventDomain converts a domain LoginEvent to its GORM model,
// addressed by the stable account ID.
func fromLoginEventDomain(accountID uuid.UUID, data *entity.LoginEvent) *model.LoginEventModel {
	if data == nil {
		return nil
	}

	return &model.LoginEventModel{
		ID:         data.ID,
		AccountID:  accountID,
		OccurredAt: data.OccurredAt,
		UserAgent:  data.UserAgent,
	}
}
