// Package memory provides an in-memory AccountRepository. It backs isolated
// tests and local development; no global handle exists, callers construct a
// store and hand it to whatever needs one.
package memory

import (
	"context"
	"sync"

	"warden/internal/domain/entity"
	"warden/internal/domain/repository"

	"github.com/google/uuid"
)

// accountRepository keeps accounts in process memory. A single mutex guards
// the maps; history appends mutate the stored record in place, so the
// append-only semantics match the SQL implementation.
type accountRepository struct {
	mu        sync.RWMutex
	accounts  map[uuid.UUID]*entity.Account
	usernames map[string]uuid.UUID
}

// NewAccountRepository is the constructor for the in-memory repository.
func NewAccountRepository() repository.AccountRepository {
	return &accountRepository{
		accounts:  make(map[uuid.UUID]*entity.Account),
		usernames: make(map[string]uuid.UUID),
	}
}

// Insert stores a copy of the account. The username map plays the role of the
// database uniqueness constraint: exactly one concurrent insert for a
// username can win.
func (repo *accountRepository) Insert(ctx context.Context, account *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.usernames[account.Username]; exists {
		return repository.ErrDuplicateUsername
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	stored := cloneAccount(account)
	repo.accounts[stored.ID] = stored
	repo.usernames[stored.Username] = stored.ID

	return nil
}

// FindByUsername returns a copy of the matching account so callers can never
// mutate the stored record through the returned value.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.usernames[username]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneAccount(repo.accounts[id]), nil
}

// AppendLoginEvent appends to the stored record under the write lock, a
// genuine append: concurrent calls for the same account all land.
func (repo *accountRepository) AppendLoginEvent(ctx context.Context, accountID uuid.UUID, event *entity.LoginEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.accounts[accountID]
	if !ok {
		return repository.ErrAccountNotFound
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.AccountID = accountID

	stored.LoginHistory = append(stored.LoginHistory, *event)

	return nil
}

func cloneAccount(account *entity.Account) *entity.Account {
	cloned := *account
	cloned.LoginHistory = make([]entity.LoginEvent, len(account.LoginHistory))
	copy(cloned.LoginHistory, account.LoginHistory)

	return &cloned
}
