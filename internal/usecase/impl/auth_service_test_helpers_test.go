package impl

import (
	"context"
	"io"
	"log/slog"

	"warden/internal/domain/entity"
	"warden/internal/domain/repository"
	"warden/internal/domain/service"
	"warden/internal/infra/auth"
	"warden/internal/infra/persistence/memory"
	"warden/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authServiceFixtures bundles a service wired to a real in-memory store and a
// low-cost bcrypt hasher, for state-based tests.
type authServiceFixtures struct {
	service usecase.AuthUsecase
	store   repository.AccountRepository
	hasher  service.PasswordHasher
}

func createTestAuthService() authServiceFixtures {
	store := memory.NewAccountRepository()
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)

	return authServiceFixtures{
		service: NewAuthService(store, hasher, newDiscardLogger()),
		store:   store,
		hasher:  hasher,
	}
}

// mockAccountRepository is a testify mock of the credential store, used to
// inject failures the in-memory store cannot produce.
type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Insert(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *mockAccountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	args := m.Called(ctx, username)
	if account := args.Get(0); account != nil {
		return account.(*entity.Account), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAccountRepository) AppendLoginEvent(ctx context.Context, accountID uuid.UUID, event *entity.LoginEvent) error {
	args := m.Called(ctx, accountID, event)

	return args.Error(0)
}

// failingHasher always fails to hash, for the hash-failure path.
type failingHasher struct {
	err error
}

func (h *failingHasher) Hash(string) (string, error) {
	return "", h.err
}

func (h *failingHasher) Check(string, string) bool {
	return false
}
