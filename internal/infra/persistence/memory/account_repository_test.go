package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"warden/internal/domain/entity"
	"warden/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(username string) *entity.Account {
	return &entity.Account{
		Username:     username,
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhashnotarealhash",
		Email:        username + "@example.com",
	}
}

func TestInsert_AssignsIDAndStoresCopy(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account := newAccount("alice")
	require.NoError(t, repo.Insert(ctx, account))
	assert.NotEqual(t, uuid.Nil, account.ID)

	// Mutating the inserted value must not reach the stored record.
	account.Email = "changed@example.com"

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", found.Email)
}

func TestInsert_DuplicateUsername(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newAccount("alice")))

	err := repo.Insert(ctx, newAccount("alice"))
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestInsert_UsernamesAreCaseSensitive(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newAccount("Alice")))
	require.NoError(t, repo.Insert(ctx, newAccount("alice")))

	found, err := repo.FindByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Username)
}

func TestFindByUsername_NotFound(t *testing.T) {
	repo := NewAccountRepository()

	_, err := repo.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestFindByUsername_ReturnsCopyOfHistory(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account := newAccount("alice")
	require.NoError(t, repo.Insert(ctx, account))
	require.NoError(t, repo.AppendLoginEvent(ctx, account.ID, &entity.LoginEvent{
		OccurredAt: time.Now(),
		UserAgent:  "agentA",
	}))

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, found.LoginHistory, 1)

	// Mutating the returned slice must not reach the stored history.
	found.LoginHistory[0].UserAgent = "tampered"

	again, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "agentA", again.LoginHistory[0].UserAgent)
}

func TestAppendLoginEvent_UnknownAccount(t *testing.T) {
	repo := NewAccountRepository()

	err := repo.AppendLoginEvent(context.Background(), uuid.New(), &entity.LoginEvent{
		OccurredAt: time.Now(),
		UserAgent:  "agentA",
	})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAppendLoginEvent_ConcurrentAppendsAllSurvive(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account := newAccount("alice")
	require.NoError(t, repo.Insert(ctx, account))

	const appends = 32

	var wg sync.WaitGroup
	wg.Add(appends)
	for i := 0; i < appends; i++ {
		go func() {
			defer wg.Done()

			err := repo.AppendLoginEvent(ctx, account.ID, &entity.LoginEvent{
				OccurredAt: time.Now(),
				UserAgent:  "concurrent",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, found.LoginHistory, appends)
}

func TestConcurrentInsert_SameUsernameExactlyOneWins(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	const attempts = 16

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			results <- repo.Insert(ctx, newAccount("alice"))
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, repository.ErrDuplicateUsername):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelledContextIsRespected(t *testing.T) {
	repo := NewAccountRepository()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, repo.Insert(ctx, newAccount("alice")))
	_, err := repo.FindByUsername(ctx, "alice")
	assert.Error(t, err)
}
