// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/repository"
	"warden/internal/domain/service"
	"warden/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// dummyPasswordHash is verified against when the username is unknown, so a
// lookup miss costs roughly the same as a real verification and response
// timing does not leak account existence. It is not a credential; the result
// of the comparison is always discarded.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyO8J8mZLMrXUzzbY4aPmnAJkM0WGJMDGu"

// authService implements the AuthUsecase interface. It holds no mutable state
// between calls; everything durable lives behind the AccountRepository.
type authService struct {
	accounts repository.AccountRepository
	hasher   service.PasswordHasher
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAuthService is the constructor for authService. It receives the
// credential store and the hashing policy as interfaces, so tests can inject
// an in-memory store or a mock.
func NewAuthService(
	accounts repository.AccountRepository,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		accounts: accounts,
		hasher:   hasher,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates a new account. The confirmation check runs before any
// hashing or storage work, and only the hash ever reaches the repository.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) error {
	srv.logger.Debug("Starting registration", slog.String("username", input.Username))

	if err := srv.validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("registration input rejected")
	}

	if input.Password != input.PasswordConfirm {
		srv.logger.Warn("Registration rejected: password confirmation mismatch",
			slog.String("username", input.Username))

		return errors.Wrap(domainerrors.ErrPasswordMismatch, "registration rejected")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration",
			slog.String("username", input.Username), slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage("registration failed")
	}

	account := &entity.Account{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
	}

	if err := srv.accounts.Insert(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			srv.logger.Warn("Registration rejected: username already taken",
				slog.String("username", input.Username))

			return errors.Wrap(domainerrors.ErrDuplicateUser, "registration rejected")
		}

		srv.logger.Error("Failed to persist account",
			slog.String("username", input.Username), slog.Any("error", err))

		return domainerrors.NewStorageExecuteError(err, "failed to persist account")
	}

	srv.logger.Info("Account registered",
		slog.String("username", input.Username), slog.Any("accountID", account.ID))

	return nil
}

// Authenticate verifies the supplied credentials and, on success, durably
// appends a login event before returning the account projection. A failed
// history append is an authentication failure even though the credentials
// were valid: no session without a recorded login event.
func (srv *authService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.AuthenticateOutput, error) {
	srv.logger.Debug("Starting authentication", slog.String("username", input.Username))

	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("authentication input rejected")
	}

	account, err := srv.accounts.FindByUsername(ctx, input.Username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAccountNotFound):
			// Burn a verification anyway so unknown usernames cost the same
			// as wrong passwords.
			srv.hasher.Check(input.Password, dummyPasswordHash)

			srv.logger.Warn("Authentication failed: unknown username",
				slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "authentication failed")

		case errors.Is(err, repository.ErrUsernameNotUnique):
			srv.logger.Error("Credential store returned multiple accounts for one username",
				slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrStorageInvariant, "authentication aborted")

		default:
			// A lookup failure is surfaced as the storage error itself,
			// never masked as "not found".
			srv.logger.Error("Failed to look up account",
				slog.String("username", input.Username), slog.Any("error", err))

			return nil, domainerrors.NewStorageExecuteError(err, "failed to look up account")
		}
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.logger.Warn("Authentication failed: wrong password",
			slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "authentication failed")
	}

	event := &entity.LoginEvent{
		AccountID:  account.ID,
		OccurredAt: time.Now().UTC(),
		UserAgent:  input.UserAgent,
	}

	if err := srv.accounts.AppendLoginEvent(ctx, account.ID, event); err != nil {
		srv.logger.Error("Failed to record login event, refusing authentication",
			slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.NewStorageExecuteError(err, "failed to record login event")
	}

	srv.logger.Info("Authentication succeeded",
		slog.Any("accountID", account.ID), slog.Int("historyLength", len(account.LoginHistory)+1))

	return &usecase.AuthenticateOutput{
		Username:     account.Username,
		Email:        account.Email,
		LoginHistory: append(account.LoginHistory, *event),
	}, nil
}
