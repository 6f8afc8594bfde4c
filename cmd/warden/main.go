package main

import (
	"log/slog"

	"warden/config"
	"warden/internal/domain/service"
	"warden/internal/infra/auth"
	logs "warden/internal/infra/log"
	"warden/internal/infra/persistence/postgres"
	"warden/internal/usecase"
	"warden/internal/usecase/impl"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Invoke(
			bootstrap,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
		),
	)
}

// newPasswordHasher builds the hashing policy from config; an unset cost
// means the bcrypt default.
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth == nil || cfg.Auth.BcryptCost == 0 {
		return auth.NewBcryptHasher()
	}

	return auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
		),
	)
}

type bootstrapParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
	Auth   usecase.AuthUsecase
}

// bootstrap migrates the credential-store schema and leaves the assembled
// auth service ready for a delivery layer to consume.
func bootstrap(params bootstrapParams) error {
	if err := postgres.Migrate(params.DB); err != nil {
		return err
	}

	params.Logger.Info("credential service ready",
		slog.String("service", params.Config.Env.ServiceName),
		slog.String("env", params.Config.Env.Env),
	)

	return nil
}
