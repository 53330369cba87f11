// Package app assembles the fx graph shared by the API server and the admin CLI.
// Adapters are chosen from configuration before the graph is built, so only the
// selected backends are constructed.
package app

import (
	"context"

	"pharmanet/config"
	"pharmanet/internal/infra/auth"
	"pharmanet/internal/infra/blob"
	firebaseinfra "pharmanet/internal/infra/firebase"
	logs "pharmanet/internal/infra/log"
	"pharmanet/internal/infra/persistence/postgres"
	"pharmanet/internal/infra/pubsub"
	"pharmanet/internal/usecase/impl"

	"go.uber.org/fx"
)

// Modules returns every provider below the delivery layer.
func Modules(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		injectInfra(cfg),
		injectRepo(cfg),
		injectService(cfg),
		injectUsecase(),
	)
}

func injectInfra(cfg *config.Config) fx.Option {
	opts := []fx.Option{
		fx.Provide(
			logs.New,
			context.Background,
		),
	}
	if cfg.UsesPostgres() {
		opts = append(opts, fx.Provide(postgres.New))
	}
	if cfg.UsesFirebase() {
		opts = append(opts, fx.Provide(firebaseinfra.NewApp))
	}

	return fx.Options(opts...)
}

func injectRepo(cfg *config.Config) fx.Option {
	if cfg.RecordStore.Provider == config.RecordStoreFirestore {
		return fx.Provide(firebaseinfra.NewRecordStore)
	}

	return fx.Provide(postgres.NewRecordStore)
}

func injectService(cfg *config.Config) fx.Option {
	identityProvider := fx.Provide(postgres.NewIdentityProvider)
	if cfg.Identity.Provider == config.IdentityProviderFirebase {
		identityProvider = fx.Provide(firebaseinfra.NewIdentityProvider)
	}

	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			blob.NewBucketStore,
		),
		identityProvider,
		pubsub.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewProvisioningService,
		impl.NewAccessService,
		impl.NewProfileService,
		impl.NewDirectoryService,
	)
}
