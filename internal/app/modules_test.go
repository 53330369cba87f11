package app

import (
	"testing"

	"pharmanet/config"
	"pharmanet/internal/domain/repository"
	"pharmanet/internal/domain/service"
	"pharmanet/internal/usecase"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		Identity:    &config.IdentityConfig{Provider: config.IdentityProviderFirebase, APIKey: "key"},
		RecordStore: &config.RecordStoreConfig{Provider: config.RecordStoreFirestore},
		Firebase:    &config.FirebaseConfig{ProjectID: "demo"},
		Blob:        &config.BlobConfig{BucketURL: "mem://", MaxImageBytes: 1 << 20},
		Auth:        &config.AuthConfig{BcryptCost: 4},
	}
	cfg.SecretKey.Access = "secret"
	cfg.Env.Log.Level = "info"

	return cfg
}

func TestModules_GraphIsComplete(t *testing.T) {
	err := fx.ValidateApp(
		Modules(testConfig()),
		fx.Invoke(func(
			usecase.ProvisioningUsecase,
			usecase.AccessUsecase,
			usecase.ProfileUsecase,
			usecase.DirectoryUsecase,
			repository.RecordStore,
			service.IdentityProvider,
			service.BlobStore,
			service.EventPublisher,
		) {
		}),
	)

	assert.NoError(t, err)
}

func TestModules_PostgresGraphIsComplete(t *testing.T) {
	cfg := testConfig()
	cfg.Identity = &config.IdentityConfig{Provider: config.IdentityProviderLocal}
	cfg.RecordStore = &config.RecordStoreConfig{Provider: config.RecordStorePostgres}

	err := fx.ValidateApp(
		Modules(cfg),
		fx.Invoke(func(usecase.ProvisioningUsecase, usecase.AccessUsecase) {}),
	)

	assert.NoError(t, err)
}
