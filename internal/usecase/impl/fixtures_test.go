package impl

import (
	"context"
	"testing"
	"time"

	"pharmanet/config"
	"pharmanet/internal/domain/entity"
	"pharmanet/internal/usecase"

	"github.com/stretchr/testify/require"
)

// directoryFixtures wires every service against the same in-memory collaborators.
type directoryFixtures struct {
	store        *memoryStore
	identity     *fakeIdentityProvider
	blob         *mockBlobStore
	publisher    *recordingPublisher
	provisioning usecase.ProvisioningUsecase
	access       usecase.AccessUsecase
	profile      usecase.ProfileUsecase
	directory    usecase.DirectoryUsecase
}

func createTestServices(t *testing.T) directoryFixtures {
	t.Helper()

	store := newMemoryStore()
	identity := newFakeIdentityProvider()
	blob := &mockBlobStore{}
	publisher := &recordingPublisher{}
	logger := newDiscardLogger()
	cfg := &config.Config{Blob: &config.BlobConfig{MaxImageBytes: 1024}}

	t.Cleanup(func() { blob.AssertExpectations(t) })

	return directoryFixtures{
		store:     store,
		identity:  identity,
		blob:      blob,
		publisher: publisher,
		provisioning: NewProvisioningService(ProvisioningServiceParams{
			Store:     store,
			Identity:  identity,
			Blob:      blob,
			Publisher: publisher,
			Config:    cfg,
			Logger:    logger,
		}),
		access:    NewAccessService(AccessServiceParams{Store: store, Identity: identity, Logger: logger}),
		profile:   NewProfileService(ProfileServiceParams{Store: store, Identity: identity, Logger: logger}),
		directory: NewDirectoryService(DirectoryServiceParams{Store: store, Logger: logger}),
	}
}

func seedPharmacy(fx directoryFixtures, id, name string) *entity.Pharmacy {
	pharmacy := &entity.Pharmacy{
		PharmacyID:   id,
		PharmacyName: name,
		Address1:     "1 Main St",
		Town:         "Old Town",
		City:         "Springfield",
		State:        "IL",
		Country:      "US",
		CreatedAt:    time.Now().UTC(),
	}
	fx.store.put(entity.CollectionPharmacies, id, pharmacy.Fields())

	return pharmacy
}

func provisionPharmacist(t *testing.T, fx directoryFixtures, email, pharmacyID string) string {
	t.Helper()

	id, err := fx.provisioning.ProvisionPharmacist(context.Background(), usecase.ProvisionPharmacistInput{
		Name:       "Pat Pharmacist",
		Email:      email,
		Password:   "secret-1",
		PharmacyID: pharmacyID,
	})
	require.NoError(t, err)

	return id
}

func pharmacistPrincipal(id, pharmacyID string) entity.Principal {
	return entity.Principal{AccountID: id, Email: id + "@example.com", Role: entity.RolePharmacist, PharmacyID: pharmacyID}
}
