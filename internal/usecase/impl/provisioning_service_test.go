package impl

import (
	"context"
	"strings"
	"testing"

	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/service"
	"pharmanet/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProvisioningService_ProvisionAdministrator_Success(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	id, err := fx.provisioning.ProvisionAdministrator(ctx, usecase.ProvisionAdministratorInput{
		Name:     "Ada Admin",
		Email:    "ada@example.com",
		Password: "secret-1",
	})
	require.NoError(t, err)

	fields, ok := fx.store.fields(entity.CollectionAdministrators, id)
	require.True(t, ok)
	assert.Equal(t, id, fields["userId"])
	assert.Equal(t, "admin", fields["role"])

	account, ok := fx.store.fields(entity.CollectionAccounts, id)
	require.True(t, ok)
	assert.Equal(t, "admin", account["role"])

	assert.Equal(t, []string{service.EventIdentityProvisioned}, fx.publisher.types())
}

func TestProvisioningService_ProvisionAdministrator_EmailInUse(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	input := usecase.ProvisionAdministratorInput{Name: "Ada", Email: "ada@example.com", Password: "secret-1"}

	_, err := fx.provisioning.ProvisionAdministrator(ctx, input)
	require.NoError(t, err)

	_, err = fx.provisioning.ProvisionAdministrator(ctx, input)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailInUse))
	assert.Equal(t, 1, fx.store.count(entity.CollectionAdministrators))
	assert.Empty(t, fx.identity.deleted, "an identity that was never created must not be compensated")
}

func TestProvisioningService_ProvisionAdministrator_ValidationFailed(t *testing.T) {
	fx := createTestServices(t)

	_, err := fx.provisioning.ProvisionAdministrator(context.Background(), usecase.ProvisionAdministratorInput{
		Name:     "Ada",
		Email:    "not-an-email",
		Password: "secret-1",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.False(t, fx.identity.exists("not-an-email"))
}

// An identity that already owns an account index record cannot gain a second role.
func TestProvisioningService_ExistingAccountIndex_RejectsAndCompensates(t *testing.T) {
	fx := createTestServices(t)
	seedPharmacy(fx, "ph-1", "Central")
	fx.store.put(entity.CollectionAccounts, "reused-id", (&entity.Account{AccountID: "reused-id", Role: entity.RoleAdmin}).Fields())
	fx.identity.nextID = "reused-id"

	_, err := fx.provisioning.ProvisionPharmacist(context.Background(), usecase.ProvisionPharmacistInput{
		Name:       "Pat",
		Email:      "pat@example.com",
		Password:   "secret-1",
		PharmacyID: "ph-1",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrEmailInUse))
	assert.Equal(t, 0, fx.store.count(entity.CollectionPharmacists))
	assert.Equal(t, []string{"reused-id"}, fx.identity.deleted)
}

func TestProvisioningService_StoreWriteFailure_CompensatesIdentity(t *testing.T) {
	fx := createTestServices(t)
	fx.store.createErr[entity.CollectionAdministrators] = errors.New("backend unavailable")

	_, err := fx.provisioning.ProvisionAdministrator(context.Background(), usecase.ProvisionAdministratorInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret-1",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrStoreWriteFailed))
	assert.Len(t, fx.identity.deleted, 1)
	assert.False(t, fx.identity.exists("ada@example.com"))
	assert.Equal(t, 0, fx.store.count(entity.CollectionAccounts))
	assert.Empty(t, fx.publisher.types())
}

func TestProvisioningService_CompensationFailure_ReturnsOriginalError(t *testing.T) {
	fx := createTestServices(t)
	fx.store.createErr[entity.CollectionAdministrators] = errors.New("backend unavailable")
	fx.identity.deleteErr = errors.New("identity provider down")

	_, err := fx.provisioning.ProvisionAdministrator(context.Background(), usecase.ProvisionAdministratorInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret-1",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrStoreWriteFailed))
	assert.Len(t, fx.identity.deleted, 1)
}

func TestProvisioningService_ProvisionPharmacist_DenormalizesPharmacy(t *testing.T) {
	fx := createTestServices(t)
	pharmacy := seedPharmacy(fx, "ph-1", "Central Pharmacy")

	id := provisionPharmacist(t, fx, "pat@example.com", "ph-1")

	fields, ok := fx.store.fields(entity.CollectionPharmacists, id)
	require.True(t, ok)

	pharmacist, err := entity.PharmacistFromFields(fields)
	require.NoError(t, err)
	assert.Equal(t, "ph-1", pharmacist.PharmacyID)
	assert.Equal(t, "Central Pharmacy", pharmacist.Pharmacy.PharmacyName)
	assert.Equal(t, pharmacy.FormattedAddress(), pharmacist.Pharmacy.Address)
	assert.False(t, pharmacist.Pharmacy.SnapshotAt.IsZero())
}

func TestProvisioningService_ProvisionPharmacist_MissingPharmacy(t *testing.T) {
	fx := createTestServices(t)

	_, err := fx.provisioning.ProvisionPharmacist(context.Background(), usecase.ProvisionPharmacistInput{
		Name:       "Pat",
		Email:      "pat@example.com",
		Password:   "secret-1",
		PharmacyID: "missing",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	assert.Equal(t, 0, fx.store.count(entity.CollectionPharmacists))
	assert.Equal(t, 0, fx.store.count(entity.CollectionAccounts))
	assert.Len(t, fx.identity.deleted, 1)
	assert.False(t, fx.identity.exists("pat@example.com"))
}

func TestProvisioningService_ProvisionPharmacy_WithImage(t *testing.T) {
	fx := createTestServices(t)
	fx.blob.On("Upload", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "pharmacies/") && strings.HasSuffix(p, "/logo.png")
	}), pngBytes).Return("https://cdn.example.com/logo.png", nil).Once()

	pharmacy, err := fx.provisioning.ProvisionPharmacy(context.Background(), usecase.ProvisionPharmacyInput{
		PharmacyName: "Central",
		Address1:     "1 Main St",
		Town:         "Old Town",
		City:         "Springfield",
		State:        "IL",
		Country:      "US",
		Image:        &usecase.ImageUpload{FileName: "logo.png", Data: pngBytes},
	})
	require.NoError(t, err)

	fields, ok := fx.store.fields(entity.CollectionPharmacies, pharmacy.PharmacyID)
	require.True(t, ok)
	assert.Equal(t, pharmacy.PharmacyID, fields["pharmacyId"])
	assert.Equal(t, "https://cdn.example.com/logo.png", fields["imageUrl"])
	assert.Equal(t, "pharmacies/"+pharmacy.PharmacyID+"/logo.png", fx.blob.Calls[0].Arguments.String(1))
	assert.Equal(t, []string{service.EventPharmacyProvisioned}, fx.publisher.types())
}

func TestProvisioningService_ProvisionPharmacy_UploadFailureLeavesNoRecord(t *testing.T) {
	fx := createTestServices(t)
	fx.blob.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket unavailable")).Once()

	_, err := fx.provisioning.ProvisionPharmacy(context.Background(), usecase.ProvisionPharmacyInput{
		PharmacyName: "Central",
		Address1:     "1 Main St",
		Town:         "Old Town",
		City:         "Springfield",
		State:        "IL",
		Country:      "US",
		Image:        &usecase.ImageUpload{FileName: "logo.png", Data: pngBytes},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrUploadFailed))
	assert.Equal(t, 0, fx.store.count(entity.CollectionPharmacies))
}

func TestProvisioningService_ProvisionPharmacy_WithoutImage(t *testing.T) {
	fx := createTestServices(t)

	pharmacy, err := fx.provisioning.ProvisionPharmacy(context.Background(), usecase.ProvisionPharmacyInput{
		PharmacyName: "Central",
		Address1:     "1 Main St",
		Town:         "Old Town",
		City:         "Springfield",
		State:        "IL",
		Country:      "US",
	})
	require.NoError(t, err)
	assert.Empty(t, pharmacy.ImageURL)
	fx.blob.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestProvisioningService_ProvisionCategory_Success(t *testing.T) {
	fx := createTestServices(t)
	principal := pharmacistPrincipal("pharm-1", "ph-1")
	fx.blob.On("Upload", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "categoryImages/") && strings.HasSuffix(p, "-pain.png")
	}), pngBytes).Return("https://cdn.example.com/pain.png", nil).Once()

	category, err := fx.provisioning.ProvisionCategory(context.Background(), principal, usecase.ProvisionCategoryInput{
		Name:        "Pain relief",
		Description: "Analgesics",
		Image:       &usecase.ImageUpload{FileName: "pain.png", Data: pngBytes},
	})
	require.NoError(t, err)

	assert.Equal(t, "ph-1", category.PharmacyID)
	assert.Equal(t, 0, category.ProductCount)
	assert.Equal(t, category.CreatedAt, category.UpdatedAt)
	assert.Equal(t, "categoryImages/"+category.ID+"-pain.png", fx.blob.Calls[0].Arguments.String(1))

	fields, ok := fx.store.fields(entity.CollectionCategories, category.ID)
	require.True(t, ok)
	assert.Equal(t, "ph-1", fields["pharmacyId"])
}

func TestProvisioningService_ProvisionCategory_InvalidInputFailsBeforeIO(t *testing.T) {
	image := &usecase.ImageUpload{FileName: "pain.png", Data: pngBytes}

	tests := []struct {
		name  string
		input usecase.ProvisionCategoryInput
	}{
		{name: "missing name", input: usecase.ProvisionCategoryInput{Description: "Analgesics", Image: image}},
		{name: "missing description", input: usecase.ProvisionCategoryInput{Name: "Pain relief", Image: image}},
		{name: "nil image", input: usecase.ProvisionCategoryInput{Name: "Pain relief", Description: "Analgesics"}},
		{
			name: "empty image data",
			input: usecase.ProvisionCategoryInput{
				Name:        "Pain relief",
				Description: "Analgesics",
				Image:       &usecase.ImageUpload{FileName: "pain.png", Data: []byte{}},
			},
		},
		{name: "blank name", input: usecase.ProvisionCategoryInput{Name: "   ", Description: "Analgesics", Image: image}},
		{name: "blank description", input: usecase.ProvisionCategoryInput{Name: "Pain relief", Description: "\t\n", Image: image}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestServices(t)

			_, err := fx.provisioning.ProvisionCategory(context.Background(), pharmacistPrincipal("pharm-1", "ph-1"), tt.input)

			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			assert.Empty(t, fx.store.calls)
			fx.blob.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestProvisioningService_ProvisionCategory_RequiresPharmacist(t *testing.T) {
	fx := createTestServices(t)
	admin := entity.Principal{AccountID: "admin-1", Role: entity.RoleAdmin}

	_, err := fx.provisioning.ProvisionCategory(context.Background(), admin, usecase.ProvisionCategoryInput{
		Name:        "Pain relief",
		Description: "Analgesics",
		Image:       &usecase.ImageUpload{FileName: "pain.png", Data: pngBytes},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrNotAuthorizedForRole))
}

func TestProvisioningService_ProvisionCategory_RejectsNonImage(t *testing.T) {
	fx := createTestServices(t)

	_, err := fx.provisioning.ProvisionCategory(context.Background(), pharmacistPrincipal("pharm-1", "ph-1"), usecase.ProvisionCategoryInput{
		Name:        "Pain relief",
		Description: "Analgesics",
		Image:       &usecase.ImageUpload{FileName: "notes.txt", Data: []byte("plain text, not an image")},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func validCustomerInput() usecase.ProvisionCustomerInput {
	return usecase.ProvisionCustomerInput{
		Email:       "cora@example.com",
		Password:    "secret-1",
		FullName:    "Cora Customer",
		PhoneNumber: "+1 555 0100",
		DOB:         "1990-04-12",
		Gender:      "female",
		Address:     "2 Side St",
		City:        "Springfield",
		Country:     "US",
		PostalCode:  "62701",
	}
}

func TestProvisioningService_ProvisionCustomer_WithPhoto(t *testing.T) {
	fx := createTestServices(t)
	fx.blob.On("Upload", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "userProfiles/") && strings.HasSuffix(p, "/me.png")
	}), pngBytes).Return("https://cdn.example.com/me.png", nil).Once()

	input := validCustomerInput()
	input.Photo = &usecase.ImageUpload{FileName: "../../me.png", Data: pngBytes}

	id, err := fx.provisioning.ProvisionCustomer(context.Background(), input)
	require.NoError(t, err)

	fields, ok := fx.store.fields(entity.CollectionCustomers, id)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/me.png", fields["profileImage"])
	assert.Equal(t, "user", fields["role"])
	assert.Equal(t, "userProfiles/"+id+"/me.png", fx.blob.Calls[0].Arguments.String(1))
}

func TestProvisioningService_ProvisionCustomer_OversizedPhotoRejectedBeforeIdentity(t *testing.T) {
	fx := createTestServices(t)

	input := validCustomerInput()
	input.Photo = &usecase.ImageUpload{FileName: "big.png", Data: append(append([]byte{}, pngBytes...), make([]byte, 2048)...)}

	_, err := fx.provisioning.ProvisionCustomer(context.Background(), input)

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.False(t, fx.identity.exists("cora@example.com"))
}

func TestProvisioningService_ProvisionCustomer_UploadFailureCompensates(t *testing.T) {
	fx := createTestServices(t)
	fx.blob.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket unavailable")).Once()

	input := validCustomerInput()
	input.Photo = &usecase.ImageUpload{FileName: "me.png", Data: pngBytes}

	_, err := fx.provisioning.ProvisionCustomer(context.Background(), input)

	assert.True(t, errors.Is(err, domainerrors.ErrUploadFailed))
	assert.False(t, fx.identity.exists("cora@example.com"))
	assert.Equal(t, 0, fx.store.count(entity.CollectionCustomers))
}

func TestProvisioningService_PublishFailureDoesNotFailFlow(t *testing.T) {
	fx := createTestServices(t)
	fx.publisher.err = errors.New("topic not found")

	_, err := fx.provisioning.ProvisionAdministrator(context.Background(), usecase.ProvisionAdministratorInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret-1",
	})

	require.NoError(t, err)
	assert.Len(t, fx.publisher.types(), 1)
}
