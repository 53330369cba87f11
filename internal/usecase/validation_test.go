package usecase

import (
	"testing"

	domainerrors "pharmanet/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInput_RejectsBlankStrings(t *testing.T) {
	blank := " \t "

	tests := []struct {
		name    string
		input   any
		details string
	}{
		{
			name:    "category name and description",
			input:   ProvisionCategoryInput{Name: "   ", Description: "\n", Image: &ImageUpload{FileName: "a.png", Data: []byte{1}}},
			details: "Name notblank, Description notblank",
		},
		{
			name: "administrator name",
			input: ProvisionAdministratorInput{
				Name:     "  ",
				Email:    "a@example.com",
				Password: "Secret#123",
			},
			details: "Name notblank",
		},
		{
			name:    "profile patch name",
			input:   UpdateProfileInput{Name: &blank},
			details: "Name notblank",
		},
		{
			name:    "pharmacy rename",
			input:   UpdatePharmacyAddressInput{PharmacyName: &blank},
			details: "PharmacyName notblank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.input)

			require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.details)
		})
	}
}

func TestValidateInput_AcceptsPartialPatches(t *testing.T) {
	name := "Corner Pharmacy"
	email := "new@example.com"

	assert.NoError(t, ValidateInput(UpdatePharmacyAddressInput{PharmacyName: &name}))
	assert.NoError(t, ValidateInput(UpdateProfileInput{Email: &email}))
	assert.NoError(t, ValidateInput(UpdateProfileInput{}))
}
