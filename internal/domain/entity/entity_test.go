package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPharmacist_FieldsRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	pharmacist := &Pharmacist{
		UserID:     "uid-1",
		Name:       "Ana",
		Email:      "ana@example.com",
		PharmacyID: "ph-1",
		Pharmacy:   PharmacySnapshot{PharmacyName: "Central", Address: "1 Main St", SnapshotAt: at},
		CreatedAt:  at,
	}

	fields := pharmacist.Fields()
	assert.Equal(t, "pharmacist", fields["role"])
	assert.NotContains(t, fields, "phone")

	decoded, err := PharmacistFromFields(fields)
	require.NoError(t, err)
	assert.Equal(t, RolePharmacist, decoded.Role)
	assert.Equal(t, "Central", decoded.Pharmacy.PharmacyName)
	assert.True(t, at.Equal(decoded.Pharmacy.SnapshotAt))
}

// Records read back from JSONB carry timestamps as strings and numbers as float64.
func TestCategoryFromFields_JSONDecoded(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	category := &Category{ID: "c-1", Name: "Pain", PharmacyID: "ph-1", ProductCount: 3, CreatedAt: at, UpdatedAt: at}

	raw, err := json.Marshal(category.Fields())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	decoded, err := CategoryFromFields(fields)
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.ProductCount)
	assert.True(t, at.Equal(decoded.CreatedAt))
	assert.Equal(t, "ph-1", decoded.PharmacyID)
}

func TestPharmacy_FormattedAddressSkipsEmptyParts(t *testing.T) {
	pharmacy := &Pharmacy{Address1: "1 Main St", Town: "Old Town", City: "Springfield", State: "IL", Country: "US"}

	assert.Equal(t, "1 Main St, Old Town, Springfield, IL, US", pharmacy.FormattedAddress())

	snapshot := pharmacy.Snapshot(time.Unix(0, 0))
	assert.Equal(t, pharmacy.FormattedAddress(), snapshot.Address)
}

func TestNewProfile_Principal(t *testing.T) {
	fields := (&Pharmacist{UserID: "uid-1", Name: "Ana", PharmacyID: "ph-9"}).Fields()

	profile, err := NewProfile(Identity{ID: "uid-1", Email: "ana@example.com"}, RolePharmacist, fields)
	require.NoError(t, err)

	assert.Equal(t, "Ana", profile.Name())
	assert.Equal(t, Principal{AccountID: "uid-1", Email: "ana@example.com", Role: RolePharmacist, PharmacyID: "ph-9"}, profile.Principal())
	assert.Nil(t, profile.Administrator)
}

func TestRole_Collection(t *testing.T) {
	assert.Equal(t, "admins", RoleAdmin.Collection())
	assert.Equal(t, "pharmacists", RolePharmacist.Collection())
	assert.Equal(t, "users", RoleUser.Collection())
	assert.False(t, Role("merchant").IsValid())
	assert.Empty(t, Role("merchant").Collection())
}

func TestProfile_JSONIsFlat(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	profile := &Profile{
		AccountID: "uid-1",
		Email:     "ana@example.com",
		Role:      RolePharmacist,
		Pharmacist: &Pharmacist{
			UserID:     "uid-1",
			Name:       "Ana",
			Email:      "old@example.com",
			Role:       RolePharmacist,
			PharmacyID: "ph-1",
			Pharmacy:   PharmacySnapshot{PharmacyName: "Central", SnapshotAt: at},
			CreatedAt:  at,
		},
		SessionID: "session-1",
	}

	raw, err := json.Marshal(profile)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "uid-1", flat["accountId"])
	assert.Equal(t, "ana@example.com", flat["email"])
	assert.Equal(t, "pharmacist", flat["role"])
	assert.Equal(t, "Ana", flat["name"])
	assert.Equal(t, "ph-1", flat["pharmacyId"])
	assert.NotContains(t, flat, "pharmacist")
	assert.NotContains(t, flat, "SessionID")

	var decoded Profile
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "uid-1", decoded.AccountID)
	require.NotNil(t, decoded.Pharmacist)
	assert.Equal(t, "Ana", decoded.Pharmacist.Name)
	assert.Equal(t, "Central", decoded.Pharmacist.Pharmacy.PharmacyName)
	assert.Nil(t, decoded.Customer)
	assert.Empty(t, decoded.SessionID)
}
