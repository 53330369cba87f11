package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "meta": map[string]string{"request_id": "req-1"}})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": "nope"},
		"meta":  map[string]string{"request_id": "req-2"},
	})
}

func pharmacistProfile() *entity.Profile {
	return &entity.Profile{
		AccountID:  "ph-user",
		Email:      "p@example.com",
		Role:       entity.RolePharmacist,
		Pharmacist: &entity.Pharmacist{UserID: "ph-user", PharmacyID: "ph-1"},
	}
}

func newAPI(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()

	var authHeaders []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/pharmacist/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "right" {
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS")

			return
		}
		writeData(w, http.StatusOK, map[string]any{
			"accessToken": "tok-1",
			"expiresAt":   time.Now().Add(time.Hour),
			"profile":     pharmacistProfile(),
		})
	})
	mux.HandleFunc("POST /auth/admin/login", func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusForbidden, "NOT_AUTHORIZED_FOR_ROLE")
	})
	mux.HandleFunc("GET /pharmacist/categories", func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		writeData(w, http.StatusOK, []*entity.Category{{ID: "cat-1", PharmacyID: "ph-1"}})
	})
	mux.HandleFunc("POST /pharmacist/categories", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_FAILED")

			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_FAILED")

			return
		}
		defer file.Close()
		writeData(w, http.StatusCreated, entity.Category{ID: "cat-2", Name: r.FormValue("name"), ImageURL: header.Filename})
	})
	mux.HandleFunc("GET /account/profile", func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED")
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, &authHeaders
}

func TestClient_LoginCachesSessionUntilLogout(t *testing.T) {
	server, authHeaders := newAPI(t)
	c := New(server.URL)
	ctx := context.Background()

	_, err := c.ListCategories(ctx)
	require.ErrorIs(t, err, ErrNotSignedIn)

	profile, err := c.LoginPharmacist(ctx, "p@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "ph-user", profile.AccountID)

	principal, ok := c.Principal()
	require.True(t, ok)
	assert.Equal(t, "ph-1", principal.PharmacyID)

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)

	require.NoError(t, c.Logout(ctx))
	assert.Nil(t, c.Session())
	assert.Equal(t, []string{"Bearer tok-1", "Bearer tok-1"}, *authHeaders)
}

func TestClient_ErrorsMapToDomainKinds(t *testing.T) {
	server, _ := newAPI(t)
	c := New(server.URL)
	ctx := context.Background()

	_, err := c.LoginPharmacist(ctx, "p@example.com", "wrong")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, c.Session())

	_, err = c.LoginAdministrator(ctx, "p@example.com", "right")
	require.ErrorIs(t, err, domainerrors.ErrNotAuthorizedForRole)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "req-2", apiErr.RequestID)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	server, _ := newAPI(t)
	c := New(server.URL)
	ctx := context.Background()

	_, err := c.LoginPharmacist(ctx, "p@example.com", "right")
	require.NoError(t, err)

	_, err = c.GetProfile(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Nil(t, c.Session())
}

func TestClient_CreateCategoryUploadsImage(t *testing.T) {
	server, _ := newAPI(t)
	c := New(server.URL)
	ctx := context.Background()

	_, err := c.LoginPharmacist(ctx, "p@example.com", "right")
	require.NoError(t, err)

	category, err := c.CreateCategory(ctx, "Vitamins", "Daily", &Image{FileName: "v.png", Data: []byte{0x89, 'P', 'N', 'G'}})
	require.NoError(t, err)
	assert.Equal(t, "Vitamins", category.Name)
	assert.Equal(t, "v.png", category.ImageURL)
}
