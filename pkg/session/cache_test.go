package session

import (
	"sync"
	"testing"
	"time"

	"pharmanet/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pharmacistProfile() *entity.Profile {
	return &entity.Profile{
		AccountID:  "uid-1",
		Email:      "pat@example.com",
		Role:       entity.RolePharmacist,
		Pharmacist: &entity.Pharmacist{UserID: "uid-1", PharmacyID: "ph-1"},
	}
}

func TestCache_SetCurrentClear(t *testing.T) {
	cache := NewCache()
	assert.Nil(t, cache.Current())

	cache.Set(&Session{Profile: pharmacistProfile(), AccessToken: "token"})

	current := cache.Current()
	require.NotNil(t, current)
	assert.Equal(t, "token", current.AccessToken)

	principal, ok := cache.Principal()
	require.True(t, ok)
	assert.Equal(t, "ph-1", principal.PharmacyID)

	cache.Clear()
	assert.Nil(t, cache.Current())
	_, ok = cache.Principal()
	assert.False(t, ok)
}

func TestCache_ExpiredSessionIsNotReturned(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCache()
	cache.now = func() time.Time { return now }

	cache.Set(&Session{Profile: pharmacistProfile(), ExpiresAt: now.Add(time.Minute)})
	assert.NotNil(t, cache.Current())

	now = now.Add(time.Minute)
	assert.Nil(t, cache.Current())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cache.Set(&Session{Profile: pharmacistProfile()})
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Principal()
		}()
	}
	wg.Wait()

	_, ok := cache.Principal()
	assert.True(t, ok)
}
