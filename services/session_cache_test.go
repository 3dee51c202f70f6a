package services

import (
	"testing"
	"time"

	"github.com/UncoreDigital/secure-place-api/models"
	"github.com/stretchr/testify/assert"
)

func cachedUser(id string) *models.AuthenticatedUser {
	return &models.AuthenticatedUser{
		ID:    id,
		Email: id + "@example.com",
		Role:  models.RoleFirmAdmin,
	}
}

func TestSessionCache_SetAndGet(t *testing.T) {
	cache := NewSessionCache(time.Minute)

	cache.Set("token_1", cachedUser("user_1"))

	user, ok := cache.Get("token_1")
	assert.True(t, ok)
	assert.Equal(t, "user_1", user.ID)

	_, ok = cache.Get("token_unknown")
	assert.False(t, ok)
}

func TestSessionCache_EntryExpiresAfterTTL(t *testing.T) {
	cache := NewSessionCache(10 * time.Millisecond)

	cache.Set("token_1", cachedUser("user_1"))
	time.Sleep(20 * time.Millisecond)

	_, ok := cache.Get("token_1")
	assert.False(t, ok)
	// The expired entry was dropped on read
	assert.Equal(t, 0, cache.Len())
}

func TestSessionCache_TokenExpiryCapsTTL(t *testing.T) {
	cache := NewSessionCache(time.Hour)

	user := cachedUser("user_1")
	user.ExpiresAt = time.Now().Add(10 * time.Millisecond)
	cache.Set("token_1", user)

	time.Sleep(20 * time.Millisecond)

	// The cache honors the token's own expiry even under a longer TTL
	_, ok := cache.Get("token_1")
	assert.False(t, ok)
}

func TestSessionCache_Clear(t *testing.T) {
	cache := NewSessionCache(time.Minute)

	cache.Set("token_1", cachedUser("user_1"))
	cache.Set("token_2", cachedUser("user_2"))

	cache.Clear("token_1")

	_, ok := cache.Get("token_1")
	assert.False(t, ok)
	_, ok = cache.Get("token_2")
	assert.True(t, ok)
}

func TestSessionCache_Expire(t *testing.T) {
	cache := NewSessionCache(10 * time.Millisecond)

	cache.Set("token_1", cachedUser("user_1"))
	cache.Set("token_2", cachedUser("user_2"))
	time.Sleep(20 * time.Millisecond)

	fresh := cachedUser("user_3")
	fresh.ExpiresAt = time.Now().Add(time.Hour)
	cache.Set("token_3", fresh)

	removed := cache.Expire()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, cache.Len())
}
