package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kenworld/edughana-shop/internal/domain"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
)

const profileKeyPrefix = "profile:"

// ProfileRepository caches customer profiles in Redis.
type ProfileRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileRepository creates a Redis-backed profile cache.
func NewProfileRepository(client *redis.Client, ttl time.Duration) *ProfileRepository {
	return &ProfileRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cached profile for userID.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	data, err := r.client.Get(ctx, profileKeyPrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("profile", userID)
		}
		return nil, fmt.Errorf("redis get profile: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, apperrors.NotFound("profile", userID)
	}

	return &profile, nil
}

// Save caches the profile with the configured TTL.
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if err := r.client.Set(ctx, profileKeyPrefix+profile.UserID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set profile: %w", err)
	}

	return nil
}

// Delete evicts the cached profile for userID.
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, profileKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del profile: %w", err)
	}
	return nil
}
