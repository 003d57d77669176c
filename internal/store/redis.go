package store

import (
	"context"
	"fmt"

	"github.com/desertthunder/scx/internal/shared"
	"github.com/redis/rueidis"
)

// Key prefix for preference entries, "pref:{user}:{key}"
const preferencePrefix = "pref:"

// RedisStore implements [services.PreferenceStore] on Redis via rueidis.
type RedisStore struct {
	client rueidis.Client
}

// NewRedisStore creates a new instance of RedisStore with the provided rueidis client.
func NewRedisStore(client rueidis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// RedisOptions contains configuration for Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStoreFromOptions dials Redis with simplified options.
func NewRedisStoreFromOptions(opts RedisOptions) (*RedisStore, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("%w: redis address is required", shared.ErrInvalidConfig)
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{opts.Addr},
		Password:    opts.Password,
		SelectDB:    opts.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return NewRedisStore(client), nil
}

func preferenceKey(user, key string) string {
	return preferencePrefix + user + ":" + key
}

// GetPreference returns the stored value, or def when the key does not exist.
func (r *RedisStore) GetPreference(ctx context.Context, user, key, def string) (string, error) {
	cmd := r.client.B().Get().Key(preferenceKey(user, key)).Build()
	value, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return def, nil
		}
		return "", fmt.Errorf("failed to get preference from redis: %w", err)
	}
	return value, nil
}

func (r *RedisStore) SetPreference(ctx context.Context, user, key, value string) error {
	if user == "" || key == "" {
		return fmt.Errorf("%w: user and key are required", shared.ErrInvalidInput)
	}

	cmd := r.client.B().Set().Key(preferenceKey(user, key)).Value(value).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to save preference to redis: %w", err)
	}
	return nil
}

// Close closes the Redis client connection.
func (r *RedisStore) Close() error {
	r.client.Close()
	return nil
}
