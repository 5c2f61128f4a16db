package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeEventsKey = "events:active"

type Config struct {
	Addr         string
	Password     string
	UsersHashKey string
	EventsTTL    time.Duration
}

type ValkeyClient struct {
	client       *redis.Client
	usersHashKey string
	eventsTTL    time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:       rdb,
		usersHashKey: cfg.UsersHashKey,
		eventsTTL:    cfg.EventsTTL,
	}, nil
}

// GetUserIDByAuth looks up a user id by email and sha256 password hash in the
// credentials hash. A miss is an error so callers fall back to the database.
func (v *ValkeyClient) GetUserIDByAuth(ctx context.Context, email, passwordHash string) (string, error) {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	userID, err := v.client.HGet(ctx, v.usersHashKey, cacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("user not found in cache")
		}
		return "", fmt.Errorf("cache lookup error: %w", err)
	}

	return userID, nil
}

// SetUserAuth stores verified credentials so subsequent Basic Auth checks skip
// the database.
func (v *ValkeyClient) SetUserAuth(ctx context.Context, email, passwordHash, userID string) error {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	return v.client.HSet(ctx, v.usersHashKey, cacheKey, userID).Err()
}

// InvalidateUserAuth drops a cached credential entry, used when a user is deleted.
func (v *ValkeyClient) InvalidateUserAuth(ctx context.Context, email, passwordHash string) error {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	return v.client.HDel(ctx, v.usersHashKey, cacheKey).Err()
}

// GetActiveEventsRaw returns the cached active-events response as raw JSON to
// avoid an unmarshal/marshal round trip in the handler.
func (v *ValkeyClient) GetActiveEventsRaw(ctx context.Context) ([]byte, error) {
	data, err := v.client.Get(ctx, activeEventsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("active events not cached")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

// SetActiveEvents stores the active-events response with a TTL.
func (v *ValkeyClient) SetActiveEvents(ctx context.Context, response interface{}) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	return v.client.Set(ctx, activeEventsKey, data, v.eventsTTL).Err()
}

// InvalidateActiveEvents drops the cached list after any event mutation.
func (v *ValkeyClient) InvalidateActiveEvents(ctx context.Context) error {
	return v.client.Del(ctx, activeEventsKey).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
