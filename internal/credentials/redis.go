package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
	"github.com/MubeenKhalid10/SwiftCare/pkg/config"
	"github.com/MubeenKhalid10/SwiftCare/pkg/utils"
)

// Key suffixes under the store's prefix. Values are JSON for the snapshot and
// the raw token string for the credential.
const (
	accessTokenKey = "access_token"
	userKey        = "user"
)

// redisTimeout bounds each storage operation. The Store interface is
// synchronous and error-free, so a hung Redis must not hang the caller.
const redisTimeout = 5 * time.Second

// RedisStore is a Store backed by Redis, for deployments where the client
// runs server-side (e.g. a rendering frontend) and several processes share
// one session. Semantics match the other stores: last-writer-wins, failures
// logged and swallowed.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with retry,
// so a client starting alongside its Redis container tolerates the race.
//
// The prefix namespaces this session's keys, e.g. "swiftcare:web:".
func NewRedisStore(cfg *config.RedisConfig, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	retryConfig := utils.DatabaseRetryConfig()
	err := utils.Retry(ctx, retryConfig, func() error {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), redisTimeout)
		defer pingCancel()

		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Msg("Failed to ping Redis, retrying...")
			return err
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info().Str("addr", cfg.Address()).Msg("Connected to Redis credential store")

	return &RedisStore{client: client, prefix: prefix}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests with
// miniredis and by applications that already hold a configured client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// AccessToken returns the stored bearer token, or "" when absent or when
// Redis is unreachable.
func (s *RedisStore) AccessToken() string {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	token, err := s.client.Get(ctx, s.prefix+accessTokenKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Failed to read access token from Redis")
		}
		return ""
	}
	return token
}

// SetAccessToken overwrites the stored bearer token.
func (s *RedisStore) SetAccessToken(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+accessTokenKey, token, 0).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to store access token in Redis")
	}
}

// ClearAccessToken removes the stored bearer token.
func (s *RedisStore) ClearAccessToken() {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+accessTokenKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear access token in Redis")
	}
}

// User returns the stored identity snapshot.
func (s *RedisStore) User() (*models.User, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, s.prefix+userKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Failed to read identity snapshot from Redis")
		}
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		log.Warn().Err(err).Msg("Corrupt identity snapshot in Redis, treating as empty")
		return nil, false
	}
	return &user, true
}

// SetUser overwrites the stored identity snapshot.
func (s *RedisStore) SetUser(user *models.User) {
	if user == nil {
		s.ClearUser()
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal identity snapshot")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+userKey, raw, 0).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to store identity snapshot in Redis")
	}
}

// ClearUser removes the stored identity snapshot.
func (s *RedisStore) ClearUser() {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+userKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear identity snapshot in Redis")
	}
}
