package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis used by RedisStorage.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisConfig describes the connection and the key holding the document.
type RedisConfig struct {
	URL            string
	Key            string
	RetryAttempts  int
	RetryInterval  time.Duration
	ConnectTimeout time.Duration
}

// RedisStorage keeps the document under a single key with no expiry.
type RedisStorage struct {
	client RedisClient
	key    string
	close  func() error
}

// NewRedisStorage wraps an existing client.
func NewRedisStorage(client RedisClient, key string) (*RedisStorage, error) {
	if client == nil || key == "" {
		return nil, fmt.Errorf("%w: redis client and key are required", ErrInvalidConfig)
	}
	return &RedisStorage{client: client, key: key}, nil
}

// ConnectRedisStorage dials redis with retries and returns a storage that
// owns the connection.
func ConnectRedisStorage(ctx context.Context, cfg RedisConfig) (*RedisStorage, error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("%w: redis key is required", ErrInvalidConfig)
	}
	client, err := ConnectRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &RedisStorage{client: client, key: cfg.Key, close: client.Close}, nil
}

// ConnectRedis parses cfg.URL and pings until the server answers, up to
// RetryAttempts times with RetryInterval between tries, all within
// ConnectTimeout.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: redis url is required", ErrInvalidConfig)
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 1
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	var lastErr error
	for attempt := range cfg.RetryAttempts {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if attempt == cfg.RetryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrBackendDown, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrBackendDown, lastErr)
}

func (s *RedisStorage) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.Join(ErrNotFound, err)
	}
	if err != nil {
		return nil, errors.Join(ErrBackendDown, err)
	}
	return data, nil
}

func (s *RedisStorage) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return errors.Join(ErrBackendDown, err)
	}
	return nil
}

// Close closes the connection when the storage owns it.
func (s *RedisStorage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
