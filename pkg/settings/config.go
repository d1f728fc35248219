package settings

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by SETTINGS_BACKEND.
const (
	BackendFile  = "file"
	BackendS3    = "s3"
	BackendRedis = "redis"
)

// Config selects where and how the document is stored.
type Config struct {
	Backend string `env:"SETTINGS_BACKEND" envDefault:"file"`
	Format  string `env:"SETTINGS_FORMAT"` // empty: derived from the path or key extension
	Path    string `env:"SETTINGS_PATH" envDefault:"settings.json"`

	S3Bucket         string `env:"SETTINGS_S3_BUCKET"`
	S3Key            string `env:"SETTINGS_S3_KEY" envDefault:"attendance/settings.json"`
	S3Region         string `env:"SETTINGS_S3_REGION" envDefault:"us-east-1"`
	S3AccessKeyID    string `env:"SETTINGS_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"SETTINGS_S3_SECRET_KEY"`
	S3Endpoint       string `env:"SETTINGS_S3_ENDPOINT"`
	S3ForcePathStyle bool   `env:"SETTINGS_S3_FORCE_PATH_STYLE" envDefault:"false"`

	RedisURL            string        `env:"SETTINGS_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisKey            string        `env:"SETTINGS_REDIS_KEY" envDefault:"attendance:settings"`
	RedisRetryAttempts  int           `env:"SETTINGS_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RedisRetryInterval  time.Duration `env:"SETTINGS_REDIS_RETRY_INTERVAL" envDefault:"2s"`
	RedisConnectTimeout time.Duration `env:"SETTINGS_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// location is the path or key the format is derived from.
func (c Config) location() string {
	switch c.Backend {
	case BackendS3:
		return c.S3Key
	case BackendRedis:
		return c.RedisKey
	default:
		return c.Path
	}
}

// ResolveFormat returns the configured format, or the one implied by the
// path or key extension.
func (c Config) ResolveFormat() (Format, error) {
	if c.Format != "" {
		return ParseFormat(c.Format)
	}
	return FormatFromPath(c.location()), nil
}

// NewStorage builds the backend selected by cfg.Backend.
func NewStorage(ctx context.Context, cfg Config, s3opts ...S3Option) (Storage, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStorage(cfg.Path)
	case BackendS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Key:            cfg.S3Key,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, s3opts...)
	case BackendRedis:
		return ConnectRedisStorage(ctx, RedisConfig{
			URL:            cfg.RedisURL,
			Key:            cfg.RedisKey,
			RetryAttempts:  cfg.RedisRetryAttempts,
			RetryInterval:  cfg.RedisRetryInterval,
			ConnectTimeout: cfg.RedisConnectTimeout,
		})
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}
}

// Open builds the storage and codec described by cfg.
func Open(ctx context.Context, cfg Config) (*Codec, error) {
	format, err := cfg.ResolveFormat()
	if err != nil {
		return nil, err
	}
	storage, err := NewStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewCodec(storage, format), nil
}
