package preference

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/util"
	"github.com/kapu/terrascope/pkg/errors"
)

const redisThemeKey = "terrascope:preferences:" + themeKey

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStore shares the theme between dashboard instances through Redis.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	logger = util.OrNop(logger)
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewStoreError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)
	return NewRedisStoreFromClient(client, logger), nil
}

// NewRedisStoreFromClient wraps an existing client without pinging it.
func NewRedisStoreFromClient(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: util.OrNop(logger)}
}

func (s *RedisStore) Theme(ctx context.Context) (domain.Theme, bool, error) {
	value, err := s.client.Get(ctx, redisThemeKey).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("Theme get failed", zap.Error(err))
		return "", false, errors.NewStoreError("get failed", "get", redisThemeKey, err)
	}

	theme, err := domain.ParseTheme(value)
	if err != nil {
		s.logger.Warn("Ignoring stored theme", zap.String("value", value))
		return "", false, nil
	}
	return theme, true, nil
}

func (s *RedisStore) SetTheme(ctx context.Context, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return errors.NewValidationError(fmt.Sprintf("invalid theme %q", theme), "theme", string(theme))
	}
	if err := s.client.Set(ctx, redisThemeKey, string(theme), 0).Err(); err != nil {
		s.logger.Error("Theme set failed", zap.Error(err))
		return errors.NewStoreError("set failed", "set", redisThemeKey, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
