// Package preference persists the one user preference the dashboard keeps: the
// UI theme.
package preference

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/config"
	"github.com/kapu/terrascope/internal/domain"
)

const themeKey = "theme"

// Store loads and saves the theme. A missing value is reported with ok=false.
type Store interface {
	Theme(ctx context.Context) (theme domain.Theme, ok bool, err error)
	SetTheme(ctx context.Context, theme domain.Theme) error
	Close() error
}

// New opens the store selected by cfg.Backend.
func New(cfg config.PreferenceConfig, redisCfg config.RedisConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case config.PreferenceBackendBolt, "":
		store, err := OpenBolt(cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.PreferenceBackendRedis:
		store, err := NewRedisStore(RedisConfig{
			Host:     redisCfg.Host,
			Port:     redisCfg.Port,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		}, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown preference backend %q", cfg.Backend)
	}
}

// MemoryStore keeps the theme in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	theme domain.Theme
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Theme(context.Context) (domain.Theme, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme, m.theme != "", nil
}

func (m *MemoryStore) SetTheme(_ context.Context, theme domain.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
	return nil
}

func (m *MemoryStore) Close() error { return nil }
