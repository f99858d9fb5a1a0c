package preference

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/util"
	"github.com/kapu/terrascope/pkg/errors"
)

var bucketPreferences = []byte("preferences")

// BoltStore keeps preferences in a local bbolt file.
type BoltStore struct {
	db     *bolt.DB
	logger *zap.Logger
}

// OpenBolt opens (or creates) the database at path, creating parent
// directories as needed.
func OpenBolt(path string, logger *zap.Logger) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.NewStoreError("create preference directory", "open", path, err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.NewStoreError("open preference db", "open", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.NewStoreError("create preference bucket", "open", path, err)
	}

	logger = util.OrNop(logger)
	logger.Debug("Preference store opened", zap.String("path", path))
	return &BoltStore{db: db, logger: logger}, nil
}

func (s *BoltStore) Theme(context.Context) (domain.Theme, bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketPreferences).Get([]byte(themeKey)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, errors.NewStoreError("read theme", "get", themeKey, err)
	}
	if raw == nil {
		return "", false, nil
	}

	theme, err := domain.ParseTheme(string(raw))
	if err != nil {
		s.logger.Warn("Ignoring stored theme", zap.String("value", string(raw)))
		return "", false, nil
	}
	return theme, true, nil
}

func (s *BoltStore) SetTheme(_ context.Context, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return errors.NewValidationError(fmt.Sprintf("invalid theme %q", theme), "theme", string(theme))
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPreferences).Put([]byte(themeKey), []byte(theme))
	})
	if err != nil {
		return errors.NewStoreError("write theme", "put", themeKey, err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
