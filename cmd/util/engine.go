package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/db/engines/gormdb"
	"github.com/ValentinKolb/tKV/lib/db/engines/level"
	"github.com/ValentinKolb/tKV/lib/db/engines/maple"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/ValentinKolb/tKV/lib/store/dstore"
	"github.com/ValentinKolb/tKV/lib/store/lstore"
	"github.com/ValentinKolb/tKV/lib/store/mstore"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
)

var log = logger.GetLogger("cli")

const (
	snapshotFile = "maple.snapshot"
	levelDir     = "leveldb"
	sqliteFile   = "tkv.sqlite"
	raftDir      = "raft"
)

// Store is an opened engine behind a metered store. Close persists and releases the engine.
type Store struct {
	*mstore.MeteredStore
	persist func() error
}

// Close persists the data (maple only) and closes the engine
func (s *Store) Close() error {
	var errs []error
	if s.persist != nil {
		errs = append(errs, s.persist())
	}
	errs = append(errs, s.MeteredStore.Close())
	return errors.Join(errs...)
}

// OpenStore opens the configured engine in the data dir
func OpenStore(ctx context.Context, conf *Config) (*Store, error) {
	if err := os.MkdirAll(conf.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	var (
		inner   store.IStore
		persist func() error
	)

	switch conf.Engine {
	case EngineMaple:
		kv := maple.NewMapleDB(nil)
		path := filepath.Join(conf.DataDir, snapshotFile)
		if err := loadSnapshot(kv, path); err != nil {
			return nil, err
		}
		inner = lstore.NewLocalStore(func() db.KVDB { return kv })
		persist = func() error { return saveSnapshot(kv, path) }

	case EngineLevelDB:
		kv, err := level.NewLevelDB(filepath.Join(conf.DataDir, levelDir), nil)
		if err != nil {
			return nil, err
		}
		inner = lstore.NewLocalStore(func() db.KVDB { return kv })

	case EngineSQLite:
		kv, err := gormdb.NewSQLiteDB(filepath.Join(conf.DataDir, sqliteFile))
		if err != nil {
			return nil, err
		}
		inner = lstore.NewLocalStore(func() db.KVDB { return kv })

	case EngineRaft:
		cfg := dstore.DefaultNodeConfig(filepath.Join(conf.DataDir, raftDir))
		s, err := dstore.StartSingleNode(ctx, cfg, func() db.KVDB { return maple.NewMapleDB(nil) })
		if err != nil {
			return nil, err
		}
		inner = s

	default:
		return nil, fmt.Errorf("invalid engine %q", conf.Engine)
	}

	log.Debugf("opened %s store in %s", conf.Engine, conf.DataDir)
	return &Store{
		MeteredStore: mstore.NewMeteredStore(inner, nil, conf.Engine),
		persist:      persist,
	}, nil
}

// loadSnapshot restores kv from path, a missing file is an empty store
func loadSnapshot(kv db.KVDB, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	if err := kv.Load(f); err != nil {
		return fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}
	return nil
}

// saveSnapshot writes kv to path via a temporary file
func saveSnapshot(kv db.KVDB, path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := kv.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to save snapshot %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// WriteMetrics writes the metrics of s to w if enabled
func WriteMetrics(conf *Config, s *Store, w io.Writer) {
	if conf.Metrics {
		s.WritePrometheus(w)
	}
}

// RunWithStore opens the configured store, runs fn and closes the store again.
// If metrics are enabled they are written to stderr afterwards.
func RunWithStore(cmd *cobra.Command, fn func(conf *Config, s *Store) error) error {
	conf, err := GetConfig()
	if err != nil {
		return err
	}

	s, err := OpenStore(cmd.Context(), conf)
	if err != nil {
		return err
	}

	runErr := fn(conf, s)
	closeErr := s.Close()
	WriteMetrics(conf, s, cmd.ErrOrStderr())

	return errors.Join(runErr, closeErr)
}
