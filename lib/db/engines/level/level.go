package level

import (
	"errors"
	"github.com/ValentinKolb/tKV/lib/db"
	dbutil "github.com/ValentinKolb/tKV/lib/db/util"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"io"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	magicNum     = "LEVELDB\x00" // Snapshot format identifier
	levelVersion = 1             // Snapshot format version
)

// supportedFeatures are all features of the leveldb engine
const supportedFeatures = db.FeatureSet |
	db.FeatureGet |
	db.FeatureDelete |
	db.FeatureHas |
	db.FeatureSave |
	db.FeatureLoad

// --------------------------------------------------------------------------
// Core LevelDB structure
// --------------------------------------------------------------------------

// levelImpl implements db.KVDB on top of goleveldb
type levelImpl struct {
	ldb  *leveldb.DB
	path string // empty for in-memory storage
	sync bool   // fsync every write
}

// Options configures the leveldb engine
type Options struct {
	Sync bool // fsync every write (slower, survives machine crashes)
}

// NewLevelDB opens (or creates) a persistent leveldb database in the given directory
func NewLevelDB(path string, opts *Options) (db.KVDB, error) {
	ldb, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return newLevelImpl(ldb, path, opts), nil
}

// NewInMemoryLevelDB creates a leveldb database backed by memory storage
func NewInMemoryLevelDB(opts *Options) (db.KVDB, error) {
	ldb, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return newLevelImpl(ldb, "", opts), nil
}

func newLevelImpl(ldb *leveldb.DB, path string, opts *Options) *levelImpl {
	if opts == nil {
		opts = &Options{}
	}
	return &levelImpl{
		ldb:  ldb,
		path: path,
		sync: opts.Sync,
	}
}

func (l *levelImpl) writeOptions() *opt.WriteOptions {
	return &opt.WriteOptions{
		Sync: l.sync,
	}
}

// --------------------------------------------------------------------------
// KVDB Interface Methods - Write Operations
// --------------------------------------------------------------------------

// Set inserts or updates an entry, leveldb copies the value internally
func (l *levelImpl) Set(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	return l.ldb.Put([]byte(key), value, l.writeOptions())
}

// Delete removes an entry, deleting a missing key is not an error in leveldb
func (l *levelImpl) Delete(key string) error {
	return l.ldb.Delete([]byte(key), l.writeOptions())
}

// --------------------------------------------------------------------------
// KVDB Interface Methods - Read Operations
// --------------------------------------------------------------------------

// Get retrieves a value, the slice returned by leveldb is already a copy
func (l *levelImpl) Get(key string) ([]byte, bool, error) {
	value, err := l.ldb.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Has checks if a key exists in the database
func (l *levelImpl) Has(key string) (bool, error) {
	return l.ldb.Has([]byte(key), nil)
}

// --------------------------------------------------------------------------
// KVDB Interface Methods - Persistence
// --------------------------------------------------------------------------

// Save writes a consistent snapshot of all entries in the format of util.SnapshotWriter
func (l *levelImpl) Save(w io.Writer) error {
	snap, err := l.ldb.GetSnapshot()
	if err != nil {
		return err
	}
	defer snap.Release()

	// first pass: count entries for the header
	var count uint64
	if err := iterate(snap.NewIterator(nil, nil), func(string, []byte) error {
		count++
		return nil
	}); err != nil {
		return err
	}

	sw, err := dbutil.NewSnapshotWriter(w, magicNum, levelVersion, count)
	if err != nil {
		return err
	}
	if err := iterate(snap.NewIterator(nil, nil), sw.Write); err != nil {
		return err
	}
	return sw.Close()
}

// Load replaces all entries with the snapshot from the reader.
// The snapshot is read completely before a single batch deletes the old and writes the new entries.
func (l *levelImpl) Load(r io.Reader) error {
	batch := new(leveldb.Batch)

	var entries []string
	var values [][]byte
	if err := dbutil.ReadSnapshot(r, magicNum, levelVersion, func(key string, value []byte) error {
		entries = append(entries, key)
		values = append(values, value)
		return nil
	}); err != nil {
		return err
	}

	if err := iterate(l.ldb.NewIterator(nil, nil), func(key string, _ []byte) error {
		batch.Delete([]byte(key))
		return nil
	}); err != nil {
		return err
	}

	for i, key := range entries {
		batch.Put([]byte(key), values[i])
	}

	return l.ldb.Write(batch, l.writeOptions())
}

// iterate calls fn for every entry of the iterator and releases it afterward.
// Key and value are copied since leveldb reuses the iterator buffers.
func iterate(iter iterator.Iterator, fn func(key string, value []byte) error) error {
	defer iter.Release()
	for iter.Next() {
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		if err := fn(string(iter.Key()), value); err != nil {
			return err
		}
	}
	return iter.Error()
}

// --------------------------------------------------------------------------
// KVDB Interface Implementation - Features and Metadata
// --------------------------------------------------------------------------

// GetInfo returns statistics about the database (requires a full scan)
func (l *levelImpl) GetInfo() db.DatabaseInfo {
	entries := 0
	sizeBytes := 0
	_ = iterate(l.ldb.NewIterator(nil, nil), func(key string, value []byte) error {
		entries++
		sizeBytes += len(key) + len(value)
		return nil
	})

	stats := &leveldb.DBStats{}
	_ = l.ldb.Stats(stats)

	meta := &struct {
		Path       string `json:"path,omitempty"`
		InMemory   bool   `json:"in_memory"`
		Sync       bool   `json:"sync"`
		OpenTables int    `json:"open_tables"`
		WriteBytes int64  `json:"io_write_bytes"`
		ReadBytes  int64  `json:"io_read_bytes"`
	}{
		Path:       l.path,
		InMemory:   l.path == "",
		Sync:       l.sync,
		OpenTables: stats.OpenedTablesCount,
		WriteBytes: int64(stats.IOWrite),
		ReadBytes:  int64(stats.IORead),
	}

	return db.DatabaseInfo{
		Entries:           entries,
		SizeBytes:         sizeBytes,
		DbType:            db.ImplLevelDB,
		SupportedFeatures: supportedFeatures.Features(),
		Metadata:          meta,
	}
}

// SupportsFeature checks if this implementation supports a specific KVDB feature
func (l *levelImpl) SupportsFeature(feature db.Feature) bool {
	return supportedFeatures&feature == feature
}

// Close closes the underlying leveldb database
func (l *levelImpl) Close() error {
	return l.ldb.Close()
}
