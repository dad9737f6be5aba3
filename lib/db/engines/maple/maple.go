package maple

import (
	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/db/engines/maple/internal"
	"github.com/ValentinKolb/tKV/lib/db/util"
	"io"
	"runtime"
	"sync"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// Constants for database behavior and structure
const (
	magicNum     = "MAPLEDB\x00" // File format identifier
	mapleVersion = 4             // Database version
)

// supportedFeatures are all features of the maple engine
const supportedFeatures = db.FeatureSet |
	db.FeatureGet |
	db.FeatureDelete |
	db.FeatureHas |
	db.FeatureSave |
	db.FeatureLoad

// --------------------------------------------------------------------------
// Core Maple database structure
// --------------------------------------------------------------------------

// mapleImpl implements an in-memory database with sharded data
type mapleImpl struct {
	numShards int               // Number of shards
	seed      uint64            // Seed for the shard hash function
	shardsMu  sync.RWMutex      // Guards the shards slice itself (swapped on Load)
	shards    []*internal.Shard // Array of shards
}

// DBOptions configures the mapleImpl behavior during initialization
type DBOptions struct {
	NumShards int    // Number of shards (0 = auto)
	Seed      uint64 // Seed for the shard hash function (0 = random)
}

// DefaultOptions returns the default mapleImpl options
func DefaultOptions() *DBOptions {
	return &DBOptions{
		NumShards: runtime.NumCPU(), // Auto-determine based on CPU count
	}
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// NewMapleDB creates a new MapleDB instance with the specified options (optional)
func NewMapleDB(opts *DBOptions) db.KVDB {

	// Generate default options if not provided
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.NumShards <= 0 {
		opts.NumShards = runtime.NumCPU()
	}
	if opts.Seed == 0 {
		opts.Seed = util.GenerateSeed()
	}

	return &mapleImpl{
		numShards: opts.NumShards,
		seed:      opts.Seed,
		shards:    newShards(opts.NumShards),
	}
}

// newShards creates n empty shards
func newShards(n int) []*internal.Shard {
	shards := make([]*internal.Shard, n)
	for i := 0; i < n; i++ {
		shards[i] = internal.NewShard()
	}
	return shards
}

// shardFor returns the shard responsible for the key.
// The caller must hold shardsMu until it is done with the shard, otherwise a
// concurrent Load may swap the shards and the access would hit a discarded one.
func (maple *mapleImpl) shardFor(key string) *internal.Shard {
	return internal.GetShard(key, maple.seed, maple.shards)
}

// --------------------------------------------------------------------------
// KVDB Interface Methods - Write Operations
// --------------------------------------------------------------------------

// Set inserts or updates an entry with the given key and value.
// The value is copied to prevent memory corruption through the callers slice.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) Set(key string, value []byte) error {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	maple.shardsMu.RLock()
	defer maple.shardsMu.RUnlock()
	maple.shardFor(key).Data.Store(key, valueCopy)
	return nil
}

// Delete removes an entry with the specified key.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) Delete(key string) error {
	maple.shardsMu.RLock()
	defer maple.shardsMu.RUnlock()
	maple.shardFor(key).Data.Delete(key)
	return nil
}

// --------------------------------------------------------------------------
// KVDB Interface Methods - Read Operations
// --------------------------------------------------------------------------

// Get retrieves a value for a key.
// The returned value is a copy of the stored data and therefore safe to use and modify.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) Get(key string) ([]byte, bool, error) {
	maple.shardsMu.RLock()
	value, ok := maple.shardFor(key).Data.Load(key)
	maple.shardsMu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	data := make([]byte, len(value))
	copy(data, value)
	return data, true, nil
}

// Has checks if a key exists in the database.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) Has(key string) (bool, error) {
	maple.shardsMu.RLock()
	defer maple.shardsMu.RUnlock()
	_, ok := maple.shardFor(key).Data.Load(key)
	return ok, nil
}

// --------------------------------------------------------------------------
// KVDB Interface Methods - Persistence
// --------------------------------------------------------------------------

// Save writes a snapshot of all entries in the format of util.SnapshotWriter.
//
// The snapshot is fuzzy: writes that happen concurrently may or may not be included.
func (maple *mapleImpl) Save(w io.Writer) error {
	type entryToSave struct {
		key   string
		value []byte
	}

	// Collect entries first so the count in the header is exact
	maple.shardsMu.RLock()
	var entries []entryToSave
	for _, shard := range maple.shards {
		shard.Data.Range(func(key string, value []byte) bool {
			entries = append(entries, entryToSave{key, value})
			return true
		})
	}
	maple.shardsMu.RUnlock()

	sw, err := util.NewSnapshotWriter(w, magicNum, mapleVersion, uint64(len(entries)))
	if err != nil {
		return err
	}
	for _, item := range entries {
		if err := sw.Write(item.key, item.value); err != nil {
			return err
		}
	}
	return sw.Close()
}

// Load restores a database from the reader. All existing entries are replaced.
// The new shards are only installed once the whole snapshot was read successfully.
func (maple *mapleImpl) Load(r io.Reader) error {
	shards := newShards(maple.numShards)

	err := util.ReadSnapshot(r, magicNum, mapleVersion, func(key string, value []byte) error {
		internal.GetShard(key, maple.seed, shards).Data.Store(key, value)
		return nil
	})
	if err != nil {
		return err
	}

	maple.shardsMu.Lock()
	maple.shards = shards
	maple.shardsMu.Unlock()

	return nil
}

// --------------------------------------------------------------------------
// KVDB Interface Implementation - Features and Metadata
// --------------------------------------------------------------------------

// GetInfo returns statistics about the database
func (maple *mapleImpl) GetInfo() db.DatabaseInfo {
	maple.shardsMu.RLock()
	defer maple.shardsMu.RUnlock()

	entries := 0
	sizeBytes := 0
	shardSizes := make([]int, len(maple.shards))
	for i, shard := range maple.shards {
		shard.Data.Range(func(key string, value []byte) bool {
			sizeBytes += len(key) + len(value)
			return true
		})
		size := shard.Data.Size()
		shardSizes[i] = size
		entries += size
	}

	meta := &struct {
		ShardCount   int                    `json:"shard_count"`
		Distribution util.ShardDistribution `json:"distribution"`
	}{
		ShardCount:   len(maple.shards),
		Distribution: util.NewShardDistribution(shardSizes),
	}

	return db.DatabaseInfo{
		Entries:           entries,
		SizeBytes:         sizeBytes,
		DbType:            db.ImplMaple,
		SupportedFeatures: db.Feature(supportedFeatures).Features(),
		Metadata:          meta,
	}
}

// SupportsFeature checks if this implementation supports a specific KVDB feature
func (maple *mapleImpl) SupportsFeature(feature db.Feature) bool {
	return supportedFeatures&feature == feature
}

// Close is a no-op, the maple engine holds no external resources
func (maple *mapleImpl) Close() error {
	return nil
}
