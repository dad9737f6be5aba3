package internal

import (
	"github.com/ValentinKolb/tKV/lib/db/util"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Shard Type (partition of the database)
// --------------------------------------------------------------------------

// Shard represents a partition of the database
type Shard struct {
	Data *xsync.MapOf[string, []byte] // Map of active key-value entries
}

// NewShard creates a new, empty shard
func NewShard() *Shard {
	return &Shard{
		Data: xsync.NewMapOf[string, []byte](),
	}
}

// GetShard returns the appropriate shard for a given key
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func GetShard[T any](key string, seed uint64, shards []*T) *T {
	// Shift right by 7 bits to use higher-quality bits for distribution
	shiftedKey := util.HashString(key, seed) >> 7
	shardPos := shiftedKey % uint64(len(shards))
	return shards[shardPos]
}
