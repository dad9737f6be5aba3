// Package level implements the db.KVDB interface on top of goleveldb.
//
// The engine either opens a directory on disk (NewLevelDB) or runs on leveldb's
// memory storage (NewInMemoryLevelDB), which is used by tests. Keys are stored as
// their raw bytes, so the byte-wise ordering of leveldb also applies to the tagged
// keys written by the typed layer.
//
// Save streams a consistent leveldb snapshot in the shared engine snapshot format
// (see lib/db/util). Load reads the complete snapshot first and then replaces all
// entries in one atomic write batch.
package level
