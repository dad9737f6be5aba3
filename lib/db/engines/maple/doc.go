// Package maple implements an in-memory key-value database (KVDB) that keeps
// all entries in sharded concurrent maps. It is the default engine and the only
// one that needs no files on disk.
//
// Key Components:
//
//   - mapleImpl: The central database structure implementing db.KVDB. It owns the
//     shards and routes every operation to the shard responsible for the key.
//
//   - Shard: A partition of the key space backed by an xsync.MapOf. Keys are
//     distributed by hashing them with FNV-1a (seeded) and shifting the hash
//     right by 7 bits to use the higher-quality bits.
//
// Values are copied on Set and on Get, so neither the caller nor the database
// can observe later modifications of a slice it handed over.
//
// Persistence Format (Save/Load):
//  1. Magic number "MAPLEDB\x00" to identify the file format
//  2. Version number (currently 4)
//  3. Number of entries (uint64)
//  4. For each entry: key length (uint32), key, value length (uint32), value
//
// All integers are little endian. Save produces a fuzzy snapshot: writes that run
// concurrently may or may not be included. Load reads the complete snapshot into
// fresh shards and swaps them in only on success, so a corrupted snapshot leaves
// the database untouched.
package maple
