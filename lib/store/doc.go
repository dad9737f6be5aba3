// Package store defines the raw store boundary of tKV: an opaque byte-oriented
// key-value store that the typed layer (lib/typed) reads from and writes to.
//
// Key Components:
//
//   - ReadonlyStorage / Storage: The minimal read and read-write capabilities the
//     typed layer needs (Get and Set over byte keys). Operations that only load
//     values accept a ReadonlyStorage, so a caller can hand out read access alone.
//
//   - IStore: The full store interface (Delete, Has, GetDBInfo, Close on top of
//     Storage) implemented by all stores of this module.
//
//   - Error System: A structured error with a RetCode and a message. Errors
//     produced by a store are passed through the typed layer unchanged, so callers
//     can still inspect them with errors.As.
//
//   - DBFactory: A function type that abstracts the creation of the underlying
//     db.KVDB instance.
//
// Implementations:
//
//   - Local Store (lstore): Directly wraps a db.KVDB (maple, leveldb, sqlite).
//   - Distributed Store (dstore): Replicates every write through a dragonboat
//     RAFT shard whose state machine holds a db.KVDB.
//   - Metered Store (mstore): Wraps any IStore and records VictoriaMetrics counters.
//   - Test Store (storetest): An in-memory recorder that counts calls, for tests.
package store
