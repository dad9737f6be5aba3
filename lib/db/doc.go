// Package db provides a standardized interface for the key-value engines that back
// the raw stores of tKV. It defines the KVDB interface that allows for consistent
// interaction with various database backends while abstracting implementation details.
//
// The package focuses on:
//   - A unified interface for byte-oriented key-value operations
//   - Feature discovery through capability flags
//   - Standardized persistence operations (snapshots through io.Writer / io.Reader)
//   - Metadata reporting
//
// Key Components:
//
//   - KVDB Interface: The core interface that all engines must satisfy.
//     It provides methods for basic operations (Set, Get, Has, Delete),
//     persistence operations (Save, Load), metadata retrieval (GetInfo) and Close.
//     Unlike a purely in-memory map, every operation may fail (disk engines), so
//     all methods return an error.
//
//   - Feature Flags: The Feature type defines capability flags that implementations
//     advertise through the SupportsFeature method. An engine that is persistent on
//     its own (leveldb, sqlite) does not need to support Save/Load snapshots.
//
//   - Database Information: The DatabaseInfo structure provides standardized
//     reporting on database state, including entry count, size estimate,
//     implementation type and implementation-specific metadata.
//
// Engines:
//
//   - engines/maple: sharded in-memory engine on xsync maps with binary snapshots
//   - engines/level: goleveldb engine (on-disk directory or in-memory storage)
//   - engines/gormdb: gorm engine, one row per key (sqlite by default)
//
// The testing package (github.com/ValentinKolb/tKV/lib/db/testing) provides the
// standardized conformance suite RunKVDBTests that every engine runs.
package db
