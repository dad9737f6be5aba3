// Package testing provides standardised tests and benchmarks for
// database implementations that satisfy the db.KVDB interface.
//
// The package contains:
//   - testing: A conformance suite for the KVDB interface contract (copy semantics,
//     binary keys, snapshots, feature reporting, concurrent use)
//   - benchmark: Throughput of the access patterns of the typed layer (tagged byte keys,
//     16B to 4KB records, read-modify-write of static keys, snapshots)
//
// Tests for features an engine does not report via SupportsFeature are skipped.
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func() db.KVDB {
//		return NewMyDatabase()
//	}
//
//	// Running the standard test suite
//	dbtesting.RunKVDBTests(t, "MyDatabase", factory)
//
//	// Running performance benchmarks
//	dbtesting.RunKVDBBenchmarks(b, "MyDatabase", factory)
package testing
