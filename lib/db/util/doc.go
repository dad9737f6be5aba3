// Package util provides utility components for
// database implementations that satisfy the db.KVDB interface.
//
// The package contains:
//   - snapshot: The length-prefixed binary snapshot format shared by the engines
//     (magic number, version, entry count, key/value pairs)
//   - statistics: ShardDistribution, how evenly entries are spread across shards
//   - functions: Hash functions and seed generation
package util
