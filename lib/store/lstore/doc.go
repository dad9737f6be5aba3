// Package lstore implements a local, single-node key-value store based on the
// store.IStore interface. It is a thin wrapper around any db.KVDB implementation;
// whether data survives a restart depends on the engine (maple keeps everything in
// memory, leveldb and sqlite persist to disk).
//
// Implementation Details:
//
//   - Feature Detection: Before executing operations, the store checks if the underlying
//     db.KVDB implementation supports the requested feature through the SupportsFeature
//     method. Unsupported operations return store.RetCUnsupportedOperation.
//
//   - Error Conversion: Engine errors are returned as *store.Error with
//     store.RetCInternalError, so every store of this module reports failures the same way.
//
//   - Key Conversion: Byte keys of the raw store boundary are converted to Go strings,
//     which the engines use as immutable byte containers. No encoding is applied.
//
// Usage Example:
//
//	factory := func() db.KVDB { return maple.NewMapleDB(nil) }
//	s := lstore.NewLocalStore(factory)
//	defer s.Close()
//
//	err := s.Set([]byte("session:123"), sessionData)
//	value, exists, err := s.Get([]byte("session:123"))
package lstore
