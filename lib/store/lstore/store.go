package lstore

import (
	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/store"
)

type storeImpl struct {
	db db.KVDB
}

// NewLocalStore creates a new local store instance.
// This store implementation is not distributed and only works on a single node.
// The database created by the factory is owned by the store and closed with it.
func NewLocalStore(factory store.DBFactory) store.IStore {
	return &storeImpl{
		db: factory(),
	}
}

// internalError converts an engine error into a store error
func internalError(op string, err error) error {
	return store.NewError(store.RetCInternalError, op+" failed: "+err.Error())
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(key []byte, value []byte) error {
	if !s.db.SupportsFeature(db.FeatureSet) {
		return store.NewError(store.RetCUnsupportedOperation, "Set operation is not supported")
	}
	if err := s.db.Set(string(key), value); err != nil {
		return internalError("Set", err)
	}
	return nil
}

func (s *storeImpl) Delete(key []byte) error {
	if !s.db.SupportsFeature(db.FeatureDelete) {
		return store.NewError(store.RetCUnsupportedOperation, "Delete operation is not supported")
	}
	if err := s.db.Delete(string(key)); err != nil {
		return internalError("Delete", err)
	}
	return nil
}

func (s *storeImpl) Get(key []byte) ([]byte, bool, error) {
	if !s.db.SupportsFeature(db.FeatureGet) {
		return nil, false, store.NewError(store.RetCUnsupportedOperation, "Get operation is not supported")
	}
	val, ok, err := s.db.Get(string(key))
	if err != nil {
		return nil, false, internalError("Get", err)
	}
	return val, ok, nil
}

func (s *storeImpl) Has(key []byte) (bool, error) {
	if !s.db.SupportsFeature(db.FeatureHas) {
		return false, store.NewError(store.RetCUnsupportedOperation, "Has operation is not supported")
	}
	ok, err := s.db.Has(string(key))
	if err != nil {
		return false, internalError("Has", err)
	}
	return ok, nil
}

func (s *storeImpl) GetDBInfo() (db.DatabaseInfo, error) {
	return s.db.GetInfo(), nil
}

func (s *storeImpl) Close() error {
	if err := s.db.Close(); err != nil {
		return internalError("Close", err)
	}
	return nil
}
