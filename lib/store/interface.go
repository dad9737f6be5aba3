package store

import (
	"fmt"
	"github.com/ValentinKolb/tKV/lib/db"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// DBFactory is a function type that creates a new db used by the store.
// This is used to abstract the creation of the db from the store implementation.
type DBFactory func() db.KVDB

// ReadonlyStorage is the read half of the raw store boundary.
// Keys and values are opaque bytes. A missing key is not an error: Get returns loaded = false.
type ReadonlyStorage interface {
	// Get return the value for a key. The boolean return value indicates whether a value for the key was found.
	Get(key []byte) (value []byte, loaded bool, err error)
}

// Storage is the read-write raw store boundary used by the typed layer.
type Storage interface {
	ReadonlyStorage
	// Set inserts or updates a key–value pair.
	Set(key []byte, value []byte) (err error)
}

// IStore is the generic interface for interacting with a key–value store.
// All write operations return only a *Error (nil on success),
// while read operations return the requested data along with a *Error (nil on success).
type IStore interface {
	Storage
	// Delete deletes a key–value pair. The key should be removed from the store.
	Delete(key []byte) (err error)
	// Has returns whether a key exists in the store.
	Has(key []byte) (loaded bool, err error)
	// GetDBInfo returns metadata about the database underlying the store.
	// It is not guaranteed that all fields are filled in or that the information is up-to-date!
	GetDBInfo() (info db.DatabaseInfo, err error)
	// Close releases the resources of the store (and its database).
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("KVStoreError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new KVStoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Command executed successfully.
	RetCInternalError                       // 1: Command failed due to an internal error.
	RetCUnsupportedOperation                // 2: Operation is not supported by underlying database.
	RetCInvalidOperation                    // 3: Invalid operation.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCUnsupportedOperation:
		return "UnsupportedOperation"
	case RetCInvalidOperation:
		return "InvalidOperation"
	default:
		return "Unknown"
	}
}
