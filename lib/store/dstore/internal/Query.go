package internal

import (
	"fmt"

	"github.com/ValentinKolb/tKV/lib/db"
)

// QueryType selects what a lookup reads. Lookups never enter the raft log.
type QueryType uint8

const (
	QueryTGet       QueryType = iota // value stored under a key
	QueryTHas                        // presence of a key
	QueryTGetDBInfo                  // engine metadata
)

var queryNames = [...]string{
	QueryTGet:       "Get",
	QueryTHas:       "Has",
	QueryTGetDBInfo: "GetDBInfo",
}

func (q QueryType) String() string {
	if int(q) < len(queryNames) {
		return queryNames[q]
	}
	return fmt.Sprintf("Unknown(%d)", q)
}

// Feature returns the db.Feature the engine must report to serve the lookup.
// Engine metadata is always available and needs none.
func (q QueryType) Feature() (db.Feature, error) {
	switch q {
	case QueryTGet:
		return db.FeatureGet, nil
	case QueryTHas:
		return db.FeatureHas, nil
	case QueryTGetDBInfo:
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown query type %d", q)
	}
}

// Stale reports whether the lookup may be answered from local state without a read index.
// Keyed reads are linearizable, metadata may lag behind.
func (q QueryType) Stale() bool {
	return q == QueryTGetDBInfo
}

// Query is a read request passed by value to the state machine via SyncRead or StaleRead.
// Keys are raw bytes carried in a string, the same as in db.KVDB.
type Query struct {
	Type QueryType
	Key  string
}

func GetQuery(key []byte) Query { return Query{Type: QueryTGet, Key: string(key)} }

func HasQuery(key []byte) Query { return Query{Type: QueryTHas, Key: string(key)} }

func InfoQuery() Query { return Query{Type: QueryTGetDBInfo} }

// QueryResult answers QueryTGet. Has answers with a bool and GetDBInfo with a db.DatabaseInfo.
type QueryResult struct {
	Ok    bool
	Value []byte
}
