// Package dstore is a store.IStore backed by a Dragonboat raft replica. Every write
// goes through the raft log, so the data directory holds a log and snapshots next to
// the db.KVDB the state machine applies them to. A restarted process recovers its
// state from there even when the engine itself only lives in memory.
//
// Single node:
//
// The usual deployment is one replica in one process. StartSingleNode creates the
// NodeHost from a NodeConfig, starts the shard and blocks until the replica has
// elected itself leader:
//
//	cfg := dstore.DefaultNodeConfig("data/raft")
//	s, err := dstore.StartSingleNode(ctx, cfg, func() db.KVDB { return maple.NewMapleDB(nil) })
//	if err != nil { ... }
//	defer s.Close() // also stops the node host
//
// Callers that run their own NodeHost start a replica with CreateStateMachineFactory
// and wrap it with NewDistributedStore. Close then leaves the node host running.
//
// Keys:
//
// Keys are opaque bytes. They cross the raft log and the lookup path as Go strings
// so that binary keys (tags, length prefixes, zero bytes) reach the engine unchanged.
//
// Writes:
//
// Set and Delete are encoded as an internal.Command (1 byte type, 4 byte big endian
// key length, key, value) and proposed with SyncPropose. The state machine checks that
// the engine reports the matching db.Feature before applying the command and answers
// with a store.RetCode.
//
// Reads:
//
// Get and Has are linearizable reads through SyncRead. GetDBInfo uses StaleRead since
// engine metadata may lag behind. Lookups are passed by value as an internal.Query and
// never enter the log.
//
// Errors:
//
// ErrSystemBusy from Dragonboat is retried a few times with a short pause. Every other
// failure, including a timeout, surfaces as a *store.Error.
//
// Snapshots:
//
// The state machine snapshots with db.KVDB Save without pausing writes and recovers
// with Load. Recovery then replays the log entries committed after the snapshot.
//
// For data that does not need a log, lstore wraps an engine directly.
package dstore
