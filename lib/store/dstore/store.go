package dstore

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/ValentinKolb/tKV/lib/store/dstore/internal"
	"github.com/lni/dragonboat/v4/logger"
	"time"

	"github.com/lni/dragonboat/v4"
	"github.com/lni/dragonboat/v4/client"
)

var (
	retries = 5
	log     = logger.GetLogger("store")
)

// storeImpl is the concrete implementation of the distributed store.
// It encapsulates a Dragonboat NodeHost which is used to communicate with the state machine.
type storeImpl struct {
	nh      *dragonboat.NodeHost
	shardID uint64
	cs      *client.Session
	timeout time.Duration
	onClose func() // set if the store owns the node host
}

// NewDistributedStore creates a new distributed store instance which uses raft consensus to ensure strict linearizability
// across multiple nodes. The node host stays owned by the caller, Close does not stop it.
func NewDistributedStore(nh *dragonboat.NodeHost, shardID uint64, timeout time.Duration) store.IStore {
	return newStore(nh, shardID, timeout, nil)
}

func newStore(nh *dragonboat.NodeHost, shardID uint64, timeout time.Duration, onClose func()) *storeImpl {
	return &storeImpl{
		nh:      nh,
		shardID: shardID,
		cs:      nh.GetNoOPSession(shardID),
		timeout: timeout,
		onClose: onClose,
	}
}

// --------------------------------------------------------------------------
// Internal write and read operations (used by interface methods)
// --------------------------------------------------------------------------

// write serializes a Command and sends it via SyncPropose.
// It returns a *store.Error if an error occurs, or nil on success.
func (s *storeImpl) write(cmd internal.Command) error {
	for i := 0; i < retries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)

		res, err := s.nh.SyncPropose(ctx, s.cs, cmd.Serialize())
		cancel()

		// Check for system busy errors
		if errors.Is(err, dragonboat.ErrSystemBusy) {
			log.Infof("SyncPropose: System busy, retrying (%d/%d)...", i+1, retries)
			time.Sleep(s.timeout / 10)
			continue
		}

		if err != nil {
			return store.NewError(store.RetCInternalError, err.Error())
		}
		if res.Value != uint64(store.RetCSuccess) {
			return store.NewError(store.RetCode(res.Value), string(res.Data))
		}
		return nil
	}
	return store.NewError(store.RetCInternalError, "timeout")
}

// read is a generic helper function queries the state machine
// and attempts to convert the response into the expected type R.
//
// Keyed queries go through SyncRead (dragonboat) and are linearizable.
// Queries whose type reports Stale use the faster StaleRead instead.
//
// Is the read operation fails due to a system busy error, the function retries up to 5 times.
//
// It returns the response of type R and a error (nil on success).
func read[R any](r *storeImpl, q internal.Query) (R, error) {
	var zero R
	for i := 0; i < retries; i++ {

		var res interface{}
		var err error

		if q.Type.Stale() {
			res, err = r.nh.StaleRead(r.shardID, q)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			res, err = r.nh.SyncRead(ctx, r.shardID, q)
			cancel()
		}

		// Check for system busy errors
		if errors.Is(err, dragonboat.ErrSystemBusy) {
			log.Infof("SyncRead: System busy, retrying (%d/%d)...", i+1, retries)
			time.Sleep(r.timeout / 10)
			continue
		}

		if err != nil {
			var storeErr *store.Error
			if errors.As(err, &storeErr) {
				return zero, storeErr
			}
			return zero, store.NewError(store.RetCInternalError, err.Error())
		}

		// The state machine is expected to return the response in the expected type R.
		casted, ok := res.(R)
		if !ok {
			return zero, store.NewError(store.RetCInternalError,
				fmt.Sprintf("unexpected type: received %T, expected %T", res, zero))
		}
		return casted, nil
	}
	return zero, store.NewError(store.RetCInternalError, "timeout")
}

// --------------------------------------------------------------------------
// Interface Methods (docs see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(key []byte, value []byte) error {
	return s.write(internal.Command{
		Type:  internal.CommandTSet,
		Key:   string(key),
		Value: value,
	})
}

func (s *storeImpl) Delete(key []byte) error {
	return s.write(internal.Command{
		Type: internal.CommandTDelete,
		Key:  string(key),
	})
}

func (s *storeImpl) Get(key []byte) ([]byte, bool, error) {
	res, err := read[internal.QueryResult](s, internal.GetQuery(key))
	if err != nil {
		return nil, false, err
	}
	return res.Value, res.Ok, nil
}

func (s *storeImpl) Has(key []byte) (bool, error) {
	return read[bool](s, internal.HasQuery(key))
}

func (s *storeImpl) GetDBInfo() (db.DatabaseInfo, error) {
	return read[db.DatabaseInfo](s, internal.InfoQuery())
}

func (s *storeImpl) Close() error {
	if s.onClose != nil {
		s.onClose()
	}
	return nil
}
