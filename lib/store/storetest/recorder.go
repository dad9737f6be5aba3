package storetest

import (
	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/store"
	"sync"
)

// Recorder is an in-memory store.IStore that records how often it was called.
// Errors can be injected with FailGets and FailSets to test error propagation.
type Recorder struct {
	mu   sync.Mutex
	data map[string][]byte

	gets, sets, deletes, has int

	// FailGets is returned by every Get if set
	FailGets error
	// FailSets is returned by every Set if set
	FailSets error
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{
		data: make(map[string][]byte),
	}
}

// Gets returns the number of Get calls
func (r *Recorder) Gets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gets
}

// Sets returns the number of Set calls
func (r *Recorder) Sets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets
}

// Calls returns the number of all calls that touched data
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gets + r.sets + r.deletes + r.has
}

// Keys returns the raw keys currently stored
func (r *Recorder) Keys() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([][]byte, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, []byte(k))
	}
	return keys
}

// Raw returns the stored bytes for a key without recording a call
func (r *Recorder) Raw(key []byte) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[string(key)]
	return v, ok
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (r *Recorder) Get(key []byte) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if r.FailGets != nil {
		return nil, false, r.FailGets
	}
	v, ok := r.data[string(key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, v...), true, nil
}

func (r *Recorder) Set(key []byte, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets++
	if r.FailSets != nil {
		return r.FailSets
	}
	r.data[string(key)] = append([]byte{}, value...)
	return nil
}

func (r *Recorder) Delete(key []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	delete(r.data, string(key))
	return nil
}

func (r *Recorder) Has(key []byte) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.has++
	_, ok := r.data[string(key)]
	return ok, nil
}

func (r *Recorder) GetDBInfo() (db.DatabaseInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	size := 0
	for k, v := range r.data {
		size += len(k) + len(v)
	}
	return db.DatabaseInfo{
		Entries:   len(r.data),
		SizeBytes: size,
		DbType:    "recorder",
	}, nil
}

func (r *Recorder) Close() error {
	return nil
}

var _ store.IStore = (*Recorder)(nil)
