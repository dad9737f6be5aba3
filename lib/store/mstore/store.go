package mstore

import (
	"fmt"
	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"io"
	"time"
)

// operation names used as metric labels
const (
	opGet    = "get"
	opSet    = "set"
	opDelete = "delete"
	opHas    = "has"
	opInfo   = "info"
)

// MeteredStore wraps a store.IStore and records every call in a VictoriaMetrics set
type MeteredStore struct {
	inner store.IStore
	set   *metrics.Set
	name  string

	hits       *metrics.Counter
	misses     *metrics.Counter
	valueBytes *metrics.Histogram
}

// NewMeteredStore creates a metered wrapper around inner. All metrics carry the store label.
// If set is nil a new, unregistered set is created.
func NewMeteredStore(inner store.IStore, set *metrics.Set, name string) *MeteredStore {
	if set == nil {
		set = metrics.NewSet()
	}
	m := &MeteredStore{
		inner: inner,
		set:   set,
		name:  name,
	}
	m.hits = set.GetOrCreateCounter(fmt.Sprintf(`tkv_store_get_hits_total{store=%q}`, name))
	m.misses = set.GetOrCreateCounter(fmt.Sprintf(`tkv_store_get_misses_total{store=%q}`, name))
	m.valueBytes = set.GetOrCreateHistogram(fmt.Sprintf(`tkv_store_value_bytes{store=%q}`, name))

	// pre-create the per operation metrics so they are reported with zero values
	for _, op := range []string{opGet, opSet, opDelete, opHas, opInfo} {
		m.calls(op)
		m.failures(op)
		m.duration(op)
	}
	return m
}

func (m *MeteredStore) calls(op string) *metrics.Counter {
	return m.set.GetOrCreateCounter(fmt.Sprintf(`tkv_store_calls_total{store=%q,op=%q}`, m.name, op))
}

func (m *MeteredStore) failures(op string) *metrics.Counter {
	return m.set.GetOrCreateCounter(fmt.Sprintf(`tkv_store_errors_total{store=%q,op=%q}`, m.name, op))
}

func (m *MeteredStore) duration(op string) *metrics.Summary {
	return m.set.GetOrCreateSummary(fmt.Sprintf(`tkv_store_duration_seconds{store=%q,op=%q}`, m.name, op))
}

// observe records a finished call
func (m *MeteredStore) observe(op string, start time.Time, err error) {
	m.calls(op).Inc()
	m.duration(op).UpdateDuration(start)
	if err != nil {
		m.failures(op).Inc()
	}
}

// WritePrometheus writes all metrics of the underlying set in Prometheus text format
func (m *MeteredStore) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}

// Errors returns the number of failed calls of an operation
func (m *MeteredStore) Errors(op string) uint64 {
	return m.failures(op).Get()
}

// Misses returns the number of Get calls for missing keys
func (m *MeteredStore) Misses() uint64 {
	return m.misses.Get()
}

// Calls returns the number of calls of an operation (get, set, delete, has, info)
func (m *MeteredStore) Calls(op string) uint64 {
	return m.calls(op).Get()
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (m *MeteredStore) Get(key []byte) ([]byte, bool, error) {
	start := time.Now()
	value, ok, err := m.inner.Get(key)
	m.observe(opGet, start, err)
	if err == nil {
		if ok {
			m.hits.Inc()
			m.valueBytes.Update(float64(len(value)))
		} else {
			m.misses.Inc()
		}
	}
	return value, ok, err
}

func (m *MeteredStore) Set(key []byte, value []byte) error {
	start := time.Now()
	err := m.inner.Set(key, value)
	m.observe(opSet, start, err)
	if err == nil {
		m.valueBytes.Update(float64(len(value)))
	}
	return err
}

func (m *MeteredStore) Delete(key []byte) error {
	start := time.Now()
	err := m.inner.Delete(key)
	m.observe(opDelete, start, err)
	return err
}

func (m *MeteredStore) Has(key []byte) (bool, error) {
	start := time.Now()
	ok, err := m.inner.Has(key)
	m.observe(opHas, start, err)
	return ok, err
}

func (m *MeteredStore) GetDBInfo() (db.DatabaseInfo, error) {
	start := time.Now()
	info, err := m.inner.GetDBInfo()
	m.observe(opInfo, start, err)
	return info, err
}

func (m *MeteredStore) Close() error {
	return m.inner.Close()
}
