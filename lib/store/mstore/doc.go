// Package mstore implements a metered store.IStore wrapper. Every call is forwarded
// to the wrapped store and recorded in a VictoriaMetrics set:
//
//   - tkv_store_calls_total{store,op}: number of calls per operation
//   - tkv_store_errors_total{store,op}: number of failed calls per operation
//   - tkv_store_duration_seconds{store,op}: call duration summary
//   - tkv_store_get_hits_total / tkv_store_get_misses_total: Get results
//   - tkv_store_value_bytes: size histogram of read and written values
//
// The set can be rendered in Prometheus text format with WritePrometheus.
package mstore
