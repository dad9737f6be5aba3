// Package storetest provides a recording store.IStore for tests. The Recorder keeps
// data in a map, counts the calls it receives and can inject errors, which makes it
// possible to assert that an operation touched the store exactly as often as expected.
package storetest
