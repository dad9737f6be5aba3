package testing

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
)

// DBFactory is a function that creates a new instance of a KVDB implementation
type DBFactory func() db.KVDB

// RunKVDBTests runs a comprehensive test suite for a KVDB implementation.
func RunKVDBTests(t *testing.T, name string, factory DBFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, factory())
		})

		t.Run("BinaryKeys", func(t *testing.T) {
			testBinaryKeys(t, factory())
		})

		t.Run("SaveLoad", func(t *testing.T) {
			testSaveLoad(t, factory)
		})

		t.Run("Info", func(t *testing.T) {
			testInfo(t, factory())
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory())
		})

		t.Run("CollisionHandling", func(t *testing.T) {
			testCollisionHandling(t, factory())
		})

		t.Run("RealisticUsage", func(t *testing.T) {
			testRealisticUsage(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// Checks if the database supports the specified feature
// Skip the test if it is not supported
func requireFeature(t testing.TB, database db.KVDB, feature db.Feature) {
	if !database.SupportsFeature(feature) {
		t.Skip()
	}
}

// mustSet fails the test if Set returns an error
func mustSet(t testing.TB, database db.KVDB, key string, value []byte) {
	t.Helper()
	if err := database.Set(key, value); err != nil {
		t.Fatalf("Unexpected error during Set(%q): %v", key, err)
	}
}

// mustGet fails the test if Get returns an error
func mustGet(t testing.TB, database db.KVDB, key string) ([]byte, bool) {
	t.Helper()
	value, exists, err := database.Get(key)
	if err != nil {
		t.Fatalf("Unexpected error during Get(%q): %v", key, err)
	}
	return value, exists
}

// mustHas fails the test if Has returns an error
func mustHas(t testing.TB, database db.KVDB, key string) bool {
	t.Helper()
	exists, err := database.Has(key)
	if err != nil {
		t.Fatalf("Unexpected error during Has(%q): %v", key, err)
	}
	return exists
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)

	testKey := "test-key"
	testValue1 := []byte("test-value1")
	testValue2 := []byte("test-value2")

	mustSet(t, database, testKey, testValue1)

	result, exists := mustGet(t, database, testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}

	if !bytes.Equal(result, testValue1) {
		t.Errorf("Expected value %s, got %s", testValue1, result)
	}

	mustSet(t, database, testKey, testValue2)

	result, exists = mustGet(t, database, testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}

	if !bytes.Equal(result, testValue2) {
		t.Errorf("Expected value %s, got %s", testValue2, result)
	}

	_, exists = mustGet(t, database, "nonexistent-key")
	if exists {
		t.Errorf("Expected nonexistent key to return exists=false")
	}

	retrievedValue, _ := mustGet(t, database, testKey)
	retrievedValue[0] = 'X'

	originalValue, _ := mustGet(t, database, testKey)
	if bytes.Equal(retrievedValue, originalValue) {
		t.Errorf("Get should return a copy, not a reference to the stored value")
	}

	input := []byte("caller-owned")
	mustSet(t, database, "caller-key", input)
	input[0] = 'X'

	result, _ = mustGet(t, database, "caller-key")
	if !bytes.Equal(result, []byte("caller-owned")) {
		t.Errorf("Set should copy the value, got %s after modifying the input", result)
	}
}

func testDelete(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)
	requireFeature(t, database, db.FeatureDelete)

	testKey := "delete-key"
	mustSet(t, database, testKey, []byte("delete-value"))

	if err := database.Delete(testKey); err != nil {
		t.Fatalf("Unexpected error during Delete: %v", err)
	}

	if _, exists := mustGet(t, database, testKey); exists {
		t.Errorf("Key %s should not exist after Delete", testKey)
	}

	if err := database.Delete("nonexistent-key"); err != nil {
		t.Errorf("Deleting a nonexistent key should not fail, got %v", err)
	}

	mustSet(t, database, testKey, []byte("new-value"))
	result, exists := mustGet(t, database, testKey)
	if !exists || !bytes.Equal(result, []byte("new-value")) {
		t.Errorf("Key %s should be writable again after Delete", testKey)
	}
}

func testHas(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureHas)

	testKey := "has-key"

	if mustHas(t, database, testKey) {
		t.Errorf("Has should return false for a key that was never set")
	}

	mustSet(t, database, testKey, []byte("has-value"))

	if !mustHas(t, database, testKey) {
		t.Errorf("Has should return true after Set")
	}

	if database.SupportsFeature(db.FeatureDelete) {
		if err := database.Delete(testKey); err != nil {
			t.Fatalf("Unexpected error during Delete: %v", err)
		}
		if mustHas(t, database, testKey) {
			t.Errorf("Has should return false after Delete")
		}
	}
}

func testBinaryKeys(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)

	keys := []string{
		"\x00",
		"\x00\x00",
		"d\x03abc\x00\xff",
		"d\x03abd\x00\xff",
		"\xff\xfe\xfd",
		"s",
	}

	for i, key := range keys {
		mustSet(t, database, key, []byte(fmt.Sprintf("value-%d", i)))
	}

	for i, key := range keys {
		result, exists := mustGet(t, database, key)
		if !exists {
			t.Errorf("Binary key %q not found", key)
			continue
		}
		if expected := []byte(fmt.Sprintf("value-%d", i)); !bytes.Equal(result, expected) {
			t.Errorf("Value mismatch for binary key %q: expected %s, got %s", key, expected, result)
		}
	}

	if _, exists := mustGet(t, database, "\x00\x00\x00"); exists {
		t.Errorf("Unset binary key should not exist")
	}
}

func testSaveLoad(t *testing.T, factory DBFactory) {
	database := factory()
	defer database.Close()
	database2 := factory()
	defer database2.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)
	requireFeature(t, database, db.FeatureSave)
	requireFeature(t, database2, db.FeatureLoad)

	numEntries := 1000
	originalKeys := make([]string, numEntries)
	originalValues := make([][]byte, numEntries)

	for i := 0; i < numEntries; i++ {
		key := fmt.Sprintf("key-%d", i)
		value := []byte(fmt.Sprintf("value-%d", i))

		originalKeys[i] = key
		originalValues[i] = value

		mustSet(t, database, key, value)
	}

	// stale entry in the target database must be gone after Load
	mustSet(t, database2, "stale-key", []byte("stale"))

	var buf bytes.Buffer
	err := database.Save(&buf)
	if err != nil {
		t.Errorf("Unexpected error during Save: %v", err)
	}

	err = database2.Load(&buf)
	if err != nil {
		t.Errorf("Unexpected error during Load: %v", err)
	}

	for i := 0; i < numEntries; i++ {
		key := originalKeys[i]
		expectedValue := originalValues[i]

		actualValue, exists := mustGet(t, database2, key)
		if !exists {
			t.Errorf("Key %s not found after Load", key)
			continue
		}

		if !bytes.Equal(actualValue, expectedValue) {
			t.Errorf("Value mismatch for key %s: expected %s, got %s", key, expectedValue, actualValue)
		}
	}

	if _, exists := mustGet(t, database2, "stale-key"); exists {
		t.Errorf("Load should replace existing entries")
	}

	for i := 0; i < numEntries; i++ {
		key := originalKeys[i]
		expectedValue := originalValues[i]

		actualValue, exists := mustGet(t, database, key)
		if !exists {
			t.Errorf("Key %s not found in original database", key)
			continue
		}

		if !bytes.Equal(actualValue, expectedValue) {
			t.Errorf("Value mismatch in original database for key %s", key)
		}
	}

	if err := database2.Load(bytes.NewReader([]byte("garbage"))); err == nil {
		t.Errorf("Load should fail for a corrupted snapshot")
	}
}

func testInfo(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)

	for i := 0; i < 10; i++ {
		mustSet(t, database, fmt.Sprintf("info-key-%d", i), []byte("v"))
	}

	info := database.GetInfo()
	if info.Entries != 10 {
		t.Errorf("Expected 10 entries, got %d", info.Entries)
	}
	if info.DbType == "" {
		t.Errorf("Expected a database type to be reported")
	}
	for _, feature := range info.SupportedFeatures {
		if !database.SupportsFeature(feature) {
			t.Errorf("Reported feature %s is not supported", feature)
		}
	}
}

func testEdgeCases(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)

	emptyValueKey := "empty-value-key"
	emptyValue := []byte{}

	mustSet(t, database, emptyValueKey, emptyValue)

	result, exists := mustGet(t, database, emptyValueKey)
	if !exists {
		t.Errorf("Key for empty value not found after Set")
	} else if len(result) != 0 {
		t.Errorf("Empty value mismatch")
	}

	nilValueKey := "nil-value-key"
	var nilValue []byte = nil

	mustSet(t, database, nilValueKey, nilValue)

	result, exists = mustGet(t, database, nilValueKey)
	if !exists {
		t.Errorf("Key for nil value not found after Set")
	} else if len(result) != 0 {
		t.Errorf("Nil value resulted in non-empty value: %v", result)
	}

	if !t.Failed() {

		largeKey := string(bytes.Repeat([]byte{'k'}, 1000))
		largeKeyValue := []byte("value for large key")

		mustSet(t, database, largeKey, largeKeyValue)

		result, exists = mustGet(t, database, largeKey)
		if !exists {
			t.Errorf("Large key not found after Set")
		} else if !bytes.Equal(result, largeKeyValue) {
			t.Errorf("Value mismatch for large key")
		}

		largeValueKey := "large-value-key"
		largeValue := make([]byte, 4*1024*1024)

		for i := range largeValue {
			largeValue[i] = byte(i % 256)
		}

		mustSet(t, database, largeValueKey, largeValue)

		result, exists = mustGet(t, database, largeValueKey)
		if !exists {
			t.Errorf("Key for large value not found after Set")
		} else if !bytes.Equal(result, largeValue) {
			t.Errorf("Large value mismatch: got %d bytes, expected %d", len(result), len(largeValue))
		}
	}
}

func testCollisionHandling(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)
	requireFeature(t, database, db.FeatureDelete)

	prefix := "collision-test-"
	numKeys := 1000

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		value := []byte(fmt.Sprintf("value-%d", i))

		mustSet(t, database, key, value)
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		expectedValue := []byte(fmt.Sprintf("value-%d", i))

		actualValue, exists := mustGet(t, database, key)
		if !exists {
			t.Errorf("Key %s not found", key)
			continue
		}

		if !bytes.Equal(actualValue, expectedValue) {
			t.Errorf("Value for key %s does not match: expected %s, got %s",
				key, expectedValue, actualValue)
		}
	}

	for i := 0; i < numKeys; i += 2 {
		key := fmt.Sprintf("%s%d", prefix, i)
		if err := database.Delete(key); err != nil {
			t.Fatalf("Unexpected error during Delete: %v", err)
		}
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		_, exists := mustGet(t, database, key)

		if i%2 == 0 {
			if exists {
				t.Errorf("Key %s should be deleted", key)
			}
		} else {
			if !exists {
				t.Errorf("Key %s should still exist", key)
			}
		}
	}
}

func testRealisticUsage(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)
	requireFeature(t, database, db.FeatureDelete)

	type operation struct {
		op    string
		key   string
		value []byte
	}

	numOperations := 10_000
	operations := make([]operation, numOperations)

	for i := 0; i < numOperations; i++ {
		var op string
		switch i % 10 {
		case 0, 1, 2, 3, 4, 5, 6:
			op = "set"
		case 7, 8:
			op = "get"
		case 9:
			op = "delete"
		}

		var key string
		if i%5 == 0 {
			key = fmt.Sprintf("hot-key-%d", i%50)
		} else {
			key = fmt.Sprintf("key-%d", i)
		}

		var value []byte
		if op == "set" {
			valueSize := 64
			if i%10 == 0 {
				valueSize = 1024
			}
			value = make([]byte, valueSize)

			for j := 0; j < valueSize; j++ {
				value[j] = byte((i + j) % 256)
			}
		}

		operations[i] = operation{op, key, value}
	}

	allKeys := make(map[string]bool)
	for _, op := range operations {
		allKeys[op.key] = true
	}

	numWorkers := 8
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	var errorCount int32

	opsPerWorker := numOperations / numWorkers

	for w := 0; w < numWorkers; w++ {
		go func(workerId int) {
			defer wg.Done()

			start := workerId * opsPerWorker
			end := start + opsPerWorker

			for i := start; i < end; i++ {
				op := operations[i]

				var err error
				switch op.op {
				case "set":
					err = database.Set(op.key, op.value)
				case "get":
					_, _, err = database.Get(op.key)
				case "delete":
					err = database.Delete(op.key)
				}
				if err != nil {
					atomic.AddInt32(&errorCount, 1)
				}
			}
		}(w)
	}

	wg.Wait()

	if atomic.LoadInt32(&errorCount) > 0 {
		t.Fatalf("Test had %d errors during parallel operations", errorCount)
		return
	}

	keyValues := make(map[string][]byte)
	for key := range allKeys {
		if value, exists := mustGet(t, database, key); exists {
			keyValues[key] = value
		}
	}

	for key := range allKeys {
		value, exists := mustGet(t, database, key)
		expected, existed := keyValues[key]

		if exists != existed {
			t.Errorf("Consistency error: Key %s existence changed during verification", key)
			continue
		}

		if exists && !bytes.Equal(value, expected) {
			t.Errorf("Value mismatch for key %s between verification passes", key)
		}
	}
}
