package maple

import (
	"bytes"
	"fmt"
	"github.com/ValentinKolb/tKV/lib/db"
	dbtesting "github.com/ValentinKolb/tKV/lib/db/testing"
	"sync"
	"sync/atomic"
	"testing"
)

func Test(t *testing.T) {
	dbtesting.RunKVDBTests(t, "MapleDB", func() db.KVDB {
		return NewMapleDB(nil)
	})
}

func TestSingleShard(t *testing.T) {
	dbtesting.RunKVDBTests(t, "MapleDB(1 shard)", func() db.KVDB {
		return NewMapleDB(&DBOptions{NumShards: 1})
	})
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	database := NewMapleDB(nil)
	if err := database.Set("key", []byte("value")); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}

	var buf bytes.Buffer
	if err := database.Save(&buf); err != nil {
		t.Fatalf("Unexpected error during Save: %v", err)
	}

	data := buf.Bytes()
	data[len(magicNum)] = mapleVersion + 1

	target := NewMapleDB(nil)
	if err := target.Load(bytes.NewReader(data)); err == nil {
		t.Errorf("Expected Load to fail for an unsupported version")
	}
}

func TestLoadTruncatedKeepsState(t *testing.T) {
	source := NewMapleDB(nil)
	for _, key := range []string{"a", "b", "c"} {
		if err := source.Set(key, []byte("value-"+key)); err != nil {
			t.Fatalf("Unexpected error during Set: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := source.Save(&buf); err != nil {
		t.Fatalf("Unexpected error during Save: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()-3]

	target := NewMapleDB(nil)
	if err := target.Set("keep", []byte("me")); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if err := target.Load(bytes.NewReader(truncated)); err == nil {
		t.Fatalf("Expected Load to fail for a truncated snapshot")
	}

	value, ok, err := target.Get("keep")
	if err != nil || !ok || string(value) != "me" {
		t.Errorf("Failed Load must not modify the database, got %q (ok=%v, err=%v)", value, ok, err)
	}
}

// Writes racing with Load either land in the loaded state or are replaced by it.
// A write that starts after the last Load returned must always be visible.
func TestWritesDuringLoad(t *testing.T) {
	database := NewMapleDB(&DBOptions{NumShards: 4})

	var snapshot bytes.Buffer
	if err := NewMapleDB(nil).Save(&snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	const writers, perWriter = 4, 500
	var loading atomic.Bool
	loading.Store(true)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer loading.Store(false)
		for i := 0; i < 50; i++ {
			if err := database.Load(bytes.NewReader(snapshot.Bytes())); err != nil {
				t.Errorf("Load failed: %v", err)
				return
			}
		}
	}()

	var lateKeys sync.Map
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				key := fmt.Sprintf("d\x01w%d-%d", w, i)
				late := !loading.Load()
				if err := database.Set(key, []byte(key)); err != nil {
					t.Errorf("Set failed: %v", err)
					return
				}
				if late {
					lateKeys.Store(key, true)
				}
				if i%7 == 0 {
					_ = database.Delete(key)
					lateKeys.Delete(key)
				}
			}
		}(w)
	}
	wg.Wait()

	lateKeys.Range(func(k, _ any) bool {
		key := k.(string)
		value, ok, err := database.Get(key)
		if err != nil || !ok || string(value) != key {
			t.Errorf("write of %q after the last Load is missing (ok=%v, err=%v)", key, ok, err)
		}
		return true
	})
}

func Benchmark(t *testing.B) {
	dbtesting.RunKVDBBenchmarks(t, "MapleDB", func() db.KVDB {
		return NewMapleDB(nil)
	})
}
