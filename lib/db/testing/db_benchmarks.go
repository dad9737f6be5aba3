package testing

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
)

// payload sizes of typical encoded records: a counter, a short reminder, a large document
var payloadSizes = []int{16, 256, 4 << 10}

// benchRecords is the number of records written before a benchmark starts
const benchRecords = 4096

// RunKVDBBenchmarks runs the benchmarks for a key-value database implementation.
// Keys are shaped like the tagged keys of the typed layer: one 's' key per type
// and 'd' + namespace + 8 byte identifier per record.
func RunKVDBBenchmarks(b *testing.B, name string, factory DBFactory) {
	for _, size := range payloadSizes {
		b.Run(fmt.Sprintf("SaveRecord/%dB", size), func(b *testing.B) {
			benchmarkSaveRecord(b, factory(), size)
		})
		b.Run(fmt.Sprintf("LoadRecord/%dB", size), func(b *testing.B) {
			benchmarkLoadRecord(b, factory(), size)
		})
	}

	b.Run("UpdateStatic", func(b *testing.B) {
		benchmarkUpdateStatic(b, factory())
	})

	b.Run("LoadMissing", func(b *testing.B) {
		benchmarkLoadMissing(b, factory())
	})

	b.Run("DeleteRecord", func(b *testing.B) {
		benchmarkDeleteRecord(b, factory())
	})

	b.Run("Snapshot", func(b *testing.B) {
		benchmarkSnapshot(b, factory)
	})

	b.Run("ReadMostly", func(b *testing.B) {
		benchmarkReadMostly(b, factory())
	})
}

// recordKey returns the key of record id in namespace ns
func recordKey(ns string, id uint64) string {
	key := make([]byte, 0, 2+len(ns)+8)
	key = append(key, 'd', byte(len(ns)))
	key = append(key, ns...)
	key = binary.BigEndian.AppendUint64(key, id)
	return string(key)
}

func payload(size int, seed uint64) []byte {
	p := make([]byte, size)
	binary.LittleEndian.PutUint64(p, seed)
	return p
}

// fill writes benchRecords records of the given size
func fill(b *testing.B, database db.KVDB, size int) {
	b.Helper()
	for i := uint64(0); i < benchRecords; i++ {
		mustSet(b, database, recordKey("bench", i), payload(size, i))
	}
}

func closeOnCleanup(b *testing.B, database db.KVDB) {
	b.Cleanup(func() {
		_ = database.Close()
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// benchmarkSaveRecord writes new records from parallel goroutines
func benchmarkSaveRecord(b *testing.B, database db.KVDB, size int) {
	closeOnCleanup(b, database)
	requireFeature(b, database, db.FeatureSet)

	var next atomic.Uint64
	value := payload(size, 0)

	b.SetBytes(int64(size))
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if err := database.Set(recordKey("bench", next.Add(1)), value); err != nil {
				b.Errorf("Set failed: %v", err)
				return
			}
		}
	})
}

// benchmarkLoadRecord reads random existing records
func benchmarkLoadRecord(b *testing.B, database db.KVDB, size int) {
	closeOnCleanup(b, database)
	requireFeature(b, database, db.FeatureSet|db.FeatureGet)
	fill(b, database, size)

	b.SetBytes(int64(size))
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, ok, err := database.Get(recordKey("bench", rand.Uint64N(benchRecords))); err != nil || !ok {
				b.Errorf("Get failed: ok=%v, err=%v", ok, err)
				return
			}
		}
	})
}

// benchmarkUpdateStatic is the read-modify-write cycle of a counter under one static key
func benchmarkUpdateStatic(b *testing.B, database db.KVDB) {
	closeOnCleanup(b, database)
	requireFeature(b, database, db.FeatureSet|db.FeatureGet)

	const key = "sstate"
	mustSet(b, database, key, binary.BigEndian.AppendUint64(nil, 0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		value, _, err := database.Get(key)
		if err != nil {
			b.Fatalf("Get failed: %v", err)
		}
		n := binary.BigEndian.Uint64(value) + 1
		if err := database.Set(key, binary.BigEndian.AppendUint64(nil, n)); err != nil {
			b.Fatalf("Set failed: %v", err)
		}
	}
}

// benchmarkLoadMissing reads identifiers that were never written
func benchmarkLoadMissing(b *testing.B, database db.KVDB) {
	closeOnCleanup(b, database)
	requireFeature(b, database, db.FeatureSet|db.FeatureGet)
	fill(b, database, payloadSizes[0])

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _, _ = database.Get(recordKey("missing", rand.Uint64()))
		}
	})
}

// benchmarkDeleteRecord deletes existing records, rewriting the set when it runs out
func benchmarkDeleteRecord(b *testing.B, database db.KVDB) {
	closeOnCleanup(b, database)
	requireFeature(b, database, db.FeatureSet|db.FeatureDelete)

	value := payload(payloadSizes[1], 0)
	for i := 0; i < b.N; i++ {
		key := recordKey("bench", uint64(i%benchRecords))
		if i%benchRecords == 0 {
			b.StopTimer()
			fill(b, database, len(value))
			b.StartTimer()
		}
		if err := database.Delete(key); err != nil {
			b.Fatalf("Delete failed: %v", err)
		}
	}
}

// benchmarkSnapshot measures Save and Load of a filled database.
// Both touch the whole database, so they run sequentially.
func benchmarkSnapshot(b *testing.B, factory DBFactory) {
	database := factory()
	closeOnCleanup(b, database)
	requireFeature(b, database, db.FeatureSet|db.FeatureSave|db.FeatureLoad)
	fill(b, database, payloadSizes[1])

	var snapshot bytes.Buffer
	if err := database.Save(&snapshot); err != nil {
		b.Fatalf("Save failed: %v", err)
	}
	data := snapshot.Bytes()

	b.Run("Save", func(b *testing.B) {
		b.SetBytes(int64(len(data)))
		for i := 0; i < b.N; i++ {
			var buf bytes.Buffer
			buf.Grow(len(data))
			if err := database.Save(&buf); err != nil {
				b.Fatalf("Save failed: %v", err)
			}
		}
	})

	b.Run("Load", func(b *testing.B) {
		target := factory()
		closeOnCleanup(b, target)
		b.SetBytes(int64(len(data)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := target.Load(bytes.NewReader(data)); err != nil {
				b.Fatalf("Load failed: %v", err)
			}
		}
	})
}

// benchmarkReadMostly mixes nine reads with one write, the access pattern of a
// service where every record is read far more often than it is recorded
func benchmarkReadMostly(b *testing.B, database db.KVDB) {
	closeOnCleanup(b, database)
	requireFeature(b, database, db.FeatureSet|db.FeatureGet)
	fill(b, database, payloadSizes[1])

	value := payload(payloadSizes[1], 1)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := recordKey("bench", rand.Uint64N(benchRecords))
			if i%10 == 0 {
				_ = database.Set(key, value)
			} else {
				_, _, _ = database.Get(key)
			}
			i++
		}
	})
}
