package gormdb

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
	dbtesting "github.com/ValentinKolb/tKV/lib/db/testing"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Test(t *testing.T) {
	dbtesting.RunKVDBTests(t, "SQLite(memory)", func() db.KVDB {
		database, err := NewInMemorySQLiteDB()
		if err != nil {
			panic(err)
		}
		return database
	})
}

func TestOnDisk(t *testing.T) {
	dir := t.TempDir()
	counter := 0
	dbtesting.RunKVDBTests(t, "SQLite(disk)", func() db.KVDB {
		counter++
		database, err := NewSQLiteDB(filepath.Join(dir, fmt.Sprintf("db-%d.sqlite", counter)))
		if err != nil {
			panic(err)
		}
		return database
	})
}

func TestInstancesAreIsolated(t *testing.T) {
	first, err := NewInMemorySQLiteDB()
	require.NoError(t, err)
	defer first.Close()

	second, err := NewInMemorySQLiteDB()
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.Set("key", []byte("value")))

	_, ok, err := second.Get("key")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tkv.sqlite")

	database, err := NewSQLiteDB(path)
	require.NoError(t, err)
	require.NoError(t, database.Set("\x00binary", []byte{0xff, 0x00}))
	require.NoError(t, database.Close())

	reopened, err := NewSQLiteDB(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("\x00binary")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte{0xff, 0x00}, value)
}

func TestNewGormDB(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database, err := NewGormDB(gdb)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.Set("key", []byte("value")))
	ok, err := database.Has("key")
	require.NoError(t, err)
	require.True(t, ok)

	info := database.GetInfo()
	require.Equal(t, db.ImplGorm, info.DbType)
	require.Equal(t, 1, info.Entries)
	require.Equal(t, len("key")+len("value"), info.SizeBytes)
}

func Benchmark(b *testing.B) {
	dbtesting.RunKVDBBenchmarks(b, "SQLite(memory)", func() db.KVDB {
		database, err := NewInMemorySQLiteDB()
		if err != nil {
			panic(err)
		}
		return database
	})
}
