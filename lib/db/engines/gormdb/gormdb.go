package gormdb

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/tKV/lib/db"
	dbutil "github.com/ValentinKolb/tKV/lib/db/util"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"io"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	magicNum    = "GORMKV\x00\x00" // Snapshot format identifier
	gormVersion = 1                // Snapshot format version
	batchSize   = 500              // Rows per INSERT when loading a snapshot
)

// supportedFeatures are all features of the gorm engine
const supportedFeatures = db.FeatureSet |
	db.FeatureGet |
	db.FeatureDelete |
	db.FeatureHas |
	db.FeatureSave |
	db.FeatureLoad

// --------------------------------------------------------------------------
// Row Model
// --------------------------------------------------------------------------

// entry maps to the tkv_entries table.
// The key is stored as a blob since keys are arbitrary bytes (not valid UTF-8 in general).
type entry struct {
	Key   []byte `gorm:"primaryKey"`
	Value []byte
}

// TableName overrides the table name used by gorm
func (entry) TableName() string {
	return "tkv_entries"
}

// --------------------------------------------------------------------------
// Core gorm database structure
// --------------------------------------------------------------------------

// gormImpl implements db.KVDB with a single sql table of (key, value) rows
type gormImpl struct {
	gdb *gorm.DB
	dsn string
}

// NewSQLiteDB opens (or creates) a sqlite database file and migrates the entry table
func NewSQLiteDB(path string) (db.KVDB, error) {
	return open(path)
}

// NewInMemorySQLiteDB creates a private in-memory sqlite database
func NewInMemorySQLiteDB() (db.KVDB, error) {
	// every instance gets its own named memory database, shared only by its own connections
	return open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

// NewGormDB wraps an already opened gorm connection (any dialect gorm supports)
func NewGormDB(gdb *gorm.DB) (db.KVDB, error) {
	return migrate(gdb, gdb.Dialector.Name())
}

// migrate creates the entry table if it does not exist yet
func migrate(gdb *gorm.DB, dsn string) (*gormImpl, error) {
	if err := gdb.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate entry table: %w", err)
	}
	return &gormImpl{gdb: gdb, dsn: dsn}, nil
}

func open(dsn string) (db.KVDB, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", dsn, err)
	}

	// sqlite allows a single writer, serialize all access through one connection
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	impl, err := migrate(gdb, dsn)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return impl, nil
}

// --------------------------------------------------------------------------
// KVDB Interface Methods - Write Operations
// --------------------------------------------------------------------------

// Set upserts the row for the key
func (g *gormImpl) Set(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	row := entry{
		Key:   []byte(key),
		Value: value,
	}
	result := g.gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row)

	if result.Error != nil {
		return fmt.Errorf("failed to write key %q: %w", key, result.Error)
	}
	return nil
}

// Delete removes the row for the key
func (g *gormImpl) Delete(key string) error {
	result := g.gdb.Where("key = ?", []byte(key)).Delete(&entry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, result.Error)
	}
	return nil
}

// --------------------------------------------------------------------------
// KVDB Interface Methods - Read Operations
// --------------------------------------------------------------------------

// Get reads the row for the key.
// Find is used instead of First to avoid "record not found" errors for missing keys.
func (g *gormImpl) Get(key string) ([]byte, bool, error) {
	var row entry
	result := g.gdb.Where("key = ?", []byte(key)).Limit(1).Find(&row)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	if row.Value == nil {
		row.Value = []byte{}
	}
	return row.Value, true, nil
}

// Has counts the rows for the key
func (g *gormImpl) Has(key string) (bool, error) {
	var count int64
	result := g.gdb.Model(&entry{}).Where("key = ?", []byte(key)).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check key %q: %w", key, result.Error)
	}
	return count > 0, nil
}

// --------------------------------------------------------------------------
// KVDB Interface Methods - Persistence
// --------------------------------------------------------------------------

// Save writes all rows in the format of util.SnapshotWriter (ordered by key).
// Reading happens in one transaction so the snapshot is consistent.
func (g *gormImpl) Save(w io.Writer) error {
	return g.gdb.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entry{}).Count(&count).Error; err != nil {
			return err
		}

		sw, err := dbutil.NewSnapshotWriter(w, magicNum, gormVersion, uint64(count))
		if err != nil {
			return err
		}

		rows, err := tx.Model(&entry{}).Order("key").Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var row entry
			if err := tx.ScanRows(rows, &row); err != nil {
				return err
			}
			if err := sw.Write(string(row.Key), row.Value); err != nil {
				return err
			}
		}
		if err := rows.Err(); err != nil {
			return err
		}

		return sw.Close()
	})
}

// Load replaces all rows with the snapshot from the reader inside one transaction
func (g *gormImpl) Load(r io.Reader) error {
	var rows []entry
	if err := dbutil.ReadSnapshot(r, magicNum, gormVersion, func(key string, value []byte) error {
		rows = append(rows, entry{Key: []byte(key), Value: value})
		return nil
	}); err != nil {
		return err
	}

	return g.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entry{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, batchSize).Error
	})
}

// --------------------------------------------------------------------------
// KVDB Interface Implementation - Features and Metadata
// --------------------------------------------------------------------------

// GetInfo returns statistics about the database
func (g *gormImpl) GetInfo() db.DatabaseInfo {
	var stats struct {
		Entries   int
		SizeBytes int
	}
	err := g.gdb.Model(&entry{}).
		Select("COUNT(*) AS entries, COALESCE(SUM(LENGTH(key) + COALESCE(LENGTH(value), 0)), 0) AS size_bytes").
		Scan(&stats).Error

	meta := &struct {
		DSN     string `json:"dsn"`
		Dialect string `json:"dialect"`
		Table   string `json:"table"`
		Error   string `json:"error,omitempty"`
	}{
		DSN:     g.dsn,
		Dialect: g.gdb.Dialector.Name(),
		Table:   entry{}.TableName(),
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		meta.Error = err.Error()
	}

	return db.DatabaseInfo{
		Entries:           stats.Entries,
		SizeBytes:         stats.SizeBytes,
		DbType:            db.ImplGorm,
		SupportedFeatures: supportedFeatures.Features(),
		Metadata:          meta,
	}
}

// SupportsFeature checks if this implementation supports a specific KVDB feature
func (g *gormImpl) SupportsFeature(feature db.Feature) bool {
	return supportedFeatures&feature == feature
}

// Close closes the underlying sql connection pool
func (g *gormImpl) Close() error {
	sqlDB, err := g.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
