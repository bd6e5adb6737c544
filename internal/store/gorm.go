package store

import (
	"context"
	"errors"
	"fmt"

	"recipe-quota-api/pkg/logging"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// KVEntry is one key-value row in the fallback SQL store.
type KVEntry struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value string `gorm:"type:text"`
}

// TableName sets the table name for KVEntry.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormStore is a Store implementation over a single SQL table, used when
// no Redis URL is configured. PostgreSQL in production, SQLite for
// development.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the fallback SQL store and migrates its table.
func NewGormStore(databaseURL string) (*GormStore, error) {
	var db *gorm.DB
	var err error

	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	}

	if databaseURL == "" {
		// Fallback to SQLite for development
		logging.Warnf("REDIS_URL and DATABASE_URL not set, using SQLite for development")
		db, err = gorm.Open(sqlite.Open("recipe-quota.db"), cfg)
	} else {
		db, err = gorm.Open(postgres.Open(databaseURL), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv table: %w", err)
	}

	logging.Infof("Database store connected successfully")
	return &GormStore{db: db}, nil
}

// Get returns the value at key, ok=false on a missing key.
func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set upserts the value at key.
func (s *GormStore) Set(ctx context.Context, key string, value string) error {
	entry := KVEntry{Key: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

// Close closes the underlying SQL connection.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
