package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is a single key-value row. One row per logical document.
type Entry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Entry model
func (Entry) TableName() string {
	return "kv_entries"
}

// GormStore persists documents in a single key-value table through GORM.
// The default backend is a local SQLite file, which matches the single-user
// whole-document access pattern of the services.
type GormStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path and migrates
// the key-value table.
func NewSQLiteStore(path string) (*GormStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: sqlite path is required", ErrInvalidConfig)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %q: %w", path, err)
	}

	return NewGormStore(db)
}

// NewGormStore wraps an existing GORM connection and migrates the table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("store: migrate kv table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	var entry Entry
	result := s.db.WithContext(ctx).First(&entry, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("store: get %q: %w", key, result.Error)
	}
	return entry.Value, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value string) error {
	entry := Entry{Key: key, Value: value}
	result := s.db.WithContext(ctx).Save(&entry)
	if result.Error != nil {
		return fmt.Errorf("store: set %q: %w", key, result.Error)
	}
	return nil
}
