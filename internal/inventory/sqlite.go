package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// blob is one row of the key-value table.
type blob struct {
	Name      string `gorm:"primaryKey;column:name"`
	Value     []byte
	UpdatedAt time.Time
}

func (blob) TableName() string { return "blobs" }

// SQLiteBlobs keeps blobs in a sqlite database through gorm.
type SQLiteBlobs struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at dsn and migrates the blob table.
func OpenSQLite(dsn string) (*SQLiteBlobs, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	if err := db.AutoMigrate(&blob{}); err != nil {
		return nil, fmt.Errorf("migrate blobs: %w", err)
	}
	return &SQLiteBlobs{db: db}, nil
}

func (s *SQLiteBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row blob
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.Value, true, nil
}

// Put upserts the row for key; last write wins.
func (s *SQLiteBlobs) Put(ctx context.Context, key string, value []byte) error {
	row := blob{Name: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (s *SQLiteBlobs) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
