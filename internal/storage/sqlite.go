package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"arb_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage persists the ledger's trade history in SQLite.
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a SQLite storage instance at the default path.
func NewStorage() (*Storage, error) {
	dbPath, err := defaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}
	return NewStorageAt(dbPath)
}

// NewStorageAt creates a SQLite storage instance at the given path.
func NewStorageAt(dbPath string) (*Storage, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Pure Go SQLite driver
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.TradeRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// defaultDBPath resolves the database file path in the user config dir
func defaultDBPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ArbGo", "data", "arbgo.db"), nil
}

// SaveTrade appends a trade record.
func (s *Storage) SaveTrade(record *domain.TradeRecord) error {
	return s.db.Create(record).Error
}

// RecentTrades returns the most recent trades, newest first.
func (s *Storage) RecentTrades(limit int) ([]domain.TradeRecord, error) {
	var trades []domain.TradeRecord
	err := s.db.Order("executed_at_ms DESC").Limit(limit).Find(&trades).Error
	return trades, err
}

// CountTrades returns the total number of persisted trades.
func (s *Storage) CountTrades() (int64, error) {
	var count int64
	err := s.db.Model(&domain.TradeRecord{}).Count(&count).Error
	return count, err
}
