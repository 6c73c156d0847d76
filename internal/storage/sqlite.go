package storage

import (
	"context"
	"fmt"

	"github.com/linenlog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLite 将每个键保存为 ledger_entries 表中的一行。
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite 打开（必要时创建）数据库文件。
func OpenSQLite(path string) (*SQLite, error) {
	gdb, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &SQLite{db: gdb}, nil
}

// NewSQLite 基于已有连接构造，调用方负责迁移。
func NewSQLite(gdb *gorm.DB) *SQLite {
	return &SQLite{db: gdb}
}

// Load 读取指定键的值。
func (s *SQLite) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var entry db.LedgerEntry
	result := s.db.WithContext(ctx).Where("key = ?", key).Limit(1).Find(&entry)
	if result.Error != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, result.Error)
	}
	// 缺失的键是首次启动的常态，不走 First 以免 gorm 记录 record not found
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return []byte(entry.Value), true, nil
}

// Save 在同一事务内 upsert 全部条目。
func (s *SQLite) Save(ctx context.Context, entries ...Entry) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			if err := upsertEntry(tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close 关闭数据库连接。
func (s *SQLite) Close() error {
	return db.Close(s.db)
}

func upsertEntry(tx *gorm.DB, entry Entry) error {
	record := db.LedgerEntry{Key: entry.Key, Value: string(entry.Value)}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      record.Value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&record).Error; err != nil {
		return fmt.Errorf("upsert entry %s: %w", entry.Key, err)
	}
	return nil
}
