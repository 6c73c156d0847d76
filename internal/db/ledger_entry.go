package db

import "time"

// LedgerEntry 以键值形式保存账本中的一张逻辑表，Value 为 JSON 文本。
// 两张表之间不建立外键：Day 的库存键只是对物品名称的软引用。
type LedgerEntry struct {
	ID        uint   `gorm:"primarykey"`
	Key       string `gorm:"size:100;uniqueIndex;not null"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 自定义表名以保持命名一致。
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

const (
	// KeyMasterItems 保存物品主清单。
	KeyMasterItems = "master_items"
	// KeyDays 保存全部 Day 记录（最新在前）。
	KeyDays = "days"
	// KeyNextDayNumber 为旧版本保留的序号计数器。
	KeyNextDayNumber = "next_day_number"
)
