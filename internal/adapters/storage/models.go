package storage

import "time"

// KVEntryModel is one persisted aggregate document
type KVEntryModel struct {
	Key       string `gorm:"primaryKey;column:entry_key"`
	UpdatedAt time.Time
	Value     string `gorm:"column:value;not null"`
}

func (KVEntryModel) TableName() string { return "kv_entries" }
