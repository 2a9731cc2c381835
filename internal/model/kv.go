package model

import "time"

// KVEntry is one opaque string value. The account blob is the only entry
// written today.
type KVEntry struct {
	Name      string `gorm:"primaryKey;type:varchar(128)"`
	Value     string `gorm:"not null;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
