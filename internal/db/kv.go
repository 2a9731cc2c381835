package db

import (
	"context"
	"errors"

	"github.com/lightningstudio/watchbili/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV stores string values in the kv_entries table.
type KV struct {
	db *gorm.DB
}

func NewKV(d *gorm.DB) *KV {
	return &KV{db: d}
}

func (k *KV) GetString(ctx context.Context, key string) (string, bool, error) {
	var e model.KVEntry
	err := k.db.WithContext(ctx).Where("name = ?", key).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return e.Value, true, nil
}

func (k *KV) PutString(ctx context.Context, key, value string) error {
	return k.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model.KVEntry{Name: key, Value: value}).Error
}

func (k *KV) Delete(ctx context.Context, key string) error {
	return k.db.WithContext(ctx).Where("name = ?", key).Delete(&model.KVEntry{}).Error
}
