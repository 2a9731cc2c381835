package db

import (
	"fmt"

	"github.com/lightningstudio/watchbili/internal/conf"
	"github.com/lightningstudio/watchbili/internal/model"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var db *gorm.DB

var models = []any{
	new(model.KVEntry),
}

func Init(d *gorm.DB, t conf.DatabaseType) error {
	db = d
	return AutoMigrate(d, t, models...)
}

func AutoMigrate(d *gorm.DB, t conf.DatabaseType, dst ...any) error {
	switch t {
	case conf.DatabaseTypeMysql:
		return d.Set("gorm:table_options", "ENGINE=InnoDB CHARSET=utf8mb4").AutoMigrate(dst...)
	case conf.DatabaseTypeSqlite3, conf.DatabaseTypePostgres:
		return d.AutoMigrate(dst...)
	default:
		return fmt.Errorf("unknown database type: %s", t)
	}
}

func DB() *gorm.DB {
	return db
}

func Close() error {
	if db == nil {
		return nil
	}
	log.Info("closing db")
	sqlDB, err := db.DB()
	if err != nil {
		log.Errorf("failed to get db: %s", err.Error())
		return err
	}
	if err := sqlDB.Close(); err != nil {
		log.Errorf("failed to close db: %s", err.Error())
		return err
	}
	return nil
}
