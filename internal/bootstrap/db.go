package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lightningstudio/watchbili/cmd/flags"
	"github.com/lightningstudio/watchbili/internal/conf"
	"github.com/lightningstudio/watchbili/internal/db"
	"github.com/lightningstudio/watchbili/internal/sysnotify"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDatabase is a no-op in ephemeral mode.
func InitDatabase(ctx context.Context) error {
	if flags.Ephemeral {
		return nil
	}
	dialector, err := dialectorFor(&conf.Conf.Database)
	if err != nil {
		return err
	}
	gc := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if flags.Dev {
		gc.Logger = logger.Default.LogMode(logger.Info)
	}
	d, err := gorm.Open(dialector, gc)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	sqlDB, err := d.DB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}
	if conf.Conf.Database.Type == conf.DatabaseTypeSqlite3 {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(conf.Conf.Database.MaxIdleConns)
		sqlDB.SetMaxOpenConns(conf.Conf.Database.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(conf.Conf.Database.ConnMaxLifetime) * time.Second)
	if err := db.Init(d, conf.Conf.Database.Type); err != nil {
		return err
	}
	return sysnotify.RegisterSysNotifyTask(0, sysnotify.NewSysNotifyTask(
		"database",
		sysnotify.NotifyTypeEXIT,
		db.Close,
	))
}

func dialectorFor(c *conf.DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case conf.DatabaseTypeMysql:
		dsn := c.CustomDSN
		if dsn == "" {
			if c.Port == 0 {
				dsn = fmt.Sprintf("%s:%s@unix(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&tls=%s",
					c.User, c.Password, c.Host, c.DBName, c.SslMode,
				)
				log.Infof("mysql database unix socket: %s", c.Host)
			} else {
				dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&tls=%s",
					c.User, c.Password, c.Host, c.Port, c.DBName, c.SslMode,
				)
				log.Infof("mysql database tcp: %s:%d", c.Host, c.Port)
			}
		}
		return mysql.New(mysql.Config{
			DSN:                       dsn,
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), nil
	case conf.DatabaseTypeSqlite3:
		dsn := c.CustomDSN
		if dsn == "" {
			if c.DBName == "memory" || strings.HasPrefix(c.DBName, ":memory:") {
				dsn = "file::memory:?cache=shared"
				log.Infof("sqlite3 database memory")
			} else {
				if !strings.HasSuffix(c.DBName, ".db") {
					c.DBName += ".db"
				}
				if !filepath.IsAbs(c.DBName) {
					c.DBName = filepath.Join(flags.DataDir, c.DBName)
				}
				dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", c.DBName)
				log.Infof("sqlite3 database file: %s", c.DBName)
			}
		}
		return sqlite.Open(dsn), nil
	case conf.DatabaseTypePostgres:
		dsn := c.CustomDSN
		if dsn == "" {
			if c.Port == 0 {
				dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
					c.Host, c.User, c.Password, c.DBName, c.SslMode,
				)
				log.Infof("postgres database unix socket: %s", c.Host)
			} else {
				dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
					c.Host, c.Port, c.User, c.Password, c.DBName, c.SslMode,
				)
				log.Infof("postgres database tcp: %s:%d", c.Host, c.Port)
			}
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", c.Type)
	}
}
