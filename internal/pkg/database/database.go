package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/model"
	"taskboard/internal/pkg/config"
	zaplog "taskboard/internal/pkg/logger"
)

// Open 建立数据库连接. 调用方持有返回的 *gorm.DB 并负责 Close.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := getLogLevel(cfg.LogLevel)

	gormConfig := &gorm.Config{
		Logger: logger.New(zaplog.GetWriter(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		// 唯一约束冲突统一翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite 单写连接, 内存库必须共享同一个连接
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.GetDSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate 创建或更新全部表结构
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// getLogLevel 解析SQL日志级别
func getLogLevel(level string) logger.LogLevel {
	switch level {
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}
