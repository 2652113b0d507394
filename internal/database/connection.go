package database

import (
	"fmt"
	"time"

	"irrigation_backend/internal/config"
	"irrigation_backend/internal/logger"
	"irrigation_backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open выбирает диалект по имени драйвера
func Open(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "mysql", "mariadb":
		return mysql.Open(dsn), nil
	case "sqlite":
		// для sqlite DSN - путь к файлу или ":memory:"
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// Connect открывает пул соединений согласно config.Database
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
		// gorm.ErrDuplicatedKey вместо ошибок конкретного драйвера
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	if n := cfg.Database.MaxOpenConns; n > 0 {
		sqlDB.SetMaxOpenConns(n)
		sqlDB.SetMaxIdleConns(n / 2)
	}
	// sqlite в памяти живет, пока жив коннект
	if cfg.Database.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Info("Database connected", "driver", cfg.Database.Driver)
	return db, nil
}

// AutoMigrate создает/обновляет схему для всех моделей
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Close закрывает пул
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
