package testutil

import (
	"testing"
	"time"

	"irrigation_backend/internal/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB - чистая sqlite в памяти со всеми таблицами.
// Одно соединение: у каждого соединения ":memory:" своя база.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Не удалось получить *sql.DB из GORM: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
