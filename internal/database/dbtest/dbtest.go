// Package dbtest поднимает изолированную in-memory SQLite базу для тестов.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New открывает новую базу с применёнными миграциями и закрывает её по окончании теста
func New(t testing.TB) *database.Database {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// одно соединение: транзакции не конкурируют за блокировки shared cache
	sqlDB.SetMaxOpenConns(1)

	db := database.NewDatabase(gdb)
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
