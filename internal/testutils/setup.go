package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
)

var testDBSeq int64

// SetupDB initialise une base SQLite en mémoire unique pour le test,
// la branche sur database.DB et migre les modèles fournis.
func SetupDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:pinterest_%d?mode=memory&cache=shared", seq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	prevDB := database.DB
	t.Cleanup(func() {
		if prevDB != nil && database.DB == gdb {
			database.DB = prevDB
		}
		_ = sqlDB.Close()
	})

	if len(models) > 0 {
		if err := gdb.AutoMigrate(models...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}

	database.DB = gdb
	return gdb
}
