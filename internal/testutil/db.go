// Package testutil 测试用的临时数据库
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"crud-api/internal/core/database"
)

// NewSQLite 在 t.TempDir 下建一个已迁移的 sqlite 文件库，测试结束自动关闭
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 4,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
