package database

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// OpenTest returns a migrated sqlite database in t's temp dir.
func OpenTest(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := Connect("sqlite", filepath.Join(t.TempDir(), "test.db")+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
