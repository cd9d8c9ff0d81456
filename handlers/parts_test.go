package handlers

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fixbay.io/fixbay/config"
)

// withUnreachableDB points config.DB at a lazy connection that fails on
// first use, so the existence helpers can be checked for error
// propagation without a live database.
func withUnreachableDB(t *testing.T) {
	t.Helper()
	sqlDB, err := sql.Open("postgres", "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	prev := config.DB
	config.DB = gdb
	t.Cleanup(func() { config.DB = prev })
}

func TestWorkOrderExistsPropagatesDBError(t *testing.T) {
	withUnreachableDB(t)

	exists, err := workOrderExists(uuid.New().String(), uuid.New())
	if err == nil {
		t.Fatal("a failed lookup must surface its error, not read as not-found")
	}
	if exists {
		t.Error("exists must be false when the lookup fails")
	}
}

func TestJobLineBelongsToPropagatesDBError(t *testing.T) {
	withUnreachableDB(t)

	belongs, err := jobLineBelongsTo(uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("a failed lookup must surface its error, not read as a mismatch")
	}
	if belongs {
		t.Error("belongs must be false when the lookup fails")
	}
}
