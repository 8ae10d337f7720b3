package repository

import (
	"testing"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database. One connection keeps
// every statement on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(
		&model.CustomerRequest{},
		&model.ProductRequest{},
		&model.ProductOption{},
		&model.AppSetting{},
	))
	return db
}

// Table shapes of deployments that predate the notes and zone columns.
const (
	legacyCustomerTable = `CREATE TABLE customer_requests (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lastname TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME
	)`
	legacyProductTable = `CREATE TABLE product_requests (
		id TEXT PRIMARY KEY,
		customer_request_id TEXT NOT NULL,
		product_type TEXT NOT NULL,
		posterior_wedge TEXT NOT NULL DEFAULT 'no',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
)

func strPtr(s string) *string { return &s }
