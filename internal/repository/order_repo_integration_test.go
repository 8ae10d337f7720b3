//go:build integration

package repository

// Run with: go test -tags integration ./internal/repository/... -v

import (
	"context"
	"testing"
	"time"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	pgC, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("plantillas_test"),
		tcPostgres.WithUsername("plantillas"),
		tcPostgres.WithPassword("plantillas"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	return db
}

// At schema version 1 neither the notes column nor the zone columns exist.
func TestOrderRepo_Postgres_LegacySchemaFallbacks(t *testing.T) {
	ctx := context.Background()
	db := newPostgresDB(t)
	m, err := infra.NewMigrator(db)
	require.NoError(t, err)
	require.NoError(t, m.Migrate(1))

	repo := NewOrderRepository(db)
	c, products := sampleOrder()

	dropped, err := repo.CreateCustomer(ctx, c)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Nil(t, c.Notes)

	legacy, err := repo.CreateProducts(ctx, c.ID, products)
	require.NoError(t, err)
	assert.True(t, legacy)

	var n int64
	require.NoError(t, db.Table("product_requests").Where("customer_request_id = ?", c.ID).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestOrderRepo_Postgres_FullSchema(t *testing.T) {
	ctx := context.Background()
	db := newPostgresDB(t)
	require.NoError(t, infra.RunMigrations(db))

	repo := NewOrderRepository(db)
	c, products := sampleOrder()

	dropped, err := repo.CreateCustomer(ctx, c)
	require.NoError(t, err)
	assert.False(t, dropped)
	legacy, err := repo.CreateProducts(ctx, c.ID, products)
	require.NoError(t, err)
	assert.False(t, legacy)

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "Entregar el lunes", *got.Notes)
	require.Len(t, got.Products, 2)

	list, total, err := repo.List(ctx, OrderQuery{Search: "DIAZ", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, c.ID))
	var left int64
	require.NoError(t, db.Table("product_requests").Count(&left).Error)
	assert.Zero(t, left)
}
