package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// testPool abre el pool contra la base de integración y deja el schema limpio.
// Se salta el test si CATALOGO_TEST_DATABASE_URL no está definido.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("CATALOGO_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CATALOGO_TEST_DATABASE_URL no definido; se salta test de integración")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE products, categories RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func testRepos(t *testing.T) (*pgxpool.Pool, *postgres.ProductRepo, *postgres.CategoryRepo) {
	t.Helper()
	pool := testPool(t)
	log := logger.Nop()
	return pool, postgres.NewProductRepository(pool, log), postgres.NewCategoryRepository(pool, log)
}

func mustCategory(t *testing.T, repo *postgres.CategoryRepo, name string, order int) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name, DisplayOrder: order}
	require.NoError(t, repo.Add(context.Background(), c))
	require.NotZero(t, c.ID)
	return c
}

// mustNewProduct arma un producto en memoria sin persistirlo.
func mustNewProduct(name, skuCode, price string, stock int) *entity.Product {
	return &entity.Product{
		Name:  name,
		SKU:   skuCode,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func precio(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sku(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

func mustProduct(t *testing.T, repo *postgres.ProductRepo, name, sku, price string, stock int, categoryID *int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:       name,
		SKU:        sku,
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		CategoryID: categoryID,
	}
	require.NoError(t, repo.Add(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}
