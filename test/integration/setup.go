package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and
// the importer schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the importer tables.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS product (
			product_id BIGINT PRIMARY KEY,
			product_name TEXT NOT NULL,
			source TEXT,
			unit TEXT
		);

		CREATE TABLE IF NOT EXISTS product_price (
			product_id BIGINT NOT NULL REFERENCES product(product_id),
			cost_per_unit NUMERIC(12, 4) NOT NULL,
			created_when TIMESTAMP NOT NULL,
			PRIMARY KEY (product_id, created_when)
		);

		CREATE TABLE IF NOT EXISTS bill (
			bill_id BIGSERIAL PRIMARY KEY,
			bill_number TEXT,
			vendor_name TEXT,
			source TEXT NOT NULL,
			bill_date DATE,
			currency CHAR(3) NOT NULL DEFAULT 'USD',
			subtotal_amount NUMERIC(12, 2) NOT NULL,
			tax_amount NUMERIC(12, 2) NOT NULL,
			shipping_amount NUMERIC(12, 2) NOT NULL,
			total_amount NUMERIC(12, 2) NOT NULL,
			notes TEXT
		);

		CREATE TABLE IF NOT EXISTS bill_item (
			bill_item_id BIGSERIAL PRIMARY KEY,
			bill_id BIGINT NOT NULL REFERENCES bill(bill_id) ON DELETE CASCADE,
			product_id BIGINT REFERENCES product(product_id),
			product_name TEXT,
			quantity NUMERIC(12, 3) NOT NULL,
			unit TEXT,
			unit_price NUMERIC(12, 4) NOT NULL,
			line_total NUMERIC(12, 2) NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_product_price_product_id ON product_price(product_id, created_when DESC);
		CREATE INDEX IF NOT EXISTS idx_bill_item_bill_id ON bill_item(bill_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"bill_item", "bill", "product_price", "product"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
