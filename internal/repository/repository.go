// Package repository provides PostgreSQL data access for products, price
// history and the bill ledger. All mutations run inside a caller-provided
// transaction so an import run commits or rolls back as one unit.
package repository

import (
	"context"
	"time"

	"pricebook/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines product data access operations.
type ProductRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Upsert writes the product's current identity within the provided
	// transaction, creating it on first sight and overwriting name, source
	// and unit otherwise.
	Upsert(ctx context.Context, tx pgx.Tx, product *model.Product) error
}

// PriceRepository defines price history data access operations.
type PriceRepository interface {
	// GetAt retrieves the observation matching (productID, at) exactly,
	// or nil when none exists.
	GetAt(ctx context.Context, tx pgx.Tx, productID int64, at time.Time) (*model.PriceObservation, error)

	// GetLatest retrieves the most recent observation for the product by
	// timestamp descending, or nil when the product has no history.
	GetLatest(ctx context.Context, tx pgx.Tx, productID int64) (*model.PriceObservation, error)

	// Insert writes a new price observation within the provided transaction.
	Insert(ctx context.Context, tx pgx.Tx, obs *model.PriceObservation) error

	// UpdateCost corrects the cost of the observation identified by the
	// natural key (ProductID, ObservedAt).
	UpdateCost(ctx context.Context, tx pgx.Tx, obs *model.PriceObservation) error
}

// BillRepository defines bill ledger data access operations.
type BillRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateBill inserts a bill header within the provided transaction and
	// populates bill.ID with the store-generated identifier.
	CreateBill(ctx context.Context, tx pgx.Tx, bill *model.Bill) error

	// CreateBillItems inserts line items within the provided transaction.
	// The parent bill must already exist; input order is insertion order.
	CreateBillItems(ctx context.Context, tx pgx.Tx, items []model.BillItem) error
}
