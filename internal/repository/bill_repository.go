package repository

import (
	"context"
	"fmt"

	"pricebook/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// billRepository implements the BillRepository interface using PostgreSQL.
type billRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBillRepository creates a new PostgreSQL-backed bill ledger repository.
func NewBillRepository(pool *pgxpool.Pool, logger zerolog.Logger) BillRepository {
	return &billRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "bill").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *billRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateBill inserts the bill header and populates bill.ID from the
// store-generated surrogate key.
func (r *billRepository) CreateBill(ctx context.Context, tx pgx.Tx, bill *model.Bill) error {
	query := `
		INSERT INTO bill (
			bill_number, vendor_name, source, bill_date, currency,
			subtotal_amount, tax_amount, shipping_amount, total_amount, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING bill_id
	`

	err := tx.QueryRow(ctx, query,
		bill.Number,
		bill.VendorName,
		bill.Source,
		bill.Date,
		bill.Currency,
		bill.Subtotal,
		bill.TaxTotal,
		bill.Shipping,
		bill.Total,
		bill.Notes,
	).Scan(&bill.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("source", bill.Source).
			Msg("failed to create bill")
		return fmt.Errorf("failed to create bill: %w", err)
	}

	r.logger.Debug().
		Int64("bill_id", bill.ID).
		Msg("bill created")

	return nil
}

// CreateBillItems inserts line items in input order, batched on one
// round trip.
func (r *billRepository) CreateBillItems(ctx context.Context, tx pgx.Tx, items []model.BillItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO bill_item (
			bill_id, product_id, product_name, quantity, unit, unit_price, line_total
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.BillID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.Unit,
			item.UnitPrice,
			item.LineTotal,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Int64("bill_id", items[i].BillID).
				Str("product_name", items[i].ProductName).
				Msg("failed to create bill item")
			return fmt.Errorf("failed to create bill item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("bill items created")

	return nil
}
