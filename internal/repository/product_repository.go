package repository

import (
	"context"
	"fmt"

	"pricebook/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *productRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Upsert writes the product's current identity. Last writer wins on name,
// source and unit.
func (r *productRepository) Upsert(ctx context.Context, tx pgx.Tx, product *model.Product) error {
	query := `
		INSERT INTO product (product_id, product_name, source, unit)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			source = EXCLUDED.source,
			unit = EXCLUDED.unit
	`

	_, err := tx.Exec(ctx, query, product.ID, product.Name, product.Source, product.Unit)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("product_id", product.ID).
			Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product %d: %w", product.ID, err)
	}

	r.logger.Debug().
		Int64("product_id", product.ID).
		Str("product_name", product.Name).
		Msg("product upserted")

	return nil
}
