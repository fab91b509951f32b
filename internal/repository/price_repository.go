package repository

import (
	"context"
	"fmt"
	"time"

	"pricebook/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// priceRepository implements the PriceRepository interface using PostgreSQL.
type priceRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPriceRepository creates a new PostgreSQL-backed price history repository.
func NewPriceRepository(pool *pgxpool.Pool, logger zerolog.Logger) PriceRepository {
	return &priceRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "price").Logger(),
	}
}

// GetAt retrieves the observation matching (productID, at) exactly.
func (r *priceRepository) GetAt(ctx context.Context, tx pgx.Tx, productID int64, at time.Time) (*model.PriceObservation, error) {
	query := `
		SELECT product_id, cost_per_unit, created_when
		FROM product_price
		WHERE product_id = $1 AND created_when = $2
	`

	var obs model.PriceObservation
	err := tx.QueryRow(ctx, query, productID, at).Scan(&obs.ProductID, &obs.CostPerUnit, &obs.ObservedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Int64("product_id", productID).
			Time("observed_at", at).
			Msg("failed to query price observation")
		return nil, fmt.Errorf("failed to query price observation: %w", err)
	}

	return &obs, nil
}

// GetLatest retrieves the most recent observation for the product.
func (r *priceRepository) GetLatest(ctx context.Context, tx pgx.Tx, productID int64) (*model.PriceObservation, error) {
	query := `
		SELECT product_id, cost_per_unit, created_when
		FROM product_price
		WHERE product_id = $1
		ORDER BY created_when DESC
		LIMIT 1
	`

	var obs model.PriceObservation
	err := tx.QueryRow(ctx, query, productID).Scan(&obs.ProductID, &obs.CostPerUnit, &obs.ObservedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Int64("product_id", productID).
			Msg("failed to query latest price")
		return nil, fmt.Errorf("failed to query latest price: %w", err)
	}

	return &obs, nil
}

// Insert writes a new price observation.
func (r *priceRepository) Insert(ctx context.Context, tx pgx.Tx, obs *model.PriceObservation) error {
	query := `
		INSERT INTO product_price (product_id, cost_per_unit, created_when)
		VALUES ($1, $2, $3)
	`

	_, err := tx.Exec(ctx, query, obs.ProductID, obs.CostPerUnit, obs.ObservedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("product_id", obs.ProductID).
			Time("observed_at", obs.ObservedAt).
			Msg("failed to insert price observation")
		return fmt.Errorf("failed to insert price observation: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", obs.ProductID).
		Str("cost_per_unit", obs.CostPerUnit.String()).
		Msg("price observation inserted")

	return nil
}

// UpdateCost corrects the cost of an existing observation in place.
func (r *priceRepository) UpdateCost(ctx context.Context, tx pgx.Tx, obs *model.PriceObservation) error {
	query := `
		UPDATE product_price
		SET cost_per_unit = $1
		WHERE product_id = $2 AND created_when = $3
	`

	_, err := tx.Exec(ctx, query, obs.CostPerUnit, obs.ProductID, obs.ObservedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("product_id", obs.ProductID).
			Time("observed_at", obs.ObservedAt).
			Msg("failed to correct price observation")
		return fmt.Errorf("failed to correct price observation: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", obs.ProductID).
		Str("cost_per_unit", obs.CostPerUnit.String()).
		Msg("price observation corrected")

	return nil
}
