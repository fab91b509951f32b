package service

import (
	"context"
	"fmt"
	"time"

	"pricebook/internal/model"
	"pricebook/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PriceReconciler decides the fate of one (product, cost, timestamp)
// triple against existing history. Exact timestamp equality is the sole
// trigger for correction vs. insertion; callers control granularity via
// BucketTimestamp.
type PriceReconciler struct {
	prices repository.PriceRepository
	logger zerolog.Logger
}

// NewPriceReconciler creates a reconciler over the given price history.
func NewPriceReconciler(prices repository.PriceRepository, logger zerolog.Logger) *PriceReconciler {
	return &PriceReconciler{
		prices: prices,
		logger: logger.With().Str("component", "price-reconciler").Logger(),
	}
}

// Reconcile looks up the observation at (productID, observedAt) exactly.
// An existing observation with a different cost is corrected in place; an
// equal cost is a no-op. When none exists a new history point is inserted,
// logging the previous latest cost for the old→new trail.
func (r *PriceReconciler) Reconcile(ctx context.Context, tx pgx.Tx, productID int64, cost decimal.Decimal, observedAt time.Time) (PriceOutcome, error) {
	existing, err := r.prices.GetAt(ctx, tx, productID, observedAt)
	if err != nil {
		return PriceUnchanged, fmt.Errorf("price reconciliation failed for product %d: %w", productID, err)
	}

	if existing != nil {
		if existing.CostPerUnit.Equal(cost) {
			r.logger.Debug().
				Int64("product_id", productID).
				Str("cost_per_unit", cost.String()).
				Msg("price unchanged")
			return PriceUnchanged, nil
		}

		obs := &model.PriceObservation{
			ProductID:   productID,
			CostPerUnit: cost,
			ObservedAt:  observedAt,
		}
		if err := r.prices.UpdateCost(ctx, tx, obs); err != nil {
			return PriceUnchanged, fmt.Errorf("price correction failed for product %d: %w", productID, err)
		}

		r.logger.Info().
			Int64("product_id", productID).
			Str("old_cost", existing.CostPerUnit.String()).
			Str("new_cost", cost.String()).
			Time("observed_at", observedAt).
			Msg("price corrected in place")
		return PriceCorrected, nil
	}

	// Latest price is fetched purely for the old→new log line.
	latest, err := r.prices.GetLatest(ctx, tx, productID)
	if err != nil {
		return PriceUnchanged, fmt.Errorf("price reconciliation failed for product %d: %w", productID, err)
	}

	obs := &model.PriceObservation{
		ProductID:   productID,
		CostPerUnit: cost,
		ObservedAt:  observedAt,
	}
	if err := r.prices.Insert(ctx, tx, obs); err != nil {
		return PriceUnchanged, fmt.Errorf("price insertion failed for product %d: %w", productID, err)
	}

	event := r.logger.Info().
		Int64("product_id", productID).
		Str("new_cost", cost.String()).
		Time("observed_at", observedAt)
	if latest != nil {
		event = event.Str("old_cost", latest.CostPerUnit.String())
	}
	event.Msg("price history point inserted")

	return PriceInserted, nil
}
