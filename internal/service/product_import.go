package service

import (
	"context"
	"fmt"
	"time"

	"pricebook/internal/csvsource"
	"pricebook/internal/model"
	"pricebook/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productImportService implements ProductImportService.
type productImportService struct {
	productRepo repository.ProductRepository
	policy      UpsertPolicy
	reconciler  *PriceReconciler
	logger      zerolog.Logger
}

// NewProductImportService creates a new product import service.
func NewProductImportService(
	productRepo repository.ProductRepository,
	policy UpsertPolicy,
	reconciler *PriceReconciler,
	logger zerolog.Logger,
) ProductImportService {
	return &productImportService{
		productRepo: productRepo,
		policy:      policy,
		reconciler:  reconciler,
		logger:      logger.With().Str("service", "product-import").Logger(),
	}
}

// Import upserts every row and reconciles its price, all inside a single
// transaction. Any store error rolls the whole run back. The observation
// timestamp is bucketed once for the run, so one import never fragments
// into multiple history points per product.
func (s *productImportService) Import(ctx context.Context, rows []csvsource.ProductRow, observedAt time.Time) (*ProductImportSummary, error) {
	logger := s.logger.With().Str("run_id", uuid.NewString()).Logger()

	if len(rows) == 0 {
		logger.Warn().Msg("no valid product rows to import")
		return &ProductImportSummary{}, nil
	}

	observedAt = BucketTimestamp(observedAt)

	tx, err := s.productRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to import products: %w", err)
	}

	// Ensure the transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	summary := &ProductImportSummary{}
	for _, row := range rows {
		product := &model.Product{
			ID:     row.ProductID,
			Name:   row.Name,
			Source: row.Source,
			Unit:   row.Unit,
		}

		if err = s.policy.Apply(ctx, tx, product); err != nil {
			logger.Error().Err(err).Int64("product_id", row.ProductID).Msg("product upsert failed")
			return nil, fmt.Errorf("failed to import products: %w", err)
		}
		summary.Products++

		// Rows without a cost update the product only.
		if row.CostPerUnit == nil {
			continue
		}

		if row.CostPerUnit.IsNegative() {
			logger.Warn().
				Int64("product_id", row.ProductID).
				Str("cost_per_unit", row.CostPerUnit.String()).
				Msg("negative cost, skipping price observation")
			summary.PricesSkipped++
			continue
		}

		var outcome PriceOutcome
		outcome, err = s.reconciler.Reconcile(ctx, tx, row.ProductID, *row.CostPerUnit, observedAt)
		if err != nil {
			logger.Error().Err(err).Int64("product_id", row.ProductID).Msg("price reconciliation failed")
			return nil, fmt.Errorf("failed to import products: %w", err)
		}

		switch outcome {
		case PriceInserted:
			summary.PricesInserted++
		case PriceCorrected:
			summary.PricesCorrected++
		case PriceUnchanged:
			summary.PricesUnchanged++
		}
	}

	if err = tx.Commit(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to import products: %w", err)
	}

	logger.Info().
		Int("products", summary.Products).
		Int("prices_inserted", summary.PricesInserted).
		Int("prices_corrected", summary.PricesCorrected).
		Int("prices_unchanged", summary.PricesUnchanged).
		Int("prices_skipped", summary.PricesSkipped).
		Msg("product import committed")

	return summary, nil
}
