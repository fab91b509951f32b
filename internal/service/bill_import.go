package service

import (
	"context"
	"fmt"

	"pricebook/internal/csvsource"
	"pricebook/internal/model"
	"pricebook/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// billImportService implements BillImportService.
type billImportService struct {
	billRepo repository.BillRepository
	logger   zerolog.Logger
}

// NewBillImportService creates a new bill import service.
func NewBillImportService(billRepo repository.BillRepository, logger zerolog.Logger) BillImportService {
	return &billImportService{
		billRepo: billRepo,
		logger:   logger.With().Str("service", "bill-import").Logger(),
	}
}

// Post aggregates the line items and persists the bill header plus its
// items as one atomic unit. The subtotal is Σ quantity × unit price — a
// deliberately distinct figure from the sum of supplied line totals — and
// the grand total is subtotal + tax + shipping, never caller-supplied.
// The header insert completes first so every item references a valid
// bill_id; items are inserted in input order with product_id left NULL.
func (s *billImportService) Post(ctx context.Context, rows []csvsource.BillRow, params BillParams) (*BillImportSummary, error) {
	logger := s.logger.With().Str("run_id", uuid.NewString()).Logger()

	bill := &model.Bill{
		Number:     params.Number,
		VendorName: params.VendorName,
		Source:     params.Source,
		Date:       params.Date,
		Currency:   params.Currency,
		Shipping:   params.Shipping,
		Notes:      params.Notes,
	}

	items := make([]model.BillItem, 0, len(rows))
	for _, row := range rows {
		bill.Subtotal = bill.Subtotal.Add(row.Quantity.Mul(row.UnitPrice))
		bill.TaxTotal = bill.TaxTotal.Add(row.TaxAmount)

		items = append(items, model.BillItem{
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			LineTotal:   row.LineTotal,
		})
	}
	bill.Total = bill.Subtotal.Add(bill.TaxTotal).Add(bill.Shipping)

	tx, err := s.billRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to post bill: %w", err)
	}

	// Ensure the transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.billRepo.CreateBill(ctx, tx, bill); err != nil {
		logger.Error().Err(err).Str("source", bill.Source).Msg("failed to create bill header")
		return nil, fmt.Errorf("failed to post bill: %w", err)
	}

	for i := range items {
		items[i].BillID = bill.ID
	}

	if err = s.billRepo.CreateBillItems(ctx, tx, items); err != nil {
		logger.Error().
			Err(err).
			Int64("bill_id", bill.ID).
			Int("item_count", len(items)).
			Msg("failed to create bill items")
		return nil, fmt.Errorf("failed to post bill: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		logger.Error().Err(err).Int64("bill_id", bill.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to post bill: %w", err)
	}

	logger.Info().
		Int64("bill_id", bill.ID).
		Int("item_count", len(items)).
		Str("subtotal", bill.Subtotal.String()).
		Str("tax", bill.TaxTotal.String()).
		Str("total", bill.Total.String()).
		Msg("bill posted")

	return &BillImportSummary{
		BillID:   bill.ID,
		Items:    len(items),
		Subtotal: bill.Subtotal,
		TaxTotal: bill.TaxTotal,
		Shipping: bill.Shipping,
		Total:    bill.Total,
	}, nil
}
