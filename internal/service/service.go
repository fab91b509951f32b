// Package service holds the import business logic: price history
// reconciliation, bill ledger posting and the per-run transaction
// discipline around them.
package service

import (
	"context"
	"time"

	"pricebook/internal/csvsource"

	"github.com/shopspring/decimal"
)

// PriceOutcome is the fate of one observed price against existing history.
type PriceOutcome int

const (
	// PriceUnchanged means an observation already exists at the same
	// timestamp with the same cost.
	PriceUnchanged PriceOutcome = iota

	// PriceInserted means a new history point was written.
	PriceInserted

	// PriceCorrected means an existing observation at the same timestamp
	// was overwritten with a different cost.
	PriceCorrected
)

func (o PriceOutcome) String() string {
	switch o {
	case PriceInserted:
		return "inserted"
	case PriceCorrected:
		return "corrected"
	default:
		return "unchanged"
	}
}

// ProductImportService imports product rows and reconciles their prices in
// one atomic run.
type ProductImportService interface {
	Import(ctx context.Context, rows []csvsource.ProductRow, observedAt time.Time) (*ProductImportSummary, error)
}

// BillImportService posts a bill and its line items in one atomic run.
type BillImportService interface {
	Post(ctx context.Context, rows []csvsource.BillRow, params BillParams) (*BillImportSummary, error)
}

// ProductImportSummary reports what one product import run did.
type ProductImportSummary struct {
	Products        int
	PricesInserted  int
	PricesCorrected int
	PricesUnchanged int
	PricesSkipped   int
}

// BillParams carries the header fields supplied by the operator rather
// than the CSV.
type BillParams struct {
	VendorName *string
	Notes      *string
	Number     *string
	Date       *time.Time
	Currency   string
	Shipping   decimal.Decimal
	Source     string
}

// BillImportSummary reports what one bill posting did.
type BillImportSummary struct {
	BillID   int64
	Items    int
	Subtotal decimal.Decimal
	TaxTotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// BucketTimestamp applies the importer's timestamp-bucketing policy:
// observation timestamps are truncated to whole seconds. Two observations
// of the same product within the same second are treated as the same
// observation reissued (a correction); anything at a different second is a
// new history point.
func BucketTimestamp(t time.Time) time.Time {
	return t.Truncate(time.Second)
}
