package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a vendor bill header. The identifier is a surrogate key assigned
// by the store on insert. Bills are immutable after creation; the grand
// total is always Subtotal + TaxTotal + Shipping, computed by the poster.
type Bill struct {
	ID         int64           `db:"bill_id"`
	Number     *string         `db:"bill_number"`
	VendorName *string         `db:"vendor_name"`
	Source     string          `db:"source"`
	Date       *time.Time      `db:"bill_date"`
	Currency   string          `db:"currency"`
	Subtotal   decimal.Decimal `db:"subtotal_amount"`
	TaxTotal   decimal.Decimal `db:"tax_amount"`
	Shipping   decimal.Decimal `db:"shipping_amount"`
	Total      decimal.Decimal `db:"total_amount"`
	Notes      *string         `db:"notes"`
}

// BillItem is one line of a bill. ProductID is nullable: line items need
// not resolve to a known product at import time. LineTotal is taken as
// supplied by the source, not recomputed from Quantity * UnitPrice — the
// two may legitimately diverge due to upstream rounding or discounts.
type BillItem struct {
	BillID      int64           `db:"bill_id"`
	ProductID   *int64          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    decimal.Decimal `db:"quantity"`
	Unit        *string         `db:"unit"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	LineTotal   decimal.Decimal `db:"line_total"`
}
