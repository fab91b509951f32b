package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a commercial good in the catalogue. The identifier is
// externally supplied by the source feed, never generated. Name, source and
// unit are last-write-wins on re-import.
type Product struct {
	ID     int64   `db:"product_id"`
	Name   string  `db:"product_name"`
	Source *string `db:"source"`
	Unit   *string `db:"unit"`
}

// PriceObservation is one recorded (product, cost, time) fact in price
// history. (ProductID, ObservedAt) is the natural key: at most one
// observation exists per pair, and a second write at the same timestamp is
// a correction of the existing record, not a new history point.
type PriceObservation struct {
	ProductID   int64           `db:"product_id"`
	CostPerUnit decimal.Decimal `db:"cost_per_unit"`
	ObservedAt  time.Time       `db:"created_when"`
}
