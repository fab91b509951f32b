package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"pricebook/internal/model"
	"pricebook/internal/numeric"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Required header columns per feed type.
var (
	productRequiredColumns = []string{"product_id", "product_name"}
	billRequiredColumns    = []string{"product_name", "quantity", "product_price", "tax_amount", "total"}
)

// ProductRow is one cleaned row of a product feed. CostPerUnit is nil when
// the cell was blank or absent; such rows update the product but never
// touch price history.
type ProductRow struct {
	ProductID   int64
	Name        string
	Source      *string
	Unit        *string
	CostPerUnit *decimal.Decimal
}

// BillRow is one cleaned line item of a bill feed. Numeric cells that were
// blank or malformed are zero.
type BillRow struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxAmount   decimal.Decimal
	LineTotal   decimal.Decimal
}

// ReadProducts parses a product CSV stream. The header must contain
// product_id and product_name; a missing header or missing required
// columns abort before any row is returned. Rows with a non-integer
// product_id are skipped with a warning.
func ReadProducts(r io.Reader, logger zerolog.Logger) ([]ProductRow, error) {
	logger = logger.With().Str("component", "product-reader").Logger()

	header, records, err := readAll(r, productRequiredColumns)
	if err != nil {
		return nil, err
	}

	var rows []ProductRow
	for _, record := range records {
		idText := cell(record, header, "product_id")
		productID, err := strconv.ParseInt(idText, 10, 64)
		if err != nil {
			logger.Warn().
				Str("product_id", idText).
				Msg("invalid product_id, skipping row")
			continue
		}

		row := ProductRow{
			ProductID: productID,
			Name:      cell(record, header, "product_name"),
			Source:    optionalCell(record, header, "source"),
			Unit:      optionalCell(record, header, "unit"),
		}

		if costText := cell(record, header, "cost_per_unit"); costText != "" {
			cost := numeric.Parse(costText, decimal.Zero)
			row.CostPerUnit = &cost
		}

		rows = append(rows, row)
	}

	logger.Debug().Int("rows", len(rows)).Msg("product CSV parsed")

	return rows, nil
}

// ReadBill parses a bill CSV stream. All five columns are required;
// malformed numeric cells silently become zero (spec: dirty upstream data
// never aborts a bill row).
func ReadBill(r io.Reader, logger zerolog.Logger) ([]BillRow, error) {
	logger = logger.With().Str("component", "bill-reader").Logger()

	header, records, err := readAll(r, billRequiredColumns)
	if err != nil {
		return nil, err
	}

	rows := make([]BillRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, BillRow{
			ProductName: cell(record, header, "product_name"),
			Quantity:    numeric.Parse(cell(record, header, "quantity"), decimal.Zero),
			UnitPrice:   numeric.Parse(cell(record, header, "product_price"), decimal.Zero),
			TaxAmount:   numeric.Parse(cell(record, header, "tax_amount"), decimal.Zero),
			LineTotal:   numeric.Parse(cell(record, header, "total"), decimal.Zero),
		})
	}

	logger.Debug().Int("rows", len(rows)).Msg("bill CSV parsed")

	return rows, nil
}

// readAll reads the header and all data records, validating that every
// required column is present. Missing columns are reported together.
func readAll(r io.Reader, required []string) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRecord, err := reader.Read()
	if err == io.EOF {
		return nil, nil, model.ErrNoHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	header := make(map[string]int, len(headerRecord))
	for i, name := range headerRecord {
		header[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := header[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, nil, &model.MissingColumnsError{Columns: missing}
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		records = append(records, record)
	}

	return header, records, nil
}

// cell returns the trimmed value of the named column, or "" when the
// column is absent or the record is short.
func cell(record []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// optionalCell is like cell but maps empty values to nil.
func optionalCell(record []string, header map[string]int, name string) *string {
	value := cell(record, header, name)
	if value == "" {
		return nil
	}
	return &value
}
