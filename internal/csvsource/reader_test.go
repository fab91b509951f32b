package csvsource

import (
	"errors"
	"strings"
	"testing"

	"pricebook/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadProducts_ValidRows(t *testing.T) {
	input := strings.Join([]string{
		"product_id,product_name,source,unit,cost_per_unit",
		"101,Yukon Gold Potatoes,FarmDirect,kg,2.50",
		"102,Brisket,, lb ,\"1,234.50\"",
		"103,Olive Oil,Importer,,",
	}, "\n")

	rows, err := ReadProducts(strings.NewReader(input), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, int64(101), rows[0].ProductID)
	assert.Equal(t, "Yukon Gold Potatoes", rows[0].Name)
	require.NotNil(t, rows[0].Source)
	assert.Equal(t, "FarmDirect", *rows[0].Source)
	require.NotNil(t, rows[0].CostPerUnit)
	assert.True(t, rows[0].CostPerUnit.Equal(decimal.RequireFromString("2.50")))

	// Optional cells are trimmed; empty ones become nil.
	assert.Nil(t, rows[1].Source)
	require.NotNil(t, rows[1].Unit)
	assert.Equal(t, "lb", *rows[1].Unit)
	require.NotNil(t, rows[1].CostPerUnit)
	assert.True(t, rows[1].CostPerUnit.Equal(decimal.RequireFromString("1234.50")))

	// Blank cost means no price observation for the row.
	assert.Nil(t, rows[2].CostPerUnit)
}

func TestReadProducts_SkipsInvalidProductID(t *testing.T) {
	input := strings.Join([]string{
		"product_id,product_name",
		"abc,Bad Row",
		"7,Good Row",
		",Another Bad Row",
	}, "\n")

	rows, err := ReadProducts(strings.NewReader(input), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].ProductID)
}

func TestReadProducts_MissingColumns(t *testing.T) {
	input := "source,unit\nFarmDirect,kg\n"

	_, err := ReadProducts(strings.NewReader(input), zerolog.Nop())
	require.Error(t, err)

	var missingErr *model.MissingColumnsError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{"product_id", "product_name"}, missingErr.Columns)
}

func TestReadProducts_EmptyInput(t *testing.T) {
	_, err := ReadProducts(strings.NewReader(""), zerolog.Nop())
	assert.ErrorIs(t, err, model.ErrNoHeader)
}

func TestReadProducts_MalformedCostDefaultsToZero(t *testing.T) {
	input := "product_id,product_name,cost_per_unit\n5,Flour,not-a-number\n"

	rows, err := ReadProducts(strings.NewReader(input), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].CostPerUnit)
	assert.True(t, rows[0].CostPerUnit.IsZero())
}

func TestReadBill_ValidRows(t *testing.T) {
	input := strings.Join([]string{
		"product_name,quantity,product_price,tax_amount,total",
		"Chuck Roast,2,10.00,1.00,20.00",
		"Sea Salt,1,5.00,0.50,5.00",
	}, "\n")

	rows, err := ReadBill(strings.NewReader(input), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Chuck Roast", rows[0].ProductName)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, rows[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, rows[0].TaxAmount.Equal(decimal.RequireFromString("1.00")))
	assert.True(t, rows[0].LineTotal.Equal(decimal.RequireFromString("20.00")))
}

func TestReadBill_MalformedNumericBecomesZero(t *testing.T) {
	input := strings.Join([]string{
		"product_name,quantity,product_price,tax_amount,total",
		"Mystery Item,two,oops,,garbage",
	}, "\n")

	rows, err := ReadBill(strings.NewReader(input), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.True(t, rows[0].Quantity.IsZero())
	assert.True(t, rows[0].UnitPrice.IsZero())
	assert.True(t, rows[0].TaxAmount.IsZero())
	assert.True(t, rows[0].LineTotal.IsZero())
}

func TestReadBill_MissingColumns(t *testing.T) {
	input := "product_name,quantity\nSalt,1\n"

	_, err := ReadBill(strings.NewReader(input), zerolog.Nop())
	require.Error(t, err)

	var missingErr *model.MissingColumnsError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{"product_price", "tax_amount", "total"}, missingErr.Columns)
}

func TestParseS3Ref(t *testing.T) {
	bucket, key, err := parseS3Ref("s3://feeds/2026/products.csv")
	require.NoError(t, err)
	assert.Equal(t, "feeds", bucket)
	assert.Equal(t, "2026/products.csv", key)

	_, _, err = parseS3Ref("s3://feeds")
	assert.Error(t, err)

	_, _, err = parseS3Ref("/tmp/products.csv")
	assert.Error(t, err)
}
