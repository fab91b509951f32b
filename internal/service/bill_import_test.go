package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pricebook/internal/csvsource"
	"pricebook/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func billRows() []csvsource.BillRow {
	return []csvsource.BillRow{
		{ProductName: "Chuck Roast", Quantity: dec("2"), UnitPrice: dec("10.00"), TaxAmount: dec("1.00"), LineTotal: dec("20.00")},
		{ProductName: "Sea Salt", Quantity: dec("1"), UnitPrice: dec("5.00"), TaxAmount: dec("0.50"), LineTotal: dec("5.00")},
	}
}

func TestBillImport_ComputesBalancedTotals(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	billRepo := new(MockBillRepository)
	tx := new(MockTx)
	svc := NewBillImportService(billRepo, logger)

	vendor := "Restaurant Depot"
	params := BillParams{
		VendorName: &vendor,
		Currency:   "USD",
		Shipping:   dec("3.00"),
		Source:     "bills/2026-08.csv",
	}

	billRepo.On("BeginTx", ctx).Return(tx, nil)
	billRepo.On("CreateBill", ctx, tx, mock.MatchedBy(func(b *model.Bill) bool {
		return b.Subtotal.Equal(dec("25.00")) &&
			b.TaxTotal.Equal(dec("1.50")) &&
			b.Shipping.Equal(dec("3.00")) &&
			b.Total.Equal(dec("29.50")) &&
			b.Currency == "USD" &&
			b.Source == "bills/2026-08.csv"
	})).Run(func(args mock.Arguments) {
		args.Get(2).(*model.Bill).ID = 42
	}).Return(nil)
	billRepo.On("CreateBillItems", ctx, tx, mock.MatchedBy(func(items []model.BillItem) bool {
		if len(items) != 2 {
			return false
		}
		// Line totals are taken as supplied, not recomputed, and every
		// item references the generated bill id.
		return items[0].BillID == 42 && items[1].BillID == 42 &&
			items[0].LineTotal.Equal(dec("20.00")) &&
			items[1].LineTotal.Equal(dec("5.00")) &&
			items[0].ProductID == nil && items[1].ProductID == nil
	})).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	summary, err := svc.Post(ctx, billRows(), params)
	require.NoError(t, err)

	assert.Equal(t, int64(42), summary.BillID)
	assert.Equal(t, 2, summary.Items)
	assert.True(t, summary.Subtotal.Equal(dec("25.00")))
	assert.True(t, summary.TaxTotal.Equal(dec("1.50")))
	assert.True(t, summary.Total.Equal(dec("29.50")))

	billRepo.AssertExpectations(t)
}

func TestBillImport_HeaderInsertedBeforeItems(t *testing.T) {
	ctx := context.Background()

	billRepo := new(MockBillRepository)
	tx := new(MockTx)
	svc := NewBillImportService(billRepo, zerolog.Nop())

	headerDone := false
	billRepo.On("BeginTx", ctx).Return(tx, nil)
	billRepo.On("CreateBill", ctx, tx, mock.AnythingOfType("*model.Bill")).Run(func(args mock.Arguments) {
		args.Get(2).(*model.Bill).ID = 7
		headerDone = true
	}).Return(nil)
	billRepo.On("CreateBillItems", ctx, tx, mock.AnythingOfType("[]model.BillItem")).Run(func(args mock.Arguments) {
		assert.True(t, headerDone, "items must not be inserted before the header")
	}).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	_, err := svc.Post(ctx, billRows(), BillParams{Currency: "USD", Shipping: decimal.Zero, Source: "x.csv"})
	require.NoError(t, err)
}

func TestBillImport_ItemFailureRollsBackWholeBill(t *testing.T) {
	ctx := context.Background()

	billRepo := new(MockBillRepository)
	tx := new(MockTx)
	svc := NewBillImportService(billRepo, zerolog.Nop())

	storeErr := errors.New("connection reset")

	billRepo.On("BeginTx", ctx).Return(tx, nil)
	billRepo.On("CreateBill", ctx, tx, mock.AnythingOfType("*model.Bill")).Run(func(args mock.Arguments) {
		args.Get(2).(*model.Bill).ID = 9
	}).Return(nil)
	billRepo.On("CreateBillItems", ctx, tx, mock.AnythingOfType("[]model.BillItem")).Return(storeErr)
	tx.On("Rollback", ctx).Return(nil)

	summary, err := svc.Post(ctx, billRows(), BillParams{Currency: "USD", Shipping: decimal.Zero, Source: "x.csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, summary)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestBillImport_EmptyBillStillPostsHeader(t *testing.T) {
	ctx := context.Background()

	billRepo := new(MockBillRepository)
	tx := new(MockTx)
	svc := NewBillImportService(billRepo, zerolog.Nop())

	billRepo.On("BeginTx", ctx).Return(tx, nil)
	billRepo.On("CreateBill", ctx, tx, mock.MatchedBy(func(b *model.Bill) bool {
		return b.Subtotal.IsZero() && b.TaxTotal.IsZero() && b.Total.Equal(dec("1.25"))
	})).Return(nil)
	billRepo.On("CreateBillItems", ctx, tx, mock.MatchedBy(func(items []model.BillItem) bool {
		return len(items) == 0
	})).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	summary, err := svc.Post(ctx, nil, BillParams{Currency: "USD", Shipping: dec("1.25"), Source: "x.csv"})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Items)
}

func TestBucketTimestamp(t *testing.T) {
	at := time.Date(2026, 8, 14, 10, 30, 15, 987654321, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 14, 10, 30, 15, 0, time.UTC), BucketTimestamp(at))
}
