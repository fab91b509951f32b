package service

import (
	"context"
	"time"

	"pricebook/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Upsert(ctx context.Context, tx pgx.Tx, product *model.Product) error {
	args := m.Called(ctx, tx, product)
	return args.Error(0)
}

// MockPriceRepository is a mock implementation of repository.PriceRepository.
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) GetAt(ctx context.Context, tx pgx.Tx, productID int64, at time.Time) (*model.PriceObservation, error) {
	args := m.Called(ctx, tx, productID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PriceObservation), args.Error(1)
}

func (m *MockPriceRepository) GetLatest(ctx context.Context, tx pgx.Tx, productID int64) (*model.PriceObservation, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PriceObservation), args.Error(1)
}

func (m *MockPriceRepository) Insert(ctx context.Context, tx pgx.Tx, obs *model.PriceObservation) error {
	args := m.Called(ctx, tx, obs)
	return args.Error(0)
}

func (m *MockPriceRepository) UpdateCost(ctx context.Context, tx pgx.Tx, obs *model.PriceObservation) error {
	args := m.Called(ctx, tx, obs)
	return args.Error(0)
}

// MockBillRepository is a mock implementation of repository.BillRepository.
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillRepository) CreateBill(ctx context.Context, tx pgx.Tx, bill *model.Bill) error {
	args := m.Called(ctx, tx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) CreateBillItems(ctx context.Context, tx pgx.Tx, items []model.BillItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
