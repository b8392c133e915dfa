package service

import (
	"context"
	"errors"
	"testing"

	"autokit/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) InsertMany(ctx context.Context, products []model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Insert(ctx context.Context, order *model.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func testProduct(title string, price float64) *model.Product {
	return &model.Product{
		ID:       primitive.NewObjectID(),
		Title:    title,
		Slug:     title,
		Price:    price,
		Category: "LED Poster",
		Image:    "https://example.com/" + title + ".jpg",
		InStock:  true,
	}
}

func testRequest(items ...model.CartItem) *model.OrderRequest {
	return &model.OrderRequest{
		Items: items,
		Customer: model.Customer{
			Name:         "Jane Doe",
			Email:        "jane@example.com",
			AddressLine1: "1 Main Street",
			City:         "Springfield",
			State:        "IL",
			PostalCode:   "62701",
			Country:      "US",
		},
	}
}

func TestOrderService_Create_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	productRepo.On("FindByID", ctx, "p1").Return(testProduct("Neon Drive", 89.0), nil)

	req := testRequest(model.CartItem{ProductID: "p1", Quantity: 2})

	var persisted *model.Order
	orderRepo.On("Insert", ctx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*model.Order)
		}).
		Return("665f1c0aa1b2c3d4e5f60718", nil)

	svc := NewOrderService(orderRepo, productRepo, logger)
	receipt, err := svc.Create(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "665f1c0aa1b2c3d4e5f60718", receipt.OrderID)
	assert.Equal(t, 178.00, receipt.Total)
	assert.Equal(t, model.OrderStatusPending, receipt.Status)

	require.NotNil(t, persisted)
	assert.Equal(t, model.OrderStatusPending, persisted.Status)
	assert.Equal(t, 178.00, persisted.Subtotal)
	assert.Equal(t, 0.0, persisted.Shipping)
	assert.Equal(t, 178.00, persisted.Total)
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, "Neon Drive", persisted.Items[0].Title)
	assert.Equal(t, 89.0, persisted.Items[0].Price)
	assert.Equal(t, 2, persisted.Items[0].Quantity)

	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_Create_PreservesOrderAndMultiplicity(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	productRepo.On("FindByID", ctx, "p1").Return(testProduct("Poster A", 10.0), nil)
	productRepo.On("FindByID", ctx, "p2").Return(testProduct("Poster B", 20.0), nil)

	// p1 appears twice; lines must not be merged or reordered.
	req := testRequest(
		model.CartItem{ProductID: "p1", Quantity: 1},
		model.CartItem{ProductID: "p2", Quantity: 3},
		model.CartItem{ProductID: "p1", Quantity: 2},
	)

	var persisted *model.Order
	orderRepo.On("Insert", ctx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*model.Order)
		}).
		Return("665f1c0aa1b2c3d4e5f60719", nil)

	svc := NewOrderService(orderRepo, productRepo, logger)
	_, err := svc.Create(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.Len(t, persisted.Items, 3)
	assert.Equal(t, "p1", persisted.Items[0].ProductID)
	assert.Equal(t, 1, persisted.Items[0].Quantity)
	assert.Equal(t, "p2", persisted.Items[1].ProductID)
	assert.Equal(t, 3, persisted.Items[1].Quantity)
	assert.Equal(t, "p1", persisted.Items[2].ProductID)
	assert.Equal(t, 2, persisted.Items[2].Quantity)

	// 10 + 60 + 20
	assert.Equal(t, 90.00, persisted.Subtotal)

	productRepo.AssertNumberOfCalls(t, "FindByID", 3)
}

func TestOrderService_Create_EmptyCart(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	svc := NewOrderService(orderRepo, productRepo, logger)
	receipt, err := svc.Create(ctx, testRequest())

	require.ErrorIs(t, err, model.ErrEmptyCart)
	assert.Nil(t, receipt)

	// Empty cart fails before any store lookup.
	productRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestOrderService_Create_NilRequest(t *testing.T) {
	svc := NewOrderService(new(MockOrderRepository), new(MockProductRepository), zerolog.Nop())

	receipt, err := svc.Create(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, receipt)
}

func TestOrderService_Create_InvalidProduct(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	productRepo.On("FindByID", ctx, "p1").Return(testProduct("Poster A", 89.0), nil)
	productRepo.On("FindByID", ctx, "bad-id").Return(nil, nil)

	req := testRequest(
		model.CartItem{ProductID: "p1", Quantity: 1},
		model.CartItem{ProductID: "bad-id", Quantity: 1},
	)

	svc := NewOrderService(orderRepo, productRepo, logger)
	receipt, err := svc.Create(ctx, req)

	require.Error(t, err)
	assert.Nil(t, receipt)

	var invalidProduct *model.InvalidProductError
	require.ErrorAs(t, err, &invalidProduct)
	assert.Equal(t, "bad-id", invalidProduct.ProductID)
	assert.Equal(t, "Invalid product: bad-id", err.Error())

	// All-or-nothing: no partial order reaches the store.
	orderRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestOrderService_Create_ResolutionFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	storeErr := errors.New("connection reset")
	productRepo.On("FindByID", ctx, "p1").Return(nil, storeErr)

	svc := NewOrderService(orderRepo, productRepo, logger)
	receipt, err := svc.Create(ctx, testRequest(model.CartItem{ProductID: "p1", Quantity: 1}))

	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, storeErr)
	orderRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestOrderService_Create_PersistFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	productRepo.On("FindByID", ctx, "p1").Return(testProduct("Poster A", 10.0), nil)

	insertErr := errors.New("write concern failure")
	orderRepo.On("Insert", ctx, mock.AnythingOfType("*model.Order")).Return("", insertErr)

	svc := NewOrderService(orderRepo, productRepo, logger)
	receipt, err := svc.Create(ctx, testRequest(model.CartItem{ProductID: "p1", Quantity: 1}))

	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, insertErr)
}

func TestOrderService_Create_ShippingIncluded(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	productRepo.On("FindByID", ctx, "p1").Return(testProduct("Poster A", 89.0), nil)

	req := testRequest(model.CartItem{ProductID: "p1", Quantity: 1})
	req.Shipping = 12.5

	var persisted *model.Order
	orderRepo.On("Insert", ctx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*model.Order)
		}).
		Return("665f1c0aa1b2c3d4e5f60720", nil)

	svc := NewOrderService(orderRepo, productRepo, logger)
	receipt, err := svc.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 101.50, receipt.Total)
	assert.Equal(t, 12.5, persisted.Shipping)
}

func TestComputeTotals(t *testing.T) {
	line := func(price float64, qty int) model.OrderLine {
		return model.OrderLine{Price: price, Quantity: qty}
	}

	tests := []struct {
		name             string
		lines            []model.OrderLine
		shipping         float64
		expectedSubtotal float64
		expectedTotal    float64
	}{
		{
			name:             "No lines",
			lines:            nil,
			shipping:         0,
			expectedSubtotal: 0,
			expectedTotal:    0,
		},
		{
			name:             "Single line, no shipping",
			lines:            []model.OrderLine{line(89.0, 2)},
			shipping:         0,
			expectedSubtotal: 178.00,
			expectedTotal:    178.00,
		},
		{
			name:             "Multiple lines with shipping",
			lines:            []model.OrderLine{line(89.0, 1), line(59.0, 2)},
			shipping:         15.0,
			expectedSubtotal: 207.00,
			expectedTotal:    222.00,
		},
		{
			name:             "Fractional prices round to 2 places",
			lines:            []model.OrderLine{line(19.995, 1)},
			shipping:         0,
			expectedSubtotal: 20.00,
			expectedTotal:    20.00,
		},
		{
			name:             "Float accumulation rounds cleanly",
			lines:            []model.OrderLine{line(0.1, 1), line(0.2, 1)},
			shipping:         0,
			expectedSubtotal: 0.30,
			expectedTotal:    0.30,
		},
		{
			name:             "Fractional shipping rounds in total",
			lines:            []model.OrderLine{line(10.00, 1)},
			shipping:         4.999,
			expectedSubtotal: 10.00,
			expectedTotal:    15.00,
		},
		{
			name:             "Negative shipping is taken as given",
			lines:            []model.OrderLine{line(100.00, 1)},
			shipping:         -10.0,
			expectedSubtotal: 100.00,
			expectedTotal:    90.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, total := computeTotals(tt.lines, tt.shipping)

			assert.Equal(t, tt.expectedSubtotal, subtotal)
			assert.Equal(t, tt.expectedTotal, total)

			// Total is always the rounded subtotal plus shipping,
			// rounded again.
			assert.Equal(t, round2(subtotal+tt.shipping), total)
		})
	}
}
