package ordering

import (
	"context"
	"database/sql"
	"testing"
	"time"

	pgmocks "github.com/laroza/pos-api/infrastructure/database/postgres/mocks"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/infrastructure/repository/mocks"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/internal/domain"
	catalogmocks "github.com/laroza/pos-api/internal/usecases/cataloging/mocks"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	tx         *pgmocks.MockTransactor
	orders     *mocks.MockOrderRepository
	inventory  *mocks.MockInventoryRepository
	numbers    *mocks.MockDocumentNumberRepository
	activities *mocks.MockActivityRepository
	catalog    *catalogmocks.MockCataloger
	service    *Service
}

var deliveryTime = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		tx:         pgmocks.NewMockTransactor(ctrl),
		orders:     mocks.NewMockOrderRepository(ctrl),
		inventory:  mocks.NewMockInventoryRepository(ctrl),
		numbers:    mocks.NewMockDocumentNumberRepository(ctrl),
		activities: mocks.NewMockActivityRepository(ctrl),
		catalog:    catalogmocks.NewMockCataloger(ctrl),
	}

	cfg := &config.Config{Numbering: config.Numbering{OrderPrefix: "ORD-", OrderWidth: 3, OrderBase: 1}}
	f.service = NewService(f.tx, f.orders, f.inventory, f.numbers, f.activities, f.catalog, cfg).(*Service)
	f.service.now = func() time.Time { return deliveryTime }

	f.tx.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()

	return f
}

func codeOf(t *testing.T, err error) string {
	t.Helper()

	var coded apiErrors.Coded
	require.ErrorAs(t, err, &coded)
	return coded.ErrorCode()
}

var clerk = domain.Actor{EmployeeID: 3, EmployeeName: "Hadeel", Role: domain.RoleStaff, Context: domain.ContextOnline}

func orderItems() []domain.LineItem {
	return []domain.LineItem{
		{ID: 11, ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 2, UnitPrice: decimal.RequireFromString("135")},
	}
}

func storedOrder(status domain.OrderStatus, deducted bool) *domain.Order {
	return &domain.Order{
		ID:            5,
		OrderNumber:   "ORD-005",
		Status:        status,
		StockDeducted: deducted,
		TotalAmount:   decimal.RequireFromString("270"),
		Items:         orderItems(),
	}
}

func TestService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := &domain.CreateOrderRequest{
		CustomerName:  "Sara",
		Phone:         "0790000000",
		Region:        "Amman",
		Address:       "Rua 1",
		PaymentMethod: domain.PaymentCOD,
		Items:         []domain.LineItemRequest{{ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 2}},
	}

	f.catalog.EXPECT().ResolveLineItems(ctx, domain.ContextOnline, req.Items).Return(orderItems(), nil)
	f.numbers.EXPECT().Next(ctx, gomock.Any(), domain.CounterOrder).Return(int64(1), nil)
	f.orders.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, o *domain.Order) error {
			o.ID = 1
			return nil
		})
	f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, a *domain.Activity) error {
			assert.Equal(t, domain.ActivityOrderCreated, a.Type)
			assert.Equal(t, domain.ContextOnline, a.Context)
			assert.Equal(t, "Hadeel", a.EmployeeName)
			return nil
		})

	order, err := f.service.CreateOrder(ctx, clerk, req)
	require.NoError(t, err)

	assert.Equal(t, "ORD-001", order.OrderNumber)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.False(t, order.StockDeducted)
	assert.Equal(t, "270.00", order.TotalAmount.StringFixed(2))
}

func TestService_CreateOrder_Invalid(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateOrder(context.Background(), clerk, &domain.CreateOrderRequest{PaymentMethod: domain.PaymentCash})
	assert.Equal(t, apiErrors.ErrMissingRequiredData, codeOf(t, err))
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	tracking := "TRK-1"

	tests := []struct {
		name     string
		req      *domain.UpdateOrderStatusRequest
		setup    func(f *fixture)
		wantCode string
		validate func(t *testing.T, order *domain.Order)
	}{
		{
			name: "Primeira entrega baixa o estoque",
			req:  &domain.UpdateOrderStatusRequest{Status: domain.OrderDelivered},
			setup: func(f *fixture) {
				f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(storedOrder(domain.OrderOutForDelivery, false), nil)
				f.inventory.EXPECT().
					Decrement(ctx, gomock.Any(), domain.StockMovement{ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 2}, false).
					Return(nil)
				f.orders.EXPECT().UpdateStatus(ctx, gomock.Any(), gomock.Any()).Return(nil)
				f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, a *domain.Activity) error {
						assert.Equal(t, domain.ActivityStatusUpdated, a.Type)
						assert.Equal(t, true, a.Metadata["stock_deducted"])
						return nil
					})
			},
			validate: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, domain.OrderDelivered, order.Status)
				assert.True(t, order.StockDeducted)
				require.NotNil(t, order.DeliveredAt)
				assert.Equal(t, deliveryTime, *order.DeliveredAt)
			},
		},
		{
			name: "Nova entrega não baixa o estoque de novo",
			req:  &domain.UpdateOrderStatusRequest{Status: domain.OrderDelivered},
			setup: func(f *fixture) {
				f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(storedOrder(domain.OrderPending, true), nil)
				f.inventory.EXPECT().Decrement(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				f.orders.EXPECT().UpdateStatus(ctx, gomock.Any(), gomock.Any()).Return(nil)
				f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, domain.OrderDelivered, order.Status)
				assert.True(t, order.StockDeducted)
			},
		},
		{
			name: "Cancelamento guarda o rastreio sem mexer no estoque",
			req:  &domain.UpdateOrderStatusRequest{Status: domain.OrderCancelled, TrackingNumber: &tracking},
			setup: func(f *fixture) {
				f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(storedOrder(domain.OrderPending, false), nil)
				f.inventory.EXPECT().Decrement(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				f.orders.EXPECT().UpdateStatus(ctx, gomock.Any(), gomock.Any()).Return(nil)
				f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, domain.OrderCancelled, order.Status)
				require.NotNil(t, order.TrackingNumber)
				assert.Equal(t, "TRK-1", *order.TrackingNumber)
				assert.Nil(t, order.DeliveredAt)
			},
		},
		{
			name:     "Returned não pode ser definido diretamente",
			req:      &domain.UpdateOrderStatusRequest{Status: domain.OrderReturned},
			setup:    func(f *fixture) {},
			wantCode: apiErrors.ErrInvalidRequest,
		},
		{
			name:     "Status desconhecido",
			req:      &domain.UpdateOrderStatusRequest{Status: "lost"},
			setup:    func(f *fixture) {},
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name: "Pedido devolvido é terminal",
			req:  &domain.UpdateOrderStatusRequest{Status: domain.OrderPending},
			setup: func(f *fixture) {
				f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(storedOrder(domain.OrderReturned, true), nil)
			},
			wantCode: apiErrors.ErrAlreadyProcessed,
		},
		{
			name: "Pedido inexistente",
			req:  &domain.UpdateOrderStatusRequest{Status: domain.OrderCancelled},
			setup: func(f *fixture) {
				f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(nil, repository.ErrNotFound)
			},
			wantCode: apiErrors.ErrNotFound,
		},
		{
			name: "Entrega sem estoque",
			req:  &domain.UpdateOrderStatusRequest{Status: domain.OrderDelivered},
			setup: func(f *fixture) {
				f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(storedOrder(domain.OrderPending, false), nil)
				f.inventory.EXPECT().Decrement(ctx, gomock.Any(), gomock.Any(), false).
					Return(&repository.StockError{ProductID: 1, ColorName: "Red", SizeLabel: "M", Requested: 2, Available: 0})
			},
			wantCode: apiErrors.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			order, err := f.service.UpdateStatus(ctx, clerk, 5, tt.req)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, codeOf(t, err))
				assert.Nil(t, order)
				return
			}

			require.NoError(t, err)
			tt.validate(t, order)
		})
	}
}

func TestService_ListOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.service.ListOrders(ctx, domain.OrderFilter{Status: "lost"})
	assert.Equal(t, apiErrors.ErrInvalidRequest, codeOf(t, err))

	filter := domain.OrderFilter{Status: domain.OrderPending, Limit: 50}
	f.orders.EXPECT().List(ctx, filter).Return([]*domain.Order{storedOrder(domain.OrderPending, false)}, nil)

	orders, err := f.service.ListOrders(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestService_GetOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.orders.EXPECT().GetByID(ctx, int64(8)).Return(nil, repository.ErrNotFound)

	_, err := f.service.GetOrder(ctx, 8)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Equal(t, apiErrors.ErrNotFound, codeOf(t, err))
}
