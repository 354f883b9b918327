package returning

import (
	"context"
	"database/sql"
	"testing"
	"time"

	pgmocks "github.com/laroza/pos-api/infrastructure/database/postgres/mocks"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/infrastructure/repository/mocks"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	tx         *pgmocks.MockTransactor
	returns    *mocks.MockReturnRepository
	sales      *mocks.MockSaleRepository
	orders     *mocks.MockOrderRepository
	inventory  *mocks.MockInventoryRepository
	activities *mocks.MockActivityRepository
	service    *Service
}

var approvalTime = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		tx:         pgmocks.NewMockTransactor(ctrl),
		returns:    mocks.NewMockReturnRepository(ctrl),
		sales:      mocks.NewMockSaleRepository(ctrl),
		orders:     mocks.NewMockOrderRepository(ctrl),
		inventory:  mocks.NewMockInventoryRepository(ctrl),
		activities: mocks.NewMockActivityRepository(ctrl),
	}
	f.service = NewService(f.tx, f.returns, f.sales, f.orders, f.inventory, f.activities).(*Service)
	f.service.now = func() time.Time { return approvalTime }

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

var (
	manager = domain.Actor{EmployeeID: 1, EmployeeName: "Abdulrahman", Role: domain.RoleManager, Context: domain.ContextBoutique}
	staff   = domain.Actor{EmployeeID: 2, EmployeeName: "Heba", Role: domain.RoleStaff, Context: domain.ContextBoutique}
)

func id(v int64) *int64 {
	return &v
}

func mode(m domain.ExchangeMode) *domain.ExchangeMode {
	return &m
}

func deliveredOrder() *domain.Order {
	return &domain.Order{
		ID:          5,
		OrderNumber: "ORD-005",
		Status:      domain.OrderDelivered,
		Items: []domain.LineItem{
			{ID: 11, ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 2, UnitPrice: decimal.RequireFromString("135")},
		},
	}
}

func boutiqueSale() *domain.Sale {
	return &domain.Sale{
		ID:            9,
		InvoiceNumber: "7000009",
		StoreType:     domain.ContextBoutique,
		Items: []domain.LineItem{
			{ID: 21, ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 3, UnitPrice: decimal.RequireFromString("120")},
			{ID: 22, ProductID: 2, ColorName: "Blue", SizeLabel: "S", Quantity: 1, UnitPrice: decimal.RequireFromString("80")},
		},
	}
}

func TestService_CreateReturn(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *domain.CreateReturnRequest
		setup    func(f *fixture)
		wantCode string
		validate func(t *testing.T, ret *domain.ReturnExchange)
	}{
		{
			name: "Reembolso de pedido entregue inclui todos os itens",
			req:  &domain.CreateReturnRequest{Type: domain.ReturnTypeRefund, OrderID: id(5)},
			setup: func(f *fixture) {
				f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(deliveredOrder(), nil)
				f.returns.EXPECT().ReturnedQuantities(ctx, gomock.Any(), domain.SourceOrder, int64(5)).Return(map[int64]int{}, nil)
				f.returns.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, r *domain.ReturnExchange) error {
						r.ID = 3
						return nil
					})
				f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, a *domain.Activity) error {
						assert.Equal(t, domain.ActivityReturnCreated, a.Type)
						assert.Equal(t, domain.ContextOnline, a.Context)
						return nil
					})
			},
			validate: func(t *testing.T, ret *domain.ReturnExchange) {
				assert.Equal(t, domain.ReturnPending, ret.Status)
				require.Len(t, ret.Items, 1)
				assert.Equal(t, domain.ReturnItem{SourceItemID: 11, ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 2}, ret.Items[0])
			},
		},
		{
			name: "Troca parcial de venda respeita o já devolvido",
			req: &domain.CreateReturnRequest{
				Type:         domain.ReturnTypeExchange,
				ExchangeMode: mode(domain.ExchangeSizeToSize),
				SaleID:       id(9),
				Items:        []domain.ReturnItemRequest{{ItemID: 21, Quantity: 2}},
			},
			setup: func(f *fixture) {
				f.sales.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(9)).Return(boutiqueSale(), nil)
				f.returns.EXPECT().ReturnedQuantities(ctx, gomock.Any(), domain.SourceSale, int64(9)).Return(map[int64]int{21: 1}, nil)
				f.returns.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(nil)
				f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, ret *domain.ReturnExchange) {
				require.Len(t, ret.Items, 1)
				assert.Equal(t, 2, ret.Items[0].Quantity)
				assert.Equal(t, int64(21), ret.Items[0].SourceItemID)
			},
		},
		{
			name: "Quantidade acima do devolvível",
			req: &domain.CreateReturnRequest{
				Type:   domain.ReturnTypeRefund,
				SaleID: id(9),
				Items:  []domain.ReturnItemRequest{{ItemID: 21, Quantity: 2}, {ItemID: 21, Quantity: 1}},
			},
			setup: func(f *fixture) {
				f.sales.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(9)).Return(boutiqueSale(), nil)
				f.returns.EXPECT().ReturnedQuantities(ctx, gomock.Any(), domain.SourceSale, int64(9)).Return(map[int64]int{21: 1}, nil)
			},
			wantCode: apiErrors.ErrAlreadyProcessed,
		},
		{
			name: "Nada mais a devolver",
			req:  &domain.CreateReturnRequest{Type: domain.ReturnTypeRefund, OrderID: id(5)},
			setup: func(f *fixture) {
				f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(deliveredOrder(), nil)
				f.returns.EXPECT().ReturnedQuantities(ctx, gomock.Any(), domain.SourceOrder, int64(5)).Return(map[int64]int{11: 2}, nil)
			},
			wantCode: apiErrors.ErrAlreadyProcessed,
		},
		{
			name: "Item de outra venda",
			req: &domain.CreateReturnRequest{
				Type:   domain.ReturnTypeRefund,
				SaleID: id(9),
				Items:  []domain.ReturnItemRequest{{ItemID: 99, Quantity: 1}},
			},
			setup: func(f *fixture) {
				f.sales.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(9)).Return(boutiqueSale(), nil)
				f.returns.EXPECT().ReturnedQuantities(ctx, gomock.Any(), domain.SourceSale, int64(9)).Return(map[int64]int{}, nil)
			},
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name: "Pedido ainda não entregue",
			req:  &domain.CreateReturnRequest{Type: domain.ReturnTypeRefund, OrderID: id(5)},
			setup: func(f *fixture) {
				order := deliveredOrder()
				order.Status = domain.OrderOutForDelivery
				f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(order, nil)
			},
			wantCode: apiErrors.ErrConflict,
		},
		{
			name: "Venda inexistente",
			req:  &domain.CreateReturnRequest{Type: domain.ReturnTypeRefund, SaleID: id(404)},
			setup: func(f *fixture) {
				f.sales.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(404)).Return(nil, repository.ErrNotFound)
			},
			wantCode: apiErrors.ErrNotFound,
		},
		{
			name:     "Venda e pedido ao mesmo tempo",
			req:      &domain.CreateReturnRequest{Type: domain.ReturnTypeRefund, SaleID: id(9), OrderID: id(5)},
			setup:    func(f *fixture) {},
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "Sem venda nem pedido",
			req:      &domain.CreateReturnRequest{Type: domain.ReturnTypeRefund},
			setup:    func(f *fixture) {},
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "Troca sem modo",
			req:      &domain.CreateReturnRequest{Type: domain.ReturnTypeExchange, SaleID: id(9)},
			setup:    func(f *fixture) {},
			wantCode: apiErrors.ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			ret, err := f.service.CreateReturn(ctx, staff, tt.req)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, codeOf(t, err))
				assert.Nil(t, ret)
				return
			}

			require.NoError(t, err)
			tt.validate(t, ret)
		})
	}
}

func pendingRefund() *domain.ReturnExchange {
	return &domain.ReturnExchange{
		ID:      3,
		Type:    domain.ReturnTypeRefund,
		OrderID: id(5),
		Status:  domain.ReturnPending,
		Items: []domain.ReturnItem{
			{SourceItemID: 11, ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 2},
		},
	}
}

func TestService_ApproveReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("Reembolso de pedido restaura o estoque e marca o pedido", func(t *testing.T) {
		f := newFixture(t)

		f.returns.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(3)).Return(pendingRefund(), nil)
		f.inventory.EXPECT().
			Increment(ctx, gomock.Any(), domain.StockMovement{ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 2}).
			Return(nil)
		f.returns.EXPECT().Approve(ctx, gomock.Any(), int64(3), int64(1), approvalTime).Return(nil)
		f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(deliveredOrder(), nil)
		f.returns.EXPECT().RefundedQuantities(ctx, gomock.Any(), int64(5)).Return(map[int64]int{11: 2}, nil)
		f.orders.EXPECT().UpdateStatus(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, o *domain.Order) error {
				assert.Equal(t, domain.OrderReturned, o.Status)
				return nil
			})
		f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, a *domain.Activity) error {
				assert.Equal(t, domain.ActivityReturnApproved, a.Type)
				assert.Equal(t, "Abdulrahman", a.EmployeeName)
				assert.Equal(t, true, a.Metadata["order_returned"])
				return nil
			})

		ret, err := f.service.ApproveReturn(ctx, manager, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.ReturnApproved, ret.Status)
		require.NotNil(t, ret.ApprovedBy)
		assert.Equal(t, int64(1), *ret.ApprovedBy)
	})

	t.Run("Reembolso parcial mantém o pedido entregue", func(t *testing.T) {
		f := newFixture(t)

		partial := pendingRefund()
		partial.Items[0].Quantity = 1

		f.returns.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(3)).Return(partial, nil)
		f.inventory.EXPECT().
			Increment(ctx, gomock.Any(), domain.StockMovement{ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 1}).
			Return(nil)
		f.returns.EXPECT().Approve(ctx, gomock.Any(), int64(3), int64(1), approvalTime).Return(nil)
		f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(deliveredOrder(), nil)
		f.returns.EXPECT().RefundedQuantities(ctx, gomock.Any(), int64(5)).Return(map[int64]int{11: 1}, nil)
		f.orders.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, a *domain.Activity) error {
				assert.Equal(t, false, a.Metadata["order_returned"])
				return nil
			})

		_, err := f.service.ApproveReturn(ctx, manager, 3)
		require.NoError(t, err)
	})

	t.Run("Troca não altera o pedido", func(t *testing.T) {
		f := newFixture(t)

		exchange := pendingRefund()
		exchange.Type = domain.ReturnTypeExchange
		exchange.ExchangeMode = mode(domain.ExchangeColorToColor)

		f.returns.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(3)).Return(exchange, nil)
		f.inventory.EXPECT().Increment(ctx, gomock.Any(), gomock.Any()).Return(nil)
		f.returns.EXPECT().Approve(ctx, gomock.Any(), int64(3), int64(1), approvalTime).Return(nil)
		f.orders.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.service.ApproveReturn(ctx, manager, 3)
		require.NoError(t, err)
	})

	t.Run("Segunda aprovação é recusada sem restaurar estoque", func(t *testing.T) {
		f := newFixture(t)

		approved := pendingRefund()
		approved.Status = domain.ReturnApproved

		f.returns.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(3)).Return(approved, nil)
		f.inventory.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.ApproveReturn(ctx, manager, 3)
		assert.Equal(t, apiErrors.ErrAlreadyProcessed, codeOf(t, err))
		assert.ErrorIs(t, err, ErrAlreadyApproved)
	})

	t.Run("Devolução inexistente", func(t *testing.T) {
		f := newFixture(t)

		f.returns.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(3)).Return(nil, repository.ErrNotFound)

		_, err := f.service.ApproveReturn(ctx, manager, 3)
		assert.Equal(t, apiErrors.ErrNotFound, codeOf(t, err))
		assert.ErrorIs(t, err, ErrReturnNotFound)
	})
}

func TestService_CreateReturn_AfterPartialRefund(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// 1 das 2 unidades já foi reembolsada e o pedido continua entregue
	f.orders.EXPECT().GetForUpdate(ctx, gomock.Any(), int64(5)).Return(deliveredOrder(), nil)
	f.returns.EXPECT().ReturnedQuantities(ctx, gomock.Any(), domain.SourceOrder, int64(5)).Return(map[int64]int{11: 1}, nil)
	f.returns.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(nil)
	f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(nil)

	ret, err := f.service.CreateReturn(ctx, staff, &domain.CreateReturnRequest{Type: domain.ReturnTypeRefund, OrderID: id(5)})
	require.NoError(t, err)
	require.Len(t, ret.Items, 1)
	assert.Equal(t, 1, ret.Items[0].Quantity)
}

func TestService_ListReturns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.service.ListReturns(ctx, domain.ReturnFilter{Status: "rejected"})
	assert.Equal(t, apiErrors.ErrInvalidRequest, codeOf(t, err))

	f.returns.EXPECT().List(ctx, domain.ReturnFilter{Status: domain.ReturnPending, Limit: 50}).Return([]*domain.ReturnExchange{pendingRefund()}, nil)
	returns, err := f.service.ListReturns(ctx, domain.ReturnFilter{Status: domain.ReturnPending, Limit: 50})
	require.NoError(t, err)
	assert.Len(t, returns, 1)
}
