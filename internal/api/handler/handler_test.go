package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/laroza/pos-api/internal/api/handler/router"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/authenticating"
	auditmocks "github.com/laroza/pos-api/internal/usecases/auditing/mocks"
	authmocks "github.com/laroza/pos-api/internal/usecases/authenticating/mocks"
	"github.com/laroza/pos-api/internal/usecases/cataloging"
	catalogmocks "github.com/laroza/pos-api/internal/usecases/cataloging/mocks"
	orderingmocks "github.com/laroza/pos-api/internal/usecases/ordering/mocks"
	"github.com/laroza/pos-api/internal/usecases/reporting"
	reportingmocks "github.com/laroza/pos-api/internal/usecases/reporting/mocks"
	"github.com/laroza/pos-api/internal/usecases/returning"
	returningmocks "github.com/laroza/pos-api/internal/usecases/returning/mocks"
	"github.com/laroza/pos-api/internal/usecases/selling"
	sellingmocks "github.com/laroza/pos-api/internal/usecases/selling/mocks"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testMaxUpload = 1024

var (
	managerClaims = &domain.Claims{EmployeeID: 1, EmployeeName: "Abdulrahman", EmployeeRole: domain.RoleManager, Context: domain.ContextBoutique}
	staffClaims   = &domain.Claims{EmployeeID: 2, EmployeeName: "Heba", EmployeeRole: domain.RoleStaff, Context: domain.ContextOnline}
)

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync()        { f.triggered++ }
func (f *fakeCronJob) GetStatus() map[string]any { return map[string]any{"sync_running": false} }

type fixture struct {
	auth     *authmocks.MockAuthenticator
	catalog  *catalogmocks.MockCataloger
	seller   *sellingmocks.MockSeller
	orderer  *orderingmocks.MockOrderer
	returner *returningmocks.MockReturner
	reporter *reportingmocks.MockReporter
	auditor  *auditmocks.MockAuditor
	cron     *fakeCronJob
	handler  http.Handler
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		auth:     authmocks.NewMockAuthenticator(ctrl),
		catalog:  catalogmocks.NewMockCataloger(ctrl),
		seller:   sellingmocks.NewMockSeller(ctrl),
		orderer:  orderingmocks.NewMockOrderer(ctrl),
		returner: returningmocks.NewMockReturner(ctrl),
		reporter: reportingmocks.NewMockReporter(ctrl),
		auditor:  auditmocks.NewMockAuditor(ctrl),
		cron:     &fakeCronJob{},
	}

	f.handler = router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Employees(f.auth)...),
		router.WithRoutes(Products(f.catalog, testMaxUpload)...),
		router.WithRoutes(Sales(f.seller)...),
		router.WithRoutes(Orders(f.orderer)...),
		router.WithRoutes(Returns(f.returner)...),
		router.WithRoutes(Activities(f.auditor)...),
		router.WithRoutes(Reports(f.reporter)...),
		router.WithRoutes(CronJobs(CronJobServices{LowStockAlert: f.cron})...),
	)
	return f
}

func (f *fixture) do(method, path string, body io.Reader, claims *domain.Claims, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) doJSON(method, path, body string, claims *domain.Claims) *httptest.ResponseRecorder {
	return f.do(method, path, strings.NewReader(body), claims, "application/json")
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr), rec.Body.String())
	return apiErr
}

func TestCreateSale(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		claims     *domain.Claims
		setup      func(f *fixture)
		wantStatus int
		wantCode   string
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Venda criada com número de fatura",
			body:   `{"payment_method":"visa","tax_applied":true,"items":[{"product_id":1,"color_name":"Red","size_label":"M","quantity":3}]}`,
			claims: managerClaims,
			setup: func(f *fixture) {
				f.seller.EXPECT().CreateSale(gomock.Any(), managerClaims.Actor(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ domain.Actor, req *domain.CreateSaleRequest) (*domain.Sale, error) {
						assert.Equal(t, domain.PaymentMethod("visa"), req.PaymentMethod)
						require.Len(t, req.Items, 1)
						assert.Equal(t, 3, req.Items[0].Quantity)
						return &domain.Sale{ID: 10, InvoiceNumber: "7000001", TotalAmount: decimal.RequireFromString("315")}, nil
					})
			},
			wantStatus: http.StatusCreated,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), `"invoice_number":"7000001"`)
			},
		},
		{
			name:   "Estoque insuficiente retorna 409 com detalhes",
			body:   `{"payment_method":"cash","items":[{"product_id":1,"color_name":"Red","size_label":"M","quantity":30}]}`,
			claims: staffClaims,
			setup: func(f *fixture) {
				f.seller.EXPECT().CreateSale(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, selling.NewSellingError(selling.ErrInsufficientStock, apiErrors.ErrInsufficientStock, map[string]any{"requested": 30, "available": 7}))
			},
			wantStatus: http.StatusConflict,
			wantCode:   apiErrors.ErrInsufficientStock,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), `"available":7`)
			},
		},
		{
			name:       "JSON malformado",
			body:       `{"payment_method":`,
			claims:     staffClaims,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:       "Sem sessão",
			body:       `{}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:   "Erro de banco não expõe a causa",
			body:   `{"payment_method":"cash","items":[{"product_id":1,"color_name":"Red","size_label":"M","quantity":1}]}`,
			claims: staffClaims,
			setup: func(f *fixture) {
				f.seller.EXPECT().CreateSale(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, selling.NewSellingError(io.ErrUnexpectedEOF, apiErrors.ErrDatabaseOperation, nil))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrDatabaseOperation,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotContains(t, rec.Body.String(), "unexpected EOF")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			rec := f.doJSON(http.MethodPost, "/api/sales", tt.body, tt.claims)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
			}
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestListSales(t *testing.T) {
	f := newFixture(t)
	f.seller.EXPECT().ListSales(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
			assert.Equal(t, domain.ContextBoutique, filter.StoreType)
			assert.Equal(t, defaultListLimit, filter.Limit)
			require.NotNil(t, filter.From)
			require.NotNil(t, filter.To)
			assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local), *filter.To)
			return []*domain.Sale{{ID: 1}}, nil
		})

	rec := f.do(http.MethodGet, "/api/sales?store_type=boutique&from=2024-03-01&to=2024-03-01", nil, staffClaims, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/sales?from=01-03-2024", nil, staffClaims, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)

	rec = f.do(http.MethodGet, "/api/sales?limit=abc", nil, staffClaims, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSale(t *testing.T) {
	f := newFixture(t)
	f.seller.EXPECT().GetSale(gomock.Any(), int64(99)).
		Return(nil, selling.NewSellingError(selling.ErrSaleNotFound, apiErrors.ErrNotFound, nil))

	rec := f.do(http.MethodGet, "/api/sales/99", nil, staffClaims, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodGet, "/api/sales/abc", nil, staffClaims, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		t.Run("Atualiza status via "+method, func(t *testing.T) {
			f := newFixture(t)
			f.orderer.EXPECT().UpdateStatus(gomock.Any(), staffClaims.Actor(), int64(5), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.Actor, _ int64, req *domain.UpdateOrderStatusRequest) (*domain.Order, error) {
					assert.Equal(t, domain.OrderDelivered, req.Status)
					require.NotNil(t, req.TrackingNumber)
					assert.Equal(t, "TRK-1", *req.TrackingNumber)
					return &domain.Order{ID: 5, Status: domain.OrderDelivered, StockDeducted: true}, nil
				})

			rec := f.doJSON(method, "/api/orders/5/status", `{"status":"delivered","tracking_number":"TRK-1"}`, staffClaims)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"stock_deducted":true`)
		})
	}
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	f.orderer.EXPECT().CreateOrder(gomock.Any(), staffClaims.Actor(), gomock.Any()).
		Return(&domain.Order{ID: 1, OrderNumber: "ORD-001", Status: domain.OrderPending}, nil)

	rec := f.doJSON(http.MethodPost, "/api/orders", `{"customer_name":"Sara","phone":"9999","region":"Riyadh","address":"Rua 1","payment_method":"cod","items":[{"product_id":1,"color_name":"Red","size_label":"M","quantity":2}]}`, staffClaims)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"order_number":"ORD-001"`)
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	f.orderer.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{Status: domain.OrderPending, Limit: maxListLimit}).
		Return([]*domain.Order{}, nil)

	rec := f.do(http.MethodGet, "/api/orders?status=pending&limit=1000", nil, staffClaims, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestApproveReturn(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		setup      func(f *fixture)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "Gerente aprova",
			claims: managerClaims,
			setup: func(f *fixture) {
				f.returner.EXPECT().ApproveReturn(gomock.Any(), managerClaims.Actor(), int64(3)).
					Return(&domain.ReturnExchange{ID: 3, Status: domain.ReturnApproved}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Segunda aprovação é rejeitada",
			claims: managerClaims,
			setup: func(f *fixture) {
				f.returner.EXPECT().ApproveReturn(gomock.Any(), gomock.Any(), int64(3)).
					Return(nil, returning.NewReturningError(returning.ErrAlreadyApproved, apiErrors.ErrAlreadyProcessed, nil))
			},
			wantStatus: http.StatusConflict,
			wantCode:   apiErrors.ErrAlreadyProcessed,
		},
		{
			name:       "Staff não aprova",
			claims:     staffClaims,
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrInsufficientPrivilege,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			rec := f.do(http.MethodPatch, "/api/returns/3/approve", nil, tt.claims, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
			}
		})
	}
}

func TestCreateReturn(t *testing.T) {
	f := newFixture(t)
	f.returner.EXPECT().CreateReturn(gomock.Any(), staffClaims.Actor(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Actor, req *domain.CreateReturnRequest) (*domain.ReturnExchange, error) {
			require.NotNil(t, req.OrderID)
			assert.Equal(t, int64(4), *req.OrderID)
			return &domain.ReturnExchange{ID: 1, Status: domain.ReturnPending}, nil
		})

	rec := f.doJSON(http.MethodPost, "/api/returns", `{"type":"refund","order_id":4}`, staffClaims)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestListReturns(t *testing.T) {
	f := newFixture(t)
	f.returner.EXPECT().ListReturns(gomock.Any(), domain.ReturnFilter{Status: "lost", Limit: defaultListLimit}).
		Return(nil, returning.NewReturningError(returning.ErrInvalidStatusQuery, apiErrors.ErrInvalidRequest, nil))

	rec := f.do(http.MethodGet, "/api/returns?status=lost", nil, staffClaims, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProducts(t *testing.T) {
	product := &domain.Product{
		ID:          1,
		ProductCode: "LR-1",
		StorePrice:  decimal.NewNullDecimal(decimal.RequireFromString("120")),
		OnlinePrice: decimal.NewNullDecimal(decimal.RequireFromString("135")),
		Colors: []domain.ProductColor{
			{ColorName: "Red", Sizes: []domain.ProductSize{{SizeLabel: "M", Quantity: 7}}},
		},
	}

	f := newFixture(t)
	f.catalog.EXPECT().ListProducts(gomock.Any(), domain.ProductFilter{Search: "lr", Limit: defaultListLimit}).
		Return([]*domain.Product{product}, nil)

	rec := f.do(http.MethodGet, "/api/products?search=%20lr%20&context=online", nil, staffClaims, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var views []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "135", views[0]["price"])
	assert.Equal(t, map[string]any{"Red": map[string]any{"M": float64(7)}}, views[0]["inventory"])

	rec = f.do(http.MethodGet, "/api/products?context=warehouse", nil, staffClaims, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProduct_JSON(t *testing.T) {
	f := newFixture(t)
	f.catalog.EXPECT().CreateProduct(gomock.Any(), managerClaims.Actor(), gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, _ domain.Actor, in *domain.ProductInput, _ io.Reader) (*domain.Product, error) {
			assert.Equal(t, "LR-9", in.ProductCode)
			assert.Equal(t, domain.Inventory{"Red": {"M": 10}}, in.Inventory)
			return &domain.Product{ID: 9, ProductCode: in.ProductCode}, nil
		})

	rec := f.doJSON(http.MethodPost, "/api/products", `{"product_code":"LR-9","store_price":"120","colors":["Red"],"sizes":["M"],"inventory":{"Red":{"M":10}}}`, managerClaims)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateProduct_Multipart(t *testing.T) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("product_code", "LR-10"))
	require.NoError(t, form.WriteField("brand", "Laroza"))
	require.NoError(t, form.WriteField("store_price", "99.90"))
	require.NoError(t, form.WriteField("colors", `["Black"]`))
	require.NoError(t, form.WriteField("sizes", `["S","M"]`))
	require.NoError(t, form.WriteField("inventory", `{"Black":{"S":2}}`))
	part, err := form.CreateFormFile("image", "foto.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("conteudo"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	f := newFixture(t)
	f.catalog.EXPECT().CreateProduct(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
		DoAndReturn(func(_ context.Context, _ domain.Actor, in *domain.ProductInput, image io.Reader) (*domain.Product, error) {
			assert.Equal(t, "LR-10", in.ProductCode)
			require.NotNil(t, in.Brand)
			assert.Equal(t, "Laroza", *in.Brand)
			assert.True(t, in.StorePrice.Valid)
			assert.True(t, decimal.RequireFromString("99.90").Equal(in.StorePrice.Decimal))
			assert.False(t, in.OnlinePrice.Valid)
			assert.Equal(t, []string{"S", "M"}, in.Sizes)
			assert.Equal(t, domain.Inventory{"Black": {"S": 2}}, in.Inventory)

			data, err := io.ReadAll(image)
			require.NoError(t, err)
			assert.Equal(t, "conteudo", string(data))
			return &domain.Product{ID: 10, ProductCode: in.ProductCode}, nil
		})

	rec := f.do(http.MethodPost, "/api/products", body, staffClaims, form.FormDataContentType())
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateProduct_MultipartErrors(t *testing.T) {
	t.Run("Campo JSON inválido", func(t *testing.T) {
		body := &bytes.Buffer{}
		form := multipart.NewWriter(body)
		require.NoError(t, form.WriteField("product_code", "LR-11"))
		require.NoError(t, form.WriteField("colors", `Red, Blue`))
		require.NoError(t, form.Close())

		f := newFixture(t)
		rec := f.do(http.MethodPost, "/api/products", body, staffClaims, form.FormDataContentType())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})

	t.Run("Imagem rejeitada pelo catálogo", func(t *testing.T) {
		body := &bytes.Buffer{}
		form := multipart.NewWriter(body)
		require.NoError(t, form.WriteField("product_code", "LR-12"))
		part, err := form.CreateFormFile("image", "doc.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		f := newFixture(t)
		f.catalog.EXPECT().CreateProduct(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, cataloging.NewCatalogingError(cataloging.ErrUnsupportedImage, apiErrors.ErrUnsupportedUpload, nil))

		rec := f.do(http.MethodPost, "/api/products", body, staffClaims, form.FormDataContentType())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrUnsupportedUpload, decodeAPIError(t, rec).Code)
	})

	t.Run("Corpo acima do limite", func(t *testing.T) {
		body := &bytes.Buffer{}
		form := multipart.NewWriter(body)
		require.NoError(t, form.WriteField("product_code", "LR-13"))
		part, err := form.CreateFormFile("image", "grande.png")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("a"), testMaxUpload+multipartFieldsSlack+10))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		f := newFixture(t)
		rec := f.do(http.MethodPost, "/api/products", body, staffClaims, form.FormDataContentType())

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, apiErrors.ErrUploadTooLarge, decodeAPIError(t, rec).Code)
	})
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodDelete, "/api/products/1", nil, staffClaims, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.catalog.EXPECT().DeleteProduct(gomock.Any(), managerClaims.Actor(), int64(1)).
		Return(cataloging.NewCatalogingError(cataloging.ErrProductInUse, apiErrors.ErrInUse, nil))
	rec = f.do(http.MethodDelete, "/api/products/1", nil, managerClaims, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apiErrors.ErrInUse, decodeAPIError(t, rec).Code)

	f.catalog.EXPECT().DeleteProduct(gomock.Any(), managerClaims.Actor(), int64(2)).Return(nil)
	rec = f.do(http.MethodDelete, "/api/products/2", nil, managerClaims, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReports(t *testing.T) {
	t.Run("Relatório mensal", func(t *testing.T) {
		f := newFixture(t)
		f.reporter.EXPECT().SalesReport(gomock.Any(), domain.ContextAll, domain.PeriodMonthly, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)).
			Return(&domain.SalesReport{Context: domain.ContextAll, Period: domain.PeriodMonthly}, nil)

		rec := f.do(http.MethodGet, "/api/reports/all/monthly/2024-03-15", nil, staffClaims, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Data inválida", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/api/reports/all/monthly/15-03-2024", nil, staffClaims, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})

	t.Run("Período inválido", func(t *testing.T) {
		f := newFixture(t)
		f.reporter.EXPECT().SalesReport(gomock.Any(), gomock.Any(), domain.ReportPeriod("yearly"), gomock.Any()).
			Return(nil, reporting.NewReportingError(reporting.ErrInvalidPeriod, apiErrors.ErrInvalidRequest, nil))

		rec := f.do(http.MethodGet, "/api/reports/boutique/yearly/2024-03-15", nil, staffClaims, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Produtos mais vendidos", func(t *testing.T) {
		f := newFixture(t)
		f.reporter.EXPECT().TopProducts(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter domain.TopProductsFilter) ([]domain.TopProduct, error) {
				assert.Equal(t, domain.ContextOnline, filter.Context)
				assert.Equal(t, defaultTopProductsLimit, filter.Limit)
				assert.NotNil(t, filter.From)
				assert.Nil(t, filter.To)
				return []domain.TopProduct{{ProductCode: "LR-1", QuantitySold: 4}}, nil
			})

		rec := f.do(http.MethodGet, "/api/reports/top-products?context=online&from=2024-03-01", nil, staffClaims, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"quantity_sold":4`)
	})

	t.Run("Relatório desconhecido", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/api/reports/boutique", nil, staffClaims, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Painel", func(t *testing.T) {
		f := newFixture(t)
		f.reporter.EXPECT().DashboardStats(gomock.Any(), domain.ContextBoutique).
			Return(&domain.DashboardStats{Context: domain.ContextBoutique, PendingOrders: 2}, nil)

		rec := f.do(http.MethodGet, "/api/dashboard/stats?context=boutique", nil, staffClaims, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"pending_orders":2`)
	})
}

func TestListActivities(t *testing.T) {
	f := newFixture(t)
	f.auditor.EXPECT().ListActivities(gomock.Any(), domain.ActivityFilter{Context: domain.ContextOnline, Limit: defaultActivityLimit}).
		Return([]*domain.Activity{{ID: 1, Type: domain.ActivitySaleMade}}, nil)

	rec := f.do(http.MethodGet, "/api/activities?context=online", nil, staffClaims, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"sale_made"`)
}

func TestEmployeesAndSession(t *testing.T) {
	t.Run("Lista pública de funcionários", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().ListEmployees(gomock.Any()).
			Return([]*domain.Employee{{ID: 1, Name: "Abdulrahman", Role: domain.RoleManager, PinHash: "segredo"}}, nil)

		rec := f.do(http.MethodGet, "/api/employees", nil, nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "segredo")
	})

	t.Run("Staff não cria funcionário", func(t *testing.T) {
		f := newFixture(t)
		rec := f.doJSON(http.MethodPost, "/api/employees", `{"name":"Nova"}`, staffClaims)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Gerente cria funcionário", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().CreateEmployee(gomock.Any(), managerClaims.Actor(), &domain.CreateEmployeeRequest{Name: "Nova", Pin: "1234"}).
			Return(&domain.Employee{ID: 4, Name: "Nova", Role: domain.RoleStaff}, nil)

		rec := f.doJSON(http.MethodPost, "/api/employees", `{"name":"Nova","pin":"1234"}`, managerClaims)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Inicia sessão", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().StartSession(gomock.Any(), &domain.StartSessionRequest{EmployeeID: 2, Context: domain.ContextOnline}).
			Return(&domain.Session{Token: "tok", Context: domain.ContextOnline}, nil)

		rec := f.doJSON(http.MethodPost, "/api/session", `{"employee_id":2,"context":"online"}`, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token":"tok"`)
	})

	t.Run("PIN incorreto", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().StartSession(gomock.Any(), gomock.Any()).
			Return(nil, authenticating.NewAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, nil))

		rec := f.doJSON(http.MethodPost, "/api/session", `{"employee_id":2,"context":"online","pin":"0000"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidCredentials, decodeAPIError(t, rec).Code)
	})

	t.Run("Sessão atual", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/api/session", nil, staffClaims, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"employee_name":"Heba"`)
	})
}

func TestCronJobs(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/cron/low-stock/run", nil, managerClaims, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, f.cron.triggered)

	rec = f.do(http.MethodPost, "/api/cron/meta/run", nil, managerClaims, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/cron/low-stock/run", nil, staffClaims, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, f.cron.triggered)

	rec = f.do(http.MethodGet, "/api/cron/status", nil, managerClaims, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"low-stock":{"sync_running":false}}`, rec.Body.String())
}

func TestHealthcheckAndNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/healthcheck", nil, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/inexistente", nil, staffClaims, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decodeAPIError(t, rec).Code)
}
