package cataloging

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	pgmocks "github.com/laroza/pos-api/infrastructure/database/postgres/mocks"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/infrastructure/repository/mocks"
	"github.com/laroza/pos-api/infrastructure/storage"
	storagemocks "github.com/laroza/pos-api/infrastructure/storage/mocks"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	tx         *pgmocks.MockTransactor
	products   *mocks.MockProductRepository
	activities *mocks.MockActivityRepository
	images     *storagemocks.MockImageStore
	service    Cataloger
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		tx:         pgmocks.NewMockTransactor(ctrl),
		products:   mocks.NewMockProductRepository(ctrl),
		activities: mocks.NewMockActivityRepository(ctrl),
		images:     storagemocks.NewMockImageStore(ctrl),
	}
	f.service = NewService(f.tx, f.products, f.activities, f.images)
	return f
}

func (f *fixture) runTransactions() {
	f.tx.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()
}

func codeOf(t *testing.T, err error) string {
	t.Helper()

	var coded apiErrors.Coded
	require.ErrorAs(t, err, &coded)
	return coded.ErrorCode()
}

var staff = domain.Actor{EmployeeID: 2, EmployeeName: "Heba", Role: domain.RoleStaff, Context: domain.ContextBoutique}

func TestService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	validInput := func() *domain.ProductInput {
		return &domain.ProductInput{
			ProductCode: "LR-100",
			StorePrice:  decimal.NewNullDecimal(decimal.RequireFromString("150")),
			Colors:      []string{"Red"},
			Sizes:       []string{"M"},
			Inventory:   domain.Inventory{"Red": {"M": 10}},
		}
	}

	tests := []struct {
		name     string
		input    func() *domain.ProductInput
		image    func() *strings.Reader
		setup    func(f *fixture)
		wantCode string
		validate func(t *testing.T, product *domain.Product)
	}{
		{
			name:  "Cadastro com estoque registra atividade",
			input: validInput,
			setup: func(f *fixture) {
				f.runTransactions()
				f.products.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, p *domain.Product) error {
						p.ID = 10
						return nil
					})
				f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, a *domain.Activity) error {
						assert.Equal(t, domain.ActivityProductAdded, a.Type)
						assert.Equal(t, domain.ContextBoutique, a.Context)
						assert.Equal(t, "Heba", a.EmployeeName)
						assert.Equal(t, 10, a.Metadata["stock"])
						return nil
					})
			},
			validate: func(t *testing.T, product *domain.Product) {
				assert.Equal(t, int64(10), product.ID)
				assert.Equal(t, 10, product.QuantityOf("Red", "M"))
			},
		},
		{
			name: "Quantidade negativa é rejeitada",
			input: func() *domain.ProductInput {
				in := validInput()
				in.Inventory["Red"]["M"] = -2
				return in
			},
			setup:    func(f *fixture) {},
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name: "Código obrigatório",
			input: func() *domain.ProductInput {
				in := validInput()
				in.ProductCode = ""
				return in
			},
			setup:    func(f *fixture) {},
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:  "Código duplicado remove a imagem enviada",
			input: validInput,
			image: func() *strings.Reader { return strings.NewReader("png") },
			setup: func(f *fixture) {
				f.runTransactions()
				f.images.EXPECT().Save(ctx, gomock.Any()).Return("/uploads/abc.png", nil)
				f.products.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
					Return(errors.Wrap(repository.ErrDuplicate, "erro ao criar produto"))
				f.images.EXPECT().Delete(ctx, "/uploads/abc.png").Return(nil)
			},
			wantCode: apiErrors.ErrDuplicate,
		},
		{
			name:  "Imagem em formato não suportado",
			input: validInput,
			image: func() *strings.Reader { return strings.NewReader("texto") },
			setup: func(f *fixture) {
				f.images.EXPECT().Save(ctx, gomock.Any()).Return("", storage.ErrUnsupportedType)
			},
			wantCode: apiErrors.ErrUnsupportedUpload,
		},
		{
			name:  "Imagem grande demais",
			input: validInput,
			image: func() *strings.Reader { return strings.NewReader("grande") },
			setup: func(f *fixture) {
				f.images.EXPECT().Save(ctx, gomock.Any()).Return("", storage.ErrTooLarge)
			},
			wantCode: apiErrors.ErrUploadTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			var product *domain.Product
			var err error
			if tt.image != nil {
				product, err = f.service.CreateProduct(ctx, staff, tt.input(), tt.image())
			} else {
				product, err = f.service.CreateProduct(ctx, staff, tt.input(), nil)
			}

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, codeOf(t, err))
				return
			}
			require.NoError(t, err)
			tt.validate(t, product)
		})
	}
}

func TestService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	oldImage := "/uploads/old.png"

	t.Run("Nova imagem substitui e remove a antiga", func(t *testing.T) {
		f := newFixture(t)
		f.runTransactions()

		f.products.EXPECT().GetByID(ctx, int64(5)).Return(&domain.Product{ID: 5, ProductCode: "LR-5", MainImageURL: &oldImage}, nil)
		f.images.EXPECT().Save(ctx, gomock.Any()).Return("/uploads/new.png", nil)
		f.products.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, p *domain.Product) error {
				assert.Equal(t, int64(5), p.ID)
				assert.Equal(t, "/uploads/new.png", *p.MainImageURL)
				return nil
			})
		f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(nil)
		f.images.EXPECT().Delete(ctx, oldImage).Return(nil)

		_, err := f.service.UpdateProduct(ctx, staff, 5, &domain.ProductInput{ProductCode: "LR-5"}, strings.NewReader("png"))
		require.NoError(t, err)
	})

	t.Run("Sem imagem mantém a atual", func(t *testing.T) {
		f := newFixture(t)
		f.runTransactions()

		f.products.EXPECT().GetByID(ctx, int64(5)).Return(&domain.Product{ID: 5, MainImageURL: &oldImage}, nil)
		f.products.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, p *domain.Product) error {
				require.NotNil(t, p.MainImageURL)
				assert.Equal(t, oldImage, *p.MainImageURL)
				return nil
			})
		f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.service.UpdateProduct(ctx, staff, 5, &domain.ProductInput{ProductCode: "LR-5"}, nil)
		require.NoError(t, err)
	})

	t.Run("Produto inexistente", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().GetByID(ctx, int64(99)).Return(nil, repository.ErrNotFound)

		_, err := f.service.UpdateProduct(ctx, staff, 99, &domain.ProductInput{ProductCode: "X"}, nil)
		assert.Equal(t, apiErrors.ErrNotFound, codeOf(t, err))
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Produto com vendas não pode ser excluído", func(t *testing.T) {
		f := newFixture(t)
		f.runTransactions()

		f.products.EXPECT().GetByID(ctx, int64(3)).Return(&domain.Product{ID: 3, ProductCode: "LR-3"}, nil)
		f.products.EXPECT().Delete(ctx, gomock.Any(), int64(3)).Return(errors.Wrap(repository.ErrReferenced, "erro ao excluir produto"))

		err := f.service.DeleteProduct(ctx, staff, 3)
		assert.Equal(t, apiErrors.ErrInUse, codeOf(t, err))
	})

	t.Run("Exclusão registra atividade e remove imagem", func(t *testing.T) {
		f := newFixture(t)
		f.runTransactions()
		image := "/uploads/p.png"

		f.products.EXPECT().GetByID(ctx, int64(3)).Return(&domain.Product{ID: 3, ProductCode: "LR-3", MainImageURL: &image}, nil)
		f.products.EXPECT().Delete(ctx, gomock.Any(), int64(3)).Return(nil)
		f.activities.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, a *domain.Activity) error {
				assert.Equal(t, domain.ActivityProductDeleted, a.Type)
				return nil
			})
		f.images.EXPECT().Delete(ctx, image).Return(errors.New("disco cheio"))

		assert.NoError(t, f.service.DeleteProduct(ctx, staff, 3))
	})
}

func TestService_ResolveLineItems(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{
		ID:          1,
		ProductCode: "LR-1",
		StorePrice:  decimal.NewNullDecimal(decimal.RequireFromString("100")),
		OnlinePrice: decimal.NewNullDecimal(decimal.RequireFromString("110")),
	}
	custom := decimal.RequireFromString("90")
	negative := decimal.RequireFromString("-1")

	t.Run("Preço do canal e preço informado", func(t *testing.T) {
		f := newFixture(t)
		// o mesmo produto em duas linhas é carregado uma única vez
		f.products.EXPECT().GetByID(ctx, int64(1)).Return(product, nil).Times(1)

		items, err := f.service.ResolveLineItems(ctx, domain.ContextOnline, []domain.LineItemRequest{
			{ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 2},
			{ProductID: 1, ColorName: "Red", SizeLabel: "L", Quantity: 1, UnitPrice: &custom},
		})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("110")))
		assert.True(t, items[1].UnitPrice.Equal(custom))
		assert.Equal(t, "LR-1", items[0].ProductCode)
	})

	t.Run("Preço negativo", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().GetByID(ctx, int64(1)).Return(product, nil)

		_, err := f.service.ResolveLineItems(ctx, domain.ContextBoutique, []domain.LineItemRequest{
			{ProductID: 1, ColorName: "Red", SizeLabel: "M", Quantity: 1, UnitPrice: &negative},
		})
		assert.Equal(t, apiErrors.ErrMissingRequiredData, codeOf(t, err))
	})

	t.Run("Produto sem preço", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().GetByID(ctx, int64(2)).Return(&domain.Product{ID: 2}, nil)

		_, err := f.service.ResolveLineItems(ctx, domain.ContextBoutique, []domain.LineItemRequest{
			{ProductID: 2, ColorName: "Red", SizeLabel: "M", Quantity: 1},
		})
		assert.ErrorIs(t, err, ErrMissingPrice)
	})

	t.Run("Produto inexistente", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().GetByID(ctx, int64(7)).Return(nil, repository.ErrNotFound)

		_, err := f.service.ResolveLineItems(ctx, domain.ContextBoutique, []domain.LineItemRequest{
			{ProductID: 7, ColorName: "Red", SizeLabel: "M", Quantity: 1},
		})
		assert.Equal(t, apiErrors.ErrNotFound, codeOf(t, err))
	})
}
