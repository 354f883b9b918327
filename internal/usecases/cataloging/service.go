package cataloging

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/infrastructure/storage"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/laroza/pos-api/pkg/validation"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type Cataloger interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, actor domain.Actor, input *domain.ProductInput, image io.Reader) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actor domain.Actor, id int64, input *domain.ProductInput, image io.Reader) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor domain.Actor, id int64) error
	// ResolveLineItems carrega os produtos das linhas e completa o preço
	// unitário com o preço do canal quando o cliente não envia um
	ResolveLineItems(ctx context.Context, channel domain.Context, requests []domain.LineItemRequest) ([]domain.LineItem, error)
}

type Service struct {
	tx         postgres.Transactor
	products   repository.ProductRepository
	activities repository.ActivityRepository
	images     storage.ImageStore
}

func NewService(
	tx postgres.Transactor,
	products repository.ProductRepository,
	activities repository.ActivityRepository,
	images storage.ImageStore,
) Cataloger {
	return &Service{
		tx:         tx,
		products:   products,
		activities: activities,
		images:     images,
	}
}

func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, NewCatalogingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewCatalogingError(ErrProductNotFound, apiErrors.ErrNotFound, map[string]any{"product_id": id})
		}
		return nil, NewCatalogingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, actor domain.Actor, input *domain.ProductInput, image io.Reader) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	uploaded, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	product := productFromInput(input)
	if uploaded != "" {
		product.MainImageURL = &uploaded
	}

	err = s.tx.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.products.Create(ctx, tx, product); err != nil {
			return err
		}

		activity := domain.NewActivity(domain.ActivityProductAdded, actor, "",
			fmt.Sprintf("Produto %s cadastrado", product.ProductCode),
			map[string]any{"product_id": product.ID, "product_code": product.ProductCode, "stock": product.TotalStock()})
		return s.activities.Create(ctx, tx, activity)
	})
	if err != nil {
		return nil, s.discardImage(ctx, uploaded, mapWriteError(err))
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"product_id":   product.ID,
		"product_code": product.ProductCode,
	}).Info("Produto cadastrado")

	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, actor domain.Actor, id int64, input *domain.ProductInput, image io.Reader) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	product := productFromInput(input)
	product.ID = id
	switch {
	case uploaded != "":
		product.MainImageURL = &uploaded
	case product.MainImageURL == nil:
		product.MainImageURL = current.MainImageURL
	}

	err = s.tx.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.products.Update(ctx, tx, product); err != nil {
			return err
		}

		activity := domain.NewActivity(domain.ActivityProductUpdated, actor, "",
			fmt.Sprintf("Produto %s atualizado", product.ProductCode),
			map[string]any{"product_id": product.ID, "product_code": product.ProductCode, "stock": product.TotalStock()})
		return s.activities.Create(ctx, tx, activity)
	})
	if err != nil {
		return nil, s.discardImage(ctx, uploaded, mapWriteError(err))
	}

	if old := current.MainImageURL; old != nil && (product.MainImageURL == nil || *old != *product.MainImageURL) {
		s.removeImage(ctx, *old)
	}

	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, actor domain.Actor, id int64) error {
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.products.Delete(ctx, tx, id); err != nil {
			return err
		}

		activity := domain.NewActivity(domain.ActivityProductDeleted, actor, "",
			fmt.Sprintf("Produto %s excluído", current.ProductCode),
			map[string]any{"product_id": id, "product_code": current.ProductCode})
		return s.activities.Create(ctx, tx, activity)
	})
	if err != nil {
		return mapWriteError(err)
	}

	if current.MainImageURL != nil {
		s.removeImage(ctx, *current.MainImageURL)
	}

	log.ForContext(ctx).WithField("product_id", id).Info("Produto excluído")
	return nil
}

func (s *Service) ResolveLineItems(ctx context.Context, channel domain.Context, requests []domain.LineItemRequest) ([]domain.LineItem, error) {
	products := make(map[int64]*domain.Product)
	items := make([]domain.LineItem, 0, len(requests))

	for i, req := range requests {
		product, ok := products[req.ProductID]
		if !ok {
			var err error
			product, err = s.GetProduct(ctx, req.ProductID)
			if err != nil {
				return nil, err
			}
			products[req.ProductID] = product
		}

		price, hasPrice := product.PriceFor(channel)
		if req.UnitPrice != nil {
			if req.UnitPrice.IsNegative() {
				return nil, NewCatalogingError(ErrInvalidLineItem, apiErrors.ErrMissingRequiredData,
					validation.Errors{{Field: fmt.Sprintf("items[%d].unit_price", i), Rule: "gte", Param: "0"}})
			}
			price, hasPrice = *req.UnitPrice, true
		}
		if !hasPrice {
			return nil, NewCatalogingError(ErrMissingPrice, apiErrors.ErrMissingRequiredData,
				map[string]any{"product_id": product.ID, "product_code": product.ProductCode, "context": channel})
		}

		items = append(items, domain.LineItem{
			ProductID:   product.ID,
			ProductCode: product.ProductCode,
			ColorName:   req.ColorName,
			SizeLabel:   req.SizeLabel,
			Quantity:    req.Quantity,
			UnitPrice:   price.Round(2),
		})
	}

	return items, nil
}

func validateInput(input *domain.ProductInput) error {
	if err := validation.Struct(input); err != nil {
		return NewCatalogingError(ErrInvalidProduct, apiErrors.ErrMissingRequiredData, err)
	}

	var invalid validation.Errors
	for _, variant := range input.NegativeQuantities() {
		invalid = append(invalid, validation.FieldError{Field: "inventory." + variant, Rule: "gte", Param: "0"})
	}
	if input.StorePrice.Valid && input.StorePrice.Decimal.IsNegative() {
		invalid = append(invalid, validation.FieldError{Field: "store_price", Rule: "gte", Param: "0"})
	}
	if input.OnlinePrice.Valid && input.OnlinePrice.Decimal.IsNegative() {
		invalid = append(invalid, validation.FieldError{Field: "online_price", Rule: "gte", Param: "0"})
	}
	if len(invalid) > 0 {
		return NewCatalogingError(ErrInvalidProduct, apiErrors.ErrMissingRequiredData, invalid)
	}

	return nil
}

func productFromInput(input *domain.ProductInput) *domain.Product {
	return &domain.Product{
		ProductCode:  input.ProductCode,
		ModelNo:      input.ModelNo,
		Brand:        input.Brand,
		ProductType:  input.ProductType,
		StorePrice:   input.StorePrice,
		OnlinePrice:  input.OnlinePrice,
		Specs:        input.Specs,
		MainImageURL: input.MainImageURL,
		Colors:       input.Variants(),
	}
}

func (s *Service) saveImage(ctx context.Context, image io.Reader) (string, error) {
	if image == nil {
		return "", nil
	}

	url, err := s.images.Save(ctx, image)
	switch {
	case err == nil:
		return url, nil
	case errors.Is(err, storage.ErrUnsupportedType):
		return "", NewCatalogingError(ErrUnsupportedImage, apiErrors.ErrUnsupportedUpload, nil)
	case errors.Is(err, storage.ErrTooLarge):
		return "", NewCatalogingError(ErrImageTooLarge, apiErrors.ErrUploadTooLarge, nil)
	default:
		return "", NewCatalogingError(err, apiErrors.ErrInternalServer, nil)
	}
}

// discardImage apaga a imagem recém enviada quando a gravação do produto falha
func (s *Service) discardImage(ctx context.Context, url string, cause error) error {
	if url == "" {
		return cause
	}

	if err := s.images.Delete(ctx, url); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Falha ao remover imagem órfã")
		return multierr.Append(cause, err)
	}
	return cause
}

func (s *Service) removeImage(ctx context.Context, url string) {
	if err := s.images.Delete(ctx, url); err != nil {
		log.ForContext(ctx).WithError(err).WithField("url", url).Warn("Falha ao remover imagem antiga")
	}
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return NewCatalogingError(ErrDuplicateCode, apiErrors.ErrDuplicate, nil)
	case errors.Is(err, repository.ErrReferenced):
		return NewCatalogingError(ErrProductInUse, apiErrors.ErrInUse, nil)
	case errors.Is(err, repository.ErrNotFound):
		return NewCatalogingError(ErrProductNotFound, apiErrors.ErrNotFound, nil)
	default:
		return NewCatalogingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
}
