package selling

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/cataloging"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/laroza/pos-api/pkg/validation"
	"github.com/pkg/errors"
)

type Seller interface {
	CreateSale(ctx context.Context, actor domain.Actor, req *domain.CreateSaleRequest) (*domain.Sale, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error)
	GetSale(ctx context.Context, id int64) (*domain.Sale, error)
}

type Service struct {
	tx         postgres.Transactor
	sales      repository.SaleRepository
	inventory  repository.InventoryRepository
	numbers    repository.DocumentNumberRepository
	activities repository.ActivityRepository
	catalog    cataloging.Cataloger
	salesCfg   config.Sales
	scheme     domain.NumberingScheme
}

func NewService(
	tx postgres.Transactor,
	sales repository.SaleRepository,
	inventory repository.InventoryRepository,
	numbers repository.DocumentNumberRepository,
	activities repository.ActivityRepository,
	catalog cataloging.Cataloger,
	cfg *config.Config,
) Seller {
	return &Service{
		tx:         tx,
		sales:      sales,
		inventory:  inventory,
		numbers:    numbers,
		activities: activities,
		catalog:    catalog,
		salesCfg:   cfg.Sales,
		scheme:     cfg.Numbering.InvoiceScheme(),
	}
}

// CreateSale registra a venda numa única transação: número da fatura, baixa de
// estoque de cada linha, venda com itens e atividade. Qualquer falha desfaz tudo.
func (s *Service) CreateSale(ctx context.Context, actor domain.Actor, req *domain.CreateSaleRequest) (*domain.Sale, error) {
	if err := validation.Struct(req); err != nil {
		return nil, NewSellingError(ErrInvalidSale, apiErrors.ErrMissingRequiredData, err)
	}

	storeType := req.StoreType
	if storeType == "" {
		storeType = actor.Context
	}
	if !storeType.IsChannel() {
		return nil, NewSellingError(ErrInvalidStoreType, apiErrors.ErrMissingRequiredData, nil)
	}

	items, err := s.catalog.ResolveLineItems(ctx, storeType, req.Items)
	if err != nil {
		return nil, err
	}

	taxApplied := req.TaxApplied && (!s.salesCfg.TaxVisaOnly || req.PaymentMethod == domain.PaymentVisa)
	totals := domain.ComputeTotals(items, taxApplied, s.salesCfg.TaxRate)

	sale := &domain.Sale{
		EmployeeID:    actor.EmployeeID,
		EmployeeName:  actor.EmployeeName,
		StoreType:     storeType,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		TaxApplied:    taxApplied,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.Tax,
		TotalAmount:   totals.Total,
		Items:         items,
	}

	err = s.tx.RunInTransaction(ctx, func(tx *sql.Tx) error {
		number, err := s.numbers.Next(ctx, tx, domain.CounterInvoice)
		if err != nil {
			return err
		}
		sale.InvoiceNumber = s.scheme.Format(number)

		for _, movement := range domain.MovementsFromLineItems(items) {
			if err := s.inventory.Decrement(ctx, tx, movement, s.salesCfg.AllowOversell); err != nil {
				return err
			}
		}

		if err := s.sales.Create(ctx, tx, sale); err != nil {
			return err
		}

		activity := domain.NewActivity(domain.ActivitySaleMade, actor, storeType,
			fmt.Sprintf("Venda %s registrada: %s", sale.InvoiceNumber, sale.TotalAmount.StringFixed(2)),
			map[string]any{
				"sale_id":        sale.ID,
				"invoice_number": sale.InvoiceNumber,
				"total_amount":   sale.TotalAmount.StringFixed(2),
				"items":          len(items),
			})
		return s.activities.Create(ctx, tx, activity)
	})
	if err != nil {
		var stockErr *repository.StockError
		if errors.As(err, &stockErr) {
			log.ForContext(ctx).WithFields(log.Fields{
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			}).Warn("Venda recusada por falta de estoque")
			return nil, NewSellingError(ErrInsufficientStock, apiErrors.ErrInsufficientStock, stockErr.Details())
		}
		return nil, NewSellingError(err, apiErrors.ErrDatabaseOperation, nil)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"invoice_number": sale.InvoiceNumber,
		"total_amount":   sale.TotalAmount.StringFixed(2),
	}).Info("Venda registrada")

	return sale, nil
}

func (s *Service) ListSales(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	if !filter.StoreType.IsValidFilter() {
		return nil, NewSellingError(ErrInvalidStoreType, apiErrors.ErrInvalidRequest, nil)
	}

	sales, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, NewSellingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return sales, nil
}

func (s *Service) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewSellingError(ErrSaleNotFound, apiErrors.ErrNotFound, map[string]any{"sale_id": id})
		}
		return nil, NewSellingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return sale, nil
}
