package reporting

import (
	"context"
	"time"

	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/sourcegraph/conc/pool"
)

// Quantidade de produtos no ranking do relatório por período
const reportTopProducts = 5

type Reporter interface {
	DashboardStats(ctx context.Context, c domain.Context) (*domain.DashboardStats, error)
	SalesReport(ctx context.Context, c domain.Context, period domain.ReportPeriod, date time.Time) (*domain.SalesReport, error)
	TopProducts(ctx context.Context, filter domain.TopProductsFilter) ([]domain.TopProduct, error)
}

type Service struct {
	reports           repository.ReportRepository
	lowStockThreshold int
	now               func() time.Time
}

func NewService(reports repository.ReportRepository, cfg *config.Config) Reporter {
	return &Service{
		reports:           reports,
		lowStockThreshold: cfg.Sales.LowStockThreshold,
		now:               time.Now,
	}
}

// reportContext valida o contexto pedido; vazio vale como all
func reportContext(c domain.Context) (domain.Context, error) {
	if !c.IsValidFilter() {
		return "", NewReportingError(ErrInvalidContext, apiErrors.ErrInvalidRequest, map[string]any{"context": c})
	}
	if c == "" {
		return domain.ContextAll, nil
	}
	return c, nil
}

// DashboardStats roda as contagens independentes em paralelo
func (s *Service) DashboardStats(ctx context.Context, c domain.Context) (*domain.DashboardStats, error) {
	c, err := reportContext(c)
	if err != nil {
		return nil, err
	}

	from, to, _ := domain.PeriodDaily.Range(s.now())
	today := domain.ReportRange{From: &from, To: &to}

	stats := &domain.DashboardStats{Context: c}
	var summary domain.ChannelSummary

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		stats.TotalProducts, err = s.reports.CountProducts(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.PendingOrders, err = s.reports.CountPendingOrders(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.LowStockVariants, err = s.reports.CountLowStockVariants(ctx, s.lowStockThreshold)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		summary, err = s.reports.ChannelSummary(ctx, c, today)
		return err
	})

	if err := p.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).Error("Falha ao montar o painel")
		return nil, NewReportingError(err, apiErrors.ErrDatabaseOperation, nil)
	}

	stats.TodayTransactions = summary.TransactionCount
	stats.TodayRevenue = summary.Revenue

	return stats, nil
}

func (s *Service) SalesReport(ctx context.Context, c domain.Context, period domain.ReportPeriod, date time.Time) (*domain.SalesReport, error) {
	c, err := reportContext(c)
	if err != nil {
		return nil, err
	}

	from, to, ok := period.Range(date)
	if !ok {
		return nil, NewReportingError(ErrInvalidPeriod, apiErrors.ErrInvalidRequest, map[string]any{"period": period})
	}
	rng := domain.ReportRange{From: &from, To: &to}

	var (
		summary  domain.ChannelSummary
		payments []domain.PaymentTotal
		tops     []domain.TopProduct
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		summary, err = s.reports.ChannelSummary(ctx, c, rng)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		payments, err = s.reports.PaymentBreakdown(ctx, c, rng)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		tops, err = s.reports.TopProducts(ctx, c, rng, reportTopProducts)
		return err
	})

	if err := p.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).WithField("period", period).Error("Falha ao montar o relatório")
		return nil, NewReportingError(err, apiErrors.ErrDatabaseOperation, nil)
	}

	return &domain.SalesReport{
		Context:           c,
		Period:            period,
		From:              from,
		To:                to,
		TransactionCount:  summary.TransactionCount,
		Revenue:           summary.Revenue,
		AverageOrderValue: domain.AverageOrderValue(summary.Revenue, summary.TransactionCount),
		ItemsSold:         summary.ItemsSold,
		PaymentBreakdown:  payments,
		TopProducts:       tops,
	}, nil
}

func (s *Service) TopProducts(ctx context.Context, filter domain.TopProductsFilter) ([]domain.TopProduct, error) {
	c, err := reportContext(filter.Context)
	if err != nil {
		return nil, err
	}

	tops, err := s.reports.TopProducts(ctx, c, filter.ReportRange, filter.Limit)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("context", c).Error("Falha ao listar produtos mais vendidos")
		return nil, NewReportingError(err, apiErrors.ErrDatabaseOperation, nil)
	}

	return tops, nil
}
