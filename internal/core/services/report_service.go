package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/gestium/biz_reporting_app/internal/core/ports/services"
	"github.com/gestium/biz_reporting_app/internal/utils/accounting"
	"github.com/gestium/biz_reporting_app/internal/utils/timebucket"
	"golang.org/x/sync/errgroup"
)

// reportService assembles reports: it resolves the business scope, loads the
// currency catalog and config, fans raw-record aggregation out per bucket,
// and shapes the result. Any sub-step failure aborts the whole assembly.
type reportService struct {
	BaseService
	scope        portssvc.ScopeSvc
	currencyRepo portsrepo.CurrencyRepository
	cycleRepo    portsrepo.EconomicCycleRepository
	orderRepo    portsrepo.OrderRepository
	stockRepo    portsrepo.StockRepository

	income  *incomeService
	summary *orderSummaryService
	stock   *stockReportService

	now func() time.Time
}

// ReportServiceOption is a functional option for configuring the report service.
type ReportServiceOption func(*reportService)

// WithClock overrides the time source; used by tests to pin bucket anchors.
func WithClock(now func() time.Time) ReportServiceOption {
	return func(s *reportService) {
		s.now = now
	}
}

// NewReportService creates the report assembler with the provided options.
func NewReportService(
	scope portssvc.ScopeSvc,
	currencyRepo portsrepo.CurrencyRepository,
	cycleRepo portsrepo.EconomicCycleRepository,
	orderRepo portsrepo.OrderRepository,
	stockRepo portsrepo.StockRepository,
	options ...ReportServiceOption,
) portssvc.ReportingSvc {
	svc := &reportService{
		scope:        scope,
		currencyRepo: currencyRepo,
		cycleRepo:    cycleRepo,
		orderRepo:    orderRepo,
		stockRepo:    stockRepo,
		income:       newIncomeService(cycleRepo, orderRepo),
		summary:      newOrderSummaryService(),
		stock:        newStockReportService(stockRepo),
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvc = (*reportService)(nil)

// loadCatalog reads the currency entries and reporting config of a business
// from the cache. Reports cannot run without a main currency, so its absence
// aborts here, before any aggregation.
func (s *reportService) loadCatalog(ctx context.Context, businessID string) (*domain.Catalog, domain.ReportingConfig, error) {
	cfg, err := s.currencyRepo.GetReportingConfig(ctx, businessID)
	if err != nil {
		return nil, domain.ReportingConfig{}, fmt.Errorf("failed to load reporting config: %w", err)
	}
	entries, err := s.currencyRepo.ListCurrencies(ctx, businessID)
	if err != nil {
		return nil, domain.ReportingConfig{}, fmt.Errorf("failed to load currencies: %w", err)
	}
	catalog := domain.NewCatalog(entries, cfg.Precision)
	if _, err := catalog.MainCurrency(); err != nil {
		return nil, domain.ReportingConfig{}, err
	}
	return catalog, *cfg, nil
}

// reportCurrencies resolves the two currency codes bucket figures are
// expressed in. loadCatalog has already verified the main currency exists.
func reportCurrencies(catalog *domain.Catalog, cfg domain.ReportingConfig) (mainCode, costCode string) {
	main, _ := catalog.MainCurrency()
	costCode = cfg.CostCurrency
	if costCode == "" {
		costCode = main.Code
	}
	return main.Code, costCode
}

// SalesByMode computes the bucketed sales report. Bucket windows are
// independent, so they are aggregated concurrently and merged back by the
// stable bucket number, never by slice position.
func (s *reportService) SalesByMode(ctx context.Context, actor domain.Actor, mode timebucket.Mode) ([]domain.TimeBucket, error) {
	scope, err := s.scope.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	catalog, cfg, err := s.loadCatalog(ctx, scope.BusinessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load currency catalog", slog.String("business_id", scope.BusinessID))
		return nil, err
	}

	buckets, err := timebucket.Generate(mode, s.now())
	if err != nil {
		return nil, err
	}
	mainCode, costCode := reportCurrencies(catalog, cfg)

	results := make([]domain.TimeBucket, len(buckets))
	g, gctx := errgroup.WithContext(ctx)
	for _, bucket := range buckets {
		bucket := bucket
		g.Go(func() error {
			totals, err := s.income.Aggregate(gctx, scope.BusinessIDs, bucket.Start, bucket.End, catalog, cfg)
			if err != nil {
				return fmt.Errorf("failed to aggregate bucket %d: %w", bucket.Number, err)
			}
			results[bucket.Number] = domain.TimeBucket{
				Number:           bucket.Number,
				Label:            bucket.Label,
				Date:             bucket.Start,
				MainCurrency:     mainCode,
				CostCurrency:     costCode,
				TotalSales:       totals.TotalSales,
				TotalIncomes:     totals.TotalIncomes,
				TotalCost:        totals.TotalCost,
				GrossProfit:      totals.GrossProfit,
				EconomicCycleIDs: totals.EconomicCycleIDs,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Sales report generated",
		slog.String("mode", string(mode)),
		slog.Int("buckets", len(results)),
		slog.Bool("group_scope", scope.IsGroup))
	return results, nil
}

// LastSevenDays computes the fixed 7-entry income series for one business of
// the actor's scope, oldest day first.
func (s *reportService) LastSevenDays(ctx context.Context, actor domain.Actor, businessID string) ([]domain.TimeBucket, error) {
	if err := s.scope.AuthorizeBusinessAccess(ctx, actor, businessID); err != nil {
		return nil, err
	}
	catalog, cfg, err := s.loadCatalog(ctx, businessID)
	if err != nil {
		return nil, err
	}

	buckets := timebucket.LastDays(7, s.now())
	mainCode, costCode := reportCurrencies(catalog, cfg)
	results := make([]domain.TimeBucket, len(buckets))
	g, gctx := errgroup.WithContext(ctx)
	for _, bucket := range buckets {
		bucket := bucket
		g.Go(func() error {
			totals, err := s.income.Aggregate(gctx, []string{businessID}, bucket.Start, bucket.End, catalog, cfg)
			if err != nil {
				return fmt.Errorf("failed to aggregate day %d: %w", bucket.Number, err)
			}
			results[bucket.Number] = domain.TimeBucket{
				Number:           bucket.Number,
				Label:            bucket.Label,
				Date:             bucket.Start,
				MainCurrency:     mainCode,
				CostCurrency:     costCode,
				TotalSales:       totals.TotalSales,
				TotalIncomes:     totals.TotalIncomes,
				TotalCost:        totals.TotalCost,
				GrossProfit:      totals.GrossProfit,
				EconomicCycleIDs: totals.EconomicCycleIDs,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GeneralFinancial reduces the orders of the window into one summary.
// Cash operations are folded only when no external account ledger is
// supplied for the same window.
func (s *reportService) GeneralFinancial(ctx context.Context, actor domain.Actor, query portssvc.GeneralFinancialQuery) (*domain.OrderSummary, error) {
	if !query.From.Before(query.To) {
		return nil, fmt.Errorf("%w: dateFrom must be before dateTo", apperrors.ErrValidation)
	}
	scope, err := s.scope.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	catalog, cfg, err := s.loadCatalog(ctx, scope.BusinessID)
	if err != nil {
		return nil, err
	}

	var (
		orders  []domain.OrderReceipt
		cashOps []domain.CashOperation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orderRepo.ListOrdersInWindow(gctx, scope.BusinessIDs, query.From, query.To)
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		cycles, err := s.cycleRepo.ListCyclesInWindow(gctx, scope.BusinessIDs, query.From, query.To)
		if err != nil {
			return fmt.Errorf("failed to list economic cycles: %w", err)
		}
		if len(cycles) == 0 {
			cashOps = []domain.CashOperation{}
			return nil
		}
		cycleIDs := make([]string, 0, len(cycles))
		for _, cycle := range cycles {
			cycleIDs = append(cycleIDs, cycle.CycleID)
		}
		cashOps, err = s.orderRepo.ListCashOperationsByCycles(gctx, cycleIDs)
		if err != nil {
			return fmt.Errorf("failed to list cash operations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	includeCashOps := len(query.AccountIDs) == 0
	summary, err := s.summary.Summarize(orders, cashOps, catalog, cfg, includeCashOps)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize orders", slog.Int("order_count", len(orders)))
		return nil, err
	}

	s.LogInfo(ctx, "General financial report generated",
		slog.Int("order_count", len(orders)),
		slog.Bool("cash_operations_included", includeCashOps))
	return summary, nil
}

// StockInventory reconciles one area since the start of the current day.
func (s *reportService) StockInventory(ctx context.Context, actor domain.Actor, areaID string) (*domain.AreaStockReport, error) {
	area, err := s.authorizeArea(ctx, actor, areaID)
	if err != nil {
		return nil, err
	}
	catalog, cfg, err := s.loadCatalog(ctx, area.BusinessID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.stock.InventoryForArea(ctx, area, dayStart, now, catalog, cfg)
}

// StockDisponibility values current on-hand stock across the acting business.
func (s *reportService) StockDisponibility(ctx context.Context, actor domain.Actor) ([]domain.StockDisponibilityRow, error) {
	scope, err := s.scope.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.stock.Disponibility(ctx, scope.BusinessID)
}

// PeriodInventory reports snapshot pairs and movement totals for one area.
func (s *reportService) PeriodInventory(ctx context.Context, actor domain.Actor, areaID string, from, to time.Time) ([]domain.PeriodInventoryRow, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: dateFrom must be before dateTo", apperrors.ErrValidation)
	}
	if _, err := s.authorizeArea(ctx, actor, areaID); err != nil {
		return nil, err
	}
	return s.stock.PeriodInventory(ctx, areaID, from, to)
}

// TipsByCycle totals tips per person for one economic cycle, native
// currencies plus the main-currency equivalent.
func (s *reportService) TipsByCycle(ctx context.Context, actor domain.Actor, cycleID string) ([]domain.TipsByPerson, error) {
	cycle, err := s.cycleRepo.FindCycleByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeBusinessAccess(ctx, actor, cycle.BusinessID); err != nil {
		return nil, err
	}
	catalog, _, err := s.loadCatalog(ctx, cycle.BusinessID)
	if err != nil {
		return nil, err
	}

	records, err := s.orderRepo.ListTipsByCycle(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}

	type personEntry struct {
		name string
		acc  *accounting.MoneyAccumulator
	}
	perPerson := make(map[string]*personEntry)
	order := []string{}
	for _, record := range records {
		key := record.PersonID
		if key == "" {
			key = domain.UnassignedClientKey
		}
		entry, ok := perPerson[key]
		if !ok {
			entry = &personEntry{name: record.PersonName, acc: accounting.NewMoneyAccumulator()}
			perPerson[key] = entry
			order = append(order, key)
		}
		entry.acc.AddAmount(record.CodeCurrency, record.Amount)
	}
	sort.Strings(order)

	result := make([]domain.TipsByPerson, 0, len(order))
	for _, key := range order {
		entry := perPerson[key]
		main, err := entry.acc.ToMain(catalog)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.TipsByPerson{
			PersonID:   key,
			PersonName: entry.name,
			Tips:       entry.acc.List(),
			TipsMain:   main,
		})
	}
	return result, nil
}

// MostSelled ranks products by quantity sold in the window of the mode,
// anchored to now.
func (s *reportService) MostSelled(ctx context.Context, actor domain.Actor, mode timebucket.Mode) ([]domain.SelledProduct, error) {
	scope, err := s.scope.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	buckets, err := timebucket.Generate(mode, s.now())
	if err != nil {
		return nil, err
	}
	from := buckets[0].Start

	products, err := s.orderRepo.ListSelledProducts(ctx, scope.BusinessIDs, from, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list selled products: %w", err)
	}
	return products, nil
}

// authorizeArea loads the area and verifies it belongs to the actor's scope.
func (s *reportService) authorizeArea(ctx context.Context, actor domain.Actor, areaID string) (*domain.Area, error) {
	area, err := s.stockRepo.FindAreaByID(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeBusinessAccess(ctx, actor, area.BusinessID); err != nil {
		return nil, err
	}
	return area, nil
}
