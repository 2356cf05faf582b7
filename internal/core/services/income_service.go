package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	"github.com/gestium/biz_reporting_app/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// incomeService aggregates sales, incomes and costs for a business scope
// over one time window. It is the per-bucket workhorse of the time-series
// reports.
type incomeService struct {
	BaseService
	cycleRepo portsrepo.EconomicCycleRepository
	orderRepo portsrepo.OrderRepository
}

func newIncomeService(cycleRepo portsrepo.EconomicCycleRepository, orderRepo portsrepo.OrderRepository) *incomeService {
	return &incomeService{cycleRepo: cycleRepo, orderRepo: orderRepo}
}

// Aggregate resolves the economic cycles of the window, folds their orders
// and cash operations through currency-keyed accumulators, and expresses
// incomes and gross profit in the main currency and cost in the configured
// cost currency. A window with no cycles yields all zeros, not an error.
func (s *incomeService) Aggregate(ctx context.Context, businessIDs []string, from, to time.Time, catalog *domain.Catalog, cfg domain.ReportingConfig) (domain.IncomeTotals, error) {
	main, err := catalog.MainCurrency()
	if err != nil {
		return domain.IncomeTotals{}, err
	}
	costCode := cfg.CostCurrency
	if costCode == "" {
		costCode = main.Code
	}

	zero := domain.IncomeTotals{
		TotalSales:       []domain.Money{},
		TotalIncomes:     domain.ZeroMoney(main.Code),
		TotalCost:        domain.ZeroMoney(costCode),
		GrossProfit:      domain.ZeroMoney(main.Code),
		EconomicCycleIDs: []string{},
	}

	cycles, err := s.cycleRepo.ListCyclesInWindow(ctx, businessIDs, from, to)
	if err != nil {
		return domain.IncomeTotals{}, fmt.Errorf("failed to list economic cycles: %w", err)
	}
	if len(cycles) == 0 {
		return zero, nil
	}

	cycleIDs := make([]string, 0, len(cycles))
	for _, cycle := range cycles {
		cycleIDs = append(cycleIDs, cycle.CycleID)
	}

	// Orders and cash operations are independent fetches; await them jointly.
	var (
		orders  []domain.OrderReceipt
		cashOps []domain.CashOperation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orderRepo.ListOrdersByCycles(gctx, cycleIDs)
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cashOps, err = s.orderRepo.ListCashOperationsByCycles(gctx, cycleIDs)
		if err != nil {
			return fmt.Errorf("failed to list cash operations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.IncomeTotals{}, err
	}

	sales := accounting.NewMoneyAccumulator()
	incomes := accounting.NewMoneyAccumulator()
	costs := accounting.NewMoneyAccumulator()

	for _, order := range orders {
		if !order.HouseCosted {
			sales.AddAll(order.Prices)
		}
		incomes.AddAll(order.TotalToPay)
		costs.Add(order.TotalCost)
	}
	for _, op := range cashOps {
		switch op.Operation {
		case domain.OperationDeposit:
			incomes.AddAmount(op.CodeCurrency, op.Amount)
		case domain.OperationWithdraw:
			costs.AddAmount(op.CodeCurrency, op.Amount)
		}
	}

	totalIncomes, err := incomes.ToMain(catalog)
	if err != nil {
		return domain.IncomeTotals{}, err
	}
	totalCost, err := costs.ToCurrency(catalog, costCode)
	if err != nil {
		return domain.IncomeTotals{}, err
	}
	costInMain, err := catalog.ToMain(totalCost)
	if err != nil {
		return domain.IncomeTotals{}, err
	}

	return domain.IncomeTotals{
		TotalSales:       sales.List(),
		TotalIncomes:     totalIncomes,
		TotalCost:        totalCost,
		GrossProfit:      domain.NewMoney(totalIncomes.Amount.Sub(costInMain.Amount), main.Code),
		EconomicCycleIDs: cycleIDs,
	}, nil
}
