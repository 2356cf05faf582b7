package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	"github.com/gestium/biz_reporting_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// stockReportService computes inventory reconciliation, valuation and
// period-inventory reports for stock areas.
type stockReportService struct {
	BaseService
	stockRepo portsrepo.StockRepository
}

func newStockReportService(stockRepo portsrepo.StockRepository) *stockReportService {
	return &stockReportService{stockRepo: stockRepo}
}

// InventoryForArea reconciles every stock-type product of an area over
// [from, to). Opening quantities come from the most recent snapshot at or
// before the window start; a product without one starts at zero. Movements
// recorded after a product's snapshot but before the window start still enter
// its conservation equation. The indirect-sales residual is advisory and
// flagged as an estimate.
func (s *stockReportService) InventoryForArea(ctx context.Context, area *domain.Area, from, to time.Time, catalog *domain.Catalog, cfg domain.ReportingConfig) (*domain.AreaStockReport, error) {
	products, err := s.stockRepo.ListProductStocks(ctx, area.AreaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product stocks: %w", err)
	}

	// Snapshots first: the movement fetch has to reach back to the earliest
	// snapshot of the area, not just the window start.
	type opening struct {
		initial decimal.Decimal
		since   time.Time
	}
	openings := make(map[string]opening, len(products))
	movementsFrom := from
	for _, product := range products {
		if product.Type != domain.ProductTypeStock {
			continue
		}
		o := opening{since: from}
		snapshot, err := s.stockRepo.FindOpeningSnapshot(ctx, area.AreaID, product.ProductID, from)
		switch {
		case err == nil:
			o.initial = snapshot.Quantity
			o.since = snapshot.TakenAt
			if snapshot.TakenAt.Before(movementsFrom) {
				movementsFrom = snapshot.TakenAt
			}
		case errors.Is(err, apperrors.ErrNotFound):
			// No counted opening; reconcile from zero.
		default:
			return nil, fmt.Errorf("failed to find opening snapshot: %w", err)
		}
		openings[product.ProductID] = o
	}

	// Movements and direct sales cover the whole area; fetch them once,
	// alongside each other. TallyMovements re-filters per product by its own
	// snapshot time.
	var (
		movements   []domain.StockMovement
		directSales []domain.ProductQuantity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movements, err = s.stockRepo.ListMovements(gctx, area.AreaID, movementsFrom, to)
		if err != nil {
			return fmt.Errorf("failed to list stock movements: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		directSales, err = s.stockRepo.ListDirectSales(gctx, area.AreaID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list direct sales: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	movementsByProduct := make(map[string][]domain.StockMovement)
	for _, mv := range movements {
		movementsByProduct[mv.ProductID] = append(movementsByProduct[mv.ProductID], mv)
	}
	salesByProduct := make(map[string]decimal.Decimal, len(directSales))
	for _, ds := range directSales {
		salesByProduct[ds.ProductID] = salesByProduct[ds.ProductID].Add(ds.Quantity)
	}

	costTotal := accounting.NewMoneyAccumulator()
	estimateTotal := accounting.NewMoneyAccumulator()
	rows := make([]domain.StockReconciliationRow, 0, len(products))

	for _, product := range products {
		if product.Type != domain.ProductTypeStock {
			continue
		}

		o := openings[product.ProductID]
		tally := domain.StockTally{
			Initial:     o.initial,
			DirectSales: salesByProduct[product.ProductID],
		}
		tally = accounting.TallyMovements(tally, movementsByProduct[product.ProductID], o.since)
		indirect := accounting.IndirectSales(tally, product.Quantity, cfg.Precision)

		rows = append(rows, domain.StockReconciliationRow{
			AreaID:        area.AreaID,
			ProductID:     product.ProductID,
			ProductName:   product.ProductName,
			Tally:         tally,
			OnHand:        product.Quantity,
			IndirectSales: indirect,
			Estimated:     !indirect.IsZero(),
		})

		costTotal.AddAmount(product.AverageCost.CodeCurrency, product.Quantity.Mul(product.AverageCost.Amount))
		if !indirect.IsZero() {
			estimateTotal.AddAmount(product.SalePrice.CodeCurrency, indirect.Mul(product.SalePrice.Amount))
		}
	}

	totalCost, err := costTotal.ToMain(catalog)
	if err != nil {
		return nil, err
	}
	totalEstimate, err := estimateTotal.ToMain(catalog)
	if err != nil {
		return nil, err
	}

	return &domain.AreaStockReport{
		AreaID:        area.AreaID,
		AreaName:      area.Name,
		Products:      rows,
		TotalCost:     totalCost,
		TotalEstimate: totalEstimate,
	}, nil
}

// Disponibility values the current on-hand stock of every area of a business
// at average cost and at sale price.
func (s *stockReportService) Disponibility(ctx context.Context, businessID string) ([]domain.StockDisponibilityRow, error) {
	areas, err := s.stockRepo.ListAreas(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}

	rows := []domain.StockDisponibilityRow{}
	for _, area := range areas {
		products, err := s.stockRepo.ListProductStocks(ctx, area.AreaID)
		if err != nil {
			return nil, fmt.Errorf("failed to list product stocks for area %s: %w", area.AreaID, err)
		}
		for _, product := range products {
			rows = append(rows, domain.StockDisponibilityRow{
				AreaID:      area.AreaID,
				ProductID:   product.ProductID,
				ProductName: product.ProductName,
				Quantity:    product.Quantity,
				CostValue:   domain.NewMoney(product.Quantity.Mul(product.AverageCost.Amount), product.AverageCost.CodeCurrency),
				SaleValue:   domain.NewMoney(product.Quantity.Mul(product.SalePrice.Amount), product.SalePrice.CodeCurrency),
			})
		}
	}
	return rows, nil
}

// PeriodInventory pairs opening and closing snapshots of each product taken
// inside [from, to) with the movement totals recorded between them.
func (s *stockReportService) PeriodInventory(ctx context.Context, areaID string, from, to time.Time) ([]domain.PeriodInventoryRow, error) {
	snapshots, err := s.stockRepo.ListSnapshotsInWindow(ctx, areaID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	movements, err := s.stockRepo.ListMovements(ctx, areaID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	products, err := s.stockRepo.ListProductStocks(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product stocks: %w", err)
	}
	names := make(map[string]string, len(products))
	for _, product := range products {
		names[product.ProductID] = product.ProductName
	}

	type pair struct {
		opening *domain.StockSnapshot
		closing *domain.StockSnapshot
	}
	pairs := make(map[string]*pair)
	order := []string{}
	for i := range snapshots {
		snap := snapshots[i]
		p, ok := pairs[snap.ProductID]
		if !ok {
			p = &pair{}
			pairs[snap.ProductID] = p
			order = append(order, snap.ProductID)
		}
		switch snap.Type {
		case domain.SnapshotOpening:
			if p.opening == nil || snap.TakenAt.Before(p.opening.TakenAt) {
				p.opening = &snapshots[i]
			}
		case domain.SnapshotClosing:
			if p.closing == nil || snap.TakenAt.After(p.closing.TakenAt) {
				p.closing = &snapshots[i]
			}
		}
	}

	movementsByProduct := make(map[string][]domain.StockMovement)
	for _, mv := range movements {
		movementsByProduct[mv.ProductID] = append(movementsByProduct[mv.ProductID], mv)
	}

	rows := make([]domain.PeriodInventoryRow, 0, len(pairs))
	for _, productID := range order {
		p := pairs[productID]
		row := domain.PeriodInventoryRow{
			AreaID:      areaID,
			ProductID:   productID,
			ProductName: names[productID],
		}
		since := from
		if p.opening != nil {
			row.Opening = p.opening.Quantity
			row.Tally.Initial = p.opening.Quantity
			since = p.opening.TakenAt
		}
		if p.closing != nil {
			row.Closing = p.closing.Quantity
		}
		row.Tally = accounting.TallyMovements(row.Tally, movementsByProduct[productID], since)
		rows = append(rows, row)
	}
	return rows, nil
}
