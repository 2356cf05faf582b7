package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// stockRepository implements the StockRepository interface.
type stockRepository struct {
	BaseRepository
}

// NewStockRepository creates a new stock repository.
func NewStockRepository(db *pgxpool.Pool) portsrepo.StockRepository {
	return &stockRepository{BaseRepository: BaseRepository{Pool: db}}
}

func (r *stockRepository) FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	query := `
		SELECT area_id, business_id, name
		FROM stock_areas
		WHERE area_id = $1
	`
	var area domain.Area
	err := r.Pool.QueryRow(ctx, query, areaID).Scan(&area.AreaID, &area.BusinessID, &area.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: area %s", apperrors.ErrNotFound, areaID)
		}
		return nil, fmt.Errorf("error querying area: %w", err)
	}
	return &area, nil
}

func (r *stockRepository) ListAreas(ctx context.Context, businessID string) ([]domain.Area, error) {
	query := `
		SELECT area_id, business_id, name
		FROM stock_areas
		WHERE business_id = $1
		ORDER BY name
	`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("error querying areas: %w", err)
	}
	defer rows.Close()

	result := []domain.Area{}
	for rows.Next() {
		var area domain.Area
		if err := rows.Scan(&area.AreaID, &area.BusinessID, &area.Name); err != nil {
			return nil, fmt.Errorf("error scanning area row: %w", err)
		}
		result = append(result, area)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating area rows: %w", err)
	}
	return result, nil
}

func (r *stockRepository) ListProductStocks(ctx context.Context, areaID string) ([]domain.ProductStock, error) {
	query := `
		SELECT area_id, product_id, product_name, type, COALESCE(measure, ''), quantity,
			average_cost_amount, average_cost_currency,
			sale_price_amount, sale_price_currency
		FROM product_stocks
		WHERE area_id = $1
		ORDER BY product_name
	`
	rows, err := r.Pool.Query(ctx, query, areaID)
	if err != nil {
		return nil, fmt.Errorf("error querying product stocks: %w", err)
	}
	defer rows.Close()

	result := []domain.ProductStock{}
	for rows.Next() {
		var stock domain.ProductStock
		if err := rows.Scan(
			&stock.AreaID,
			&stock.ProductID,
			&stock.ProductName,
			&stock.Type,
			&stock.Measure,
			&stock.Quantity,
			&stock.AverageCost.Amount,
			&stock.AverageCost.CodeCurrency,
			&stock.SalePrice.Amount,
			&stock.SalePrice.CodeCurrency,
		); err != nil {
			return nil, fmt.Errorf("error scanning product stock row: %w", err)
		}
		result = append(result, stock)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product stock rows: %w", err)
	}
	return result, nil
}

func (r *stockRepository) ListMovements(ctx context.Context, areaID string, from, to time.Time) ([]domain.StockMovement, error) {
	query := `
		SELECT movement_id, area_id, product_id, category, quantity, created_at
		FROM stock_movements
		WHERE area_id = $1
			AND created_at >= $2
			AND created_at < $3
		ORDER BY created_at
	`
	rows, err := r.Pool.Query(ctx, query, areaID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying stock movements: %w", err)
	}
	defer rows.Close()

	result := []domain.StockMovement{}
	for rows.Next() {
		var mv domain.StockMovement
		if err := rows.Scan(
			&mv.MovementID,
			&mv.AreaID,
			&mv.ProductID,
			&mv.Category,
			&mv.Quantity,
			&mv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning stock movement row: %w", err)
		}
		result = append(result, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movement rows: %w", err)
	}
	return result, nil
}

func (r *stockRepository) FindOpeningSnapshot(ctx context.Context, areaID, productID string, at time.Time) (*domain.StockSnapshot, error) {
	query := `
		SELECT snapshot_id, area_id, product_id, type, quantity, taken_at
		FROM stock_snapshots
		WHERE area_id = $1
			AND product_id = $2
			AND taken_at <= $3
		ORDER BY taken_at DESC
		LIMIT 1
	`
	var snap domain.StockSnapshot
	err := r.Pool.QueryRow(ctx, query, areaID, productID, at).Scan(
		&snap.SnapshotID,
		&snap.AreaID,
		&snap.ProductID,
		&snap.Type,
		&snap.Quantity,
		&snap.TakenAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no snapshot for product %s in area %s", apperrors.ErrNotFound, productID, areaID)
		}
		return nil, fmt.Errorf("error querying snapshot: %w", err)
	}
	return &snap, nil
}

func (r *stockRepository) ListSnapshotsInWindow(ctx context.Context, areaID string, from, to time.Time) ([]domain.StockSnapshot, error) {
	query := `
		SELECT snapshot_id, area_id, product_id, type, quantity, taken_at
		FROM stock_snapshots
		WHERE area_id = $1
			AND taken_at >= $2
			AND taken_at < $3
		ORDER BY taken_at
	`
	rows, err := r.Pool.Query(ctx, query, areaID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying snapshots: %w", err)
	}
	defer rows.Close()

	result := []domain.StockSnapshot{}
	for rows.Next() {
		var snap domain.StockSnapshot
		if err := rows.Scan(
			&snap.SnapshotID,
			&snap.AreaID,
			&snap.ProductID,
			&snap.Type,
			&snap.Quantity,
			&snap.TakenAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning snapshot row: %w", err)
		}
		result = append(result, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return result, nil
}

func (r *stockRepository) ListDirectSales(ctx context.Context, areaID string, from, to time.Time) ([]domain.ProductQuantity, error) {
	query := `
		SELECT op.product_id, SUM(op.quantity)
		FROM order_products op
		JOIN orders o ON o.order_id = op.order_id
		WHERE op.area_id = $1
			AND o.status = 'BILLED'
			AND o.paid_at >= $2
			AND o.paid_at < $3
		GROUP BY op.product_id
	`
	rows, err := r.Pool.Query(ctx, query, areaID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying direct sales: %w", err)
	}
	defer rows.Close()

	result := []domain.ProductQuantity{}
	for rows.Next() {
		var pq domain.ProductQuantity
		if err := rows.Scan(&pq.ProductID, &pq.Quantity); err != nil {
			return nil, fmt.Errorf("error scanning direct sale row: %w", err)
		}
		result = append(result, pq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating direct sale rows: %w", err)
	}
	return result, nil
}
