package repositories

import (
	"context"
	"time"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
)

// StockRepository supplies areas, on-hand stock, movement logs and
// inventory snapshots.
type StockRepository interface {
	// FindAreaByID returns the area or apperrors.ErrNotFound.
	FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error)

	// ListAreas returns the stock areas of a business.
	ListAreas(ctx context.Context, businessID string) ([]domain.Area, error)

	// ListProductStocks returns the current on-hand state of every product in
	// an area.
	ListProductStocks(ctx context.Context, areaID string) ([]domain.ProductStock, error)

	// ListMovements returns the stock movements of an area recorded in
	// [from, to).
	ListMovements(ctx context.Context, areaID string, from, to time.Time) ([]domain.StockMovement, error)

	// FindOpeningSnapshot returns the most recent snapshot of the product at
	// or before the given instant, or apperrors.ErrNotFound.
	FindOpeningSnapshot(ctx context.Context, areaID, productID string, at time.Time) (*domain.StockSnapshot, error)

	// ListSnapshotsInWindow returns the snapshots of an area taken in
	// [from, to).
	ListSnapshotsInWindow(ctx context.Context, areaID string, from, to time.Time) ([]domain.StockSnapshot, error)

	// ListDirectSales returns per-product directly recorded sale quantities
	// of an area in [from, to).
	ListDirectSales(ctx context.Context, areaID string, from, to time.Time) ([]domain.ProductQuantity, error)
}
