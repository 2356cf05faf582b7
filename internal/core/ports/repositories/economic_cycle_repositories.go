package repositories

import (
	"context"
	"time"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
)

// EconomicCycleRepository supplies the operational sessions orders are
// grouped under.
type EconomicCycleRepository interface {
	// FindCycleByID returns the cycle or apperrors.ErrNotFound.
	FindCycleByID(ctx context.Context, cycleID string) (*domain.EconomicCycle, error)

	// ListCyclesInWindow returns every cycle of the given businesses whose
	// open date falls in [from, to). An empty result is not an error.
	ListCyclesInWindow(ctx context.Context, businessIDs []string, from, to time.Time) ([]domain.EconomicCycle, error)
}
