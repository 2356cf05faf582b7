package repositories

import (
	"context"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
)

// CurrencyRepository supplies the per-business currency catalog entries and
// reporting configuration. The cache adapter and the pgsql adapter both
// implement it, so the cache can wrap the store read-through.
type CurrencyRepository interface {
	// ListCurrencies returns the currencies enabled for a business with
	// their exchange rates.
	ListCurrencies(ctx context.Context, businessID string) ([]domain.CurrencyEntry, error)

	// GetReportingConfig returns the typed reporting flags of a business,
	// with defaults applied for unset keys.
	GetReportingConfig(ctx context.Context, businessID string) (*domain.ReportingConfig, error)
}
