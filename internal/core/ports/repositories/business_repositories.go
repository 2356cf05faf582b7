package repositories

import (
	"context"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
)

// BusinessRepository supplies the acting business and its owned branch list.
type BusinessRepository interface {
	// FindBusinessByID returns the business or apperrors.ErrNotFound.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
}
