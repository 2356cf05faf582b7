package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/gestium/biz_reporting_app/internal/core/ports/services"
)

// scopeService resolves the flat business scope of a request once, up front,
// so the aggregators never chase branch references mid-computation.
type scopeService struct {
	BaseService
	businessRepo portsrepo.BusinessRepository
}

// NewScopeService creates a new scope resolver.
func NewScopeService(businessRepo portsrepo.BusinessRepository) portssvc.ScopeSvc {
	return &scopeService{businessRepo: businessRepo}
}

var _ portssvc.ScopeSvc = (*scopeService)(nil)

// Resolve returns the scope the actor may aggregate over. Branch expansion
// requires the business to operate in group mode, the actor to hold the
// group-owner role, and the business to be the top of the group itself; a
// delegated branch never aggregates its siblings.
func (s *scopeService) Resolve(ctx context.Context, actor domain.Actor) (domain.BusinessScope, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, actor.BusinessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve acting business", slog.String("business_id", actor.BusinessID))
		return domain.BusinessScope{}, fmt.Errorf("failed to resolve acting business: %w", err)
	}

	scope := domain.BusinessScope{
		BusinessID:  business.BusinessID,
		BusinessIDs: []string{business.BusinessID},
	}

	if business.Mode == domain.ModeGroup && actor.Role == domain.RoleGroupOwner && business.ParentID == "" {
		scope.BusinessIDs = append(scope.BusinessIDs, business.BranchIDs...)
		scope.IsGroup = true
	}

	return scope, nil
}

// AuthorizeBusinessAccess reports whether businessID falls inside the actor's
// resolved scope.
func (s *scopeService) AuthorizeBusinessAccess(ctx context.Context, actor domain.Actor, businessID string) error {
	scope, err := s.Resolve(ctx, actor)
	if err != nil {
		return err
	}
	for _, id := range scope.BusinessIDs {
		if id == businessID {
			return nil
		}
	}
	return fmt.Errorf("%w: business %s is outside the acting scope", apperrors.ErrForbidden, businessID)
}
