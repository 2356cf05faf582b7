package services

import (
	"context"
	"time"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
	"github.com/gestium/biz_reporting_app/internal/utils/timebucket"
)

// GeneralFinancialQuery is the resolved input of the general financial
// report. AccountIDs, when present, is the external bank-account ledger for
// the window; supplying it suppresses cash-operation folding so the same
// money is not counted twice.
type GeneralFinancialQuery struct {
	From       time.Time
	To         time.Time
	Origin     string
	AccountIDs []string
}

// ReportingSvc is the report assembly surface. Every operation resolves the
// actor's business scope first and fails fast; no partial reports are
// produced.
type ReportingSvc interface {
	// SalesByMode computes the time-series sales report for week, month or
	// year buckets anchored to now.
	SalesByMode(ctx context.Context, actor domain.Actor, mode timebucket.Mode) ([]domain.TimeBucket, error)

	// LastSevenDays computes a fixed 7-entry income series for one business,
	// oldest day first.
	LastSevenDays(ctx context.Context, actor domain.Actor, businessID string) ([]domain.TimeBucket, error)

	// GeneralFinancial reduces the orders of the window into one summary.
	GeneralFinancial(ctx context.Context, actor domain.Actor, query GeneralFinancialQuery) (*domain.OrderSummary, error)

	// StockInventory reconciles every stock-type product of an area since its
	// opening snapshot, attributing the conservation residual to indirect
	// sales.
	StockInventory(ctx context.Context, actor domain.Actor, areaID string) (*domain.AreaStockReport, error)

	// StockDisponibility values current on-hand stock across all areas of the
	// acting business.
	StockDisponibility(ctx context.Context, actor domain.Actor) ([]domain.StockDisponibilityRow, error)

	// PeriodInventory pairs opening/closing snapshots with the movements
	// recorded between them for one area.
	PeriodInventory(ctx context.Context, actor domain.Actor, areaID string, from, to time.Time) ([]domain.PeriodInventoryRow, error)

	// TipsByCycle totals tips per person for one economic cycle.
	TipsByCycle(ctx context.Context, actor domain.Actor, cycleID string) ([]domain.TipsByPerson, error)

	// MostSelled ranks products by quantity sold in the mode's window.
	MostSelled(ctx context.Context, actor domain.Actor, mode timebucket.Mode) ([]domain.SelledProduct, error)
}

// ScopeResolverSvc resolves the flat business scope a report covers.
type ScopeResolverSvc interface {
	// Resolve returns the actor's scope: the acting business alone, or the
	// group head plus its branches when the business operates in group mode
	// and the actor holds the group-owner role on the top business.
	Resolve(ctx context.Context, actor domain.Actor) (domain.BusinessScope, error)
}

// BusinessAuthorizerSvc gates access to businesses and their areas.
type BusinessAuthorizerSvc interface {
	// AuthorizeBusinessAccess returns apperrors.ErrForbidden when businessID
	// is outside the actor's scope.
	AuthorizeBusinessAccess(ctx context.Context, actor domain.Actor, businessID string) error
}

// ScopeSvc combines scope resolution with the authorization check derived
// from it.
type ScopeSvc interface {
	ScopeResolverSvc
	BusinessAuthorizerSvc
}
