package repositories

import (
	"context"
	"time"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
)

// OrderRepository supplies billed orders with their nested price records,
// plus the cash operations and tip records of economic cycles.
type OrderRepository interface {
	// ListOrdersByCycles returns the billed orders of the given cycles.
	ListOrdersByCycles(ctx context.Context, cycleIDs []string) ([]domain.OrderReceipt, error)

	// ListOrdersInWindow returns the billed orders of the given businesses
	// paid in [from, to).
	ListOrdersInWindow(ctx context.Context, businessIDs []string, from, to time.Time) ([]domain.OrderReceipt, error)

	// ListCashOperationsByCycles returns the manual drawer operations of the
	// given cycles.
	ListCashOperationsByCycles(ctx context.Context, cycleIDs []string) ([]domain.CashOperation, error)

	// ListTipsByCycle returns per-person tip records of one cycle.
	ListTipsByCycle(ctx context.Context, cycleID string) ([]domain.TipRecord, error)

	// ListSelledProducts returns per-product sold quantities of the given
	// businesses in [from, to), ordered by quantity descending.
	ListSelledProducts(ctx context.Context, businessIDs []string, from, to time.Time) ([]domain.SelledProduct, error)
}
