package accounting

import (
	"time"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TallyMovements accumulates movement-log quantities into a tally, ignoring
// movements recorded at or before the opening snapshot instant.
func TallyMovements(tally domain.StockTally, movements []domain.StockMovement, since time.Time) domain.StockTally {
	for _, mv := range movements {
		if !mv.CreatedAt.After(since) {
			continue
		}
		switch mv.Category {
		case domain.MovementEntry:
			tally.Entries = tally.Entries.Add(mv.Quantity)
		case domain.MovementOut:
			tally.Outs = tally.Outs.Add(mv.Quantity)
		case domain.MovementTransfer:
			tally.Movements = tally.Movements.Add(mv.Quantity)
		case domain.MovementProcessed:
			tally.Processed = tally.Processed.Add(mv.Quantity)
		case domain.MovementWaste:
			tally.Waste = tally.Waste.Add(mv.Quantity)
		}
	}
	return tally
}

// IndirectSales solves the stock conservation equation for the unaccounted
// residual:
//
//	onHand = initial + entries - outs - movements - processed - waste - directSales - indirectSales
//
// A residual that rounds to zero at precision-1 digits is clamped to exactly
// zero so rounding noise from many chained movements does not surface as
// phantom sales. The returned value is an estimate, not a ledger figure.
func IndirectSales(tally domain.StockTally, onHand decimal.Decimal, precision int32) decimal.Decimal {
	residual := tally.Initial.
		Add(tally.Entries).
		Sub(tally.Outs).
		Sub(tally.Movements).
		Sub(tally.Processed).
		Sub(tally.Waste).
		Sub(tally.DirectSales).
		Sub(onHand)

	clampDigits := precision - 1
	if clampDigits < 0 {
		clampDigits = 0
	}
	if residual.Round(clampDigits).IsZero() {
		return decimal.Zero
	}
	return residual
}
