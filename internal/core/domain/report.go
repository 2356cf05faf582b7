package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportingConfig holds the per-business policy toggles the reporting core
// depends on, resolved once per request from the config cache with explicit
// defaults.
type ReportingConfig struct {
	// CostCurrency is the currency cost figures are reported in; empty means
	// the main currency.
	CostCurrency            string `json:"costCurrency,omitempty"`
	IncludeShippingAsIncome bool   `json:"includeShippingAsIncome"`
	IncludeTipsAsIncome     bool   `json:"includeTipsAsIncome"`
	Precision               int32  `json:"precision"`
}

// IncomeTotals is the result of aggregating one time window over a business
// scope. TotalIncomes and GrossProfit are in the main currency, TotalCost in
// the configured cost currency.
type IncomeTotals struct {
	TotalSales       []Money  `json:"totalSales"`
	TotalIncomes     Money    `json:"totalIncomes"`
	TotalCost        Money    `json:"totalCost"`
	GrossProfit      Money    `json:"grossProfit"`
	EconomicCycleIDs []string `json:"listEconomicCyclesId"`
}

// TimeBucket is one slot of a time-series report. Buckets are created
// pre-seeded with zeros for every slot of the window; a bucket with no
// underlying records keeps its zeros. The bucket names its currency codes
// explicitly so consumers need not derive them from the Money pairs.
type TimeBucket struct {
	Number           int       `json:"number"`
	Label            string    `json:"day,omitempty"`
	Date             time.Time `json:"date"`
	MainCurrency     string    `json:"mainCodeCurrency"`
	CostCurrency     string    `json:"costCurrency"`
	TotalSales       []Money   `json:"totalSales"`
	TotalIncomes     Money     `json:"totalIncomes"`
	TotalCost        Money     `json:"totalCost"`
	GrossProfit      Money     `json:"grossProfit"`
	EconomicCycleIDs []string  `json:"listEconomicCyclesId"`
}

// OrderSummary is the single-window reduction of a batch of orders plus the
// cash operations of the same window. All breakdowns are currency-keyed with
// at most one entry per currency.
type OrderSummary struct {
	TotalSales       []Money `json:"totalSales"`
	TotalIncomes     []Money `json:"totalIncomes"`
	TotalDiscounts   []Money `json:"totalDiscounts"`
	CouponDiscounts  []Money `json:"couponDiscounts"`
	TotalShipping    []Money `json:"totalShipping"`
	TotalTips        []Money `json:"totalTips"`
	TotalTaxes       []Money `json:"totalTaxes"`
	ManualDeposits   []Money `json:"manualDeposits"`
	ManualWithdraws  []Money `json:"manualWithdraws"`
	HouseCosted      []Money `json:"houseCosted"`
	TotalCost        Money   `json:"totalCost"`
	TotalSalesMain   Money   `json:"totalSalesMain"`
	TotalIncomesMain Money   `json:"totalIncomesMain"`
	GrossProfit      Money   `json:"grossProfit"`
}

// StockReconciliationRow is the per-product outcome of inventory
// reconciliation in one area. IndirectSales is a conservation residual and
// therefore an estimate, flagged as such.
type StockReconciliationRow struct {
	AreaID        string          `json:"areaId"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Tally         StockTally      `json:"tally"`
	OnHand        decimal.Decimal `json:"currentOnHand"`
	IndirectSales decimal.Decimal `json:"indirectSales"`
	Estimated     bool            `json:"estimated"`
}

// AreaStockReport rolls reconciliation and valuation up per area.
type AreaStockReport struct {
	AreaID        string                   `json:"areaId"`
	AreaName      string                   `json:"areaName"`
	Products      []StockReconciliationRow `json:"products"`
	TotalCost     Money                    `json:"totalCost"`
	TotalEstimate Money                    `json:"totalEstimatedSales"`
}

// StockDisponibilityRow values the current on-hand quantity of one product.
type StockDisponibilityRow struct {
	AreaID      string          `json:"areaId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostValue   Money           `json:"costValue"`
	SaleValue   Money           `json:"saleValue"`
}

// PeriodInventoryRow pairs opening and closing snapshots of one product with
// the movement totals recorded between them.
type PeriodInventoryRow struct {
	AreaID      string          `json:"areaId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Opening     decimal.Decimal `json:"opening"`
	Closing     decimal.Decimal `json:"closing"`
	Tally       StockTally      `json:"tally"`
}

// TipsByPerson is the per-person tip total of one economic cycle, native
// currencies plus the main-currency equivalent.
type TipsByPerson struct {
	PersonID   string  `json:"personId"`
	PersonName string  `json:"personName"`
	Tips       []Money `json:"tips"`
	TipsMain   Money   `json:"tipsMain"`
}
