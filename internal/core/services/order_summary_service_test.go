package services

import (
	"testing"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryTestCatalog() *domain.Catalog {
	return domain.NewCatalog([]domain.CurrencyEntry{
		{Code: "CUP", ExchangeRate: decimal.NewFromInt(1), IsMain: true},
		{Code: "USD", ExchangeRate: decimal.NewFromInt(120)},
	}, 2)
}

func usd(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), "USD")
}

func cup(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), "CUP")
}

func TestSummarize_FullScenario(t *testing.T) {
	svc := newOrderSummaryService()
	catalog := summaryTestCatalog()

	orders := []domain.OrderReceipt{
		{
			OrderID:    "ord-1",
			Prices:     []domain.Money{usd("20")},
			TotalToPay: []domain.Money{usd("20")},
			Discount:   decimal.NewFromInt(10),
			TotalCost:  cup("100"),
		},
		{
			OrderID:     "ord-2",
			HouseCosted: true,
			Prices:      []domain.Money{cup("50")},
			TotalCost:   cup("30"),
		},
	}
	cashOps := []domain.CashOperation{
		{Operation: domain.OperationDeposit, Amount: decimal.NewFromInt(10), CodeCurrency: "CUP"},
		{Operation: domain.OperationWithdraw, Amount: decimal.NewFromInt(5), CodeCurrency: "CUP"},
	}

	summary, err := svc.Summarize(orders, cashOps, catalog, domain.ReportingConfig{Precision: 2}, true)
	require.NoError(t, err)

	// House-costed order stays out of sales.
	require.Len(t, summary.TotalSales, 1)
	assert.Equal(t, "USD", summary.TotalSales[0].CodeCurrency)
	assert.True(t, decimal.NewFromInt(20).Equal(summary.TotalSales[0].Amount))

	require.Len(t, summary.HouseCosted, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(summary.HouseCosted[0].Amount))

	// 10% of 20 USD.
	require.Len(t, summary.TotalDiscounts, 1)
	assert.Equal(t, "USD", summary.TotalDiscounts[0].CodeCurrency)
	assert.True(t, decimal.NewFromInt(2).Equal(summary.TotalDiscounts[0].Amount))

	// Incomes: 20 USD charged plus the 10 CUP deposit.
	require.Len(t, summary.TotalIncomes, 2)
	assert.Equal(t, "CUP", summary.TotalIncomes[0].CodeCurrency)
	assert.True(t, decimal.NewFromInt(10).Equal(summary.TotalIncomes[0].Amount))
	assert.True(t, decimal.NewFromInt(20).Equal(summary.TotalIncomes[1].Amount))

	require.Len(t, summary.ManualDeposits, 1)
	require.Len(t, summary.ManualWithdraws, 1)

	// Costs: 100 + 30 order cost plus the 5 CUP withdrawal.
	assert.Equal(t, "CUP", summary.TotalCost.CodeCurrency)
	assert.True(t, decimal.NewFromInt(135).Equal(summary.TotalCost.Amount), "got %s", summary.TotalCost.Amount)

	// Main-currency reductions: 20 USD = 2400 CUP.
	assert.True(t, decimal.NewFromInt(2400).Equal(summary.TotalSalesMain.Amount), "got %s", summary.TotalSalesMain.Amount)
	assert.True(t, decimal.NewFromInt(2410).Equal(summary.TotalIncomesMain.Amount), "got %s", summary.TotalIncomesMain.Amount)
	assert.True(t, decimal.NewFromInt(2275).Equal(summary.GrossProfit.Amount), "got %s", summary.GrossProfit.Amount)
	assert.Equal(t, "CUP", summary.GrossProfit.CodeCurrency)
}

func TestSummarize_CashOpsSuppressed(t *testing.T) {
	svc := newOrderSummaryService()
	catalog := summaryTestCatalog()

	cashOps := []domain.CashOperation{
		{Operation: domain.OperationDeposit, Amount: decimal.NewFromInt(10), CodeCurrency: "CUP"},
	}

	summary, err := svc.Summarize(nil, cashOps, catalog, domain.ReportingConfig{Precision: 2}, false)
	require.NoError(t, err)

	assert.Empty(t, summary.ManualDeposits)
	assert.Empty(t, summary.TotalIncomes)
	assert.True(t, summary.TotalIncomesMain.Amount.IsZero())
}

func TestSummarize_CouponsTrackedTwice(t *testing.T) {
	svc := newOrderSummaryService()
	catalog := summaryTestCatalog()

	orders := []domain.OrderReceipt{
		{
			OrderID:         "ord-1",
			Prices:          []domain.Money{cup("100")},
			TotalToPay:      []domain.Money{cup("95")},
			CouponDiscounts: []domain.Money{cup("5")},
			TotalCost:       cup("40"),
		},
	}

	summary, err := svc.Summarize(orders, nil, catalog, domain.ReportingConfig{Precision: 2}, true)
	require.NoError(t, err)

	require.Len(t, summary.TotalDiscounts, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(summary.TotalDiscounts[0].Amount))
	require.Len(t, summary.CouponDiscounts, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(summary.CouponDiscounts[0].Amount))
}

func TestSummarize_ShippingAndTipFlags(t *testing.T) {
	svc := newOrderSummaryService()
	catalog := summaryTestCatalog()

	shipping := cup("15")
	tip := cup("8")
	orders := []domain.OrderReceipt{
		{
			OrderID:       "ord-1",
			Prices:        []domain.Money{cup("100")},
			TotalToPay:    []domain.Money{cup("100")},
			ShippingPrice: &shipping,
			TipPrice:      &tip,
			TotalCost:     cup("40"),
		},
	}

	// Flags off: tracked in their own breakdowns, excluded from income.
	summary, err := svc.Summarize(orders, nil, catalog, domain.ReportingConfig{Precision: 2}, true)
	require.NoError(t, err)
	require.Len(t, summary.TotalShipping, 1)
	require.Len(t, summary.TotalTips, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.TotalIncomesMain.Amount))

	// Flags on: folded into income as well.
	cfg := domain.ReportingConfig{IncludeShippingAsIncome: true, IncludeTipsAsIncome: true, Precision: 2}
	summary, err = svc.Summarize(orders, nil, catalog, cfg, true)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(123).Equal(summary.TotalIncomesMain.Amount), "got %s", summary.TotalIncomesMain.Amount)
}

func TestSummarize_NoMainCurrency(t *testing.T) {
	svc := newOrderSummaryService()
	catalog := domain.NewCatalog([]domain.CurrencyEntry{
		{Code: "USD", ExchangeRate: decimal.NewFromInt(1)},
	}, 2)

	_, err := svc.Summarize(nil, nil, catalog, domain.ReportingConfig{Precision: 2}, true)
	assert.Error(t, err)
}

func TestSummarizeByClient_GroupsAndUnassigned(t *testing.T) {
	svc := newOrderSummaryService()
	catalog := summaryTestCatalog()

	orders := []domain.OrderReceipt{
		{OrderID: "ord-1", ClientID: "client-a", Prices: []domain.Money{cup("100")}, TotalToPay: []domain.Money{cup("100")}},
		{OrderID: "ord-2", ClientID: "client-a", Prices: []domain.Money{cup("50")}, TotalToPay: []domain.Money{cup("50")}},
		{OrderID: "ord-3", Prices: []domain.Money{cup("10")}, TotalToPay: []domain.Money{cup("10")}},
	}

	summaries, err := svc.SummarizeByClient(orders, catalog, domain.ReportingConfig{Precision: 2})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	require.Contains(t, summaries, "client-a")
	assert.True(t, decimal.NewFromInt(150).Equal(summaries["client-a"].TotalIncomesMain.Amount))

	require.Contains(t, summaries, domain.UnassignedClientKey)
	assert.True(t, decimal.NewFromInt(10).Equal(summaries[domain.UnassignedClientKey].TotalIncomesMain.Amount))
}
