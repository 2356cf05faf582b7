package services

import (
	"github.com/gestium/biz_reporting_app/internal/core/domain"
	"github.com/gestium/biz_reporting_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// orderSummaryService reduces a batch of orders plus the cash operations of
// the same window into one OrderSummary. It is a pure fold over already
// fetched records; all sourcing happens in the assembler.
type orderSummaryService struct{}

func newOrderSummaryService() *orderSummaryService {
	return &orderSummaryService{}
}

// Summarize applies the per-order reduction rules. includeCashOps is false
// when an external bank-account ledger covers the same window, so drawer
// operations are not counted twice.
func (s *orderSummaryService) Summarize(orders []domain.OrderReceipt, cashOps []domain.CashOperation, catalog *domain.Catalog, cfg domain.ReportingConfig, includeCashOps bool) (*domain.OrderSummary, error) {
	main, err := catalog.MainCurrency()
	if err != nil {
		return nil, err
	}
	costCode := cfg.CostCurrency
	if costCode == "" {
		costCode = main.Code
	}

	sales := accounting.NewMoneyAccumulator()
	incomes := accounting.NewMoneyAccumulator()
	discounts := accounting.NewMoneyAccumulator()
	coupons := accounting.NewMoneyAccumulator()
	shipping := accounting.NewMoneyAccumulator()
	tips := accounting.NewMoneyAccumulator()
	taxes := accounting.NewMoneyAccumulator()
	deposits := accounting.NewMoneyAccumulator()
	withdraws := accounting.NewMoneyAccumulator()
	houseCosted := accounting.NewMoneyAccumulator()
	costs := accounting.NewMoneyAccumulator()

	for _, order := range orders {
		// House-costed orders are excluded from sales but keep their cost.
		if order.HouseCosted {
			houseCosted.AddAll(order.Prices)
		} else {
			sales.AddAll(order.Prices)
		}
		costs.Add(order.TotalCost)

		incomes.AddAll(order.TotalToPay)

		if order.Discount.IsPositive() {
			for _, price := range order.Prices {
				amount := price.Amount.Mul(order.Discount).Div(oneHundred).Round(catalog.Precision())
				discounts.AddAmount(price.CodeCurrency, amount)
			}
		}
		// Coupon discounts fold into the discount total and stay tracked
		// separately for audit.
		discounts.AddAll(order.CouponDiscounts)
		coupons.AddAll(order.CouponDiscounts)

		if order.ShippingPrice != nil {
			shipping.Add(*order.ShippingPrice)
			if cfg.IncludeShippingAsIncome {
				incomes.Add(*order.ShippingPrice)
			}
		}
		if order.TipPrice != nil {
			tips.Add(*order.TipPrice)
			if cfg.IncludeTipsAsIncome {
				incomes.Add(*order.TipPrice)
			}
		}
		if order.Taxes != nil {
			taxes.Add(*order.Taxes)
		}
	}

	if includeCashOps {
		for _, op := range cashOps {
			switch op.Operation {
			case domain.OperationDeposit:
				deposits.AddAmount(op.CodeCurrency, op.Amount)
				incomes.AddAmount(op.CodeCurrency, op.Amount)
			case domain.OperationWithdraw:
				withdraws.AddAmount(op.CodeCurrency, op.Amount)
				costs.AddAmount(op.CodeCurrency, op.Amount)
			}
		}
	}

	totalSalesMain, err := sales.ToMain(catalog)
	if err != nil {
		return nil, err
	}
	totalIncomesMain, err := incomes.ToMain(catalog)
	if err != nil {
		return nil, err
	}
	totalCost, err := costs.ToCurrency(catalog, costCode)
	if err != nil {
		return nil, err
	}
	costInMain, err := catalog.ToMain(totalCost)
	if err != nil {
		return nil, err
	}

	return &domain.OrderSummary{
		TotalSales:       sales.List(),
		TotalIncomes:     incomes.List(),
		TotalDiscounts:   discounts.List(),
		CouponDiscounts:  coupons.List(),
		TotalShipping:    shipping.List(),
		TotalTips:        tips.List(),
		TotalTaxes:       taxes.List(),
		ManualDeposits:   deposits.List(),
		ManualWithdraws:  withdraws.List(),
		HouseCosted:      houseCosted.List(),
		TotalCost:        totalCost,
		TotalSalesMain:   totalSalesMain,
		TotalIncomesMain: totalIncomesMain,
		GrossProfit:      domain.NewMoney(totalIncomesMain.Amount.Sub(costInMain.Amount), main.Code),
	}, nil
}

// SummarizeByClient splits the orders per customer before summarizing.
// Orders without a client land under the unassigned sentinel key. Cash
// operations are drawer-level, not per client, and are excluded.
func (s *orderSummaryService) SummarizeByClient(orders []domain.OrderReceipt, catalog *domain.Catalog, cfg domain.ReportingConfig) (map[string]*domain.OrderSummary, error) {
	grouped := make(map[string][]domain.OrderReceipt)
	for _, order := range orders {
		key := order.ClientID
		if key == "" {
			key = domain.UnassignedClientKey
		}
		grouped[key] = append(grouped[key], order)
	}

	summaries := make(map[string]*domain.OrderSummary, len(grouped))
	for key, group := range grouped {
		summary, err := s.Summarize(group, nil, catalog, cfg, false)
		if err != nil {
			return nil, err
		}
		summaries[key] = summary
	}
	return summaries, nil
}
