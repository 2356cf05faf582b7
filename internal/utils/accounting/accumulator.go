package accounting

import (
	"sort"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyAccumulator merges amount+currency pairs into currency-keyed totals.
// Addition only ever happens between same-currency amounts, so folding any
// permutation of the same records yields the same totals. The zero value is
// not usable; construct with NewMoneyAccumulator.
type MoneyAccumulator struct {
	totals map[string]decimal.Decimal
}

// NewMoneyAccumulator returns an empty accumulator.
func NewMoneyAccumulator() *MoneyAccumulator {
	return &MoneyAccumulator{totals: make(map[string]decimal.Decimal)}
}

// Add folds one money record into the totals.
func (a *MoneyAccumulator) Add(m domain.Money) {
	a.AddAmount(m.CodeCurrency, m.Amount)
}

// AddAmount folds a raw amount for a currency code into the totals.
func (a *MoneyAccumulator) AddAmount(codeCurrency string, amount decimal.Decimal) {
	a.totals[codeCurrency] = a.totals[codeCurrency].Add(amount)
}

// AddAll folds a list of money records into the totals.
func (a *MoneyAccumulator) AddAll(list []domain.Money) {
	for _, m := range list {
		a.Add(m)
	}
}

// Merge folds another accumulator's totals into this one.
func (a *MoneyAccumulator) Merge(other *MoneyAccumulator) {
	for code, amount := range other.totals {
		a.AddAmount(code, amount)
	}
}

// IsEmpty reports whether every per-currency total is zero.
func (a *MoneyAccumulator) IsEmpty() bool {
	for _, amount := range a.totals {
		if !amount.IsZero() {
			return false
		}
	}
	return true
}

// List returns the totals as money records, one entry per currency with a
// non-zero total, sorted by currency code so output is deterministic.
func (a *MoneyAccumulator) List() []domain.Money {
	codes := make([]string, 0, len(a.totals))
	for code, amount := range a.totals {
		if amount.IsZero() {
			continue
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)

	list := make([]domain.Money, 0, len(codes))
	for _, code := range codes {
		list = append(list, domain.Money{Amount: a.totals[code], CodeCurrency: code})
	}
	return list
}

// ToCurrency converts every per-currency total into the target currency and
// sums them. A currency missing from the catalog is an error, never a skip.
func (a *MoneyAccumulator) ToCurrency(catalog *domain.Catalog, targetCode string) (domain.Money, error) {
	sum := decimal.Zero
	for _, m := range a.List() {
		converted, err := catalog.Convert(m, targetCode)
		if err != nil {
			return domain.Money{}, err
		}
		sum = sum.Add(converted.Amount)
	}
	return domain.Money{Amount: sum, CodeCurrency: targetCode}, nil
}

// ToMain converts every per-currency total into the main currency of the
// catalog and sums them.
func (a *MoneyAccumulator) ToMain(catalog *domain.Catalog) (domain.Money, error) {
	main, err := catalog.MainCurrency()
	if err != nil {
		return domain.Money{}, err
	}
	return a.ToCurrency(catalog, main.Code)
}
