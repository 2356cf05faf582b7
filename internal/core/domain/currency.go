package domain

import (
	"fmt"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CurrencyEntry is one currency enabled for a business.
// ExchangeRate expresses how many units of the main currency one unit of
// this currency is worth; the main currency always carries rate 1.
type CurrencyEntry struct {
	Code         string          `json:"code"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	IsMain       bool            `json:"isMain"`
}

// Catalog is the in-memory view of a business's enabled currencies for one
// request. It is read-only after construction and owns the single rounding
// site for all conversions (half-up at the configured precision).
type Catalog struct {
	entries   map[string]CurrencyEntry
	main      CurrencyEntry
	hasMain   bool
	precision int32
}

// NewCatalog builds a catalog from the cached currency entries of a business.
func NewCatalog(entries []CurrencyEntry, precision int32) *Catalog {
	c := &Catalog{
		entries:   make(map[string]CurrencyEntry, len(entries)),
		precision: precision,
	}
	for _, e := range entries {
		c.entries[e.Code] = e
		if e.IsMain {
			c.main = e
			c.hasMain = true
		}
	}
	return c
}

// Precision returns the decimal precision conversions are rounded to.
func (c *Catalog) Precision() int32 {
	return c.precision
}

// MainCurrency returns the designated main currency entry.
// Every report needs it as the common denominator, so its absence is fatal.
func (c *Catalog) MainCurrency() (CurrencyEntry, error) {
	if !c.hasMain {
		return CurrencyEntry{}, apperrors.ErrNoMainCurrency
	}
	return c.main, nil
}

// Has reports whether the currency is enabled for the business.
func (c *Catalog) Has(code string) bool {
	_, ok := c.entries[code]
	return ok
}

// Rate returns the exchange rate for a currency code. A code the business has
// not enabled is an error, not a skip: skipping would silently under-report.
// A non-positive configured rate is rejected the same way, conversions would
// otherwise divide by it.
func (c *Catalog) Rate(code string) (decimal.Decimal, error) {
	entry, ok := c.entries[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotAvailable, code)
	}
	if entry.ExchangeRate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %s has a non-positive exchange rate", apperrors.ErrCurrencyNotAvailable, code)
	}
	return entry.ExchangeRate, nil
}

// Convert returns money expressed in targetCode. A same-currency conversion
// returns the input unchanged so repeated conversions introduce no rounding
// drift. Otherwise the amount goes through the main currency: multiply by the
// source rate, divide by the target rate, round once.
func (c *Catalog) Convert(m Money, targetCode string) (Money, error) {
	if m.CodeCurrency == targetCode {
		return m, nil
	}
	main, err := c.MainCurrency()
	if err != nil {
		return Money{}, err
	}
	srcRate, err := c.Rate(m.CodeCurrency)
	if err != nil {
		return Money{}, err
	}
	inMain := m.Amount.Mul(srcRate)
	if targetCode == main.Code {
		return Money{Amount: c.round(inMain), CodeCurrency: targetCode}, nil
	}
	dstRate, err := c.Rate(targetCode)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: c.round(inMain.Div(dstRate)), CodeCurrency: targetCode}, nil
}

// ToMain converts money into the main currency.
func (c *Catalog) ToMain(m Money) (Money, error) {
	main, err := c.MainCurrency()
	if err != nil {
		return Money{}, err
	}
	return c.Convert(m, main.Code)
}

// round is the only rounding site; half-up at the catalog precision.
func (c *Catalog) round(d decimal.Decimal) decimal.Decimal {
	return d.Round(c.precision)
}
