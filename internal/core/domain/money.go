package domain

import (
	"github.com/shopspring/decimal"
)

// Money pairs an amount with the currency it is denominated in.
// Amounts are never added across currencies; conversion always goes through
// a Catalog.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CodeCurrency string          `json:"codeCurrency"`
}

// NewMoney builds a Money value.
func NewMoney(amount decimal.Decimal, codeCurrency string) Money {
	return Money{Amount: amount, CodeCurrency: codeCurrency}
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(codeCurrency string) Money {
	return Money{Amount: decimal.Zero, CodeCurrency: codeCurrency}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}
