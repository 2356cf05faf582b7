package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the billing state of an order. Reporting only consumes
// billed orders; the store filters on this.
type OrderStatus string

const (
	StatusBilled    OrderStatus = "BILLED"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusRefunded  OrderStatus = "REFUNDED"
)

// CashOperationType distinguishes manual drawer movements recorded inside an
// economic cycle.
type CashOperationType string

const (
	OperationDeposit  CashOperationType = "MANUAL_DEPOSIT"
	OperationWithdraw CashOperationType = "MANUAL_WITHDRAW"
)

// CashOperation is a manual deposit or withdrawal on the cash drawer.
type CashOperation struct {
	OperationID     string            `json:"id"`
	EconomicCycleID string            `json:"economicCycleId"`
	Operation       CashOperationType `json:"operation"`
	Amount          decimal.Decimal   `json:"amount"`
	CodeCurrency    string            `json:"codeCurrency"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// OrderReceipt is one billed order with its nested price records, as fetched
// from the record store. Prices carry the gross line-item totals per currency;
// TotalToPay carries what was actually charged (they differ when discounts or
// coupons apply).
type OrderReceipt struct {
	OrderID         string      `json:"id"`
	BusinessID      string      `json:"businessId"`
	EconomicCycleID string      `json:"economicCycleId"`
	ClientID        string      `json:"clientId,omitempty"`
	ManagedByID     string      `json:"managedById,omitempty"`
	ManagedByName   string      `json:"managedByName,omitempty"`
	Status          OrderStatus `json:"status"`

	// HouseCosted orders (staff meals, giveaways) are excluded from sales
	// totals but still contribute their cost.
	HouseCosted bool `json:"houseCosted"`

	// Discount is the ad-hoc percentage discount applied to the whole order,
	// 0-100. Coupon discounts are tracked separately in CouponDiscounts.
	Discount decimal.Decimal `json:"discount"`

	Prices          []Money `json:"prices"`
	TotalToPay      []Money `json:"totalToPay"`
	CouponDiscounts []Money `json:"couponDiscounts,omitempty"`
	ShippingPrice   *Money  `json:"shippingPrice,omitempty"`
	TipPrice        *Money  `json:"tipPrice,omitempty"`
	Taxes           *Money  `json:"taxes,omitempty"`

	// TotalCost is denominated in the business's cost currency.
	TotalCost Money `json:"totalCost"`

	CreatedAt time.Time `json:"createdAt"`
	PaidAt    time.Time `json:"paidAt"`
}

// SelledProduct is a ranked row in the most-selled products report.
type SelledProduct struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	AreaID    string          `json:"areaId,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TipRecord is one recorded tip attributed to a person within a cycle.
type TipRecord struct {
	PersonID     string          `json:"personId"`
	PersonName   string          `json:"personName"`
	Amount       decimal.Decimal `json:"amount"`
	CodeCurrency string          `json:"codeCurrency"`
}
