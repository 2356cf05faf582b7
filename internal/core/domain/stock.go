package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType separates stock-tracked products from composed/menu products.
// Inventory reconciliation only applies to stock-type products.
type ProductType string

const (
	ProductTypeStock ProductType = "STOCK"
	ProductTypeMenu  ProductType = "MENU"
	ProductTypeRaw   ProductType = "RAW"
)

// MovementCategory classifies a stock movement record.
type MovementCategory string

const (
	MovementEntry     MovementCategory = "ENTRY"
	MovementOut       MovementCategory = "OUT"
	MovementTransfer  MovementCategory = "MOVEMENT"
	MovementProcessed MovementCategory = "PROCESSED"
	MovementWaste     MovementCategory = "WASTE"
)

// StockMovement is one recorded movement on an (area, product) pair.
type StockMovement struct {
	MovementID string           `json:"id"`
	AreaID     string           `json:"areaId"`
	ProductID  string           `json:"productId"`
	Category   MovementCategory `json:"category"`
	Quantity   decimal.Decimal  `json:"quantity"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// SnapshotType marks whether a snapshot opens or closes an inventory period.
type SnapshotType string

const (
	SnapshotOpening SnapshotType = "OPENING"
	SnapshotClosing SnapshotType = "CLOSING"
)

// StockSnapshot is a counted on-hand quantity for an (area, product) pair at
// a point in time.
type StockSnapshot struct {
	SnapshotID string          `json:"id"`
	AreaID     string          `json:"areaId"`
	ProductID  string          `json:"productId"`
	Type       SnapshotType    `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	TakenAt    time.Time       `json:"takenAt"`
}

// Area is a stock-holding location of a business.
type Area struct {
	AreaID     string `json:"id"`
	BusinessID string `json:"businessId"`
	Name       string `json:"name"`
}

// ProductStock is the current on-hand state of a product in an area,
// including the valuation inputs for disponibility reports.
type ProductStock struct {
	AreaID      string          `json:"areaId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Type        ProductType     `json:"type"`
	Measure     string          `json:"measure,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost Money           `json:"averageCost"`
	SalePrice   Money           `json:"salePrice"`
}

// ProductQuantity is a per-product quantity aggregate (e.g. direct sales in
// a window).
type ProductQuantity struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// StockTally accumulates the movement-log quantities that enter the
// conservation equation for one (area, product) pair.
type StockTally struct {
	Initial     decimal.Decimal `json:"initial"`
	Entries     decimal.Decimal `json:"entries"`
	Outs        decimal.Decimal `json:"outs"`
	Movements   decimal.Decimal `json:"movements"`
	Processed   decimal.Decimal `json:"processed"`
	Waste       decimal.Decimal `json:"waste"`
	DirectSales decimal.Decimal `json:"directSales"`
}
