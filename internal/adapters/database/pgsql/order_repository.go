package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Price record kinds stored in order_prices. Each order row owns a set of
// typed price sub-records, one per currency and kind.
const (
	priceKindLine     = "PRICE"
	priceKindToPay    = "TOTAL_TO_PAY"
	priceKindCoupon   = "COUPON_DISCOUNT"
	priceKindShipping = "SHIPPING"
	priceKindTip      = "TIP"
	priceKindTax      = "TAX"
)

// orderRepository implements the OrderRepository interface.
type orderRepository struct {
	BaseRepository
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *pgxpool.Pool) portsrepo.OrderRepository {
	return &orderRepository{BaseRepository: BaseRepository{Pool: db}}
}

func (r *orderRepository) ListOrdersByCycles(ctx context.Context, cycleIDs []string) ([]domain.OrderReceipt, error) {
	query := `
		SELECT order_id, business_id, economic_cycle_id, COALESCE(client_id, ''),
			COALESCE(managed_by_id, ''), COALESCE(managed_by_name, ''),
			status, house_costed, discount,
			total_cost_amount, total_cost_currency, created_at, paid_at
		FROM orders
		WHERE economic_cycle_id = ANY($1)
			AND status = 'BILLED'
		ORDER BY paid_at
	`
	return r.queryOrders(ctx, query, cycleIDs)
}

func (r *orderRepository) ListOrdersInWindow(ctx context.Context, businessIDs []string, from, to time.Time) ([]domain.OrderReceipt, error) {
	query := `
		SELECT order_id, business_id, economic_cycle_id, COALESCE(client_id, ''),
			COALESCE(managed_by_id, ''), COALESCE(managed_by_name, ''),
			status, house_costed, discount,
			total_cost_amount, total_cost_currency, created_at, paid_at
		FROM orders
		WHERE business_id = ANY($1)
			AND status = 'BILLED'
			AND paid_at >= $2
			AND paid_at < $3
		ORDER BY paid_at
	`
	return r.queryOrders(ctx, query, businessIDs, from, to)
}

// queryOrders runs an order query and attaches the nested price records.
func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.OrderReceipt, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.OrderReceipt{}
	index := make(map[string]int)
	for rows.Next() {
		var order domain.OrderReceipt
		if err := rows.Scan(
			&order.OrderID,
			&order.BusinessID,
			&order.EconomicCycleID,
			&order.ClientID,
			&order.ManagedByID,
			&order.ManagedByName,
			&order.Status,
			&order.HouseCosted,
			&order.Discount,
			&order.TotalCost.Amount,
			&order.TotalCost.CodeCurrency,
			&order.CreatedAt,
			&order.PaidAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning order row: %w", err)
		}
		index[order.OrderID] = len(orders)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]string, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.OrderID)
	}
	if err := r.attachPrices(ctx, orders, index, orderIDs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) attachPrices(ctx context.Context, orders []domain.OrderReceipt, index map[string]int, orderIDs []string) error {
	query := `
		SELECT order_id, kind, amount, code_currency
		FROM order_prices
		WHERE order_id = ANY($1)
		ORDER BY order_id, kind, code_currency
	`
	rows, err := r.Pool.Query(ctx, query, orderIDs)
	if err != nil {
		return fmt.Errorf("error querying order prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			kind    string
			money   domain.Money
		)
		if err := rows.Scan(&orderID, &kind, &money.Amount, &money.CodeCurrency); err != nil {
			return fmt.Errorf("error scanning order price row: %w", err)
		}
		i, ok := index[orderID]
		if !ok {
			continue
		}
		switch kind {
		case priceKindLine:
			orders[i].Prices = append(orders[i].Prices, money)
		case priceKindToPay:
			orders[i].TotalToPay = append(orders[i].TotalToPay, money)
		case priceKindCoupon:
			orders[i].CouponDiscounts = append(orders[i].CouponDiscounts, money)
		case priceKindShipping:
			m := money
			orders[i].ShippingPrice = &m
		case priceKindTip:
			m := money
			orders[i].TipPrice = &m
		case priceKindTax:
			m := money
			orders[i].Taxes = &m
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating order price rows: %w", err)
	}
	return nil
}

func (r *orderRepository) ListCashOperationsByCycles(ctx context.Context, cycleIDs []string) ([]domain.CashOperation, error) {
	query := `
		SELECT operation_id, economic_cycle_id, operation, amount, code_currency, created_at
		FROM cash_operations
		WHERE economic_cycle_id = ANY($1)
		ORDER BY created_at
	`
	rows, err := r.Pool.Query(ctx, query, cycleIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying cash operations: %w", err)
	}
	defer rows.Close()

	result := []domain.CashOperation{}
	for rows.Next() {
		var op domain.CashOperation
		if err := rows.Scan(
			&op.OperationID,
			&op.EconomicCycleID,
			&op.Operation,
			&op.Amount,
			&op.CodeCurrency,
			&op.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning cash operation row: %w", err)
		}
		result = append(result, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash operation rows: %w", err)
	}
	return result, nil
}

func (r *orderRepository) ListTipsByCycle(ctx context.Context, cycleID string) ([]domain.TipRecord, error) {
	query := `
		SELECT COALESCE(o.managed_by_id, ''), COALESCE(o.managed_by_name, ''),
			p.amount, p.code_currency
		FROM orders o
		JOIN order_prices p ON p.order_id = o.order_id AND p.kind = 'TIP'
		WHERE o.economic_cycle_id = $1
			AND o.status = 'BILLED'
		ORDER BY o.paid_at
	`
	rows, err := r.Pool.Query(ctx, query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("error querying tips: %w", err)
	}
	defer rows.Close()

	result := []domain.TipRecord{}
	for rows.Next() {
		var record domain.TipRecord
		if err := rows.Scan(
			&record.PersonID,
			&record.PersonName,
			&record.Amount,
			&record.CodeCurrency,
		); err != nil {
			return nil, fmt.Errorf("error scanning tip row: %w", err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tip rows: %w", err)
	}
	return result, nil
}

func (r *orderRepository) ListSelledProducts(ctx context.Context, businessIDs []string, from, to time.Time) ([]domain.SelledProduct, error) {
	query := `
		SELECT op.product_id, MAX(op.name), COALESCE(MAX(op.area_id), ''), SUM(op.quantity)
		FROM order_products op
		JOIN orders o ON o.order_id = op.order_id
		WHERE o.business_id = ANY($1)
			AND o.status = 'BILLED'
			AND o.paid_at >= $2
			AND o.paid_at < $3
		GROUP BY op.product_id
		ORDER BY SUM(op.quantity) DESC
	`
	rows, err := r.Pool.Query(ctx, query, businessIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying selled products: %w", err)
	}
	defer rows.Close()

	result := []domain.SelledProduct{}
	for rows.Next() {
		var product domain.SelledProduct
		var quantity decimal.Decimal
		if err := rows.Scan(&product.ProductID, &product.Name, &product.AreaID, &quantity); err != nil {
			return nil, fmt.Errorf("error scanning selled product row: %w", err)
		}
		product.Quantity = quantity
		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating selled product rows: %w", err)
	}
	return result, nil
}
