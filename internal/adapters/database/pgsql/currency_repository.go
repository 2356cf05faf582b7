package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultMoneyPrecision is applied when a business has no explicit
// reporting config row.
const defaultMoneyPrecision = 2

// currencyRepository implements the CurrencyRepository interface against the
// store. The redis cache adapter wraps it read-through.
type currencyRepository struct {
	BaseRepository
}

// NewCurrencyRepository creates a new currency repository.
func NewCurrencyRepository(db *pgxpool.Pool) portsrepo.CurrencyRepository {
	return &currencyRepository{BaseRepository: BaseRepository{Pool: db}}
}

func (r *currencyRepository) ListCurrencies(ctx context.Context, businessID string) ([]domain.CurrencyEntry, error) {
	query := `
		SELECT code, exchange_rate, is_main
		FROM business_currencies
		WHERE business_id = $1
		ORDER BY code
	`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("error querying currencies: %w", err)
	}
	defer rows.Close()

	result := []domain.CurrencyEntry{}
	for rows.Next() {
		var entry domain.CurrencyEntry
		if err := rows.Scan(&entry.Code, &entry.ExchangeRate, &entry.IsMain); err != nil {
			return nil, fmt.Errorf("error scanning currency row: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency rows: %w", err)
	}
	return result, nil
}

func (r *currencyRepository) GetReportingConfig(ctx context.Context, businessID string) (*domain.ReportingConfig, error) {
	query := `
		SELECT COALESCE(cost_currency, ''), include_shipping_as_income,
			include_tips_as_income, precision
		FROM reporting_configs
		WHERE business_id = $1
	`
	cfg := domain.ReportingConfig{Precision: defaultMoneyPrecision}
	err := r.Pool.QueryRow(ctx, query, businessID).Scan(
		&cfg.CostCurrency,
		&cfg.IncludeShippingAsIncome,
		&cfg.IncludeTipsAsIncome,
		&cfg.Precision,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No row means the business runs on defaults.
			return &domain.ReportingConfig{Precision: defaultMoneyPrecision}, nil
		}
		return nil, fmt.Errorf("error querying reporting config: %w", err)
	}
	if cfg.Precision <= 0 {
		cfg.Precision = defaultMoneyPrecision
	}
	return &cfg, nil
}
