package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// economicCycleRepository implements the EconomicCycleRepository interface.
type economicCycleRepository struct {
	BaseRepository
}

// NewEconomicCycleRepository creates a new economic cycle repository.
func NewEconomicCycleRepository(db *pgxpool.Pool) portsrepo.EconomicCycleRepository {
	return &economicCycleRepository{BaseRepository: BaseRepository{Pool: db}}
}

func (r *economicCycleRepository) FindCycleByID(ctx context.Context, cycleID string) (*domain.EconomicCycle, error) {
	query := `
		SELECT cycle_id, business_id, open_date, close_date, is_active
		FROM economic_cycles
		WHERE cycle_id = $1
	`
	var cycle domain.EconomicCycle
	err := r.Pool.QueryRow(ctx, query, cycleID).Scan(
		&cycle.CycleID,
		&cycle.BusinessID,
		&cycle.OpenDate,
		&cycle.CloseDate,
		&cycle.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: economic cycle %s", apperrors.ErrNotFound, cycleID)
		}
		return nil, fmt.Errorf("error querying economic cycle: %w", err)
	}
	return &cycle, nil
}

func (r *economicCycleRepository) ListCyclesInWindow(ctx context.Context, businessIDs []string, from, to time.Time) ([]domain.EconomicCycle, error) {
	query := `
		SELECT cycle_id, business_id, open_date, close_date, is_active
		FROM economic_cycles
		WHERE business_id = ANY($1)
			AND open_date >= $2
			AND open_date < $3
		ORDER BY open_date
	`
	rows, err := r.Pool.Query(ctx, query, businessIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying economic cycles: %w", err)
	}
	defer rows.Close()

	result := []domain.EconomicCycle{}
	for rows.Next() {
		var cycle domain.EconomicCycle
		if err := rows.Scan(
			&cycle.CycleID,
			&cycle.BusinessID,
			&cycle.OpenDate,
			&cycle.CloseDate,
			&cycle.IsActive,
		); err != nil {
			return nil, fmt.Errorf("error scanning economic cycle row: %w", err)
		}
		result = append(result, cycle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating economic cycle rows: %w", err)
	}
	return result, nil
}
