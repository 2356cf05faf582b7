package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// businessRepository implements the BusinessRepository interface.
type businessRepository struct {
	BaseRepository
}

// NewBusinessRepository creates a new business repository.
func NewBusinessRepository(db *pgxpool.Pool) portsrepo.BusinessRepository {
	return &businessRepository{BaseRepository: BaseRepository{Pool: db}}
}

// FindBusinessByID returns the business together with its owned branch list.
func (r *businessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `
		SELECT business_id, name, mode, COALESCE(parent_id, '')
		FROM businesses
		WHERE business_id = $1
	`
	var business domain.Business
	err := r.Pool.QueryRow(ctx, query, businessID).Scan(
		&business.BusinessID,
		&business.Name,
		&business.Mode,
		&business.ParentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: business %s", apperrors.ErrNotFound, businessID)
		}
		return nil, fmt.Errorf("error querying business: %w", err)
	}

	branchQuery := `
		SELECT business_id
		FROM businesses
		WHERE parent_id = $1
		ORDER BY business_id
	`
	rows, err := r.Pool.Query(ctx, branchQuery, businessID)
	if err != nil {
		return nil, fmt.Errorf("error querying branches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var branchID string
		if err := rows.Scan(&branchID); err != nil {
			return nil, fmt.Errorf("error scanning branch row: %w", err)
		}
		business.BranchIDs = append(business.BranchIDs, branchID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branch rows: %w", err)
	}

	return &business, nil
}
