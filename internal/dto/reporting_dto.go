package dto

import (
	"fmt"
	"time"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	"github.com/gestium/biz_reporting_app/internal/core/domain"
	portssvc "github.com/gestium/biz_reporting_app/internal/core/ports/services"
)

const dateLayout = "2006-01-02"

// GeneralFinancialRequest is the body of the general financial report
// endpoint. AccountIDs, when supplied, names external bank accounts whose
// ledger already covers manual cash movements.
type GeneralFinancialRequest struct {
	DateFrom   string   `json:"dateFrom" binding:"required"`
	DateTo     string   `json:"dateTo" binding:"required"`
	Origin     string   `json:"origin" binding:"omitempty,oneof=pos online marketplace"`
	AccountIDs []string `json:"accountIds" binding:"omitempty,dive,required"`
}

// ToQuery parses the request dates and builds the service query.
func (r GeneralFinancialRequest) ToQuery() (portssvc.GeneralFinancialQuery, error) {
	from, err := time.Parse(dateLayout, r.DateFrom)
	if err != nil {
		return portssvc.GeneralFinancialQuery{}, fmt.Errorf("%w: invalid dateFrom, use YYYY-MM-DD", apperrors.ErrValidation)
	}
	to, err := time.Parse(dateLayout, r.DateTo)
	if err != nil {
		return portssvc.GeneralFinancialQuery{}, fmt.Errorf("%w: invalid dateTo, use YYYY-MM-DD", apperrors.ErrValidation)
	}
	// The window is half-open, so the end date itself must be included.
	return portssvc.GeneralFinancialQuery{
		From:       from,
		To:         to.AddDate(0, 0, 1),
		Origin:     r.Origin,
		AccountIDs: r.AccountIDs,
	}, nil
}

// SalesSeriesResponse wraps a bucketed sales series with the mode that
// produced it.
type SalesSeriesResponse struct {
	Mode    string              `json:"mode"`
	Buckets []domain.TimeBucket `json:"buckets"`
}

// ToSalesSeriesResponse converts the bucket series to a response.
func ToSalesSeriesResponse(mode string, buckets []domain.TimeBucket) SalesSeriesResponse {
	return SalesSeriesResponse{Mode: mode, Buckets: buckets}
}

// GeneralFinancialResponse echoes the resolved window next to the summary so
// clients can label the report without re-deriving defaults.
type GeneralFinancialResponse struct {
	DateFrom string              `json:"dateFrom"`
	DateTo   string              `json:"dateTo"`
	Origin   string              `json:"origin,omitempty"`
	Summary  domain.OrderSummary `json:"summary"`
}

// ToGeneralFinancialResponse converts a domain order summary to a response.
func ToGeneralFinancialResponse(summary *domain.OrderSummary, req GeneralFinancialRequest) GeneralFinancialResponse {
	return GeneralFinancialResponse{
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Origin:   req.Origin,
		Summary:  *summary,
	}
}

// PeriodInventoryResponse wraps the paired snapshot rows with the window.
type PeriodInventoryResponse struct {
	DateFrom string                      `json:"dateFrom"`
	DateTo   string                      `json:"dateTo"`
	Rows     []domain.PeriodInventoryRow `json:"rows"`
}

// ToPeriodInventoryResponse converts period inventory rows to a response.
func ToPeriodInventoryResponse(rows []domain.PeriodInventoryRow, from, to time.Time) PeriodInventoryResponse {
	return PeriodInventoryResponse{
		DateFrom: from.Format(dateLayout),
		DateTo:   to.Format(dateLayout),
		Rows:     rows,
	}
}

// TipsResponse is the per-cycle tips report.
type TipsResponse struct {
	EconomicCycleID string                `json:"economicCycleId"`
	People          []domain.TipsByPerson `json:"people"`
}

// ToTipsResponse converts the per-person tip totals to a response.
func ToTipsResponse(cycleID string, people []domain.TipsByPerson) TipsResponse {
	return TipsResponse{EconomicCycleID: cycleID, People: people}
}

// MostSelledResponse ranks products for the requested mode window.
type MostSelledResponse struct {
	Mode     string                 `json:"mode"`
	Products []domain.SelledProduct `json:"products"`
}

// ToMostSelledResponse converts ranked products to a response.
func ToMostSelledResponse(mode string, products []domain.SelledProduct) MostSelledResponse {
	return MostSelledResponse{Mode: mode, Products: products}
}
