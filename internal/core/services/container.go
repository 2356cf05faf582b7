package services

import (
	portsrepo "github.com/gestium/biz_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/gestium/biz_reporting_app/internal/core/ports/services"
)

// RepositoryContainer groups the repositories the service layer consumes.
type RepositoryContainer struct {
	Business portsrepo.BusinessRepository
	Cycle    portsrepo.EconomicCycleRepository
	Order    portsrepo.OrderRepository
	Stock    portsrepo.StockRepository
	Currency portsrepo.CurrencyRepository
}

// NewServiceContainer wires the repositories into the service interfaces the
// HTTP layer consumes.
func NewServiceContainer(repos RepositoryContainer, options ...ReportServiceOption) *portssvc.ServiceContainer {
	scope := NewScopeService(repos.Business)
	reporting := NewReportService(scope, repos.Currency, repos.Cycle, repos.Order, repos.Stock, options...)
	return &portssvc.ServiceContainer{
		Reporting: reporting,
		Scope:     scope,
	}
}
