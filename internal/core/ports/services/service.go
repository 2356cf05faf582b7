package services

// ServiceContainer groups the service interfaces handed to the HTTP layer.
type ServiceContainer struct {
	Reporting ReportingSvc
	Scope     ScopeResolverSvc
}
