package domain

import "time"

// EconomicCycle is a bounded operational session (typically one business day)
// within which orders and cash operations are grouped for reporting.
type EconomicCycle struct {
	CycleID    string     `json:"id"`
	BusinessID string     `json:"businessId"`
	OpenDate   time.Time  `json:"openDate"`
	CloseDate  *time.Time `json:"closeDate,omitempty"`
	IsActive   bool       `json:"isActive"`
}
