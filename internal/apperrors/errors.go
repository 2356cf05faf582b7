package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the acting user lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates the request carries no valid identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoMainCurrency indicates the business has no main currency configured.
// Reports cannot be normalized without a common denominator, so this aborts
// the request before any aggregation runs.
var ErrNoMainCurrency = errors.New("no main currency configured")

// ErrCurrencyNotAvailable indicates a record references a currency the
// business has not enabled.
var ErrCurrencyNotAvailable = errors.New("currency not available for business")
