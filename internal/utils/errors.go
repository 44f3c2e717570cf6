package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrMissingCredentials = errors.New("MISSING_CREDENTIALS")
	ErrInvalidNumber      = errors.New("INVALID_NUMBER")
	ErrInvalidProductID   = errors.New("INVALID_PRODUCT_ID")
	ErrSubmitPending      = errors.New("SUBMIT_PENDING")
	ErrSubmitFailed       = errors.New("SUBMIT_FAILED")
	ErrProductUnavailable = errors.New("PRODUCT_UNAVAILABLE")
	ErrViewDisposed       = errors.New("VIEW_DISPOSED")
)
