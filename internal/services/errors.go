// internal/services/errors.go
package services

import "errors"

// Sentinel failures translated to transport status codes at the handler
// boundary, and nowhere else.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrPageNotFound    = errors.New("vendor page not found")
	ErrUpstream        = errors.New("vendor fetch failed")
	ErrExtractFailed   = errors.New("extraction failed")
)
