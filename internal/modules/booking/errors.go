package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("booking not found")
	ErrTaxiUnavailable = errors.New("taxi no longer available")
)
