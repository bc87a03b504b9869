package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrValidation         = errors.New("invalid admin input")
	ErrNotFound           = errors.New("record not found")
)
