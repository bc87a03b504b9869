package auth

import "errors"

var (
	ErrCustomerExists     = errors.New("customer already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("customer not found")
)
