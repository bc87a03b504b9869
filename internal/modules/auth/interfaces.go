package auth

import (
	"context"

	"taxibook/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByEmailOrPhone(ctx context.Context, identifier string) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
}

type tokenIssuer interface {
	GenerateCustomerToken(customerID int64) (string, error)
}
