package admin

import (
	"context"

	"taxibook/internal/domain"
	"taxibook/internal/repository"
)

type TaxiRepository interface {
	Create(ctx context.Context, t *domain.Taxi) error
	Update(ctx context.Context, t *domain.Taxi) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Taxi, error)
	List(ctx context.Context) ([]domain.Taxi, error)
}

type DriverRepository interface {
	Create(ctx context.Context, d *domain.Driver) error
	Update(ctx context.Context, d *domain.Driver) error
	Delete(ctx context.Context, id int64) error
	ListWithTaxi(ctx context.Context) ([]repository.DriverWithTaxi, error)
}

type BookingReports interface {
	ListCompleted(ctx context.Context) ([]repository.CompletedBooking, error)
}

type tokenIssuer interface {
	GenerateAdminToken() (string, error)
}
