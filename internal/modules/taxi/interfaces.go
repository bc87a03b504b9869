package taxi

import (
	"context"

	"taxibook/internal/domain"
)

type TaxiRepository interface {
	ListAvailable(ctx context.Context) ([]domain.Taxi, error)
}
