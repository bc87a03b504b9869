package taxi

import (
	"context"

	"taxibook/internal/domain"
)

type Service struct {
	taxis TaxiRepository
}

func NewService(taxis TaxiRepository) *Service {
	return &Service{taxis: taxis}
}

// ListAvailable returns the fleet a customer can book right now.
func (s *Service) ListAvailable(ctx context.Context) ([]domain.Taxi, error) {
	return s.taxis.ListAvailable(ctx)
}
