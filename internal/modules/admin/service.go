package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"gorm.io/gorm"

	"taxibook/internal/domain"
	"taxibook/internal/repository"
)

type Service struct {
	username string
	password string
	jwt      tokenIssuer
	taxis    TaxiRepository
	drivers  DriverRepository
	reports  BookingReports
}

func NewService(username, password string, jwt tokenIssuer, taxis TaxiRepository, drivers DriverRepository, reports BookingReports) *Service {
	return &Service{
		username: username,
		password: password,
		jwt:      jwt,
		taxis:    taxis,
		drivers:  drivers,
		reports:  reports,
	}
}

// Login checks the operator credentials in constant time and returns a
// short-lived admin token.
func (s *Service) Login(req LoginRequest) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateAdminToken()
}

func (s *Service) AddTaxi(ctx context.Context, req TaxiRequest) (*domain.Taxi, error) {
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return nil, err
	}

	t := &domain.Taxi{
		Model:    strings.TrimSpace(req.Model),
		Capacity: req.Capacity,
		Status:   status,
	}
	if err := s.taxis.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTaxi(ctx context.Context, id int64, req TaxiRequest) (*domain.Taxi, error) {
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return nil, err
	}

	t := &domain.Taxi{
		ID:       id,
		Model:    strings.TrimSpace(req.Model),
		Capacity: req.Capacity,
		Status:   status,
	}
	if err := s.taxis.Update(ctx, t); err != nil {
		return nil, mapNotFound(err)
	}
	return t, nil
}

func (s *Service) DeleteTaxi(ctx context.Context, id int64) error {
	return mapNotFound(s.taxis.Delete(ctx, id))
}

func (s *Service) ListTaxis(ctx context.Context) ([]domain.Taxi, error) {
	return s.taxis.List(ctx)
}

func (s *Service) AddDriver(ctx context.Context, req DriverRequest) (*domain.Driver, error) {
	if _, err := s.taxis.GetByID(ctx, req.TaxiID); err != nil {
		return nil, mapNotFound(err)
	}

	d := &domain.Driver{
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		TaxiID: req.TaxiID,
	}
	if err := s.drivers.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) UpdateDriver(ctx context.Context, id int64, req DriverRequest) (*domain.Driver, error) {
	if _, err := s.taxis.GetByID(ctx, req.TaxiID); err != nil {
		return nil, mapNotFound(err)
	}

	d := &domain.Driver{
		ID:     id,
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		TaxiID: req.TaxiID,
	}
	if err := s.drivers.Update(ctx, d); err != nil {
		return nil, mapNotFound(err)
	}
	return d, nil
}

func (s *Service) DeleteDriver(ctx context.Context, id int64) error {
	return mapNotFound(s.drivers.Delete(ctx, id))
}

func (s *Service) ListDrivers(ctx context.Context) ([]repository.DriverWithTaxi, error) {
	return s.drivers.ListWithTaxi(ctx)
}

func (s *Service) CompletedBookings(ctx context.Context) ([]repository.CompletedBooking, error) {
	return s.reports.ListCompleted(ctx)
}

// normalizeStatus defaults an empty status to available.
func normalizeStatus(raw string) (domain.TaxiStatus, error) {
	if raw == "" {
		return domain.TaxiAvailable, nil
	}
	status := domain.TaxiStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", ErrValidation
	}
	return status, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
