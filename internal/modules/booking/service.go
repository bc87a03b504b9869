package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"taxibook/internal/domain"
	"taxibook/internal/repository"
)

// driverUnknown is returned for driver contact fields when the booked
// taxi has no driver assigned yet.
const driverUnknown = "N/A"

type Service struct {
	bookings BookingRepository
	drivers  DriverRepository
	notifs   Notifier
}

func NewService(bookings BookingRepository, drivers DriverRepository, notifs Notifier) *Service {
	return &Service{
		bookings: bookings,
		drivers:  drivers,
		notifs:   notifs,
	}
}

// Create books the taxi for the customer. The taxi hold and the booking
// insert are one atomic unit: when two customers race for the same taxi,
// exactly one create succeeds and the other gets ErrTaxiUnavailable.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateBookingRequest) (*CreateBookingResult, error) {
	fare, err := CalculateFare(req.DistanceKM)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		CustomerID:    customerID,
		TaxiID:        req.TaxiID,
		Source:        req.Source,
		Destination:   req.Destination,
		Date:          time.Now(),
		Fare:          fare,
		PaymentStatus: domain.PaymentPending,
	}

	if err := s.bookings.CreateWithHold(ctx, b); err != nil {
		if errors.Is(err, repository.ErrTaxiNotAvailable) {
			return nil, ErrTaxiUnavailable
		}
		return nil, err
	}

	result := &CreateBookingResult{
		Fare:        fare,
		DriverName:  driverUnknown,
		DriverPhone: driverUnknown,
	}
	driver, err := s.drivers.GetByTaxiID(ctx, req.TaxiID)
	switch {
	case err == nil:
		result.DriverName = driver.Name
		result.DriverPhone = driver.Phone
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no driver assigned yet, keep the sentinel
	default:
		log.Printf("driver lookup failed for taxi %d: %v", req.TaxiID, err)
	}

	if s.notifs != nil {
		s.notifs.BookingCreated(b)
	}

	return result, nil
}

func (s *Service) Get(ctx context.Context, bookingID, customerID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetForCustomer(ctx, bookingID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}

// Update overwrites the booking's mutable fields, recomputes the fare and
// reconciles taxi availability with the new payment status. Moving the
// booking to a taxi somebody else holds fails with ErrTaxiUnavailable.
func (s *Service) Update(ctx context.Context, bookingID, customerID int64, req UpdateBookingRequest) (float64, error) {
	status := domain.PaymentStatus(req.PaymentStatus)
	if !status.Valid() {
		return 0, ErrValidation
	}

	fare, err := CalculateFare(req.DistanceKM)
	if err != nil {
		return 0, err
	}

	b := &domain.Booking{
		ID:            bookingID,
		CustomerID:    customerID,
		TaxiID:        req.TaxiID,
		Source:        req.Source,
		Destination:   req.Destination,
		Date:          time.Now(),
		Fare:          fare,
		PaymentStatus: status,
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrTaxiNotAvailable):
			return 0, ErrTaxiUnavailable
		case errors.Is(err, gorm.ErrRecordNotFound):
			return 0, ErrNotFound
		}
		return 0, err
	}

	if s.notifs != nil {
		s.notifs.BookingUpdated(b)
	}

	return fare, nil
}

// Cancel hard-deletes the booking and releases its taxi when the booking
// was still open. No cancelled record is kept.
func (s *Service) Cancel(ctx context.Context, bookingID, customerID int64) error {
	if err := s.bookings.DeleteWithRelease(ctx, bookingID, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if s.notifs != nil {
		s.notifs.BookingCancelled(bookingID, customerID)
	}

	return nil
}

// DriverReportPayment applies a driver-reported payment transition.
// Drivers can only close a ride out, so the status must be terminal;
// reopening to pending would leave an open booking on a released taxi.
// The taxi is released in the same transaction, and repeating a report is
// a harmless overwrite, not an error.
func (s *Service) DriverReportPayment(ctx context.Context, req DriverUpdateRequest) (*DriverUpdateResult, error) {
	status := domain.PaymentStatus(req.PaymentStatus)
	if !status.Valid() || !status.Terminal() {
		return nil, ErrValidation
	}

	b, err := s.bookings.SetPaymentStatus(ctx, req.BookingID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.PaymentReported(b)
	}

	return &DriverUpdateResult{
		TaxiID:    b.TaxiID,
		NewStatus: string(status),
	}, nil
}
