package booking

import (
	"context"

	"taxibook/internal/domain"
)

// BookingRepository is the persistence contract for the booking
// lifecycle. The multi-row sequences (create, update, cancel, payment
// transition) are transactional on the implementation side.
type BookingRepository interface {
	CreateWithHold(ctx context.Context, b *domain.Booking) error
	GetForCustomer(ctx context.Context, bookingID, customerID int64) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	DeleteWithRelease(ctx context.Context, bookingID, customerID int64) error
	SetPaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*domain.Booking, error)
}

type DriverRepository interface {
	GetByTaxiID(ctx context.Context, taxiID int64) (*domain.Driver, error)
}

// Notifier receives booking lifecycle events. Implementations must not
// block; a nil Notifier disables events.
type Notifier interface {
	BookingCreated(b *domain.Booking)
	BookingUpdated(b *domain.Booking)
	BookingCancelled(bookingID, customerID int64)
	PaymentReported(b *domain.Booking)
}
