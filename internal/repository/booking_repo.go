package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taxibook/internal/domain"
)

// ErrTaxiNotAvailable is returned when the conditional status flip on a
// taxi matches no row: somebody else holds it, or it does not exist.
var ErrTaxiNotAvailable = errors.New("taxi not available")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	CustomerID    int64     `gorm:"column:customer_id"`
	TaxiID        int64     `gorm:"column:taxi_id"`
	Source        string    `gorm:"column:source"`
	Destination   string    `gorm:"column:destination"`
	Date          time.Time `gorm:"column:date"`
	Fare          float64   `gorm:"column:fare"`
	PaymentStatus string    `gorm:"column:payment_status"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		TaxiID:        m.TaxiID,
		Source:        m.Source,
		Destination:   m.Destination,
		Date:          m.Date,
		Fare:          m.Fare,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		TaxiID:        b.TaxiID,
		Source:        b.Source,
		Destination:   b.Destination,
		Date:          b.Date,
		Fare:          b.Fare,
		PaymentStatus: string(b.PaymentStatus),
	}
}

// holdTaxi flips the taxi to unavailable only if it is currently
// available. Zero rows affected means the hold is lost.
func holdTaxi(tx *gorm.DB, taxiID int64) error {
	res := tx.Model(&taxiModel{}).
		Where("id = ? AND status = ?", taxiID, string(domain.TaxiAvailable)).
		Updates(map[string]any{"status": string(domain.TaxiUnavailable), "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaxiNotAvailable
	}
	return nil
}

func releaseTaxi(tx *gorm.DB, taxiID int64) error {
	return tx.Model(&taxiModel{}).
		Where("id = ?", taxiID).
		Updates(map[string]any{"status": string(domain.TaxiAvailable), "updated_at": time.Now()}).
		Error
}

// CreateWithHold inserts the booking and takes the taxi in one
// transaction. Losing the hold fails the whole create with
// ErrTaxiNotAvailable, so concurrent creates against one taxi resolve to
// a single winner.
func (r *BookingRepository) CreateWithHold(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := holdTaxi(tx, b.TaxiID); err != nil {
			return err
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *BookingRepository) GetForCustomer(ctx context.Context, bookingID, customerID int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", bookingID, customerID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, bookingID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Update overwrites the booking and reconciles taxi availability with the
// new state in one transaction:
//   - the booking moved to another taxi: hold the new one (when the
//     booking stays open) and release the old one (when it was open);
//   - the booking went from open to terminal: release its taxi;
//   - the booking went from terminal back to open: re-take the taxi.
//
// The previous row is read inside the same transaction. Deciding the
// hold/release on a row read earlier would race with driver reports and
// competing creates, and could release a taxi the booking no longer holds.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev bookingModel
		if err := tx.Where("id = ? AND customer_id = ?", b.ID, b.CustomerID).First(&prev).Error; err != nil {
			return err
		}

		wasOpen := !domain.PaymentStatus(prev.PaymentStatus).Terminal()
		staysOpen := !b.PaymentStatus.Terminal()
		taxiChanged := b.TaxiID != prev.TaxiID

		switch {
		case taxiChanged:
			if staysOpen {
				if err := holdTaxi(tx, b.TaxiID); err != nil {
					return err
				}
			}
			if wasOpen {
				if err := releaseTaxi(tx, prev.TaxiID); err != nil {
					return err
				}
			}
		case wasOpen && !staysOpen:
			if err := releaseTaxi(tx, b.TaxiID); err != nil {
				return err
			}
		case !wasOpen && staysOpen:
			if err := holdTaxi(tx, b.TaxiID); err != nil {
				return err
			}
		}

		m := toBookingModel(b)
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND customer_id = ?", b.ID, b.CustomerID).
			Updates(map[string]any{
				"taxi_id":        m.TaxiID,
				"source":         m.Source,
				"destination":    m.Destination,
				"date":           m.Date,
				"fare":           m.Fare,
				"payment_status": m.PaymentStatus,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteWithRelease hard-deletes the booking owned by the customer and,
// when it was still open, gives the taxi back.
func (r *BookingRepository) DeleteWithRelease(ctx context.Context, bookingID, customerID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.Where("id = ? AND customer_id = ?", bookingID, customerID).First(&m).Error; err != nil {
			return err
		}

		if err := tx.Delete(&bookingModel{}, m.ID).Error; err != nil {
			return err
		}

		if !domain.PaymentStatus(m.PaymentStatus).Terminal() {
			return releaseTaxi(tx, m.TaxiID)
		}
		return nil
	})
}

// SetPaymentStatus applies a driver-reported payment transition and,
// for terminal statuses, releases the taxi in the same transaction.
// Repeating the same transition is a harmless overwrite.
func (r *BookingRepository) SetPaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.First(&m, bookingID).Error; err != nil {
			return err
		}

		if err := tx.Model(&bookingModel{}).
			Where("id = ?", m.ID).
			Update("payment_status", string(status)).Error; err != nil {
			return err
		}
		m.PaymentStatus = string(status)

		if status.Terminal() {
			if err := releaseTaxi(tx, m.TaxiID); err != nil {
				return err
			}
		}

		out = toDomainBooking(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CompletedBooking is the admin report row joining booking, customer,
// driver and taxi details.
type CompletedBooking struct {
	BookingID     int64     `json:"booking_id"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	Date          time.Time `json:"date"`
	Fare          float64   `json:"fare"`
	PaymentStatus string    `json:"payment_status"`
	CustomerID    int64     `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email"`
	DriverID      int64     `json:"driver_id"`
	DriverName    string    `json:"driver_name"`
	DriverPhone   string    `json:"driver_phone"`
	TaxiModel     string    `json:"taxi_model"`
	TaxiCapacity  int       `json:"taxi_capacity"`
}

func (r *BookingRepository) ListCompleted(ctx context.Context) ([]CompletedBooking, error) {
	var rows []CompletedBooking
	tx := r.db.WithContext(ctx).
		Table("bookings b").
		Select(`b.id AS booking_id, b.source, b.destination, b.date, b.fare, b.payment_status,
			c.id AS customer_id, c.name AS customer_name, c.phone AS customer_phone, c.email AS customer_email,
			d.id AS driver_id, d.name AS driver_name, d.phone AS driver_phone,
			t.model AS taxi_model, t.capacity AS taxi_capacity`).
		Joins("JOIN customers c ON b.customer_id = c.id").
		Joins("JOIN drivers d ON b.taxi_id = d.taxi_id").
		Joins("JOIN taxis t ON b.taxi_id = t.id").
		Where("b.payment_status IN ?", []string{string(domain.PaymentPaid), string(domain.PaymentCompleted)}).
		Order("b.date DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
