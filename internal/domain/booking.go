package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCompleted PaymentStatus = "completed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCompleted:
		return true
	}
	return false
}

// Terminal reports whether the status ends the ride for availability
// purposes: a booking in a terminal status no longer holds its taxi.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentPaid || s == PaymentCompleted
}

type Booking struct {
	ID            int64         `json:"booking_id"`
	CustomerID    int64         `json:"customer_id"`
	TaxiID        int64         `json:"taxi_id"`
	Source        string        `json:"source"`
	Destination   string        `json:"destination"`
	Date          time.Time     `json:"date"`
	Fare          float64       `json:"fare"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}
