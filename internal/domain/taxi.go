package domain

import "time"

type TaxiStatus string

const (
	TaxiAvailable   TaxiStatus = "available"
	TaxiUnavailable TaxiStatus = "unavailable"
)

func (s TaxiStatus) Valid() bool {
	return s == TaxiAvailable || s == TaxiUnavailable
}

type Taxi struct {
	ID        int64      `json:"taxi_id"`
	Model     string     `json:"model" validate:"required"`
	Capacity  int        `json:"capacity" validate:"required,gt=0"`
	Status    TaxiStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Driver struct {
	ID     int64  `json:"driver_id"`
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	TaxiID int64  `json:"taxi_id"`
}
