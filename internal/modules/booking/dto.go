package booking

type CreateBookingRequest struct {
	TaxiID      int64   `json:"taxi_id" binding:"required"`
	Source      string  `json:"source" binding:"required"`
	Destination string  `json:"destination" binding:"required"`
	DistanceKM  float64 `json:"distance_km" binding:"required"`
}

type UpdateBookingRequest struct {
	TaxiID        int64   `json:"taxi_id" binding:"required"`
	Source        string  `json:"source" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	DistanceKM    float64 `json:"distance_km" binding:"required"`
	PaymentStatus string  `json:"payment_status" binding:"required"`
}

type FareRequest struct {
	DistanceKM float64 `json:"distance_km" binding:"required"`
}

type DriverUpdateRequest struct {
	DriverName    string `json:"driver_name" binding:"required"`
	BookingID     int64  `json:"booking_id" binding:"required"`
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// CreateBookingResult carries the fare plus driver contact info for the
// booked taxi; the sentinel "N/A" stands in when no driver is assigned.
type CreateBookingResult struct {
	Fare        float64
	DriverName  string
	DriverPhone string
}

type DriverUpdateResult struct {
	TaxiID    int64
	NewStatus string
}
