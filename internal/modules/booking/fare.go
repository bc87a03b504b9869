package booking

import "math"

// RatePerKm is the fixed fare rate applied to every trip.
const RatePerKm = 12.0

// CalculateFare maps trip distance to money: round(km * 12.0, 2).
// Distance must be a positive finite number.
func CalculateFare(distanceKM float64) (float64, error) {
	if math.IsNaN(distanceKM) || math.IsInf(distanceKM, 0) || distanceKM <= 0 {
		return 0, ErrValidation
	}
	return math.Round(distanceKM*RatePerKm*100) / 100, nil
}
