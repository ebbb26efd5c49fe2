package service

import (
	"math"

	"cab/internal/config"
)

// FareCalculator converts a trip distance into a fare. Rates are fixed
// at construction; the calculator is stateless afterwards and safe to
// share across concurrent callers.
type FareCalculator struct {
	bookingFee  float64
	perMileRate float64
}

// NewFareCalculator creates a FareCalculator from the given fare
// configuration.
func NewFareCalculator(cfg config.FareConfig) *FareCalculator {
	return &FareCalculator{
		bookingFee:  cfg.BookingFee,
		perMileRate: cfg.PerMileRate,
	}
}

// Fare returns bookingFee + distanceMiles * perMileRate.
//
// A negative or non-finite distance returns a FareCalculationError
// rather than being clamped: by the time a distance reaches fare
// calculation it must be a non-negative number, so anything else is an
// upstream defect that has to surface. NaN in particular must never
// produce a NaN fare, since NaN compares false against every amount
// guard downstream. Zero distance yields exactly the booking fee, the
// flat minimum charge for any booking.
func (c *FareCalculator) Fare(distanceMiles float64) (float64, error) {
	if distanceMiles < 0 || math.IsNaN(distanceMiles) || math.IsInf(distanceMiles, 0) {
		return 0, &FareCalculationError{DistanceMiles: distanceMiles}
	}
	return c.bookingFee + distanceMiles*c.perMileRate, nil
}

// BookingFee returns the configured flat fee.
func (c *FareCalculator) BookingFee() float64 {
	return c.bookingFee
}

// PerMileRate returns the configured per-mile rate.
func (c *FareCalculator) PerMileRate() float64 {
	return c.perMileRate
}
