package service

import (
	"context"
	"fmt"

	"cab/internal/domain"
)

// RoutePlanner is the route/location provider consumed by the booking
// workflow. Implementations build a Route with its distance populated,
// failing with *LocationInvalidError or *RouteInvalidError.
type RoutePlanner interface {
	PlanRoute(ctx context.Context, from, to *domain.Location) (*domain.Route, error)
}

// Ensure HaversineRoutePlanner implements RoutePlanner.
var _ RoutePlanner = (*HaversineRoutePlanner)(nil)

// HaversineRoutePlanner plans routes using straight-line great-circle
// distance. Zero-distance routes are legal here: a same-location route
// query is valid for reporting even though booking one is not.
type HaversineRoutePlanner struct{}

// NewHaversineRoutePlanner creates a new HaversineRoutePlanner.
func NewHaversineRoutePlanner() *HaversineRoutePlanner {
	return &HaversineRoutePlanner{}
}

// PlanRoute builds a route between two locations with the distance
// computed from their coordinates.
func (p *HaversineRoutePlanner) PlanRoute(ctx context.Context, from, to *domain.Location) (*domain.Route, error) {
	if from == nil {
		return nil, &LocationInvalidError{Detail: "starting location is missing"}
	}
	if to == nil {
		return nil, &LocationInvalidError{Detail: "destination location is missing"}
	}
	if err := checkCoordinate(from); err != nil {
		return nil, err
	}
	if err := checkCoordinate(to); err != nil {
		return nil, err
	}

	return &domain.Route{
		From:          from,
		To:            to,
		DistanceMiles: DistanceMiles(from, to),
	}, nil
}

func checkCoordinate(loc *domain.Location) error {
	lat := loc.Coordinate.Latitude
	lng := loc.Coordinate.Longitude
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return &LocationInvalidError{
			Detail: fmt.Sprintf("location %q has out-of-range coordinates (%v, %v)", loc.Name, lat, lng),
		}
	}
	return nil
}
