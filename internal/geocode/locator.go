package geocode

import (
	"context"

	"weatherdesk/internal/fault"
)

// FixedLocator serves the device coordinates pinned in configuration. When
// none are configured the geolocation capability is reported as unavailable,
// which is a platform failure distinct from geocoding failure.
type FixedLocator struct {
	lat *float64
	lon *float64
}

func NewFixedLocator(lat, lon *float64) *FixedLocator {
	return &FixedLocator{lat: lat, lon: lon}
}

func (l *FixedLocator) Coordinates(ctx context.Context) (float64, float64, error) {
	if l.lat == nil || l.lon == nil {
		return 0, 0, fault.New(fault.Platform,
			"Geolocation is not available here. Please enter city manually.")
	}
	return *l.lat, *l.lon, nil
}
