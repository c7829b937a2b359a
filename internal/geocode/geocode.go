// Package geocode is the boundary to external geocoding and to the device
// location capability. Both are collaborators consumed over their own
// contracts; this package only adapts them.
package geocode

import (
	"context"
	"errors"
)

// ErrNoCity is returned by Reverse when the position resolves to an address
// without a usable city, town or village name.
var ErrNoCity = errors.New("no city at this position")

// Geocoder resolves between city names and coordinates.
type Geocoder interface {
	// Forward resolves a city name to coordinates.
	Forward(ctx context.Context, city string) (lat, lon float64, err error)

	// Reverse resolves coordinates to a city name.
	Reverse(ctx context.Context, lat, lon float64) (city string, err error)
}

// Locator acquires the device's current coordinates. Acquisition can fail for
// platform reasons (capability unavailable, denied) distinct from geocoding
// failure.
type Locator interface {
	Coordinates(ctx context.Context) (lat, lon float64, err error)
}
