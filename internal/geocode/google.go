package geocode

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelvins/geocoder"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// GoogleGeocoder implements Geocoder on top of the Google Geocoding API.
// Selected via configuration when a Google API key is available; Nominatim
// remains the default.
type GoogleGeocoder struct {
	circuit *gobreaker.CircuitBreaker
	logger  zerolog.Logger
}

func NewGoogleGeocoder(apiKey string, logger zerolog.Logger) *GoogleGeocoder {
	// The kelvins/geocoder package holds the key in package state.
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{
		circuit: newBreaker("google-geocoder"),
		logger:  logger.With().Str("component", "google_geocoder").Logger(),
	}
}

func (g *GoogleGeocoder) Forward(ctx context.Context, city string) (float64, float64, error) {
	if ctx.Err() != nil {
		return 0, 0, ctx.Err()
	}

	result, err := g.circuit.Execute(func() (interface{}, error) {
		return geocoder.Geocoding(geocoder.Address{City: city})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, 0, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return 0, 0, fmt.Errorf("google geocoding failed: %w", err)
	}

	location, ok := result.(geocoder.Location)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return location.Latitude, location.Longitude, nil
}

func (g *GoogleGeocoder) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	result, err := g.circuit.Execute(func() (interface{}, error) {
		return geocoder.GeocodingReverse(geocoder.Location{Latitude: lat, Longitude: lon})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return "", fmt.Errorf("google reverse geocoding failed: %w", err)
	}

	addresses, ok := result.([]geocoder.Address)
	if !ok {
		return "", fmt.Errorf("unexpected result type from circuit breaker")
	}
	for _, addr := range addresses {
		if addr.City != "" {
			return addr.City, nil
		}
	}
	return "", ErrNoCity
}
