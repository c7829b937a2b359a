package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Geocoder provider names selectable via GEOCODER_PROVIDER.
const (
	GeocoderNominatim = "nominatim"
	GeocoderGoogle    = "google"
)

type AppConfig struct {
	// BackendBaseURL is the application backend that owns weather, advice,
	// history and AI summarization.
	BackendBaseURL string

	GeocoderProvider     string
	NominatimBaseURL     string
	GoogleGeocoderAPIKey string

	// Device coordinates served for the 'geolocation' search input. When
	// unset, geolocation searches fail as unavailable.
	DeviceLatitude  *float64
	DeviceLongitude *float64

	// HTTPTimeout applies to all outbound requests.
	HTTPTimeout time.Duration

	// PredictionsFile is the path of the persisted prediction collection.
	PredictionsFile string

	Port      string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.BackendBaseURL = getenvDefault("BACKEND_BASE_URL", "http://localhost:5000")
	cfg.GeocoderProvider = getenvDefault("GEOCODER_PROVIDER", GeocoderNominatim)
	cfg.NominatimBaseURL = getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	switch cfg.GeocoderProvider {
	case GeocoderNominatim:
	case GeocoderGoogle:
		if cfg.GoogleGeocoderAPIKey == "" {
			return nil, fmt.Errorf("GEOCODER_PROVIDER=google requires GOOGLE_GEOCODER_API_KEY")
		}
	default:
		return nil, fmt.Errorf("invalid GEOCODER_PROVIDER: %q", cfg.GeocoderProvider)
	}

	lat, err := getenvFloat("DEVICE_LATITUDE")
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("DEVICE_LONGITUDE")
	if err != nil {
		return nil, err
	}
	cfg.DeviceLatitude = lat
	cfg.DeviceLongitude = lon

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.PredictionsFile = getenvDefault("PREDICTIONS_FILE", "predictions.json")
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "console")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
