package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// userAgent identifies the desk to Nominatim, whose usage policy requires one.
const userAgent = "weatherdesk/1.0"

// NominatimGeocoder implements Geocoder against the OpenStreetMap Nominatim
// service. It needs no API key.
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

func NewNominatimGeocoder(client *http.Client, baseURL string, logger zerolog.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:    baseURL,
		httpClient: client,
		circuit:    newBreaker("nominatim"),
		logger:     logger.With().Str("component", "nominatim_geocoder").Logger(),
	}
}

func (g *NominatimGeocoder) Forward(ctx context.Context, city string) (float64, float64, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("city", city)
		values.Set("format", "json")
		values.Set("limit", "1")

		req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/search?%s", g.baseURL, values.Encode()), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	}

	resp, err := doRequestWithBreaker(ctx, g.httpClient, g.circuit, buildRequest)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim search failed: %w", err)
	}
	defer resp.Body.Close()

	var payload []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("nominatim search failed: %w", err)
	}
	if len(payload) == 0 {
		return 0, 0, fmt.Errorf("nominatim: no results for %q", city)
	}

	lat, err := strconv.ParseFloat(payload[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: bad latitude %q", payload[0].Lat)
	}
	lon, err := strconv.ParseFloat(payload[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: bad longitude %q", payload[0].Lon)
	}
	return lat, lon, nil
}

func (g *NominatimGeocoder) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("format", "json")
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))

		req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/reverse?%s", g.baseURL, values.Encode()), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	}

	resp, err := doRequestWithBreaker(ctx, g.httpClient, g.circuit, buildRequest)
	if err != nil {
		return "", fmt.Errorf("nominatim reverse geocoding failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Address struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("nominatim reverse geocoding failed: %w", err)
	}

	// City, then town, then village — the first populated level wins.
	for _, name := range []string{payload.Address.City, payload.Address.Town, payload.Address.Village} {
		if name != "" {
			return name, nil
		}
	}
	return "", ErrNoCity
}
