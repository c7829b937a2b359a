// Package backend is the HTTP client for the application backend that owns
// all actual weather computation, advice generation, historical aggregation
// and AI summarization. The desk only consumes its request/response contracts.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"weatherdesk/internal/fault"
	"weatherdesk/internal/weather"
)

// Client talks to the application backend. Requests are single-shot: failures
// are surfaced to the calling panel, never retried here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(httpClient *http.Client, baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With().Str("component", "backend_client").Logger(),
	}
}

// CurrentWeather fetches the current weather for the literal city text.
func (c *Client) CurrentWeather(ctx context.Context, city string) (weather.Report, error) {
	values := url.Values{}
	values.Set("city", city)

	var payload struct {
		weather.Report
		Error string `json:"error"`
	}
	if err := c.getJSON(ctx, "/api/weather", values, "Weather service error", &payload); err != nil {
		return weather.Report{}, err
	}
	if payload.Error != "" {
		return weather.Report{}, fault.New(fault.Backend, payload.Error)
	}
	return payload.Report, nil
}

// GenerateSummary requests an AI-written summary for the given prompt.
func (c *Client) GenerateSummary(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-summary", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Summary string `json:"summary"`
		Error   string `json:"error"`
	}
	if err := c.do(req, "AI summary generation failed", &payload); err != nil {
		return "", err
	}
	if payload.Error != "" {
		return "", fault.New(fault.Backend, payload.Error)
	}
	return payload.Summary, nil
}

// ActivityAdvice is the activity-suitability response: one suggestion per
// recognized activity, plus a source note.
type ActivityAdvice struct {
	City                  string            `json:"city"`
	CurrentWeatherSummary string            `json:"current_weather_summary"`
	Suggestions           map[string]string `json:"suggestions"`
	Note                  string            `json:"note,omitempty"`
}

// ActivityForecast fetches suitability advice for the selected activities.
func (c *Client) ActivityForecast(ctx context.Context, city string, activities []string) (ActivityAdvice, error) {
	values := url.Values{}
	values.Set("city", city)
	values.Set("activities", strings.Join(activities, ","))

	var payload struct {
		ActivityAdvice
		Error string `json:"error"`
	}
	if err := c.getJSON(ctx, "/api/perfect_day_forecast", values, "Activity forecast error", &payload); err != nil {
		return ActivityAdvice{}, err
	}
	if payload.Error != "" {
		return ActivityAdvice{}, fault.New(fault.Backend, payload.Error)
	}
	return payload.ActivityAdvice, nil
}

// HealthAdvice is the health-risk response for the selected concerns.
type HealthAdvice struct {
	City            string   `json:"city"`
	TriggeredAdvice []string `json:"triggered_advice"`
	Disclaimer      string   `json:"disclaimer,omitempty"`
}

// HealthWeatherAdvice fetches risk flags for the selected health concerns.
func (c *Client) HealthWeatherAdvice(ctx context.Context, city string, concerns []string) (HealthAdvice, error) {
	values := url.Values{}
	values.Set("city", city)
	values.Set("concerns", strings.Join(concerns, ","))

	var payload struct {
		HealthAdvice
		Error string `json:"error"`
	}
	if err := c.getJSON(ctx, "/api/health_weather_advice", values, "Health advice error", &payload); err != nil {
		return HealthAdvice{}, err
	}
	if payload.Error != "" {
		return HealthAdvice{}, fault.New(fault.Backend, payload.Error)
	}
	return payload.HealthAdvice, nil
}

// HistoryEntry is one prior year's weather on the queried calendar day. The
// backend may return a per-entry error instead of data for a year it could
// not resolve.
type HistoryEntry struct {
	Year          int           `json:"year"`
	Date          string        `json:"date"`
	MaxTemp       OptionalFloat `json:"max_temp"`
	MinTemp       OptionalFloat `json:"min_temp"`
	Precipitation OptionalFloat `json:"precipitation"`
	Error         string        `json:"error,omitempty"`
}

// HistoryOnThisDay fetches weather for the same calendar day in prior years.
func (c *Client) HistoryOnThisDay(ctx context.Context, lat, lon float64, currentDate string) ([]HistoryEntry, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current_date", currentDate)

	var payload struct {
		History []HistoryEntry `json:"history"`
		Error   string         `json:"error"`
	}
	if err := c.getJSON(ctx, "/api/weather_history_on_this_day", values, "HTTP error!", &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, fault.New(fault.Backend, payload.Error)
	}
	return payload.History, nil
}

func (c *Client) getJSON(ctx context.Context, path string, values url.Values, errPrefix string, out any) error {
	u := c.baseURL + path
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, errPrefix, out)
}

// do executes a request and decodes the JSON response into out. A non-2xx
// response with a decodable error body becomes a Backend fault carrying that
// exact text; everything else becomes a Transport fault with a generic
// message incorporating the underlying detail.
func (c *Client) do(req *http.Request, errPrefix string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fault.Wrap(fault.Transport, fmt.Sprintf("%s: %v", errPrefix, err), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fault.Wrap(fault.Transport, fmt.Sprintf("%s: %v", errPrefix, err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// A well-formed error payload takes precedence over the generic
		// status-based message.
		var errBody struct {
			Error string `json:"error"`
		}
		if jsonErr := json.Unmarshal(body, &errBody); jsonErr == nil && errBody.Error != "" {
			return fault.New(fault.Backend, errBody.Error)
		}
		return fault.New(fault.Transport, fmt.Sprintf("%s (Status: %d)", errPrefix, resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn().Err(err).Str("url", req.URL.String()).Msg("malformed response body")
		return fault.Wrap(fault.Transport, fmt.Sprintf("%s: malformed response body", errPrefix), err)
	}
	return nil
}
