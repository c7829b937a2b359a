// Package search coordinates a weather lookup end to end: city (or device
// location) resolution, the primary weather fetch, and the best-effort map
// and AI-summary sub-flows fanned out from a success.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"weatherdesk/internal/fault"
	"weatherdesk/internal/geocode"
	"weatherdesk/internal/mapview"
	"weatherdesk/internal/panel"
	"weatherdesk/internal/session"
	"weatherdesk/internal/weather"
)

// GeolocationSentinel is the literal input that asks for a device-location
// search instead of a city-name search.
const GeolocationSentinel = "geolocation"

const cityZoom = 10

// summaryUnavailableNote replaces the AI summary when its sub-fetch fails;
// summary failure never blocks the primary weather result.
const summaryUnavailableNote = "Could not load AI summary at this time."

// Backend is the slice of the application backend the search flow needs.
type Backend interface {
	CurrentWeather(ctx context.Context, city string) (weather.Report, error)
	GenerateSummary(ctx context.Context, prompt string) (string, error)
}

// Outcome is the result of a successful search.
type Outcome struct {
	ResolvedCity string           `json:"resolved_city"`
	Weather      weather.Report   `json:"weather"`
	Summary      string           `json:"summary,omitempty"`
	SummaryNote  string           `json:"summary_note,omitempty"`
	Location     session.Location `json:"location"`
}

// Controller is the top-level search coordinator.
type Controller struct {
	backend  Backend
	geocoder geocode.Geocoder
	locator  geocode.Locator
	session  *session.State
	widget   mapview.Widget
	weather  *panel.Controller

	// dependents are the advice and history panels, reset whenever the
	// primary weather fetch fails so no panel renders against a stale city.
	dependents []*panel.Controller

	logger zerolog.Logger
}

func NewController(
	backend Backend,
	geocoder geocode.Geocoder,
	locator geocode.Locator,
	state *session.State,
	widget mapview.Widget,
	weatherPanel *panel.Controller,
	dependents []*panel.Controller,
	logger zerolog.Logger,
) *Controller {
	return &Controller{
		backend:    backend,
		geocoder:   geocoder,
		locator:    locator,
		session:    state,
		widget:     widget,
		weather:    weatherPanel,
		dependents: dependents,
		logger:     logger.With().Str("component", "search").Logger(),
	}
}

// Search resolves the input to a city, fetches its current weather, and on
// success updates the session, the map and the AI summary. Any failure of the
// primary fetch clears the session, resets the dependent panels and returns
// one consolidated error.
func (c *Controller) Search(ctx context.Context, input string) (Outcome, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Outcome{}, c.fail(fault.New(fault.Validation,
			"Please enter a city name or use 'geolocation'."))
	}

	city := input
	if strings.EqualFold(input, GeolocationSentinel) {
		resolved, err := c.resolveDeviceCity(ctx)
		if err != nil {
			return Outcome{}, c.fail(err)
		}
		city = resolved
	}

	report, err := c.fetchWeather(ctx, city)
	if err != nil {
		return Outcome{}, c.fail(err)
	}

	loc := session.Location{
		City:      report.City,
		Latitude:  report.Latitude,
		Longitude: report.Longitude,
	}
	c.session.Set(loc)

	c.updateMap(ctx, city, report)

	outcome := Outcome{
		ResolvedCity: report.City,
		Weather:      report,
		Location:     loc,
	}

	summary, err := c.backend.GenerateSummary(ctx, weather.SummaryPrompt(report))
	if err != nil || strings.TrimSpace(summary) == "" {
		// Best effort only; degrade to a visible note.
		if err != nil {
			c.logger.Warn().Err(err).Str("city", report.City).Msg("ai summary unavailable")
		}
		outcome.SummaryNote = summaryUnavailableNote
	} else {
		outcome.Summary = summary
	}

	return outcome, nil
}

// resolveDeviceCity acquires device coordinates and reverse-geocodes them.
// Each step fails distinctly.
func (c *Controller) resolveDeviceCity(ctx context.Context) (string, error) {
	lat, lon, err := c.locator.Coordinates(ctx)
	if err != nil {
		if fault.Is(err, fault.Platform) {
			return "", err
		}
		return "", fault.Wrap(fault.Platform,
			fmt.Sprintf("Geolocation error: %v. Please enter city manually.", err), err)
	}

	city, err := c.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		if errors.Is(err, geocode.ErrNoCity) {
			return "", fault.Wrap(fault.Transport,
				"Could not determine city from your location. Please enter manually.", err)
		}
		return "", fault.Wrap(fault.Transport,
			"Error getting city name from location. Please try entering manually.", err)
	}

	c.logger.Info().Str("city", city).Msg("device location resolved")
	return city, nil
}

// fetchWeather drives the weather panel through one request.
func (c *Controller) fetchWeather(ctx context.Context, city string) (weather.Report, error) {
	var (
		report   weather.Report
		fetchErr error
	)
	snap := c.weather.Trigger(ctx, func(ctx context.Context) (any, error) {
		r, err := c.backend.CurrentWeather(ctx, city)
		if err != nil {
			fetchErr = err
			return nil, err
		}
		report = r
		return r, nil
	})

	if fetchErr != nil {
		return weather.Report{}, fetchErr
	}
	if snap.Status != panel.StatusSuccess {
		return weather.Report{}, fault.New(fault.Transport, snap.Error)
	}
	return report, nil
}

// updateMap repositions the widget over the resolved city, falling back to
// forward geocoding when the weather payload carries no coordinates. On
// geocoding failure the map keeps its previous view; the popup is refreshed
// regardless.
func (c *Controller) updateMap(ctx context.Context, queriedCity string, report weather.Report) {
	if lat, lon, ok := report.Coordinates(); ok {
		c.widget.SetView(lat, lon, cityZoom)
		c.widget.SetMarker(lat, lon)
	} else if lat, lon, err := c.geocoder.Forward(ctx, queriedCity); err == nil {
		c.widget.SetView(lat, lon, cityZoom)
		c.widget.SetMarker(lat, lon)
	} else {
		c.logger.Warn().Err(err).Str("city", queriedCity).Msg("could not position map")
	}
	c.widget.SetPopup(mapview.PopupContent(report))
}

// fail applies the consolidated failure contract: the session is cleared, the
// weather panel shows the message, and every dependent panel is reset to its
// empty state.
func (c *Controller) fail(err error) error {
	c.session.Clear()
	c.weather.Fail(err.Error())
	for _, p := range c.dependents {
		p.Reset()
	}
	return err
}
