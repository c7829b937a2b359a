package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"weatherdesk/internal/backend"
	"weatherdesk/internal/fault"
	"weatherdesk/internal/mapview"
	"weatherdesk/internal/panel"
	"weatherdesk/internal/prediction"
	"weatherdesk/internal/search"
	"weatherdesk/internal/session"
)

// Deps bundles everything the HTTP surface presents. This layer only binds,
// validates and renders; city resolution, advice generation and historical
// aggregation all live behind the backend client.
type Deps struct {
	Search      *search.Controller
	Predictions *prediction.Manager
	Session     *session.State
	Backend     *backend.Client
	Map         *mapview.View

	WeatherPanel  *panel.Controller
	ActivityPanel *panel.Controller
	HealthPanel   *panel.Controller
	HistoryPanel  *panel.Controller

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	api := app.Group("/api")

	api.Post("/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		outcome, err := deps.Search.Search(c.Context(), req.Query)
		if err != nil {
			return errorFor(err)
		}
		return c.JSON(outcome)
	})

	api.Get("/session", func(c *fiber.Ctx) error {
		loc, ok := deps.Session.Current()
		return c.JSON(fiber.Map{
			"selected": ok,
			"location": loc,
		})
	})

	api.Get("/map", func(c *fiber.Ctx) error {
		return c.JSON(deps.Map.Snapshot())
	})

	api.Get("/panels/weather", panelState(deps.WeatherPanel))
	api.Get("/panels/activity", panelState(deps.ActivityPanel))
	api.Get("/panels/health", panelState(deps.HealthPanel))
	api.Get("/panels/history", panelState(deps.HistoryPanel))

	api.Post("/panels/activity", func(c *fiber.Ctx) error {
		loc, ok := deps.Session.Current()
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Please search for a city's weather first.")
		}
		activities := splitList(c.Query("activities"))
		if len(activities) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Please select at least one activity.")
		}

		snap := deps.ActivityPanel.Trigger(c.Context(), func(ctx context.Context) (any, error) {
			advice, err := deps.Backend.ActivityForecast(ctx, loc.City, activities)
			if err != nil {
				return nil, err
			}
			return activityViewOf(advice), nil
		})
		return c.JSON(snap)
	})

	api.Post("/panels/health", func(c *fiber.Ctx) error {
		loc, ok := deps.Session.Current()
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Please search for a city's weather first.")
		}
		concerns := splitList(c.Query("concerns"))
		if len(concerns) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Please select at least one health concern.")
		}

		snap := deps.HealthPanel.Trigger(c.Context(), func(ctx context.Context) (any, error) {
			advice, err := deps.Backend.HealthWeatherAdvice(ctx, loc.City, concerns)
			if err != nil {
				return nil, err
			}
			return advice, nil
		})
		return c.JSON(snap)
	})

	api.Post("/panels/history", func(c *fiber.Ctx) error {
		loc, ok := deps.Session.Current()
		if !ok || !loc.HasCoordinates() {
			return fiber.NewError(fiber.StatusBadRequest,
				"City location (latitude/longitude) not available. Please perform a current weather search first.")
		}
		currentDate := deps.Now().Format(prediction.DateLayout)

		snap := deps.HistoryPanel.Trigger(c.Context(), func(ctx context.Context) (any, error) {
			entries, err := deps.Backend.HistoryOnThisDay(ctx, *loc.Latitude, *loc.Longitude, currentDate)
			if err != nil {
				return nil, err
			}
			return historyViewOf(entries), nil
		})
		return c.JSON(snap)
	})

	api.Post("/predictions", func(c *fiber.Ctx) error {
		var req predictionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if strings.TrimSpace(req.Value) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Prediction cannot be empty.")
		}

		loc, _ := deps.Session.Current()
		created, err := deps.Predictions.Submit(loc.City, req.Value, deps.Now())
		if err != nil {
			return predictionError(err, loc.City)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"prediction": created,
			"feedback": fmt.Sprintf("Prediction for %s (%.1f°C for %s) submitted!",
				created.City, created.PredictedMaxTemp, created.TargetDate),
		})
	})

	api.Get("/predictions", func(c *fiber.Ctx) error {
		predictions, err := deps.Predictions.ListForDisplay(deps.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load predictions")
		}
		return c.JSON(fiber.Map{"predictions": predictions})
	})
}

type searchRequest struct {
	Query string `json:"query"`
}

type predictionRequest struct {
	Value string `json:"value"`
}

func panelState(p *panel.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(p.Snapshot())
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// errorFor maps classified faults onto HTTP statuses: user and platform
// failures are 400s, upstream failures are bad-gateway.
func errorFor(err error) error {
	kind, ok := fault.KindOf(err)
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	switch kind {
	case fault.Validation, fault.Platform:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
}

func predictionError(err error, city string) error {
	switch {
	case errors.Is(err, prediction.ErrEmptyCity):
		return fiber.NewError(fiber.StatusBadRequest, "Please search for a city first to make a prediction.")
	case errors.Is(err, prediction.ErrInvalidNumber):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid number format for temperature.")
	case errors.Is(err, prediction.ErrOutOfRange):
		return fiber.NewError(fiber.StatusBadRequest, "Temperature must be between -50 and 60°C.")
	case errors.Is(err, prediction.ErrDuplicateForDate):
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Prediction already made for %s for tomorrow.", city))
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save prediction")
	}
}

// activityView augments each suggestion with its display tone.
type activityView struct {
	City                  string                        `json:"city"`
	CurrentWeatherSummary string                        `json:"current_weather_summary"`
	Suggestions           map[string]activitySuggestion `json:"suggestions"`
	Note                  string                        `json:"note,omitempty"`
}

type activitySuggestion struct {
	Text string       `json:"text"`
	Tone backend.Tone `json:"tone"`
}

func activityViewOf(advice backend.ActivityAdvice) activityView {
	view := activityView{
		City:                  advice.City,
		CurrentWeatherSummary: advice.CurrentWeatherSummary,
		Suggestions:           make(map[string]activitySuggestion, len(advice.Suggestions)),
		Note:                  advice.Note,
	}
	for activity, text := range advice.Suggestions {
		view.Suggestions[activity] = activitySuggestion{
			Text: text,
			Tone: backend.SuggestionTone(text),
		}
	}
	return view
}

// historyView distinguishes an empty record from a record where every year
// failed to resolve.
type historyView struct {
	History []backend.HistoryEntry `json:"history"`
	Note    string                 `json:"note,omitempty"`
}

func historyViewOf(entries []backend.HistoryEntry) historyView {
	if len(entries) == 0 {
		return historyView{Note: "No historical data found for this date in the past 3 years."}
	}
	allFailed := true
	for _, e := range entries {
		if e.Error == "" {
			allFailed = false
			break
		}
	}
	view := historyView{History: entries}
	if allFailed {
		view.Note = "Could not retrieve historical data for any of the past 3 years."
	}
	return view
}
