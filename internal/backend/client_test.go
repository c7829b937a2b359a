package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"weatherdesk/internal/fault"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.Client(), srv.URL, zerolog.Nop()), srv
}

func TestCurrentWeatherSuccess(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/weather" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("city"); got != "Paris" {
			t.Fatalf("city query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"city": "Paris", "temperature": 21.3, "description": "clear sky",
			"humidity": 40, "pressure": 1013, "wind_speed": 3.5,
			"weather_id": 800, "weather_main": "Clear",
			"latitude": 48.8566, "longitude": 2.3522
		}`))
	}))
	defer srv.Close()

	report, err := client.CurrentWeather(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("CurrentWeather: %v", err)
	}
	if report.City != "Paris" || report.Temperature != 21.3 || report.WeatherID != 800 {
		t.Fatalf("unexpected report: %+v", report)
	}
	lat, lon, ok := report.Coordinates()
	if !ok || lat != 48.8566 || lon != 2.3522 {
		t.Fatalf("coordinates = %v, %v, %v", lat, lon, ok)
	}
}

func TestCurrentWeatherBackendErrorBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "city not found"}`))
	}))
	defer srv.Close()

	_, err := client.CurrentWeather(context.Background(), "Nowhereville")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !fault.Is(err, fault.Backend) {
		t.Fatalf("expected a backend fault, got %v", err)
	}
	if err.Error() != "city not found" {
		t.Fatalf("message = %q, want the backend's exact error text", err.Error())
	}
}

func TestCurrentWeatherErrorFieldInOKResponse(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "city not found"}`))
	}))
	defer srv.Close()

	_, err := client.CurrentWeather(context.Background(), "Nowhereville")
	if !fault.Is(err, fault.Backend) || err.Error() != "city not found" {
		t.Fatalf("2xx body with error field should be a backend fault, got %v", err)
	}
}

func TestCurrentWeatherUndecodableErrorBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := client.CurrentWeather(context.Background(), "Paris")
	if !fault.Is(err, fault.Transport) {
		t.Fatalf("expected a transport fault, got %v", err)
	}
	if want := "Weather service error (Status: 502)"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestCurrentWeatherMalformedBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"city": `))
	}))
	defer srv.Close()

	_, err := client.CurrentWeather(context.Background(), "Paris")
	if !fault.Is(err, fault.Transport) {
		t.Fatalf("malformed body should be a transport fault, got %v", err)
	}
}

func TestGenerateSummary(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate-summary" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"summary": "A pleasant day."}`))
	}))
	defer srv.Close()

	summary, err := client.GenerateSummary(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if summary != "A pleasant day." {
		t.Fatalf("summary = %q", summary)
	}
}

func TestActivityForecast(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("activities"); got != "hiking,cycling" {
			t.Fatalf("activities query = %q", got)
		}
		w.Write([]byte(`{
			"city": "Paris",
			"current_weather_summary": "clear, 21°C",
			"suggestions": {"hiking": "Conditions are favorable."},
			"note": "Based on current conditions only."
		}`))
	}))
	defer srv.Close()

	advice, err := client.ActivityForecast(context.Background(), "Paris", []string{"hiking", "cycling"})
	if err != nil {
		t.Fatalf("ActivityForecast: %v", err)
	}
	if advice.Suggestions["hiking"] != "Conditions are favorable." {
		t.Fatalf("unexpected advice: %+v", advice)
	}
}

func TestHistoryOnThisDayOptionalValues(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("current_date") != "2026-08-31" {
			t.Fatalf("current_date = %q", q.Get("current_date"))
		}
		w.Write([]byte(`{"history": [
			{"year": 2025, "date": "2025-08-31", "max_temp": 24.1, "min_temp": 14.0, "precipitation": 0},
			{"year": 2024, "date": "2024-08-31", "max_temp": "N/A", "min_temp": null, "precipitation": "N/A"},
			{"year": 2023, "error": "archive unavailable for 2023"}
		]}`))
	}))
	defer srv.Close()

	entries, err := client.HistoryOnThisDay(context.Background(), 48.85, 2.35, "2026-08-31")
	if err != nil {
		t.Fatalf("HistoryOnThisDay: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !entries[0].MaxTemp.Valid || entries[0].MaxTemp.Value != 24.1 {
		t.Fatalf("2025 max temp = %+v", entries[0].MaxTemp)
	}
	if entries[1].MaxTemp.Valid || entries[1].MinTemp.Valid {
		t.Fatalf("N/A and null readings must be invalid: %+v", entries[1])
	}
	if entries[2].Error == "" {
		t.Fatal("per-entry error not preserved")
	}
}

func TestSuggestionTone(t *testing.T) {
	tests := []struct {
		text string
		want Tone
	}{
		{"Conditions are favorable for hiking.", ToneFavorable},
		{"Unsuitable due to heavy rain.", ToneUnfavorable},
		{"It is too windy for cycling.", ToneUnfavorable},
		{"Humidity is TOO HIGH for a picnic.", ToneUnfavorable},
		{"Bring a light jacket.", ToneNeutral},
	}
	for _, tt := range tests {
		if got := SuggestionTone(tt.text); got != tt.want {
			t.Fatalf("SuggestionTone(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
