package weather

import "fmt"

// SummaryPrompt builds the prompt sent to the AI summary backend for a report.
// The instruction text steers the model toward a short, practical summary
// without conversational preamble.
func SummaryPrompt(r Report) string {
	return fmt.Sprintf(`Based on the following weather data for %s today:
- Current Temperature: %.1f°C
- Weather Condition: %s (%s)
- Humidity: %.0f%%
- Wind Speed: %.1f m/s
- Pressure: %.0f hPa
Please provide a concise, conversational weather summary (2-3 sentences) suitable for a general user. Highlight any notable conditions or advice (e.g., if an umbrella is needed, if it's particularly windy, or if it's a pleasant day). Avoid conversational fluff like "Okay, here's the summary:". Focus on the most impactful aspects for someone planning their day.`,
		r.City, r.Temperature, r.Description, r.WeatherMain, r.Humidity, r.WindSpeed, r.Pressure)
}
