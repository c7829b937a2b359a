package weather

import (
	"strings"

	"weatherdesk/internal/common"
)

// IconFor maps an OpenWeatherMap-style condition (numeric id, main group,
// free-text description) to a Font Awesome icon class for display. The id
// ranges take precedence; main group and description keywords are fallbacks
// for backends that omit the id.
func IconFor(weatherID int, weatherMain, description string) string {
	switch {
	case weatherID >= 200 && weatherID <= 232:
		return "fa-bolt" // thunderstorm
	case weatherID >= 300 && weatherID <= 321:
		return "fa-cloud-rain" // drizzle
	case weatherID >= 500 && weatherID <= 504:
		return "fa-cloud-showers-heavy" // rain
	case weatherID == 511:
		return "fa-snowflake" // freezing rain
	case weatherID >= 520 && weatherID <= 531:
		return "fa-cloud-rain" // shower rain
	case weatherID >= 600 && weatherID <= 622:
		return "fa-snowflake" // snow
	case weatherID >= 701 && weatherID <= 781:
		return "fa-smog" // mist, smoke, haze
	case weatherID == 800:
		return "fa-sun" // clear
	case weatherID == 801:
		return "fa-cloud-sun"
	case weatherID == 802:
		return "fa-cloud"
	case weatherID == 803 || weatherID == 804:
		return "fa-cloud-meatball" // broken/overcast clouds
	}

	switch strings.ToLower(weatherMain) {
	case "thunderstorm":
		return "fa-bolt"
	case "drizzle":
		return "fa-cloud-rain"
	case "rain":
		return "fa-cloud-showers-heavy"
	case "snow":
		return "fa-snowflake"
	case "clear":
		return "fa-sun"
	case "clouds":
		return "fa-cloud"
	}

	switch {
	case common.HasAny(description, "smoke", "haze", "dust", "sand", "ash"):
		return "fa-smog"
	case common.HasAny(description, "fog", "mist"):
		return "fa-smog"
	case common.HasAny(description, "squall", "tornado"):
		return "fa-wind"
	}

	return "fa-question-circle"
}
