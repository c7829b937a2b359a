package weather

// Report is the normalized current-weather payload returned by the weather
// backend for a city. Field names follow the backend's JSON contract.
type Report struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	WeatherID   int     `json:"weather_id"`
	WeatherMain string  `json:"weather_main"`

	// Coordinates may be absent when the backend could not resolve them;
	// the map flow then falls back to forward geocoding.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Coordinates returns the report's position when both values are present.
func (r Report) Coordinates() (lat, lon float64, ok bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return 0, 0, false
	}
	return *r.Latitude, *r.Longitude, true
}
