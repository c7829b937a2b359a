// Package mapview is the boundary to the mapping widget. Tile fetching and
// rendering are external; the desk only sets the view, the marker position
// and the popup content.
package mapview

import (
	"fmt"
	"math"
	"sync"

	"weatherdesk/internal/weather"
)

// Widget is the mapping-widget contract.
type Widget interface {
	SetView(lat, lon float64, zoom int)
	SetMarker(lat, lon float64)
	SetPopup(content string)
}

// ViewState is the serializable widget state served to the browser, which
// applies it to the actual map.
type ViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	MarkerLat float64 `json:"marker_latitude"`
	MarkerLon float64 `json:"marker_longitude"`
	Popup     string  `json:"popup,omitempty"`
}

// View is the default Widget: it holds the state the browser polls. The
// initial state is the whole-world view.
type View struct {
	mu    sync.RWMutex
	state ViewState
}

func NewView() *View {
	return &View{state: ViewState{Zoom: 2}}
}

func (v *View) SetView(lat, lon float64, zoom int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Latitude = lat
	v.state.Longitude = lon
	v.state.Zoom = zoom
}

func (v *View) SetMarker(lat, lon float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.MarkerLat = lat
	v.state.MarkerLon = lon
}

func (v *View) SetPopup(content string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Popup = content
}

func (v *View) Snapshot() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// PopupContent renders the marker popup for a weather report.
func PopupContent(r weather.Report) string {
	icon := weather.IconFor(r.WeatherID, r.WeatherMain, r.Description)
	return fmt.Sprintf(`<h3><i class="fas %s"></i> %s</h3>
<p>Temperature: %.0f°C</p>
<p>Description: %s</p>
<p>Humidity: %.0f%%</p>
<p>Pressure: %.0f hPa</p>
<p>Wind Speed: %.1f m/s</p>`,
		icon, r.City, math.Round(r.Temperature), r.Description, r.Humidity, r.Pressure, r.WindSpeed)
}
