// Package session holds the process-wide snapshot of the most recently
// resolved location. Dependent panels (predictions, history, advice) read it
// at trigger time and never see stale partial data: the slot is set and
// cleared wholesale.
package session

import "sync"

// Location is the current-location snapshot. Coordinates may be absent when
// the weather backend did not resolve them.
type Location struct {
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// State is a concurrency-safe single slot for the current location.
// Last writer wins.
type State struct {
	mu  sync.RWMutex
	loc Location
	set bool
}

func NewState() *State {
	return &State{}
}

// Set overwrites the slot after a successful weather fetch.
func (s *State) Set(loc Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = loc
	s.set = loc.City != ""
}

// Clear empties the slot; all three fields reset together.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = Location{}
	s.set = false
}

// Current returns the snapshot and whether a location is selected.
func (s *State) Current() (Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loc, s.set
}
