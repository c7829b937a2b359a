package prediction

import (
	"math"
	"math/rand"
	"sync"
)

// ActualSource supplies the actual max temperature used to settle a pending
// prediction for a city and target date.
type ActualSource interface {
	ActualMaxTemp(city, date string, predicted float64) float64
}

// SimulatedSource approximates the actual temperature by perturbing the
// predicted value within ±2°C, rounded to one decimal. It is an explicit
// simulation standing in for a real historical lookup; swap in another
// ActualSource implementation when a settlement data source exists.
type SimulatedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedSource(seed int64) *SimulatedSource {
	return &SimulatedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *SimulatedSource) ActualMaxTemp(city, date string, predicted float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	actual := predicted - (s.rng.Float64()*4 - 2)
	return math.Round(actual*10) / 10
}
