package prediction

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Rejection reasons for Submit.
var (
	ErrEmptyCity        = errors.New("no city selected")
	ErrInvalidNumber    = errors.New("invalid number format for temperature")
	ErrOutOfRange       = errors.New("temperature must be between -50 and 60°C")
	ErrDuplicateForDate = errors.New("prediction already exists for this city and date")
)

var validate = validator.New()

// submitInput carries the range constraints on a validated submission.
type submitInput struct {
	City             string  `validate:"required"`
	PredictedMaxTemp float64 `validate:"gte=-50,lte=60"`
}

// Manager owns the prediction lifecycle: creation with uniqueness enforcement,
// lazy settlement of past-due predictions, and display ordering.
type Manager struct {
	// mu serializes the read-modify-write cycles against the store.
	mu      sync.Mutex
	store   Store
	actuals ActualSource
	logger  zerolog.Logger
}

func NewManager(store Store, actuals ActualSource, logger zerolog.Logger) *Manager {
	return &Manager{
		store:   store,
		actuals: actuals,
		logger:  logger.With().Str("component", "prediction_manager").Logger(),
	}
}

// Submit validates and records a new prediction for tomorrow relative to now.
// rawValue is the user's literal input so that number-format failures are
// decidable here rather than at the transport edge.
func (m *Manager) Submit(city, rawValue string, now time.Time) (Prediction, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Prediction{}, ErrEmptyCity
	}

	rawValue = strings.TrimSpace(rawValue)
	predicted, err := strconv.ParseFloat(rawValue, 64)
	if err != nil || math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		return Prediction{}, ErrInvalidNumber
	}

	if err := validate.Struct(submitInput{City: city, PredictedMaxTemp: predicted}); err != nil {
		return Prediction{}, ErrOutOfRange
	}

	targetDate := now.AddDate(0, 0, 1).Format(DateLayout)

	m.mu.Lock()
	defer m.mu.Unlock()

	predictions := m.store.Load()
	for _, p := range predictions {
		if p.City == city && p.TargetDate == targetDate {
			return Prediction{}, fmt.Errorf("%w: %s on %s", ErrDuplicateForDate, city, targetDate)
		}
	}

	created := Prediction{
		ID:               uuid.NewString(),
		City:             city,
		TargetDate:       targetDate,
		PredictedMaxTemp: predicted,
		SubmittedAt:      now.UTC(),
		Status:           StatusPending,
	}

	predictions = append(predictions, created)
	if err := m.store.SaveAll(predictions); err != nil {
		return Prediction{}, fmt.Errorf("persist predictions: %w", err)
	}

	m.logger.Info().
		Str("city", city).
		Str("target_date", targetDate).
		Float64("predicted_max_temp", predicted).
		Msg("prediction submitted")
	return created, nil
}

// ListForDisplay loads the collection, settles every pending prediction whose
// target date is strictly before today, persists if anything settled, and
// returns the display ordering: Pending before Checked, each group most
// recently submitted first. Settlement is a side effect; this is not a
// read-only call.
func (m *Manager) ListForDisplay(now time.Time) ([]Prediction, error) {
	today := now.Format(DateLayout)

	m.mu.Lock()
	defer m.mu.Unlock()

	predictions := m.store.Load()

	settled := false
	for i := range predictions {
		p := &predictions[i]
		if p.Status != StatusPending || p.TargetDate >= today {
			continue
		}
		actual := m.actuals.ActualMaxTemp(p.City, p.TargetDate, p.PredictedMaxTemp)
		p.ActualMaxTemp = &actual
		p.Points = Score(p.PredictedMaxTemp, actual)
		p.Status = StatusChecked
		settled = true

		m.logger.Info().
			Str("city", p.City).
			Str("target_date", p.TargetDate).
			Int("points", p.Points).
			Msg("prediction settled")
	}

	if settled {
		if err := m.store.SaveAll(predictions); err != nil {
			return nil, fmt.Errorf("persist settled predictions: %w", err)
		}
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		a, b := predictions[i], predictions[j]
		if (a.Status == StatusPending) != (b.Status == StatusPending) {
			return a.Status == StatusPending
		}
		return a.SubmittedAt.After(b.SubmittedAt)
	})

	return predictions, nil
}
