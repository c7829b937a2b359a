package prediction

import "time"

// Status is the lifecycle state of a prediction. The only legal transition
// is Pending -> Checked, performed exactly once at settlement.
type Status string

const (
	StatusPending Status = "Pending"
	StatusChecked Status = "Checked"
)

// DateLayout is the calendar-date format used for target dates. Lexicographic
// comparison of formatted dates matches chronological order.
const DateLayout = "2006-01-02"

// Prediction is a user's forecast claim for a city's max temperature on the
// day after submission. JSON field names match the persisted collection
// format.
type Prediction struct {
	ID   string `json:"id"`
	City string `json:"city"`

	// TargetDate is the calendar date the prediction is for, computed once
	// at submission and never recomputed.
	TargetDate string `json:"date"`

	PredictedMaxTemp float64  `json:"predicted_max_temp"`
	ActualMaxTemp    *float64 `json:"actual_max_temp"`

	SubmittedAt time.Time `json:"submitted_on"`
	Status      Status    `json:"status"`

	// Points is meaningful only once Status is Checked.
	Points int `json:"points"`
}
