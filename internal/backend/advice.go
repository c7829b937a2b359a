package backend

import "weatherdesk/internal/common"

// Tone classifies a suggestion's leaning for display emphasis.
type Tone string

const (
	ToneFavorable   Tone = "favorable"
	ToneUnfavorable Tone = "unfavorable"
	ToneNeutral     Tone = "neutral"
)

// SuggestionTone scans a suggestion's wording; the backend does not flag
// favorability explicitly.
func SuggestionTone(text string) Tone {
	switch {
	case common.HasAny(text, "favorable"):
		return ToneFavorable
	case common.HasAny(text, "unsuitable", "not ideal", "too cold", "too windy", "too high"):
		return ToneUnfavorable
	default:
		return ToneNeutral
	}
}
