package insight

// #region imports
import (
	"fmt"
	"time"
)

// #endregion

// #region reflection

// Tone sets the overall register of a session reflection.
type Tone string

const (
	ToneTriumphant  Tone = "triumphant"
	ToneEncouraging Tone = "encouraging"
	ToneSupportive  Tone = "supportive"
)

// HighlightedMetric is the single stat a reflection calls out.
type HighlightedMetric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Reflection is the ephemeral end-of-session summary. Never persisted.
type Reflection struct {
	Headline    string            `json:"headline"`
	Subheadline string            `json:"subheadline"`
	Insights    []Rule            `json:"insights"` // at most 3
	Highlighted HighlightedMetric `json:"highlighted"`
	Suggestion  string            `json:"suggestion"`
	Tone        Tone              `json:"tone"`
}

// #endregion reflection

// #region build

const maxReflectionInsights = 3

// skillSuggestions maps a cognitive dimension to its targeted suggestion.
var skillSuggestions = map[string]string{
	"perception":          "Try perception chambers - spotting the odd shape out trains exactly what lags.",
	"spatial":             "Spatial chambers would help; center-most and isolation puzzles build that muscle.",
	"logic":               "Frequency and majority puzzles in the logic sector target your weakest dimension.",
	"temporal":            "Order-of-appearance challenges will sharpen your temporal tracking.",
	"memory":              "Higher memory-load rounds are the fastest way to push that dimension up.",
	"pattern_recognition": "Pattern-breaker challenges are tailor-made for your current gap.",
	"inhibition":          "Flagged-shape rounds train the impulse control your profile is asking for.",
	"flexibility":         "Mixing challenge domains within a session stretches cognitive flexibility.",
}

// BuildReflection assembles the end-of-session reflection: top insights,
// one highlighted metric by fixed precedence, a suggestion derived from
// the weakest cognitive dimension, and a tone from session accuracy.
// The returned shown-log replaces the caller's copy.
func BuildReflection(ctx Context, shown ShownLog, now time.Time) (Reflection, ShownLog) {
	selected, updated := Select(Rules(), ctx, shown, now, maxReflectionInsights)

	tone := toneFor(ctx.Session.Accuracy)
	headline, sub := headlinesFor(tone, ctx.Session)

	return Reflection{
		Headline:    headline,
		Subheadline: sub,
		Insights:    selected,
		Highlighted: highlightFor(ctx),
		Suggestion:  suggestionFor(ctx),
		Tone:        tone,
	}, updated
}

func toneFor(accuracy float64) Tone {
	switch {
	case accuracy >= 0.85:
		return ToneTriumphant
	case accuracy >= 0.60:
		return ToneEncouraging
	default:
		return ToneSupportive
	}
}

func headlinesFor(tone Tone, s SessionStats) (string, string) {
	switch tone {
	case ToneTriumphant:
		return "Exceptional session",
			fmt.Sprintf("%.0f%% accuracy over %d rounds - the engine will push back harder next time.", s.Accuracy*100, s.RoundsPlayed)
	case ToneEncouraging:
		return "Solid work",
			fmt.Sprintf("%.0f%% accuracy over %d rounds. You are right in the learning zone.", s.Accuracy*100, s.RoundsPlayed)
	default:
		return "Every session counts",
			fmt.Sprintf("%d rounds played. Hard sessions are where the profile actually moves.", s.RoundsPlayed)
	}
}

// highlightFor picks the headline stat by fixed precedence:
// streak >= 5, then accuracy >= 0.75, then the trial count fallback.
func highlightFor(ctx Context) HighlightedMetric {
	if ctx.Session.BestStreak >= 5 {
		return HighlightedMetric{Label: "best streak", Value: float64(ctx.Session.BestStreak)}
	}
	if ctx.Session.Accuracy >= 0.75 {
		return HighlightedMetric{Label: "accuracy", Value: ctx.Session.Accuracy}
	}
	return HighlightedMetric{Label: "lifetime trials", Value: float64(ctx.Model.TotalTrials)}
}

// suggestionFor derives the next-step text: a targeted suggestion when the
// weakest dimension is lagging, a speed/accuracy tradeoff nudge otherwise,
// and a generic keep-going line as the final fallback.
func suggestionFor(ctx Context) string {
	name, score := ctx.Model.Cognitive.Weakest()
	if score < 40 {
		if s, ok := skillSuggestions[name]; ok {
			return s
		}
	}
	switch {
	case ctx.Session.Accuracy >= 0.85 && ctx.Model.Behavior.SpeedPreference < 0.4:
		return "Accuracy is there - try pushing your pace for bigger speed bonuses."
	case ctx.Session.Accuracy < 0.6 && ctx.Model.Behavior.SpeedPreference > 0.6:
		return "You answer fast. Spending another beat per round should lift your accuracy."
	default:
		return "Keep going - consistent sessions move the profile more than perfect ones."
	}
}

// #endregion build
