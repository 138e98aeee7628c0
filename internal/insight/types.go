package insight

// #region imports
import (
	"strings"
	"time"

	"github.com/sayanm085/puzzle-mind/internal/mind"
)

// #endregion

// #region condition

// Op is a condition comparison operator.
type Op string

const (
	OpGT      Op = "gt"
	OpLT      Op = "lt"
	OpEQ      Op = "eq"
	OpGTE     Op = "gte"
	OpLTE     Op = "lte"
	OpBetween Op = "between"
)

// Condition compares one metric against an operand. Between uses
// [Value, Value2] inclusive.
type Condition struct {
	Metric string  `yaml:"metric"`
	Op     Op      `yaml:"op"`
	Value  float64 `yaml:"value"`
	Value2 float64 `yaml:"value2,omitempty"`
}

// #endregion condition

// #region rule

// Rule is one entry of the static insight table. Rules never mutate;
// the shown-log lives beside the table and is updated by Select.
type Rule struct {
	ID            string      `yaml:"id"`
	Category      string      `yaml:"category"`
	Message       string      `yaml:"message"`
	Priority      int         `yaml:"priority"`
	CooldownHours int         `yaml:"cooldown_hours"` // 0 = once ever
	Conditions    []Condition `yaml:"conditions"`
}

// ShownLog maps insight id to the time it was last selected.
type ShownLog map[string]time.Time

// #endregion rule

// #region metrics-context

// SessionStats is the per-session slice of the metrics context.
type SessionStats struct {
	Accuracy       float64
	BestStreak     int
	RoundsPlayed   int
	MeanResponseMs float64
}

// Context is the flattened metrics surface conditions evaluate against.
// Metric lookup is a closed identifier set mapped to typed accessors;
// an unknown identifier reports false, never an error.
type Context struct {
	Model   mind.PlayerMindModel
	Session SessionStats
}

// Metric resolves a metric identifier. The second return is false for
// unknown identifiers, which makes the owning condition evaluate false.
func (c Context) Metric(id string) (float64, bool) {
	switch id {
	case "lifetime_accuracy":
		return c.Model.LifetimeAccuracy, true
	case "session_accuracy":
		return c.Session.Accuracy, true
	case "total_sessions":
		return float64(c.Model.TotalSessions), true
	case "total_trials":
		return float64(c.Model.TotalTrials), true
	case "best_streak":
		return float64(c.Model.BestStreak), true
	case "session_streak":
		return float64(c.Session.BestStreak), true
	case "session_rounds":
		return float64(c.Session.RoundsPlayed), true
	case "reaction_mean":
		return c.Model.Reaction.MeanMs, true
	case "reaction_median":
		return c.Model.Reaction.MedianMs, true
	case "reaction_variance":
		return c.Model.Reaction.VarianceMs, true
	case "reaction_trend":
		switch c.Model.Reaction.Trend {
		case mind.TrendImproving:
			return 1, true
		case mind.TrendDeclining:
			return -1, true
		default:
			return 0, true
		}
	case "evolution_stage":
		return float64(c.Model.EvolutionStage), true
	case "weakest_skill":
		_, score := c.Model.Cognitive.Weakest()
		return score, true
	case "fast_guess_rate":
		return c.Model.Risk.FastGuessRate, true
	case "fatigue_resistance":
		return c.Model.Fatigue.ResistanceScore, true
	}
	if name, ok := strings.CutPrefix(id, "skill_"); ok {
		return c.Model.Cognitive.Score(name)
	}
	return 0, false
}

// #endregion metrics-context

// #region eval

// Matches reports whether every condition holds against the context.
// A missing metric fails its condition rather than erroring.
func (r Rule) Matches(ctx Context) bool {
	for _, cond := range r.Conditions {
		v, ok := ctx.Metric(cond.Metric)
		if !ok {
			return false
		}
		if !cond.holds(v) {
			return false
		}
	}
	return true
}

func (c Condition) holds(v float64) bool {
	switch c.Op {
	case OpGT:
		return v > c.Value
	case OpLT:
		return v < c.Value
	case OpEQ:
		return v == c.Value
	case OpGTE:
		return v >= c.Value
	case OpLTE:
		return v <= c.Value
	case OpBetween:
		return v >= c.Value && v <= c.Value2
	}
	return false
}

// #endregion eval
