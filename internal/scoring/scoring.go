package scoring

// #region imports
import "math"

// #endregion

// #region config

// Config holds the tunable scoring constants.
type Config struct {
	BasePoints          int     // points for any correct answer
	StreakIncrement     float64 // streak multiplier growth per consecutive correct
	StreakCapMultiplier float64 // streak multiplier ceiling
	SpeedBonusMax       int     // max points for an instant answer
	AccuracyBonusMax    int     // max points at perfect recent accuracy
	DifficultyMinMult   float64 // difficulty multiplier at complexity 0
	DifficultyMaxMult   float64 // difficulty multiplier at complexity 1
	ComboThreshold      int     // combo length before the combo bonus kicks in
	ComboStep           int     // points per combo beyond the threshold
	PerfectBonus        int     // flat bonus for perfect accuracy + fast answer
	TargetScore         float64 // per-round target used by the star rating
}

// DefaultConfig returns the production scoring constants.
func DefaultConfig() Config {
	return Config{
		BasePoints:          100,
		StreakIncrement:     0.10,
		StreakCapMultiplier: 2.0,
		SpeedBonusMax:       50,
		AccuracyBonusMax:    30,
		DifficultyMinMult:   1.0,
		DifficultyMaxMult:   2.0,
		ComboThreshold:      5,
		ComboStep:           10,
		PerfectBonus:        25,
		TargetScore:         200,
	}
}

// #endregion config

// #region breakdown

// Breakdown is the point decomposition for a single round. An incorrect
// round always produces the zero Breakdown.
type Breakdown struct {
	Base       int `json:"base"`
	Streak     int `json:"streak"`
	Speed      int `json:"speed"`
	Accuracy   int `json:"accuracy"`
	Difficulty int `json:"difficulty"`
	Combo      int `json:"combo"`
	Perfect    int `json:"perfect"`
	Total      int `json:"total"`
}

// #endregion breakdown

// #region round-input

// RoundInput carries everything ScoreRound needs for one round.
type RoundInput struct {
	Correct        bool
	ResponseMs     float64
	TimeLimitMs    float64
	Streak         int     // consecutive correct before this round
	RecentAccuracy float64 // rolling accuracy in [0, 1]
	Complexity     float64 // challenge rule complexity in [0, 1]
}

// #endregion round-input

// #region tracker

// Tracker accumulates scores for one session. One Tracker per active
// session; never shared across sessions.
type Tracker struct {
	config Config
	combo  int
	rounds int
	total  int
}

// NewTracker creates a session score tracker.
func NewTracker(config Config) *Tracker {
	return &Tracker{config: config}
}

// Combo returns the current consecutive-correct combo counter.
func (t *Tracker) Combo() int { return t.combo }

// Total returns the accumulated session score.
func (t *Tracker) Total() int { return t.total }

// Rounds returns the number of rounds scored so far.
func (t *Tracker) Rounds() int { return t.rounds }

// ScoreRound computes the point breakdown for a round and folds it into
// the session totals. An incorrect round resets the combo counter and
// yields an all-zero breakdown.
func (t *Tracker) ScoreRound(in RoundInput) Breakdown {
	t.rounds++

	if !in.Correct {
		t.combo = 0
		return Breakdown{}
	}
	t.combo++

	cfg := t.config
	acc := clamp01(in.RecentAccuracy)

	b := Breakdown{Base: cfg.BasePoints}

	// Streak: multiplier grows per consecutive correct, capped.
	mult := math.Min(1+float64(in.Streak)*cfg.StreakIncrement, cfg.StreakCapMultiplier)
	b.Streak = int(float64(cfg.BasePoints) * (mult - 1))

	// Speed: quadratic reward for fast answers.
	if in.TimeLimitMs > 0 {
		ratio := math.Max(0, (in.TimeLimitMs-in.ResponseMs)/in.TimeLimitMs)
		b.Speed = int(float64(cfg.SpeedBonusMax) * ratio * ratio)
	}

	// Accuracy: linear in rolling accuracy.
	b.Accuracy = int(float64(cfg.AccuracyBonusMax) * acc)

	// Difficulty: base scaled by the interpolated complexity multiplier.
	diffMult := cfg.DifficultyMinMult + clamp01(in.Complexity)*(cfg.DifficultyMaxMult-cfg.DifficultyMinMult)
	b.Difficulty = int(float64(cfg.BasePoints) * (diffMult - 1))

	// Combo: only once the counter crosses the threshold, linear beyond it.
	if t.combo >= cfg.ComboThreshold {
		b.Combo = cfg.ComboStep * (t.combo - cfg.ComboThreshold + 1)
	}

	// Perfect: flat bonus for flawless recent accuracy and a fast answer.
	if acc == 1.0 && in.TimeLimitMs > 0 && in.ResponseMs < in.TimeLimitMs/2 {
		b.Perfect = cfg.PerfectBonus
	}

	b.Total = b.Base + b.Streak + b.Speed + b.Accuracy + b.Difficulty + b.Combo + b.Perfect
	t.total += b.Total
	return b
}

// Average returns the mean per-round score, 0 when no rounds were scored.
func (t *Tracker) Average() float64 {
	if t.rounds == 0 {
		return 0
	}
	return float64(t.total) / float64(t.rounds)
}

// #endregion tracker

// #region aggregates

// Grade maps an average round score onto a letter grade.
func Grade(average float64) string {
	switch {
	case average >= 180:
		return "A"
	case average >= 140:
		return "B"
	case average >= 100:
		return "C"
	case average >= 60:
		return "D"
	default:
		return "F"
	}
}

// Stars returns a 0-3 star rating of the average score against the target.
func Stars(average, target float64) int {
	if target <= 0 {
		return 0
	}
	ratio := average / target
	switch {
	case ratio >= 1.0:
		return 3
	case ratio >= 0.66:
		return 2
	case ratio >= 0.33:
		return 1
	default:
		return 0
	}
}

// #endregion aggregates

// #region helpers

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
