package mind

// #region imports
import "time"

// #endregion

// #region cognitive-vector

// CognitiveVector is the 8-dimensional skill estimate per player.
// Every dimension stays in [0, 100].
type CognitiveVector struct {
	Perception         float64 `json:"perception"`
	Spatial            float64 `json:"spatial"`
	Logic              float64 `json:"logic"`
	Temporal           float64 `json:"temporal"`
	Memory             float64 `json:"memory"`
	PatternRecognition float64 `json:"pattern_recognition"`
	Inhibition         float64 `json:"inhibition"`
	Flexibility        float64 `json:"flexibility"`
}

// skillDim gives updaters uniform access to one cognitive dimension.
type skillDim struct {
	name string
	get  func(*CognitiveVector) float64
	set  func(*CognitiveVector, float64)
}

var skillDims = []skillDim{
	{"perception", func(v *CognitiveVector) float64 { return v.Perception }, func(v *CognitiveVector, x float64) { v.Perception = x }},
	{"spatial", func(v *CognitiveVector) float64 { return v.Spatial }, func(v *CognitiveVector, x float64) { v.Spatial = x }},
	{"logic", func(v *CognitiveVector) float64 { return v.Logic }, func(v *CognitiveVector, x float64) { v.Logic = x }},
	{"temporal", func(v *CognitiveVector) float64 { return v.Temporal }, func(v *CognitiveVector, x float64) { v.Temporal = x }},
	{"memory", func(v *CognitiveVector) float64 { return v.Memory }, func(v *CognitiveVector, x float64) { v.Memory = x }},
	{"pattern_recognition", func(v *CognitiveVector) float64 { return v.PatternRecognition }, func(v *CognitiveVector, x float64) { v.PatternRecognition = x }},
	{"inhibition", func(v *CognitiveVector) float64 { return v.Inhibition }, func(v *CognitiveVector, x float64) { v.Inhibition = x }},
	{"flexibility", func(v *CognitiveVector) float64 { return v.Flexibility }, func(v *CognitiveVector, x float64) { v.Flexibility = x }},
}

// Average returns the mean of all eight dimensions.
func (v CognitiveVector) Average() float64 {
	var sum float64
	for _, d := range skillDims {
		sum += d.get(&v)
	}
	return sum / float64(len(skillDims))
}

// Weakest returns the lowest dimension and its score; ties go to
// declaration order.
func (v CognitiveVector) Weakest() (string, float64) {
	name := skillDims[0].name
	score := skillDims[0].get(&v)
	for _, d := range skillDims[1:] {
		if s := d.get(&v); s < score {
			name, score = d.name, s
		}
	}
	return name, score
}

// Score returns one dimension by name, false when the name is unknown.
func (v CognitiveVector) Score(name string) (float64, bool) {
	for _, d := range skillDims {
		if d.name == name {
			return d.get(&v), true
		}
	}
	return 0, false
}

func (v *CognitiveVector) clamp() {
	for _, d := range skillDims {
		d.set(v, clamp(d.get(v), 0, 100))
	}
}

// #endregion cognitive-vector

// #region reaction-profile

// Trend classifies the direction of recent reaction times.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// ReactionProfile summarizes response-time statistics over the most
// recent sessions.
type ReactionProfile struct {
	MeanMs     float64 `json:"mean_ms"`
	MedianMs   float64 `json:"median_ms"`
	P25Ms      float64 `json:"p25_ms"`
	P75Ms      float64 `json:"p75_ms"`
	VarianceMs float64 `json:"variance_ms"` // RMS deviation from the mean
	Trend      Trend   `json:"trend"`
}

// #endregion reaction-profile

// #region risk-fatigue-behavior

// RiskProfile tracks how much the player gambles on speed.
type RiskProfile struct {
	FastGuessRate float64 `json:"fast_guess_rate"` // fraction of answers under a quarter of the limit
	RiskScore     float64 `json:"risk_score"`      // 0-100 composite
}

// FatigueModel tracks within-session performance decay.
type FatigueModel struct {
	DeclineSlope    float64 `json:"decline_slope"` // accuracy change per round, EWMA
	AvgDurationSec  float64 `json:"avg_duration_sec"`
	ResistanceScore float64 `json:"resistance_score"` // 0-100, higher = holds up longer
}

// BehaviorSignature is a coarse description of how the player plays.
type BehaviorSignature struct {
	PlayStyle       string  `json:"play_style"` // "burst" | "steady" | "deliberate"
	SpeedPreference float64 `json:"speed_preference"`
	Consistency     float64 `json:"consistency"` // 0-100
}

// #endregion risk-fatigue-behavior

// #region session-record

// SessionRecord is one completed session, immutable once created.
// History is kept most-recent-first and capped at HistoryCap.
type SessionRecord struct {
	SessionID      string    `json:"session_id"`
	Sector         string    `json:"sector"`
	Accuracy       float64   `json:"accuracy"`
	MeanResponseMs float64   `json:"mean_response_ms"`
	RoundsPlayed   int       `json:"rounds_played"`
	DurationSec    float64   `json:"duration_sec"`
	CompletedAt    time.Time `json:"completed_at"`
}

// HistoryCap bounds the rolling session history.
const HistoryCap = 100

// #endregion session-record

// #region challenge-stat

// ChallengeStat is the per-challenge learning curve, keyed by the
// challenge kind string so the model stays a plain serializable record.
type ChallengeStat struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// Accuracy returns the per-kind accuracy, 0 when never attempted.
func (s ChallengeStat) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// #endregion challenge-stat

// #region model

// PlayerMindModel is the persistent player profile. Created once per
// player, mutated only by UpdateProfile, persisted as a flat
// serializable record.
type PlayerMindModel struct {
	PlayerID         string                   `json:"player_id"`
	Cognitive        CognitiveVector          `json:"cognitive"`
	Reaction         ReactionProfile          `json:"reaction"`
	Risk             RiskProfile              `json:"risk"`
	Fatigue          FatigueModel             `json:"fatigue"`
	Behavior         BehaviorSignature        `json:"behavior"`
	ChallengeStats   map[string]ChallengeStat `json:"challenge_stats"`
	History          []SessionRecord          `json:"history"` // most recent first
	TotalSessions    int                      `json:"total_sessions"`
	TotalTrials      int                      `json:"total_trials"`
	BestStreak       int                      `json:"best_streak"`
	LifetimeAccuracy float64                  `json:"lifetime_accuracy"`
	EvolutionStage   int                      `json:"evolution_stage"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// DefaultModel returns a fresh model for a new player. Skill dimensions
// start at the neutral midpoint.
func DefaultModel(playerID string) PlayerMindModel {
	return PlayerMindModel{
		PlayerID: playerID,
		Cognitive: CognitiveVector{
			Perception: 50, Spatial: 50, Logic: 50, Temporal: 50,
			Memory: 50, PatternRecognition: 50, Inhibition: 50, Flexibility: 50,
		},
		Reaction:       ReactionProfile{Trend: TrendStable},
		Behavior:       BehaviorSignature{PlayStyle: "steady", Consistency: 50},
		ChallengeStats: make(map[string]ChallengeStat),
	}
}

// Normalize re-clamps every bounded field and repairs structural damage
// from partial or corrupted stored records. Safe to call on any model.
func (m *PlayerMindModel) Normalize() {
	m.Cognitive.clamp()
	m.LifetimeAccuracy = clamp(m.LifetimeAccuracy, 0, 1)
	m.Risk.FastGuessRate = clamp(m.Risk.FastGuessRate, 0, 1)
	m.Risk.RiskScore = clamp(m.Risk.RiskScore, 0, 100)
	m.Fatigue.ResistanceScore = clamp(m.Fatigue.ResistanceScore, 0, 100)
	m.Behavior.SpeedPreference = clamp(m.Behavior.SpeedPreference, 0, 1)
	m.Behavior.Consistency = clamp(m.Behavior.Consistency, 0, 100)

	if m.TotalSessions < 0 {
		m.TotalSessions = 0
	}
	if m.TotalTrials < m.TotalSessions {
		m.TotalTrials = m.TotalSessions
	}
	if m.EvolutionStage < 0 {
		m.EvolutionStage = 0
	}
	if m.ChallengeStats == nil {
		m.ChallengeStats = make(map[string]ChallengeStat)
	}
	if len(m.History) > HistoryCap {
		m.History = m.History[:HistoryCap]
	}
	switch m.Reaction.Trend {
	case TrendImproving, TrendStable, TrendDeclining:
	default:
		m.Reaction.Trend = TrendStable
	}
}

// #endregion model

// #region helpers

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion helpers
