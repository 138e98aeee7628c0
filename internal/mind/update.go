package mind

// #region imports
import (
	"fmt"
	"math"
	"sort"
	"time"
)

// #endregion

// #region session-summary

// SessionSummary is the aggregate handed to UpdateProfile once per
// finished session. Out-of-range fields are clamped at this boundary.
type SessionSummary struct {
	SessionID      string
	Sector         string // cognitive domain the session exercised
	Accuracy       float64
	MeanResponseMs float64
	RoundsPlayed   int
	DurationSec    float64
	BestStreak     int
	CompletedAt    time.Time

	// Per-kind outcomes for this session, keyed by challenge kind string.
	KindOutcomes map[string]ChallengeStat
}

// Signals carries behavioral signals derived from the session's round log.
type Signals struct {
	FastGuessRate   float64 // fraction of answers under a quarter of the limit
	DeclineSlope    float64 // accuracy change per round over the session
	SpeedPreference float64 // 0 = deliberate, 1 = speed-first
	Consistency     float64 // 0-1, inverse response-time spread
	PlayStyle       string  // "burst" | "steady" | "deliberate"
}

// #endregion session-summary

// #region update-config

// UpdateConfig holds the profile-update constants.
type UpdateConfig struct {
	ReactionWindow   int     // sessions used for reaction statistics
	TrendWindow      int     // sessions per side of the trend comparison
	TrendThreshold   float64 // relative change classified as a trend
	SpeedThresholdMs float64 // mean response below this earns a skill bonus
	SpeedBonus       float64 // extra skill increment for fast sessions
	SignalEwma       float64 // smoothing for risk/fatigue/behavior updates
}

// DefaultUpdateConfig returns the production update constants.
func DefaultUpdateConfig() UpdateConfig {
	return UpdateConfig{
		ReactionWindow:   20,
		TrendWindow:      5,
		TrendThreshold:   0.05,
		SpeedThresholdMs: 800,
		SpeedBonus:       0.5,
		SignalEwma:       0.3,
	}
}

// #endregion update-config

// #region sector-skills

// sectorSkills maps each world sector to the 1-2 cognitive dimensions
// it exercises.
var sectorSkills = map[string][]string{
	"perception": {"perception", "pattern_recognition"},
	"spatial":    {"spatial", "memory"},
	"logic":      {"logic", "flexibility"},
	"temporal":   {"temporal", "inhibition"},
}

// #endregion sector-skills

// #region update-result

// Decision records what UpdateProfile decided.
type Decision struct {
	Action string // "commit" | "no_op"
	Reason string
}

// Metrics captures telemetry from one profile update.
type Metrics struct {
	AccuracyBefore float64
	AccuracyAfter  float64
	StageBefore    int
	StageAfter     int
	SkillDeltas    map[string]float64
}

// UpdateResult bundles everything returned by UpdateProfile.
type UpdateResult struct {
	Model    PlayerMindModel
	Decision Decision
	Metrics  Metrics
}

// #endregion update-result

// #region update-profile

// UpdateProfile is a pure function computing the next profile from the
// current one and a finished session. The input model is not mutated.
func UpdateProfile(old PlayerMindModel, sum SessionSummary, sig Signals, cfg UpdateConfig) UpdateResult {
	if sum.RoundsPlayed <= 0 {
		return UpdateResult{
			Model:    old,
			Decision: Decision{Action: "no_op", Reason: "session played no rounds"},
			Metrics: Metrics{
				AccuracyBefore: old.LifetimeAccuracy, AccuracyAfter: old.LifetimeAccuracy,
				StageBefore: old.EvolutionStage, StageAfter: old.EvolutionStage,
			},
		}
	}

	// Clamp at the caller/model boundary.
	sum.Accuracy = clamp(sum.Accuracy, 0, 1)
	if sum.MeanResponseMs < 0 {
		sum.MeanResponseMs = 0
	}
	if sum.CompletedAt.IsZero() {
		sum.CompletedAt = time.Now().UTC()
	}

	model := cloneModel(old)

	// Lifetime accuracy: trial-weighted running mean.
	oldTrials := float64(model.TotalTrials)
	rounds := float64(sum.RoundsPlayed)
	model.LifetimeAccuracy = (model.LifetimeAccuracy*oldTrials + sum.Accuracy*rounds) / (oldTrials + rounds)
	model.TotalSessions++
	model.TotalTrials += sum.RoundsPlayed

	// Session history, most recent first.
	rec := SessionRecord{
		SessionID:      sum.SessionID,
		Sector:         sum.Sector,
		Accuracy:       sum.Accuracy,
		MeanResponseMs: sum.MeanResponseMs,
		RoundsPlayed:   sum.RoundsPlayed,
		DurationSec:    sum.DurationSec,
		CompletedAt:    sum.CompletedAt,
	}
	model.History = append([]SessionRecord{rec}, model.History...)
	if len(model.History) > HistoryCap {
		model.History = model.History[:HistoryCap]
	}

	model.Reaction = reactionProfile(model.History, cfg)

	skillDeltas := applySkillIncrements(&model.Cognitive, sum, cfg)

	applySignals(&model, sig, cfg)
	model.Fatigue.AvgDurationSec = ewma(model.Fatigue.AvgDurationSec, sum.DurationSec, cfg.SignalEwma)

	if sum.BestStreak > model.BestStreak {
		model.BestStreak = sum.BestStreak
	}
	for kind, st := range sum.KindOutcomes {
		agg := model.ChallengeStats[kind]
		agg.Attempts += st.Attempts
		agg.Correct += st.Correct
		model.ChallengeStats[kind] = agg
	}

	stageBefore := model.EvolutionStage
	model.EvolutionStage = EvolutionStageFor(model.Cognitive.Average(), model.TotalSessions, model.EvolutionStage)

	model.UpdatedAt = sum.CompletedAt
	model.Normalize()

	reason := fmt.Sprintf("session %s: accuracy %.2f over %d rounds", sum.SessionID, sum.Accuracy, sum.RoundsPlayed)
	if model.EvolutionStage != stageBefore {
		reason += fmt.Sprintf(", stage %d -> %d", stageBefore, model.EvolutionStage)
	}

	return UpdateResult{
		Model:    model,
		Decision: Decision{Action: "commit", Reason: reason},
		Metrics: Metrics{
			AccuracyBefore: old.LifetimeAccuracy,
			AccuracyAfter:  model.LifetimeAccuracy,
			StageBefore:    stageBefore,
			StageAfter:     model.EvolutionStage,
			SkillDeltas:    skillDeltas,
		},
	}
}

// #endregion update-profile

// #region reaction

// reactionProfile recomputes response-time statistics from the most
// recent sessions (history is most-recent-first).
func reactionProfile(history []SessionRecord, cfg UpdateConfig) ReactionProfile {
	n := len(history)
	if n == 0 {
		return ReactionProfile{Trend: TrendStable}
	}
	if n > cfg.ReactionWindow {
		n = cfg.ReactionWindow
	}

	times := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = history[i].MeanResponseMs
	}

	var sum float64
	for _, t := range times {
		sum += t
	}
	mean := sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, times)
	sort.Float64s(sorted)

	var sqSum float64
	for _, t := range times {
		d := t - mean
		sqSum += d * d
	}

	return ReactionProfile{
		MeanMs:     mean,
		MedianMs:   sorted[n/2],
		P25Ms:      sorted[n*25/100],
		P75Ms:      sorted[n*75/100],
		VarianceMs: math.Sqrt(sqSum / float64(n)),
		Trend:      classifyTrend(times, cfg),
	}
}

// classifyTrend compares the mean of the newest sessions against the mean
// of the sessions preceding them. Lower response times count as improving.
func classifyTrend(recentFirst []float64, cfg UpdateConfig) Trend {
	w := cfg.TrendWindow
	if len(recentFirst) < 2*w {
		return TrendStable
	}
	var newer, older float64
	for i := 0; i < w; i++ {
		newer += recentFirst[i]
		older += recentFirst[w+i]
	}
	newer /= float64(w)
	older /= float64(w)
	if older == 0 {
		return TrendStable
	}
	switch {
	case newer < older*(1-cfg.TrendThreshold):
		return TrendImproving
	case newer > older*(1+cfg.TrendThreshold):
		return TrendDeclining
	default:
		return TrendStable
	}
}

// #endregion reaction

// #region skills

// applySkillIncrements moves the sector's skill dimensions by
// (accuracy - 0.5) x 2, plus a speed bonus when the session was fast.
// Returns the applied deltas by dimension name.
func applySkillIncrements(vec *CognitiveVector, sum SessionSummary, cfg UpdateConfig) map[string]float64 {
	names, ok := sectorSkills[sum.Sector]
	if !ok {
		return nil
	}

	inc := (sum.Accuracy - 0.5) * 2
	if sum.MeanResponseMs > 0 && sum.MeanResponseMs < cfg.SpeedThresholdMs {
		inc += cfg.SpeedBonus
	}

	deltas := make(map[string]float64, len(names))
	for _, d := range skillDims {
		for _, name := range names {
			if d.name != name {
				continue
			}
			before := d.get(vec)
			d.set(vec, clamp(before+inc, 0, 100))
			deltas[name] = d.get(vec) - before
		}
	}
	return deltas
}

// #endregion skills

// #region signals

// applySignals folds behavioral signals into the risk, fatigue, and
// behavior sub-models via exponential smoothing.
func applySignals(m *PlayerMindModel, sig Signals, cfg UpdateConfig) {
	a := cfg.SignalEwma

	m.Risk.FastGuessRate = ewma(m.Risk.FastGuessRate, clamp(sig.FastGuessRate, 0, 1), a)
	m.Risk.RiskScore = clamp(m.Risk.FastGuessRate*100, 0, 100)

	m.Fatigue.DeclineSlope = ewma(m.Fatigue.DeclineSlope, sig.DeclineSlope, a)
	// Resistance rewards flat or positive within-session slopes.
	m.Fatigue.ResistanceScore = clamp(50+m.Fatigue.DeclineSlope*500, 0, 100)

	m.Behavior.SpeedPreference = ewma(m.Behavior.SpeedPreference, clamp(sig.SpeedPreference, 0, 1), a)
	m.Behavior.Consistency = ewma(m.Behavior.Consistency, clamp(sig.Consistency, 0, 1)*100, a)
	if sig.PlayStyle != "" {
		m.Behavior.PlayStyle = sig.PlayStyle
	}
}

func ewma(old, next, alpha float64) float64 {
	return old*(1-alpha) + next*alpha
}

// #endregion signals

// #region clone

// cloneModel deep-copies the mutable parts of a model so UpdateProfile
// stays pure.
func cloneModel(m PlayerMindModel) PlayerMindModel {
	out := m
	out.ChallengeStats = make(map[string]ChallengeStat, len(m.ChallengeStats))
	for k, v := range m.ChallengeStats {
		out.ChallengeStats[k] = v
	}
	out.History = make([]SessionRecord, len(m.History))
	copy(out.History, m.History)
	return out
}

// #endregion clone
