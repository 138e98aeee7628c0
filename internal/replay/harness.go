package replay

// #region imports
import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sayanm085/puzzle-mind/internal/difficulty"
	"github.com/sayanm085/puzzle-mind/internal/engine"
	"github.com/sayanm085/puzzle-mind/internal/mind"
)

// #endregion

// #region types

// RoundOutcome captures one replayed round.
type RoundOutcome struct {
	Index    int
	Kind     string
	TargetID string
	Correct  bool
	Score    int
}

// Result is the outcome of replaying one fixture: per-round results,
// the aggregate summary, the updated model, and any invariant failures
// detected on the way.
type Result struct {
	Rounds            []RoundOutcome
	Summary           mind.SessionSummary
	Model             mind.PlayerMindModel
	FinalGenome       difficulty.Genome
	InvariantFailures []string
}

// #endregion types

// #region replay

// Replay runs a recorded session through resolve -> score -> adapt ->
// update, entirely in memory, checking the core invariants after every
// step. Deterministic for a fixed fixture and seed.
func Replay(model mind.PlayerMindModel, fixture Fixture, config engine.Config, now time.Time) (Result, error) {
	eng := engine.New(nil, nil, config, rand.New(rand.NewSource(fixture.Seed)))
	session := eng.StartSession(model, fixture.Sector, difficulty.DefaultGenome())

	result := Result{}
	prevStage := model.EvolutionStage

	for i, round := range fixture.Rounds {
		rr, err := session.PlayRound(round.Shapes, round.Kind, round.PickedID, round.ResponseMs, round.TimeLimitMs)
		if err != nil {
			return result, fmt.Errorf("replay round %d: %w", i, err)
		}
		result.Rounds = append(result.Rounds, RoundOutcome{
			Index:    i,
			Kind:     string(round.Kind),
			TargetID: rr.Target.ID,
			Correct:  rr.Correct,
			Score:    rr.Breakdown.Total,
		})
		result.FinalGenome = rr.Genome
		result.InvariantFailures = append(result.InvariantFailures,
			checkGenome(rr.Genome, config.Controller.Bounds)...)
	}

	updated, err := eng.RecordSession(session, now)
	if err != nil {
		return result, fmt.Errorf("replay record: %w", err)
	}
	result.Model = updated
	result.Summary = session.Summary(now)
	result.InvariantFailures = append(result.InvariantFailures,
		checkModel(updated, prevStage)...)

	return result, nil
}

// #endregion replay

// #region invariants

// checkGenome verifies every difficulty dimension sits inside its bound.
func checkGenome(g difficulty.Genome, bounds difficulty.Bounds) []string {
	var failures []string
	checks := []struct {
		name  string
		value float64
		bound difficulty.Bound
	}{
		{"time_pressure", g.TimePressure, bounds.TimePressure},
		{"shape_count", g.ShapeCount, bounds.ShapeCount},
		{"distractor_ratio", g.DistractorRatio, bounds.DistractorRatio},
		{"color_similarity", g.ColorSimilarity, bounds.ColorSimilarity},
		{"spatial_density", g.SpatialDensity, bounds.SpatialDensity},
		{"rule_complexity", g.RuleComplexity, bounds.RuleComplexity},
		{"memory_load", g.MemoryLoad, bounds.MemoryLoad},
		{"decay_rate", g.DecayRate, bounds.DecayRate},
		{"visual_noise", g.VisualNoise, bounds.VisualNoise},
	}
	for _, c := range checks {
		if c.value < c.bound.Min || c.value > c.bound.Max {
			failures = append(failures, fmt.Sprintf("genome %s %.4f outside [%.2f, %.2f]", c.name, c.value, c.bound.Min, c.bound.Max))
		}
	}
	return failures
}

// checkModel verifies the player-model invariants after an update.
func checkModel(m mind.PlayerMindModel, prevStage int) []string {
	var failures []string

	if m.LifetimeAccuracy < 0 || m.LifetimeAccuracy > 1 {
		failures = append(failures, fmt.Sprintf("lifetime accuracy %.4f outside [0, 1]", m.LifetimeAccuracy))
	}
	if m.TotalTrials < m.TotalSessions {
		failures = append(failures, fmt.Sprintf("total trials %d below total sessions %d", m.TotalTrials, m.TotalSessions))
	}
	if m.EvolutionStage < prevStage {
		failures = append(failures, fmt.Sprintf("evolution stage regressed %d -> %d", prevStage, m.EvolutionStage))
	}

	skills := []struct {
		name  string
		value float64
	}{
		{"perception", m.Cognitive.Perception},
		{"spatial", m.Cognitive.Spatial},
		{"logic", m.Cognitive.Logic},
		{"temporal", m.Cognitive.Temporal},
		{"memory", m.Cognitive.Memory},
		{"pattern_recognition", m.Cognitive.PatternRecognition},
		{"inhibition", m.Cognitive.Inhibition},
		{"flexibility", m.Cognitive.Flexibility},
	}
	for _, s := range skills {
		if s.value < 0 || s.value > 100 {
			failures = append(failures, fmt.Sprintf("skill %s %.4f outside [0, 100]", s.name, s.value))
		}
	}
	return failures
}

// #endregion invariants
