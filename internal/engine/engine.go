package engine

// #region imports
import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sayanm085/puzzle-mind/internal/challenge"
	"github.com/sayanm085/puzzle-mind/internal/difficulty"
	"github.com/sayanm085/puzzle-mind/internal/insight"
	"github.com/sayanm085/puzzle-mind/internal/logging"
	"github.com/sayanm085/puzzle-mind/internal/mind"
	"github.com/sayanm085/puzzle-mind/internal/profilestore"
	"github.com/sayanm085/puzzle-mind/internal/scoring"
	"github.com/sayanm085/puzzle-mind/internal/shape"
	"github.com/sayanm085/puzzle-mind/internal/signals"
)

// #endregion

// #region config

// Config bundles the sub-system configurations.
type Config struct {
	Scoring    scoring.Config
	Controller difficulty.ControllerConfig
	Picker     difficulty.PickerConfig
	Update     mind.UpdateConfig
	Signals    signals.ProducerConfig
}

// DefaultConfig returns the production engine configuration.
func DefaultConfig() Config {
	return Config{
		Scoring:    scoring.DefaultConfig(),
		Controller: difficulty.DefaultControllerConfig(),
		Picker:     difficulty.DefaultPickerConfig(),
		Update:     mind.DefaultUpdateConfig(),
		Signals:    signals.DefaultProducerConfig(),
	}
}

// #endregion config

// #region engine

// Engine is the cognitive adaptation and scoring core. All operations are
// synchronous and sequential; callers must serialize invocations per player
// (at most one in-flight session per profile). The random source is
// injected so challenge sampling is reproducible under test.
type Engine struct {
	store  *profilestore.Store // nil = in-memory only, nothing persisted
	logger *zap.Logger
	config Config
	rng    *rand.Rand
}

// New creates an Engine. store may be nil for in-memory use; logger may
// be nil to disable logging.
func New(store *profilestore.Store, logger *zap.Logger, config Config, rng *rand.Rand) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{store: store, logger: logger, config: config, rng: rng}
}

// ResolveTarget returns the correct shape for a challenge. The shape set
// must be non-empty; resolution itself never fails on odd inputs, it
// degrades to the documented fallbacks.
func (e *Engine) ResolveTarget(shapes []shape.Shape, kind challenge.Kind) (shape.Shape, error) {
	if len(shapes) == 0 {
		return shape.Shape{}, errors.New("resolve target: empty shape set")
	}
	return challenge.Resolve(shapes, kind), nil
}

// #endregion engine

// #region session

// RoundResult is everything one round produces.
type RoundResult struct {
	Target    shape.Shape
	Correct   bool
	Breakdown scoring.Breakdown
	Genome    difficulty.Genome
}

// Session is one player's active run. Construct one per session via
// StartSession; never share across sessions or players.
type Session struct {
	ID     string
	Sector string

	engine     *Engine
	model      mind.PlayerMindModel
	tracker    *scoring.Tracker
	controller *difficulty.Controller
	picker     *difficulty.Picker
	producer   *signals.Producer

	rounds       []signals.RoundSample
	kindOutcomes map[string]mind.ChallengeStat
	streak       int
	bestStreak   int
	correct      int
	startedAt    time.Time
}

// StartSession opens a session for the given player model and sector.
func (e *Engine) StartSession(model mind.PlayerMindModel, sector string, genome difficulty.Genome) *Session {
	model.Normalize()
	return &Session{
		ID:           uuid.New().String(),
		Sector:       sector,
		engine:       e,
		model:        model,
		tracker:      scoring.NewTracker(e.config.Scoring),
		controller:   difficulty.NewController(genome, e.config.Controller),
		picker:       difficulty.NewPicker(e.config.Picker, e.rng),
		producer:     signals.NewProducer(e.config.Signals),
		kindOutcomes: make(map[string]mind.ChallengeStat),
		startedAt:    time.Now().UTC(),
	}
}

// NextChallenge draws the next challenge kind, boosting kinds the player
// struggles with or has rarely seen.
func (s *Session) NextChallenge() challenge.Kind {
	stats := make(map[challenge.Kind]difficulty.KindStats, len(s.model.ChallengeStats))
	for k, st := range s.model.ChallengeStats {
		stats[challenge.Kind(k)] = difficulty.KindStats{
			Attempts: st.Attempts,
			Accuracy: st.Accuracy(),
		}
	}
	return s.picker.Pick(stats)
}

// PlayRound resolves the round, scores the player's pick, feeds the
// outcome to the difficulty loop, and returns the adapted genome.
func (s *Session) PlayRound(shapes []shape.Shape, kind challenge.Kind, pickedID string, responseMs, timeLimitMs float64) (RoundResult, error) {
	target, err := s.engine.ResolveTarget(shapes, kind)
	if err != nil {
		return RoundResult{}, fmt.Errorf("play round: %w", err)
	}
	correct := target.ID == pickedID

	breakdown := s.tracker.ScoreRound(scoring.RoundInput{
		Correct:        correct,
		ResponseMs:     responseMs,
		TimeLimitMs:    timeLimitMs,
		Streak:         s.streak,
		RecentAccuracy: s.recentAccuracy(),
		Complexity:     challenge.ComplexityOf(kind),
	})

	if correct {
		s.streak++
		s.correct++
		if s.streak > s.bestStreak {
			s.bestStreak = s.streak
		}
	} else {
		s.streak = 0
	}

	s.controller.Record(correct)
	genome := s.controller.Adapt()

	s.rounds = append(s.rounds, signals.RoundSample{
		Correct:     correct,
		ResponseMs:  responseMs,
		TimeLimitMs: timeLimitMs,
	})
	st := s.kindOutcomes[string(kind)]
	st.Attempts++
	if correct {
		st.Correct++
	}
	s.kindOutcomes[string(kind)] = st

	s.engine.logger.Debug("round played",
		zap.String("session", s.ID),
		zap.String("kind", string(kind)),
		zap.Bool("correct", correct),
		zap.Int("score", breakdown.Total),
		zap.Float64("shape_count", genome.ShapeCount),
	)

	return RoundResult{Target: target, Correct: correct, Breakdown: breakdown, Genome: genome}, nil
}

// AdaptDifficulty returns the controller's current difficulty vector
// without recording a new outcome.
func (s *Session) AdaptDifficulty() difficulty.Genome {
	return s.controller.Genome()
}

// Streak returns the current consecutive-correct streak.
func (s *Session) Streak() int { return s.streak }

// Score returns the accumulated session score.
func (s *Session) Score() int { return s.tracker.Total() }

// recentAccuracy is the rolling accuracy over the session so far.
func (s *Session) recentAccuracy() float64 {
	if len(s.rounds) == 0 {
		return 0
	}
	return float64(s.correct) / float64(len(s.rounds))
}

// Summary aggregates the session into the record handed to the profile
// updater. Call once when the session ends.
func (s *Session) Summary(now time.Time) mind.SessionSummary {
	var meanResponse float64
	if len(s.rounds) > 0 {
		var sum float64
		for _, r := range s.rounds {
			sum += r.ResponseMs
		}
		meanResponse = sum / float64(len(s.rounds))
	}
	return mind.SessionSummary{
		SessionID:      s.ID,
		Sector:         s.Sector,
		Accuracy:       s.recentAccuracy(),
		MeanResponseMs: meanResponse,
		RoundsPlayed:   len(s.rounds),
		DurationSec:    now.Sub(s.startedAt).Seconds(),
		BestStreak:     s.bestStreak,
		CompletedAt:    now,
		KindOutcomes:   s.kindOutcomes,
	}
}

// #endregion session

// #region record-session

// RecordSession folds a finished session into the player model, persists
// the new profile version when a store is attached, and returns the
// updated model.
func (e *Engine) RecordSession(s *Session, now time.Time) (mind.PlayerMindModel, error) {
	sum := s.Summary(now)
	sig := s.producer.Produce(s.rounds)

	result := mind.UpdateProfile(s.model, sum, sig, e.config.Update)

	e.logger.Info("session recorded",
		zap.String("session", s.ID),
		zap.String("decision", result.Decision.Action),
		zap.Float64("accuracy", sum.Accuracy),
		zap.Int("rounds", sum.RoundsPlayed),
		zap.Int("stage", result.Model.EvolutionStage),
	)

	if e.store == nil || result.Decision.Action != "commit" {
		return result.Model, nil
	}

	current, err := e.store.GetCurrent()
	if err != nil {
		return result.Model, fmt.Errorf("record session: %w", err)
	}
	ver := profilestore.ProfileVersion{
		VersionID: uuid.New().String(),
		ParentID:  current.VersionID,
		Model:     result.Model,
		CreatedAt: now,
	}
	if err := e.store.CommitProfile(ver); err != nil {
		return result.Model, fmt.Errorf("record session: %w", err)
	}
	if err := e.store.AppendSession(result.Model.History[0]); err != nil {
		return result.Model, fmt.Errorf("record session: %w", err)
	}

	sigJSON, _ := json.Marshal(sig)
	if err := logging.LogDecision(e.store.DB(), logging.ProvenanceEntry{
		VersionID:   ver.VersionID,
		SessionID:   s.ID,
		Decision:    result.Decision.Action,
		Reason:      result.Decision.Reason,
		SignalsJSON: string(sigJSON),
		CreatedAt:   now,
	}); err != nil {
		e.logger.Warn("provenance log failed", zap.Error(err))
	}

	return result.Model, nil
}

// #endregion record-session

// #region reflection

// GenerateSessionReflection builds the end-of-session reflection against
// the updated model and persists the advanced insight cooldown log when a
// store is attached.
func (e *Engine) GenerateSessionReflection(model mind.PlayerMindModel, stats insight.SessionStats, now time.Time) (insight.Reflection, error) {
	shown := insight.ShownLog{}
	if e.store != nil {
		loaded, err := e.store.ShownLog()
		if err != nil {
			return insight.Reflection{}, fmt.Errorf("reflection: %w", err)
		}
		shown = loaded
	}

	ctx := insight.Context{Model: model, Session: stats}
	reflection, updated := insight.BuildReflection(ctx, shown, now)

	if e.store != nil {
		if err := e.store.SaveShownLog(updated); err != nil {
			return insight.Reflection{}, fmt.Errorf("reflection: %w", err)
		}
	}

	e.logger.Debug("reflection built",
		zap.String("tone", string(reflection.Tone)),
		zap.Int("insights", len(reflection.Insights)),
	)
	return reflection, nil
}

// #endregion reflection
