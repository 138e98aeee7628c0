package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sayanm085/puzzle-mind/internal/difficulty"
	"github.com/sayanm085/puzzle-mind/internal/engine"
	"github.com/sayanm085/puzzle-mind/internal/insight"
	"github.com/sayanm085/puzzle-mind/internal/profilestore"
	"github.com/sayanm085/puzzle-mind/internal/sector"
	"github.com/sayanm085/puzzle-mind/internal/shape"
)

var simulateFlags struct {
	dbPath   string
	playerID string
	sector   string
	sessions int
	rounds   int
	skill    float64
	seed     int64
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run synthetic seeded sessions against a profile store",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateFlags.dbPath, "db", "puzzle_mind.db", "profile store path")
	f.StringVar(&simulateFlags.playerID, "player", "sim-player", "player id for a fresh profile")
	f.StringVar(&simulateFlags.sector, "sector", "perception", "world sector (perception|spatial|logic|temporal)")
	f.IntVar(&simulateFlags.sessions, "sessions", 5, "sessions to simulate")
	f.IntVar(&simulateFlags.rounds, "rounds", 20, "rounds per session")
	f.Float64Var(&simulateFlags.skill, "skill", 0.75, "synthetic player's probability of answering correctly")
	f.Int64Var(&simulateFlags.seed, "seed", 0, "random seed (0 = time-based)")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	seed := simulateFlags.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	store, err := profilestore.Open(simulateFlags.dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	current, err := store.GetCurrent()
	if err != nil {
		logger.Info("no active profile, creating initial", zap.String("player", simulateFlags.playerID))
		current, err = store.CreateInitialProfile(simulateFlags.playerID)
		if err != nil {
			return fmt.Errorf("create initial profile: %w", err)
		}
	}

	eng := engine.New(store, logger, engine.DefaultConfig(), rng)
	model := current.Model

	for i := 0; i < simulateFlags.sessions; i++ {
		genome := difficulty.DefaultGenome()
		if sec, ok := sector.Find(simulateFlags.sector); ok {
			if unlocked := sec.Unlocked(model.EvolutionStage); len(unlocked) > 0 {
				chamber := unlocked[len(unlocked)-1]
				genome = chamber.ApplyTo(genome, difficulty.DefaultBounds())
				fmt.Printf("entering chamber %q (sector %.0f%% unlocked)\n",
					chamber.Name, sec.Progress(model.EvolutionStage)*100)
			}
		}
		session := eng.StartSession(model, simulateFlags.sector, genome)
		for r := 0; r < simulateFlags.rounds; r++ {
			kind := session.NextChallenge()
			count := int(session.AdaptDifficulty().ShapeCount)
			shapes := generateShapes(rng, count)

			target, err := eng.ResolveTarget(shapes, kind)
			if err != nil {
				return err
			}
			pick := target.ID
			if rng.Float64() > simulateFlags.skill {
				pick = shapes[rng.Intn(len(shapes))].ID
			}
			responseMs := 400 + rng.Float64()*2000

			if _, err := session.PlayRound(shapes, kind, pick, responseMs, 3000); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		model, err = eng.RecordSession(session, now)
		if err != nil {
			return err
		}
		summary := session.Summary(now)
		reflection, err := eng.GenerateSessionReflection(model, insight.SessionStats{
			Accuracy:       summary.Accuracy,
			BestStreak:     summary.BestStreak,
			RoundsPlayed:   summary.RoundsPlayed,
			MeanResponseMs: summary.MeanResponseMs,
		}, now)
		if err != nil {
			return err
		}

		fmt.Printf("session %d/%d  accuracy=%.2f  score=%d  stage=%d\n",
			i+1, simulateFlags.sessions, summary.Accuracy, session.Score(), model.EvolutionStage)
			fmt.Printf("  %s - %s\n", reflection.Headline, reflection.Suggestion)
		for _, ins := range reflection.Insights {
			fmt.Printf("  insight: %s\n", ins.Message)
		}
	}

	fmt.Printf("\nlifetime accuracy %.3f over %d trials, evolution stage %d\n",
		model.LifetimeAccuracy, model.TotalTrials, model.EvolutionStage)
	return nil
}

// generateShapes builds a synthetic round population. Sizes, positions,
// colors, and flags vary enough for every rule family to resolve.
func generateShapes(rng *rand.Rand, count int) []shape.Shape {
	if count < 3 {
		count = 3
	}
	kinds := []shape.Kind{
		shape.KindCircle, shape.KindSquare, shape.KindTriangle,
		shape.KindDiamond, shape.KindHexagon, shape.KindStar,
	}
	shapes := make([]shape.Shape, count)
	for i := range shapes {
		shapes[i] = shape.Shape{
			ID:   fmt.Sprintf("s%d", i),
			Kind: kinds[rng.Intn(len(kinds))],
			Size: 10 + rng.Float64()*90,
			X:    rng.Float64(),
			Y:    rng.Float64(),
			Color: shape.Color{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
			},
			Rotation:        rng.Float64() * 360,
			AppearanceOrder: i,
		}
	}
	// One flagged shape per transient rule family.
	shapes[rng.Intn(count)].Flickering = true
	shapes[rng.Intn(count)].Pulsing = true
	shapes[rng.Intn(count)].ColorShifting = true
	return shapes
}
