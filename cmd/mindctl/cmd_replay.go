package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sayanm085/puzzle-mind/internal/engine"
	"github.com/sayanm085/puzzle-mind/internal/mind"
	"github.com/sayanm085/puzzle-mind/internal/replay"
)

var replayFlags struct {
	fixturePath string
	verboseOut  bool
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded session fixture through the full pipeline",
	RunE:  runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.StringVarP(&replayFlags.fixturePath, "fixture", "f", "", "fixture file path (required)")
	f.BoolVar(&replayFlags.verboseOut, "rounds", false, "print per-round outcomes")

	_ = replayCmd.MarkFlagRequired("fixture")
}

func runReplay(cmd *cobra.Command, _ []string) error {
	fixture, err := replay.LoadFixture(replayFlags.fixturePath)
	if err != nil {
		return err
	}

	model := mind.DefaultModel(fixture.PlayerID)
	result, err := replay.Replay(model, fixture, engine.DefaultConfig(), time.Now().UTC())
	if err != nil {
		return err
	}

	if replayFlags.verboseOut {
		for _, r := range result.Rounds {
			status := "miss"
			if r.Correct {
				status = "hit"
			}
			fmt.Printf("round %2d  %-16s  target=%s  %s  +%d\n",
				r.Index, r.Kind, r.TargetID, status, r.Score)
		}
	}

	fmt.Printf("replayed %d rounds  accuracy=%.2f  stage=%d  shape_count=%.1f\n",
		len(result.Rounds), result.Summary.Accuracy, result.Model.EvolutionStage,
		result.FinalGenome.ShapeCount)

	if len(result.InvariantFailures) > 0 {
		fmt.Printf("%d invariant failures:\n", len(result.InvariantFailures))
		for _, f := range result.InvariantFailures {
			fmt.Printf("  %s\n", f)
		}
		return fmt.Errorf("replay violated %d invariants", len(result.InvariantFailures))
	}
	fmt.Println("all invariants held")
	return nil
}
