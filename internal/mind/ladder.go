package mind

// #region imports
import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// #endregion

// #region ladder

//go:embed ladder.yaml
var ladderYAML []byte

// StageThreshold is one rung of the evolution ladder.
type StageThreshold struct {
	Stage       int     `yaml:"stage"`
	MinAvgScore float64 `yaml:"min_avg_score"`
	MinSessions int     `yaml:"min_sessions"`
}

type ladderFile struct {
	Stages []StageThreshold `yaml:"stages"`
}

// ladder holds the embedded thresholds sorted highest stage first.
var ladder = mustLoadLadder()

func mustLoadLadder() []StageThreshold {
	var f ladderFile
	if err := yaml.Unmarshal(ladderYAML, &f); err != nil {
		panic(fmt.Sprintf("load embedded ladder: %v", err))
	}
	sort.Slice(f.Stages, func(i, j int) bool { return f.Stages[i].Stage > f.Stages[j].Stage })
	return f.Stages
}

// EvolutionStageFor returns the highest stage whose score and session
// thresholds are both met. The result never regresses below prev.
func EvolutionStageFor(avgScore float64, totalSessions, prev int) int {
	for _, t := range ladder {
		if avgScore >= t.MinAvgScore && totalSessions >= t.MinSessions {
			if t.Stage < prev {
				return prev
			}
			return t.Stage
		}
	}
	return prev
}

// #endregion ladder
