package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sayanm085/puzzle-mind/internal/challenge"
	"github.com/sayanm085/puzzle-mind/internal/shape"
)

// #endregion

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a
// recorded session replayed deterministically through the full pipeline.
type Fixture struct {
	Description string         `json:"description"`
	PlayerID    string         `json:"player_id"`
	Sector      string         `json:"sector"`
	Seed        int64          `json:"seed"`
	Rounds      []FixtureRound `json:"rounds"`
}

// FixtureRound is one recorded round.
type FixtureRound struct {
	Kind        challenge.Kind `json:"kind"`
	Shapes      []shape.Shape  `json:"shapes"`
	PickedID    string         `json:"picked_id"`
	ResponseMs  float64        `json:"response_ms"`
	TimeLimitMs float64        `json:"time_limit_ms"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if len(f.Rounds) == 0 {
		return Fixture{}, fmt.Errorf("fixture %s has no rounds", path)
	}
	for i, r := range f.Rounds {
		if len(r.Shapes) == 0 {
			return Fixture{}, fmt.Errorf("fixture round %d has no shapes", i)
		}
	}
	return f, nil
}

// #endregion load
