package difficulty

// #region imports
import (
	"math/rand"

	"github.com/sayanm085/puzzle-mind/internal/challenge"
)

// #endregion

// #region kind-stats

// KindStats is the player's history with one challenge kind.
type KindStats struct {
	Attempts int     `json:"attempts"`
	Accuracy float64 `json:"accuracy"`
}

// #endregion kind-stats

// #region picker-config

// PickerConfig holds the selection-weight constants.
type PickerConfig struct {
	StruggleAccuracy float64 // per-kind accuracy below which the kind is boosted
	StruggleBoost    float64
	NoveltyAttempts  int // attempt count below which the kind is boosted
	NoveltyBoost     float64
	JitterLow        float64 // uniform jitter range applied to every weight
	JitterHigh       float64
}

// DefaultPickerConfig returns the production selection constants.
func DefaultPickerConfig() PickerConfig {
	return PickerConfig{
		StruggleAccuracy: 0.5,
		StruggleBoost:    1.5,
		NoveltyAttempts:  5,
		NoveltyBoost:     1.3,
		JitterLow:        0.9,
		JitterHigh:       1.1,
	}
}

// #endregion picker-config

// #region picker

// Picker selects the next challenge kind by weighted random sampling.
// The random source is injected so tests can supply a fixed seed.
type Picker struct {
	config PickerConfig
	rng    *rand.Rand
}

// NewPicker creates a picker backed by the given random source.
func NewPicker(config PickerConfig, rng *rand.Rand) *Picker {
	return &Picker{config: config, rng: rng}
}

// Pick draws one challenge kind via cumulative-weight roulette.
// weight = struggle factor x novelty factor x uniform jitter, where kinds
// the player struggles with (accuracy < 0.5) and kinds the player has
// rarely seen (attempts < 5) are boosted. Kinds absent from stats count
// as never attempted.
func (p *Picker) Pick(stats map[challenge.Kind]KindStats) challenge.Kind {
	kinds := challenge.AllKinds()

	weights := make([]float64, len(kinds))
	var total float64
	for i, k := range kinds {
		w := 1.0
		st := stats[k]
		if st.Attempts > 0 && st.Accuracy < p.config.StruggleAccuracy {
			w *= p.config.StruggleBoost
		}
		if st.Attempts < p.config.NoveltyAttempts {
			w *= p.config.NoveltyBoost
		}
		w *= p.config.JitterLow + p.rng.Float64()*(p.config.JitterHigh-p.config.JitterLow)
		weights[i] = w
		total += w
	}

	draw := p.rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if draw < cum {
			return kinds[i]
		}
	}
	return kinds[len(kinds)-1]
}

// #endregion picker
