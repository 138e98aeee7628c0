package signals

// #region imports
import (
	"math"

	"github.com/sayanm085/puzzle-mind/internal/mind"
)

// #endregion

// #region types

// RoundSample is one round's outcome as seen by the signal producer.
type RoundSample struct {
	Correct     bool
	ResponseMs  float64
	TimeLimitMs float64
}

// ProducerConfig holds the signal-derivation constants.
type ProducerConfig struct {
	FastGuessFraction float64 // response under this fraction of the limit counts as a guess
	BurstSpeed        float64 // speed preference above this suggests burst play
	DeliberateSpeed   float64 // speed preference below this suggests deliberate play
}

// DefaultProducerConfig returns the production signal constants.
func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		FastGuessFraction: 0.25,
		BurstSpeed:        0.7,
		DeliberateSpeed:   0.3,
	}
}

// #endregion types

// #region producer

// Producer derives behavioral signals from a session's round log.
type Producer struct {
	config ProducerConfig
}

// NewProducer creates a Producer.
func NewProducer(config ProducerConfig) *Producer {
	return &Producer{config: config}
}

// Produce computes all signals from the recorded rounds. An empty log
// yields neutral signals.
func (p *Producer) Produce(rounds []RoundSample) mind.Signals {
	if len(rounds) == 0 {
		return mind.Signals{PlayStyle: "steady", Consistency: 0.5}
	}

	speed := p.speedPreference(rounds)
	consistency := p.consistency(rounds)

	return mind.Signals{
		FastGuessRate:   p.fastGuessRate(rounds),
		DeclineSlope:    p.declineSlope(rounds),
		SpeedPreference: speed,
		Consistency:     consistency,
		PlayStyle:       p.playStyle(speed, consistency),
	}
}

// #endregion producer

// #region fast-guess

// fastGuessRate is the fraction of answers given in under a quarter of
// the time limit.
func (p *Producer) fastGuessRate(rounds []RoundSample) float64 {
	fast := 0
	counted := 0
	for _, r := range rounds {
		if r.TimeLimitMs <= 0 {
			continue
		}
		counted++
		if r.ResponseMs < r.TimeLimitMs*p.config.FastGuessFraction {
			fast++
		}
	}
	if counted == 0 {
		return 0
	}
	return float64(fast) / float64(counted)
}

// #endregion fast-guess

// #region decline

// declineSlope is the least-squares slope of correctness over round index:
// accuracy change per round within the session. Negative values indicate
// fading performance toward the end of the session.
func (p *Producer) declineSlope(rounds []RoundSample) float64 {
	n := float64(len(rounds))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, r := range rounds {
		x := float64(i)
		y := 0.0
		if r.Correct {
			y = 1.0
		}
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// #endregion decline

// #region speed-consistency

// speedPreference is the mean unused fraction of the time limit.
func (p *Producer) speedPreference(rounds []RoundSample) float64 {
	var sum float64
	counted := 0
	for _, r := range rounds {
		if r.TimeLimitMs <= 0 {
			continue
		}
		counted++
		ratio := r.ResponseMs / r.TimeLimitMs
		if ratio > 1 {
			ratio = 1
		}
		sum += 1 - ratio
	}
	if counted == 0 {
		return 0.5
	}
	return sum / float64(counted)
}

// consistency is one minus the coefficient of variation of response
// times, clamped to [0, 1].
func (p *Producer) consistency(rounds []RoundSample) float64 {
	if len(rounds) < 2 {
		return 0.5
	}
	var sum float64
	for _, r := range rounds {
		sum += r.ResponseMs
	}
	mean := sum / float64(len(rounds))
	if mean == 0 {
		return 0.5
	}
	var sqSum float64
	for _, r := range rounds {
		d := r.ResponseMs - mean
		sqSum += d * d
	}
	cv := math.Sqrt(sqSum/float64(len(rounds))) / mean
	if cv > 1 {
		cv = 1
	}
	return 1 - cv
}

// playStyle buckets speed and consistency into a coarse label.
func (p *Producer) playStyle(speed, consistency float64) string {
	switch {
	case speed >= p.config.BurstSpeed && consistency < 0.5:
		return "burst"
	case speed <= p.config.DeliberateSpeed:
		return "deliberate"
	default:
		return "steady"
	}
}

// #endregion speed-consistency
