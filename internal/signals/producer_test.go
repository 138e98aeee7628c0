package signals

import (
	"math"
	"testing"
)

func TestProduceEmptyLogIsNeutral(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())
	sig := p.Produce(nil)

	if sig.PlayStyle != "steady" {
		t.Errorf("play style = %q, want steady", sig.PlayStyle)
	}
	if sig.Consistency != 0.5 {
		t.Errorf("consistency = %f, want 0.5", sig.Consistency)
	}
	if sig.FastGuessRate != 0 || sig.DeclineSlope != 0 {
		t.Errorf("empty log produced non-zero rates: %+v", sig)
	}
}

func TestFastGuessRate(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())
	rounds := []RoundSample{
		{ResponseMs: 500, TimeLimitMs: 3000},  // under a quarter
		{ResponseMs: 700, TimeLimitMs: 3000},  // under a quarter
		{ResponseMs: 2000, TimeLimitMs: 3000}, // not
		{ResponseMs: 100, TimeLimitMs: 0},     // no limit, excluded
	}
	sig := p.Produce(rounds)
	if want := 2.0 / 3.0; math.Abs(sig.FastGuessRate-want) > 1e-9 {
		t.Fatalf("fast guess rate = %f, want %f", sig.FastGuessRate, want)
	}
}

func TestDeclineSlopeDirection(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())

	fading := []RoundSample{
		{Correct: true, ResponseMs: 1000, TimeLimitMs: 3000},
		{Correct: true, ResponseMs: 1000, TimeLimitMs: 3000},
		{Correct: true, ResponseMs: 1000, TimeLimitMs: 3000},
		{Correct: false, ResponseMs: 1000, TimeLimitMs: 3000},
		{Correct: false, ResponseMs: 1000, TimeLimitMs: 3000},
		{Correct: false, ResponseMs: 1000, TimeLimitMs: 3000},
	}
	if got := p.Produce(fading).DeclineSlope; got >= 0 {
		t.Errorf("fading session slope = %f, want negative", got)
	}

	warming := make([]RoundSample, len(fading))
	for i := range fading {
		warming[i] = fading[len(fading)-1-i]
	}
	if got := p.Produce(warming).DeclineSlope; got <= 0 {
		t.Errorf("warming session slope = %f, want positive", got)
	}

	flat := []RoundSample{
		{Correct: true, ResponseMs: 1000, TimeLimitMs: 3000},
		{Correct: true, ResponseMs: 1000, TimeLimitMs: 3000},
	}
	if got := p.Produce(flat).DeclineSlope; got != 0 {
		t.Errorf("flat session slope = %f, want 0", got)
	}
}

func TestSpeedPreference(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())

	// Answering at one third of the limit leaves two thirds unused.
	rounds := []RoundSample{
		{ResponseMs: 1000, TimeLimitMs: 3000},
		{ResponseMs: 1000, TimeLimitMs: 3000},
	}
	if got := p.Produce(rounds).SpeedPreference; math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("speed preference = %f, want 2/3", got)
	}

	// Overshooting the limit clamps to zero unused time.
	over := []RoundSample{{ResponseMs: 5000, TimeLimitMs: 3000}}
	if got := p.Produce(over).SpeedPreference; got != 0 {
		t.Errorf("overtime speed preference = %f, want 0", got)
	}
}

func TestConsistency(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())

	uniform := []RoundSample{
		{ResponseMs: 1200, TimeLimitMs: 3000},
		{ResponseMs: 1200, TimeLimitMs: 3000},
		{ResponseMs: 1200, TimeLimitMs: 3000},
	}
	if got := p.Produce(uniform).Consistency; got != 1 {
		t.Errorf("uniform consistency = %f, want 1", got)
	}

	wild := []RoundSample{
		{ResponseMs: 100, TimeLimitMs: 3000},
		{ResponseMs: 2900, TimeLimitMs: 3000},
		{ResponseMs: 200, TimeLimitMs: 3000},
		{ResponseMs: 2800, TimeLimitMs: 3000},
	}
	w := p.Produce(wild).Consistency
	if w >= 0.5 {
		t.Errorf("wild consistency = %f, want below 0.5", w)
	}
}

func TestPlayStyleBuckets(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())

	cases := []struct {
		speed, consistency float64
		want               string
	}{
		{0.8, 0.3, "burst"},
		{0.8, 0.7, "steady"}, // fast but consistent is not burst
		{0.2, 0.9, "deliberate"},
		{0.5, 0.5, "steady"},
	}
	for _, tc := range cases {
		if got := p.playStyle(tc.speed, tc.consistency); got != tc.want {
			t.Errorf("playStyle(%f, %f) = %q, want %q", tc.speed, tc.consistency, got, tc.want)
		}
	}
}
