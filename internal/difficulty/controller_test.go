package difficulty

import (
	"math/rand"
	"testing"

	"github.com/sayanm085/puzzle-mind/internal/challenge"
)

func boundsViolations(t *testing.T, g Genome, b Bounds) {
	t.Helper()
	for _, d := range dims {
		bound := d.bound(b)
		v := d.get(&g)
		if v < bound.Min || v > bound.Max {
			t.Errorf("dimension %s = %f outside [%f, %f]", d.name, v, bound.Min, bound.Max)
		}
	}
}

func TestControllerRaisesDifficultyOnSuccess(t *testing.T) {
	c := NewController(DefaultGenome(), DefaultControllerConfig())
	start := c.Genome()

	var final Genome
	for i := 0; i < 20; i++ {
		c.Record(true)
		final = c.Adapt()
	}

	if final.ShapeCount <= start.ShapeCount {
		t.Errorf("shape count should rise under sustained success: %f -> %f", start.ShapeCount, final.ShapeCount)
	}
	if final.TimePressure <= start.TimePressure {
		t.Errorf("time pressure should rise under sustained success: %f -> %f", start.TimePressure, final.TimePressure)
	}
	boundsViolations(t, final, DefaultControllerConfig().Bounds)
}

func TestControllerLowersDifficultyOnFailure(t *testing.T) {
	c := NewController(DefaultGenome(), DefaultControllerConfig())
	start := c.Genome()

	var final Genome
	for i := 0; i < 20; i++ {
		c.Record(false)
		final = c.Adapt()
	}

	if final.ShapeCount >= start.ShapeCount {
		t.Errorf("shape count should fall under sustained failure: %f -> %f", start.ShapeCount, final.ShapeCount)
	}
	boundsViolations(t, final, DefaultControllerConfig().Bounds)
}

func TestControllerStaysBoundedUnderLongRuns(t *testing.T) {
	cfg := DefaultControllerConfig()
	c := NewController(DefaultGenome(), cfg)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		c.Record(rng.Float64() < 0.9)
		boundsViolations(t, c.Adapt(), cfg.Bounds)
	}
}

func TestControllerDeadbandHoldsPopulationDims(t *testing.T) {
	c := NewController(DefaultGenome(), DefaultControllerConfig())
	start := c.Genome()

	// 7 of 10 correct: error 0 at the 0.70 setpoint, but also check a
	// small offset stays inside the 0.15 deadband.
	outcomes := []bool{true, true, true, true, true, true, true, false, false, false}
	for _, ok := range outcomes {
		c.Record(ok)
	}
	g := c.Adapt()
	if g.ShapeCount != start.ShapeCount {
		t.Errorf("shape count moved inside deadband: %f -> %f", start.ShapeCount, g.ShapeCount)
	}
	if g.DistractorRatio != start.DistractorRatio {
		t.Errorf("distractor ratio moved inside deadband: %f -> %f", start.DistractorRatio, g.DistractorRatio)
	}
	// Non-deadband dims still move at zero error? Zero error means zero
	// movement for every dim.
	if g.TimePressure != start.TimePressure {
		t.Errorf("time pressure moved at zero error: %f -> %f", start.TimePressure, g.TimePressure)
	}
}

func TestControllerAdaptWithoutOutcomesIsNoop(t *testing.T) {
	c := NewController(DefaultGenome(), DefaultControllerConfig())
	if got := c.Adapt(); got != DefaultGenome() {
		t.Fatalf("adapt with no outcomes changed genome: %+v", got)
	}
}

func TestControllerRatchetHoldsNoiseFloor(t *testing.T) {
	c := NewController(DefaultGenome(), DefaultControllerConfig())

	// Sustained success arms the ratchet and pushes visual noise up.
	for i := 0; i < 20; i++ {
		c.Record(true)
		c.Adapt()
	}
	raised := c.Genome().VisualNoise
	if raised <= 0 {
		t.Fatalf("visual noise should have risen, got %f", raised)
	}

	// A failure run would normally pull noise back down; the ratchet
	// floor must hold it at the high-water mark.
	for i := 0; i < 20; i++ {
		c.Record(false)
		c.Adapt()
	}
	if got := c.Genome().VisualNoise; got < raised {
		t.Fatalf("visual noise dropped below ratchet floor: %f < %f", got, raised)
	}
	// Non-ratcheted dims did fall.
	if c.Genome().TimePressure >= 0.3 {
		t.Errorf("time pressure should fall under failure: %f", c.Genome().TimePressure)
	}
}

func TestClampRepairsOutOfRangeGenome(t *testing.T) {
	g := Genome{ShapeCount: 99, DistractorRatio: -1, VisualNoise: 3}
	g.Clamp(DefaultBounds())
	if g.ShapeCount != 12 {
		t.Errorf("shape count = %f, want 12", g.ShapeCount)
	}
	if g.DistractorRatio != 0 {
		t.Errorf("distractor ratio = %f, want 0", g.DistractorRatio)
	}
	if g.VisualNoise != 1 {
		t.Errorf("visual noise = %f, want 1", g.VisualNoise)
	}
}

func TestPickerDeterministicPerSeed(t *testing.T) {
	stats := map[challenge.Kind]KindStats{
		challenge.KindLargest: {Attempts: 30, Accuracy: 0.9},
	}

	a := NewPicker(DefaultPickerConfig(), rand.New(rand.NewSource(42)))
	b := NewPicker(DefaultPickerConfig(), rand.New(rand.NewSource(42)))
	for i := 0; i < 50; i++ {
		if ka, kb := a.Pick(stats), b.Pick(stats); ka != kb {
			t.Fatalf("draw %d diverged: %s vs %s", i, ka, kb)
		}
	}
}

func TestPickerBoostsStrugglingKinds(t *testing.T) {
	// Every kind well practiced; one kind with terrible accuracy.
	stats := make(map[challenge.Kind]KindStats, len(challenge.AllKinds()))
	for _, k := range challenge.AllKinds() {
		stats[k] = KindStats{Attempts: 50, Accuracy: 0.9}
	}
	stats[challenge.KindMedianSize] = KindStats{Attempts: 50, Accuracy: 0.2}

	p := NewPicker(DefaultPickerConfig(), rand.New(rand.NewSource(1)))
	counts := make(map[challenge.Kind]int)
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[p.Pick(stats)]++
	}

	baseline := float64(draws) / float64(len(challenge.AllKinds()))
	boosted := float64(counts[challenge.KindMedianSize])
	// 1.5x boost over a uniform field; allow sampling slack.
	if boosted < baseline*1.2 {
		t.Fatalf("struggling kind drawn %0.f times, baseline %0.f; boost not visible", boosted, baseline)
	}
}

func TestPickerBoostsNovelKinds(t *testing.T) {
	stats := make(map[challenge.Kind]KindStats, len(challenge.AllKinds()))
	for _, k := range challenge.AllKinds() {
		stats[k] = KindStats{Attempts: 50, Accuracy: 0.9}
	}
	// Never attempted: absent from the map entirely.
	delete(stats, challenge.KindDiagonal)

	p := NewPicker(DefaultPickerConfig(), rand.New(rand.NewSource(2)))
	counts := make(map[challenge.Kind]int)
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[p.Pick(stats)]++
	}

	baseline := float64(draws) / float64(len(challenge.AllKinds()))
	if float64(counts[challenge.KindDiagonal]) < baseline*1.1 {
		t.Fatalf("novel kind drawn %d times, baseline %0.f; boost not visible", counts[challenge.KindDiagonal], baseline)
	}
}
