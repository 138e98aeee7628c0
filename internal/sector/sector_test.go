package sector

import (
	"testing"

	"github.com/sayanm085/puzzle-mind/internal/difficulty"
)

func TestCatalogCoversAllDomains(t *testing.T) {
	want := []string{"perception", "spatial", "logic", "temporal"}
	for _, id := range want {
		s, ok := Find(id)
		if !ok {
			t.Errorf("sector %s missing from catalog", id)
			continue
		}
		if len(s.Chambers) == 0 {
			t.Errorf("sector %s has no chambers", id)
		}
		for _, c := range s.Chambers {
			if c.Rounds <= 0 {
				t.Errorf("chamber %s has no rounds", c.ID)
			}
		}
	}
	if _, ok := Find("dreamscape"); ok {
		t.Error("unknown sector id should not resolve")
	}
}

func TestUnlockedGatesOnStage(t *testing.T) {
	s, ok := Find("spatial")
	if !ok {
		t.Fatal("spatial sector missing")
	}

	if got := len(s.Unlocked(0)); got != 1 {
		t.Errorf("stage 0 unlocks %d chambers, want 1", got)
	}
	if got := len(s.Unlocked(2)); got != 2 {
		t.Errorf("stage 2 unlocks %d chambers, want 2", got)
	}
	if got := len(s.Unlocked(5)); got != len(s.Chambers) {
		t.Errorf("stage 5 unlocks %d chambers, want all %d", got, len(s.Chambers))
	}
}

func TestProgress(t *testing.T) {
	s, ok := Find("spatial")
	if !ok {
		t.Fatal("spatial sector missing")
	}
	if got := s.Progress(5); got != 1 {
		t.Errorf("max-stage progress = %f, want 1", got)
	}
	if got := s.Progress(0); got <= 0 || got >= 1 {
		t.Errorf("stage-0 progress = %f, want partial", got)
	}
	if got := (Sector{}).Progress(3); got != 0 {
		t.Errorf("empty sector progress = %f, want 0", got)
	}
}

func TestApplyToOverlaysAndClamps(t *testing.T) {
	base := difficulty.DefaultGenome()
	c := Chamber{Genome: GenomeOverlay{ShapeCount: 99, RuleComplexity: 0.7}}

	g := c.ApplyTo(base, difficulty.DefaultBounds())

	if g.ShapeCount != 12 {
		t.Errorf("shape count = %f, want clamped to 12", g.ShapeCount)
	}
	if g.RuleComplexity != 0.7 {
		t.Errorf("rule complexity = %f, want 0.7", g.RuleComplexity)
	}
	// Zero overlay fields keep the base values.
	if g.TimePressure != base.TimePressure {
		t.Errorf("time pressure = %f, want base %f", g.TimePressure, base.TimePressure)
	}
	if g.MemoryLoad != base.MemoryLoad {
		t.Errorf("memory load = %f, want base %f", g.MemoryLoad, base.MemoryLoad)
	}
}
