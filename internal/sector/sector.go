package sector

// #region imports
import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sayanm085/puzzle-mind/internal/difficulty"
)

// #endregion

// #region types

// GenomeOverlay overrides selected difficulty dimensions for a chamber.
// Zero-valued fields leave the base genome untouched.
type GenomeOverlay struct {
	TimePressure    float64 `yaml:"time_pressure"`
	ShapeCount      float64 `yaml:"shape_count"`
	DistractorRatio float64 `yaml:"distractor_ratio"`
	ColorSimilarity float64 `yaml:"color_similarity"`
	SpatialDensity  float64 `yaml:"spatial_density"`
	RuleComplexity  float64 `yaml:"rule_complexity"`
	MemoryLoad      float64 `yaml:"memory_load"`
	DecayRate       float64 `yaml:"decay_rate"`
	VisualNoise     float64 `yaml:"visual_noise"`
}

// Chamber is one challenge set inside a sector. Chambers gate
// progression on a minimum evolution stage.
type Chamber struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	MinStage int           `yaml:"min_stage"`
	Rounds   int           `yaml:"rounds"`
	Genome   GenomeOverlay `yaml:"genome"`
}

// Sector is a world-map grouping of chambers.
type Sector struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Chambers []Chamber `yaml:"chambers"`
}

// #endregion types

// #region catalog

//go:embed chambers.yaml
var chambersYAML []byte

type catalogFile struct {
	Sectors []Sector `yaml:"sectors"`
}

var catalog = mustLoadCatalog()

func mustLoadCatalog() []Sector {
	var f catalogFile
	if err := yaml.Unmarshal(chambersYAML, &f); err != nil {
		panic(fmt.Sprintf("load embedded chamber catalog: %v", err))
	}
	return f.Sectors
}

// Sectors returns the world catalog in declaration order.
func Sectors() []Sector {
	return catalog
}

// Find returns a sector by id.
func Find(id string) (Sector, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Sector{}, false
}

// #endregion catalog

// #region unlock-progress

// Unlocked returns the chambers of a sector available at the given
// evolution stage.
func (s Sector) Unlocked(stage int) []Chamber {
	var out []Chamber
	for _, c := range s.Chambers {
		if stage >= c.MinStage {
			out = append(out, c)
		}
	}
	return out
}

// Progress returns the unlocked fraction of a sector's chambers in
// [0, 1]. A sector with no chambers reports 0 rather than dividing
// by zero.
func (s Sector) Progress(stage int) float64 {
	if len(s.Chambers) == 0 {
		return 0
	}
	return float64(len(s.Unlocked(stage))) / float64(len(s.Chambers))
}

// #endregion unlock-progress

// #region genome

// ApplyTo overlays the chamber's non-zero dimensions onto a base genome
// and clamps the result.
func (c Chamber) ApplyTo(base difficulty.Genome, bounds difficulty.Bounds) difficulty.Genome {
	g := base
	o := c.Genome
	if o.TimePressure != 0 {
		g.TimePressure = o.TimePressure
	}
	if o.ShapeCount != 0 {
		g.ShapeCount = o.ShapeCount
	}
	if o.DistractorRatio != 0 {
		g.DistractorRatio = o.DistractorRatio
	}
	if o.ColorSimilarity != 0 {
		g.ColorSimilarity = o.ColorSimilarity
	}
	if o.SpatialDensity != 0 {
		g.SpatialDensity = o.SpatialDensity
	}
	if o.RuleComplexity != 0 {
		g.RuleComplexity = o.RuleComplexity
	}
	if o.MemoryLoad != 0 {
		g.MemoryLoad = o.MemoryLoad
	}
	if o.DecayRate != 0 {
		g.DecayRate = o.DecayRate
	}
	if o.VisualNoise != 0 {
		g.VisualNoise = o.VisualNoise
	}
	g.Clamp(bounds)
	return g
}

// #endregion genome
