package difficulty

// #region genome

// Genome is the tunable parameter set controlling round generation
// difficulty. Every dimension is independently bounded; Clamp enforces
// the bounds after any mutation.
type Genome struct {
	TimePressure    float64 `json:"time_pressure"`
	ShapeCount      float64 `json:"shape_count"`
	DistractorRatio float64 `json:"distractor_ratio"`
	ColorSimilarity float64 `json:"color_similarity"`
	SpatialDensity  float64 `json:"spatial_density"`
	RuleComplexity  float64 `json:"rule_complexity"`
	MemoryLoad      float64 `json:"memory_load"`
	DecayRate       float64 `json:"decay_rate"`
	VisualNoise     float64 `json:"visual_noise"`
}

// DefaultGenome returns the starting difficulty for a fresh player.
func DefaultGenome() Genome {
	return Genome{
		TimePressure:    0.3,
		ShapeCount:      4,
		DistractorRatio: 0.3,
		ColorSimilarity: 0.2,
		SpatialDensity:  0.3,
		RuleComplexity:  0.2,
		MemoryLoad:      0.1,
		DecayRate:       0.1,
		VisualNoise:     0.0,
	}
}

// #endregion genome

// #region bounds

// Bound is the configured [Min, Max] range for one dimension.
type Bound struct {
	Min float64
	Max float64
}

// Bounds holds the configured range per genome dimension.
type Bounds struct {
	TimePressure    Bound
	ShapeCount      Bound
	DistractorRatio Bound
	ColorSimilarity Bound
	SpatialDensity  Bound
	RuleComplexity  Bound
	MemoryLoad      Bound
	DecayRate       Bound
	VisualNoise     Bound
}

// DefaultBounds returns the production dimension ranges.
func DefaultBounds() Bounds {
	unit := Bound{Min: 0, Max: 1}
	return Bounds{
		TimePressure:    unit,
		ShapeCount:      Bound{Min: 3, Max: 12},
		DistractorRatio: Bound{Min: 0, Max: 0.9},
		ColorSimilarity: unit,
		SpatialDensity:  unit,
		RuleComplexity:  unit,
		MemoryLoad:      unit,
		DecayRate:       unit,
		VisualNoise:     unit,
	}
}

// #endregion bounds

// #region dimensions

// dim gives the controller uniform access to one genome dimension.
type dim struct {
	name      string
	get       func(*Genome) float64
	set       func(*Genome, float64)
	bound     func(Bounds) Bound
	deadband  bool // population-like: only moves outside the error deadband
	ratcheted bool // one-way: never drops below its high-water mark
}

var dims = []dim{
	{
		name:  "time_pressure",
		get:   func(g *Genome) float64 { return g.TimePressure },
		set:   func(g *Genome, v float64) { g.TimePressure = v },
		bound: func(b Bounds) Bound { return b.TimePressure },
	},
	{
		name:     "shape_count",
		get:      func(g *Genome) float64 { return g.ShapeCount },
		set:      func(g *Genome, v float64) { g.ShapeCount = v },
		bound:    func(b Bounds) Bound { return b.ShapeCount },
		deadband: true,
	},
	{
		name:      "distractor_ratio",
		get:       func(g *Genome) float64 { return g.DistractorRatio },
		set:       func(g *Genome, v float64) { g.DistractorRatio = v },
		bound:     func(b Bounds) Bound { return b.DistractorRatio },
		deadband:  true,
		ratcheted: true,
	},
	{
		name:  "color_similarity",
		get:   func(g *Genome) float64 { return g.ColorSimilarity },
		set:   func(g *Genome, v float64) { g.ColorSimilarity = v },
		bound: func(b Bounds) Bound { return b.ColorSimilarity },
	},
	{
		name:  "spatial_density",
		get:   func(g *Genome) float64 { return g.SpatialDensity },
		set:   func(g *Genome, v float64) { g.SpatialDensity = v },
		bound: func(b Bounds) Bound { return b.SpatialDensity },
	},
	{
		name:  "rule_complexity",
		get:   func(g *Genome) float64 { return g.RuleComplexity },
		set:   func(g *Genome, v float64) { g.RuleComplexity = v },
		bound: func(b Bounds) Bound { return b.RuleComplexity },
	},
	{
		name:  "memory_load",
		get:   func(g *Genome) float64 { return g.MemoryLoad },
		set:   func(g *Genome, v float64) { g.MemoryLoad = v },
		bound: func(b Bounds) Bound { return b.MemoryLoad },
	},
	{
		name:  "decay_rate",
		get:   func(g *Genome) float64 { return g.DecayRate },
		set:   func(g *Genome, v float64) { g.DecayRate = v },
		bound: func(b Bounds) Bound { return b.DecayRate },
	},
	{
		name:      "visual_noise",
		get:       func(g *Genome) float64 { return g.VisualNoise },
		set:       func(g *Genome, v float64) { g.VisualNoise = v },
		bound:     func(b Bounds) Bound { return b.VisualNoise },
		ratcheted: true,
	},
}

// Clamp forces every dimension into its configured bound.
func (g *Genome) Clamp(bounds Bounds) {
	for _, d := range dims {
		b := d.bound(bounds)
		v := d.get(g)
		if v < b.Min {
			v = b.Min
		}
		if v > b.Max {
			v = b.Max
		}
		d.set(g, v)
	}
}

// #endregion dimensions
