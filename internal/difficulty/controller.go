package difficulty

// #region imports
import "math"

// #endregion

// #region config

// ControllerConfig holds the feedback-loop constants.
type ControllerConfig struct {
	TargetSuccessRate float64 // setpoint for the proportional loop
	Gain              float64 // per-step movement as a fraction of (error x span)
	Deadband          float64 // |error| below which population dims hold still
	HistoryCap        int     // rolling outcome window size
	SuccessWindow     int     // most recent outcomes used for the success rate
	RatchetAccuracy   float64 // sustained accuracy that arms the ratchet
	RatchetMinRounds  int     // outcomes required before the ratchet can arm
	Bounds            Bounds
}

// DefaultControllerConfig returns the production controller constants.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		TargetSuccessRate: 0.70,
		Gain:              0.5,
		Deadband:          0.15,
		HistoryCap:        20,
		SuccessWindow:     10,
		RatchetAccuracy:   0.85,
		RatchetMinRounds:  15,
		Bounds:            DefaultBounds(),
	}
}

// #endregion config

// #region controller

// Controller is the closed-loop difficulty tuner for one session. It holds
// the current genome and a bounded rolling window of round outcomes; one
// Controller per active session, never shared.
type Controller struct {
	config   ControllerConfig
	genome   Genome
	outcomes []bool // rolling, most recent last, capped at HistoryCap

	// High-water marks for ratcheted dimensions, keyed by dim name.
	// Populated only once the ratchet has armed.
	highWater map[string]float64
}

// NewController creates a controller starting from the given genome.
func NewController(genome Genome, config ControllerConfig) *Controller {
	g := genome
	g.Clamp(config.Bounds)
	return &Controller{
		config:    config,
		genome:    g,
		highWater: make(map[string]float64),
	}
}

// Genome returns the current difficulty vector.
func (c *Controller) Genome() Genome { return c.genome }

// Record appends one round outcome to the rolling window.
func (c *Controller) Record(correct bool) {
	c.outcomes = append(c.outcomes, correct)
	if len(c.outcomes) > c.config.HistoryCap {
		c.outcomes = c.outcomes[len(c.outcomes)-c.config.HistoryCap:]
	}
}

// #endregion controller

// #region adapt

// Adapt runs one proportional feedback step and returns the new genome.
// error = recentSuccessRate - target; each dimension moves by
// error x gain x span, then clamps to its bound. Population-like
// dimensions hold still inside the deadband to avoid oscillating on
// noisy single-round feedback. Ratcheted dimensions never drop below
// their high-water mark once sustained high accuracy has raised them.
func (c *Controller) Adapt() Genome {
	if len(c.outcomes) == 0 {
		return c.genome
	}

	err := c.successRate(c.config.SuccessWindow) - c.config.TargetSuccessRate
	ratchetArmed := c.ratchetArmed()

	for _, d := range dims {
		if d.deadband && math.Abs(err) < c.config.Deadband {
			continue
		}

		b := d.bound(c.config.Bounds)
		span := b.Max - b.Min
		v := d.get(&c.genome) + err*c.config.Gain*span

		if v < b.Min {
			v = b.Min
		}
		if v > b.Max {
			v = b.Max
		}

		if d.ratcheted {
			if ratchetArmed && v > c.highWater[d.name] {
				c.highWater[d.name] = v
			}
			if floor, ok := c.highWater[d.name]; ok && v < floor {
				v = floor
			}
		}

		d.set(&c.genome, v)
	}

	return c.genome
}

// ratchetArmed reports whether sustained high accuracy over enough rounds
// has armed the one-way floor on noise and distractor dimensions.
func (c *Controller) ratchetArmed() bool {
	if len(c.outcomes) < c.config.RatchetMinRounds {
		return false
	}
	return c.successRate(len(c.outcomes)) >= c.config.RatchetAccuracy
}

// successRate returns the correct fraction of the most recent n outcomes,
// 0 when the window is empty.
func (c *Controller) successRate(n int) float64 {
	if len(c.outcomes) == 0 {
		return 0
	}
	if n > len(c.outcomes) {
		n = len(c.outcomes)
	}
	window := c.outcomes[len(c.outcomes)-n:]
	correct := 0
	for _, ok := range window {
		if ok {
			correct++
		}
	}
	return float64(correct) / float64(len(window))
}

// #endregion adapt
