package shape

import "math"

// #region kind

// Kind is the geometric class of a shape.
type Kind string

const (
	KindCircle   Kind = "circle"
	KindSquare   Kind = "square"
	KindTriangle Kind = "triangle"
	KindDiamond  Kind = "diamond"
	KindHexagon  Kind = "hexagon"
	KindStar     Kind = "star"
)

// #endregion kind

// #region color

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Luminance returns perceptual luminance in [0, 255] using the
// standard 0.299/0.587/0.114 channel weighting.
func (c Color) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// #endregion color

// #region shape

// Shape is one on-screen candidate for a round. Positions are normalized to
// the unit square; the canvas center is (0.5, 0.5). A Shape is immutable for
// the duration of its round.
type Shape struct {
	ID              string  `json:"id"`
	Kind            Kind    `json:"kind"`
	Size            float64 `json:"size"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Color           Color   `json:"color"`
	Rotation        float64 `json:"rotation"`
	AppearanceOrder int     `json:"appearance_order"`

	// Transient per-round flags set by the shape generator.
	Flickering    bool `json:"flickering,omitempty"`
	Pulsing       bool `json:"pulsing,omitempty"`
	ColorShifting bool `json:"color_shifting,omitempty"`
}

// DistanceTo returns the Euclidean distance between two shape centers.
func (s Shape) DistanceTo(o Shape) float64 {
	dx := s.X - o.X
	dy := s.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceToCenter returns the distance from the shape to the canvas center.
func (s Shape) DistanceToCenter() float64 {
	dx := s.X - 0.5
	dy := s.Y - 0.5
	return math.Sqrt(dx*dx + dy*dy)
}

// DiagonalDistance returns the distance to the nearest unit-square diagonal
// (y = x or y = 1 - x).
func (s Shape) DiagonalDistance() float64 {
	main := math.Abs(s.X-s.Y) / math.Sqrt2
	anti := math.Abs(s.X+s.Y-1) / math.Sqrt2
	return math.Min(main, anti)
}

// ColorKey returns a stable string key for frequency tables keyed by color.
func (s Shape) ColorKey() string {
	const hex = "0123456789abcdef"
	b := []byte{
		hex[s.Color.R>>4], hex[s.Color.R&0xf],
		hex[s.Color.G>>4], hex[s.Color.G&0xf],
		hex[s.Color.B>>4], hex[s.Color.B&0xf],
	}
	return string(b)
}

// #endregion shape
