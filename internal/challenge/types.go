package challenge

// #region domain

// Domain is the cognitive domain a challenge exercises.
type Domain string

const (
	DomainPerception Domain = "perception"
	DomainSpatial    Domain = "spatial"
	DomainLogic      Domain = "logic"
	DomainTemporal   Domain = "temporal"
)

// #endregion domain

// #region kind

// Kind identifies one challenge type. Each kind maps to exactly one
// resolution rule in Resolve.
type Kind string

const (
	// Perception
	KindLargest     Kind = "largest"
	KindSmallest    Kind = "smallest"
	KindBrightest   Kind = "brightest"
	KindDarkest     Kind = "darkest"
	KindUniqueColor Kind = "unique_color"
	KindOddOneOut   Kind = "odd_one_out"
	KindFlickering  Kind = "flickering"
	KindPulsing     Kind = "pulsing"

	// Spatial
	KindLeftmost     Kind = "leftmost"
	KindRightmost    Kind = "rightmost"
	KindTopmost      Kind = "topmost"
	KindBottommost   Kind = "bottommost"
	KindCenterMost   Kind = "center_most"
	KindMostIsolated Kind = "most_isolated"
	KindMostCrowded  Kind = "most_crowded"
	KindDiagonal     Kind = "diagonal"

	// Logic
	KindMajorityKind   Kind = "majority_kind"
	KindMinorityKind   Kind = "minority_kind"
	KindUniqueKind     Kind = "unique_kind"
	KindPatternBreaker Kind = "pattern_breaker"
	KindSecondLargest  Kind = "second_largest"
	KindMedianSize     Kind = "median_size"
	KindSecondColor    Kind = "second_color"

	// Temporal
	KindFirstAppeared  Kind = "first_appeared"
	KindLastAppeared   Kind = "last_appeared"
	KindSecondAppeared Kind = "second_appeared"
	KindMiddleAppeared Kind = "middle_appeared"
	KindColorShift     Kind = "color_shift"
)

// #endregion kind

// #region kind-table

// domainOf maps every kind to its cognitive domain.
var domainOf = map[Kind]Domain{
	KindLargest:     DomainPerception,
	KindSmallest:    DomainPerception,
	KindBrightest:   DomainPerception,
	KindDarkest:     DomainPerception,
	KindUniqueColor: DomainPerception,
	KindOddOneOut:   DomainPerception,
	KindFlickering:  DomainPerception,
	KindPulsing:     DomainPerception,

	KindLeftmost:     DomainSpatial,
	KindRightmost:    DomainSpatial,
	KindTopmost:      DomainSpatial,
	KindBottommost:   DomainSpatial,
	KindCenterMost:   DomainSpatial,
	KindMostIsolated: DomainSpatial,
	KindMostCrowded:  DomainSpatial,
	KindDiagonal:     DomainSpatial,

	KindMajorityKind:   DomainLogic,
	KindMinorityKind:   DomainLogic,
	KindUniqueKind:     DomainLogic,
	KindPatternBreaker: DomainLogic,
	KindSecondLargest:  DomainLogic,
	KindMedianSize:     DomainLogic,
	KindSecondColor:    DomainLogic,

	KindFirstAppeared:  DomainTemporal,
	KindLastAppeared:   DomainTemporal,
	KindSecondAppeared: DomainTemporal,
	KindMiddleAppeared: DomainTemporal,
	KindColorShift:     DomainTemporal,
}

// complexityOf is the relative rule complexity per kind, in [0, 1].
// Extremum scans are cheap for the player; frequency and pattern rules
// demand more working memory.
var complexityOf = map[Kind]float64{
	KindLargest:     0.10,
	KindSmallest:    0.10,
	KindBrightest:   0.20,
	KindDarkest:     0.20,
	KindUniqueColor: 0.45,
	KindOddOneOut:   0.50,
	KindFlickering:  0.25,
	KindPulsing:     0.25,

	KindLeftmost:     0.10,
	KindRightmost:    0.10,
	KindTopmost:      0.10,
	KindBottommost:   0.10,
	KindCenterMost:   0.35,
	KindMostIsolated: 0.55,
	KindMostCrowded:  0.60,
	KindDiagonal:     0.65,

	KindMajorityKind:   0.40,
	KindMinorityKind:   0.50,
	KindUniqueKind:     0.45,
	KindPatternBreaker: 0.75,
	KindSecondLargest:  0.55,
	KindMedianSize:     0.80,
	KindSecondColor:    0.70,

	KindFirstAppeared:  0.40,
	KindLastAppeared:   0.30,
	KindSecondAppeared: 0.60,
	KindMiddleAppeared: 0.85,
	KindColorShift:     0.30,
}

// AllKinds returns every challenge kind in declaration order.
func AllKinds() []Kind {
	return []Kind{
		KindLargest, KindSmallest, KindBrightest, KindDarkest,
		KindUniqueColor, KindOddOneOut, KindFlickering, KindPulsing,
		KindLeftmost, KindRightmost, KindTopmost, KindBottommost,
		KindCenterMost, KindMostIsolated, KindMostCrowded, KindDiagonal,
		KindMajorityKind, KindMinorityKind, KindUniqueKind, KindPatternBreaker,
		KindSecondLargest, KindMedianSize, KindSecondColor,
		KindFirstAppeared, KindLastAppeared, KindSecondAppeared,
		KindMiddleAppeared, KindColorShift,
	}
}

// DomainOf returns the cognitive domain for a kind. Unknown kinds report
// the perception domain.
func DomainOf(k Kind) Domain {
	if d, ok := domainOf[k]; ok {
		return d
	}
	return DomainPerception
}

// ComplexityOf returns the rule complexity for a kind in [0, 1].
func ComplexityOf(k Kind) float64 {
	return complexityOf[k]
}

// #endregion kind-table
