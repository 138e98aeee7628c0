package challenge

// #region imports
import (
	"sort"

	"github.com/sayanm085/puzzle-mind/internal/shape"
)

// #endregion

// #region resolve

// Resolve returns the single correct shape for the given challenge kind.
// Pure and deterministic: identical inputs always return the identical shape,
// with ties broken by iteration order. When a rule cannot be evaluated (a
// temporal flag absent from the set, fewer shapes than the rule's rank) the
// resolver degrades to a defined fallback rather than failing; callers must
// still pass a non-empty set.
func Resolve(shapes []shape.Shape, kind Kind) shape.Shape {
	if len(shapes) == 0 {
		return shape.Shape{}
	}
	if len(shapes) == 1 {
		return shapes[0]
	}

	switch kind {
	// Extremum rules: one linear scan with a total order.
	case KindLargest:
		return maxBy(shapes, func(s shape.Shape) float64 { return s.Size })
	case KindSmallest:
		return minBy(shapes, func(s shape.Shape) float64 { return s.Size })
	case KindBrightest:
		return maxBy(shapes, func(s shape.Shape) float64 { return s.Color.Luminance() })
	case KindDarkest:
		return minBy(shapes, func(s shape.Shape) float64 { return s.Color.Luminance() })
	case KindLeftmost:
		return minBy(shapes, func(s shape.Shape) float64 { return s.X })
	case KindRightmost:
		return maxBy(shapes, func(s shape.Shape) float64 { return s.X })
	case KindTopmost:
		return minBy(shapes, func(s shape.Shape) float64 { return s.Y })
	case KindBottommost:
		return maxBy(shapes, func(s shape.Shape) float64 { return s.Y })
	case KindFirstAppeared:
		return minBy(shapes, func(s shape.Shape) float64 { return float64(s.AppearanceOrder) })
	case KindLastAppeared:
		return maxBy(shapes, func(s shape.Shape) float64 { return float64(s.AppearanceOrder) })

	// Distance rules: scalar per shape, then extremum.
	case KindCenterMost:
		return minBy(shapes, shape.Shape.DistanceToCenter)
	case KindMostIsolated:
		return maxBy(shapes, meanPairwiseDistance(shapes))
	case KindMostCrowded:
		return minBy(shapes, meanPairwiseDistance(shapes))
	case KindDiagonal:
		return minBy(shapes, shape.Shape.DiagonalDistance)

	// Frequency rules: attribute frequency table, then singleton/mode/rank.
	case KindUniqueColor:
		return singletonBy(shapes, colorKey)
	case KindUniqueKind:
		return singletonBy(shapes, kindKey)
	case KindOddOneOut:
		return rarestBy(shapes, kindKey)
	case KindMajorityKind:
		return modeBy(shapes, kindKey)
	case KindMinorityKind:
		return rarestBy(shapes, kindKey)
	case KindPatternBreaker:
		return rarestBy(shapes, func(s shape.Shape) string { return kindKey(s) + "/" + colorKey(s) })
	case KindSecondColor:
		return rankedBy(shapes, colorKey, 1)

	// Order-statistic rules over size or appearance order.
	case KindSecondLargest:
		return nthBySorted(shapes, func(a, b shape.Shape) bool { return a.Size > b.Size }, 1)
	case KindMedianSize:
		return nthBySorted(shapes, func(a, b shape.Shape) bool { return a.Size < b.Size }, len(shapes)/2)
	case KindSecondAppeared:
		return nthBySorted(shapes, func(a, b shape.Shape) bool { return a.AppearanceOrder < b.AppearanceOrder }, 1)
	case KindMiddleAppeared:
		return nthBySorted(shapes, func(a, b shape.Shape) bool { return a.AppearanceOrder < b.AppearanceOrder }, len(shapes)/2)

	// Temporal-flag rules: first flagged shape, largest as fallback.
	case KindFlickering:
		return flagged(shapes, func(s shape.Shape) bool { return s.Flickering })
	case KindPulsing:
		return flagged(shapes, func(s shape.Shape) bool { return s.Pulsing })
	case KindColorShift:
		return flagged(shapes, func(s shape.Shape) bool { return s.ColorShifting })
	}

	// Unknown kind: degrade to the first shape.
	return shapes[0]
}

// #endregion resolve

// #region extremum-helpers

func maxBy(shapes []shape.Shape, score func(shape.Shape) float64) shape.Shape {
	best := shapes[0]
	bestScore := score(best)
	for _, s := range shapes[1:] {
		if v := score(s); v > bestScore {
			best, bestScore = s, v
		}
	}
	return best
}

func minBy(shapes []shape.Shape, score func(shape.Shape) float64) shape.Shape {
	best := shapes[0]
	bestScore := score(best)
	for _, s := range shapes[1:] {
		if v := score(s); v < bestScore {
			best, bestScore = s, v
		}
	}
	return best
}

// meanPairwiseDistance returns a scorer yielding each shape's mean distance
// to every other shape. O(n^2) but round populations are small.
func meanPairwiseDistance(shapes []shape.Shape) func(shape.Shape) float64 {
	return func(s shape.Shape) float64 {
		if len(shapes) < 2 {
			return 0
		}
		var sum float64
		for _, o := range shapes {
			if o.ID == s.ID {
				continue
			}
			sum += s.DistanceTo(o)
		}
		return sum / float64(len(shapes)-1)
	}
}

// #endregion extremum-helpers

// #region frequency-helpers

func kindKey(s shape.Shape) string  { return string(s.Kind) }
func colorKey(s shape.Shape) string { return s.ColorKey() }

// singletonBy returns the first shape whose key occurs exactly once,
// falling back to the rarest key when no singleton exists.
func singletonBy(shapes []shape.Shape, key func(shape.Shape) string) shape.Shape {
	freq := frequency(shapes, key)
	for _, s := range shapes {
		if freq[key(s)] == 1 {
			return s
		}
	}
	return rarestBy(shapes, key)
}

// rarestBy returns the first shape carrying the minimum-frequency key.
func rarestBy(shapes []shape.Shape, key func(shape.Shape) string) shape.Shape {
	freq := frequency(shapes, key)
	best := shapes[0]
	bestCount := freq[key(best)]
	for _, s := range shapes[1:] {
		if c := freq[key(s)]; c < bestCount {
			best, bestCount = s, c
		}
	}
	return best
}

// modeBy returns the first shape carrying the maximum-frequency key.
func modeBy(shapes []shape.Shape, key func(shape.Shape) string) shape.Shape {
	freq := frequency(shapes, key)
	best := shapes[0]
	bestCount := freq[key(best)]
	for _, s := range shapes[1:] {
		if c := freq[key(s)]; c > bestCount {
			best, bestCount = s, c
		}
	}
	return best
}

// rankedBy returns the first shape carrying the rank-th most frequent key
// (rank 0 = mode). Falls back to the first shape when the table has fewer
// distinct keys than rank+1.
func rankedBy(shapes []shape.Shape, key func(shape.Shape) string, rank int) shape.Shape {
	freq := frequency(shapes, key)
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	// Count descending, key ascending for a deterministic order.
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if rank >= len(keys) {
		return shapes[0]
	}
	want := keys[rank]
	for _, s := range shapes {
		if key(s) == want {
			return s
		}
	}
	return shapes[0]
}

func frequency(shapes []shape.Shape, key func(shape.Shape) string) map[string]int {
	freq := make(map[string]int, len(shapes))
	for _, s := range shapes {
		freq[key(s)]++
	}
	return freq
}

// #endregion frequency-helpers

// #region order-helpers

// nthBySorted returns the shape at index n of a stably sorted copy.
// Out-of-range n degrades to the first shape of the sorted order.
func nthBySorted(shapes []shape.Shape, less func(a, b shape.Shape) bool, n int) shape.Shape {
	sorted := make([]shape.Shape, len(shapes))
	copy(sorted, shapes)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if n < 0 || n >= len(sorted) {
		return sorted[0]
	}
	return sorted[n]
}

// flagged returns the first shape matching the flag predicate, or the
// largest shape when nothing in the set carries the flag.
func flagged(shapes []shape.Shape, has func(shape.Shape) bool) shape.Shape {
	for _, s := range shapes {
		if has(s) {
			return s
		}
	}
	return maxBy(shapes, func(s shape.Shape) float64 { return s.Size })
}

// #endregion order-helpers
