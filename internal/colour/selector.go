package colour

import (
	"math/rand"
	"sort"

	"github.com/hashicorp/go-hclog"
)

// Palette selection thresholds. The relaxed tier and the duplicate cutoff
// are intentional recovery behaviour; downstream visual output depends on
// these exact values.
const (
	// DefaultMinDistance is the CIEDE2000 distance two palette entries
	// must keep from each other during primary selection.
	DefaultMinDistance = 20.0

	// relaxedMinDistance is the lowered acceptance threshold used when
	// primary selection comes up short.
	relaxedMinDistance = 10.0

	// duplicateDistance is the cutoff below which a centroid counts as a
	// colour that was already accepted.
	duplicateDistance = 0.1
)

// selectPalette turns weighted clusters into exactly n Lab colours, ordered
// most distinct-and-populous first.
//
// Clusters are sorted by descending population; ties keep their original
// cluster order (the sort is stable). Selection then runs in phases:
// greedy acceptance at minDistance, a relaxed re-walk at
// relaxedMinDistance, and finally synthetic complementary colours until n
// entries exist. The synthesis phase always terminates: a candidate that
// fails the distance test is perturbed and accepted unconditionally.
func selectPalette(clusters []cluster, n int, minDistance float64, rng *rand.Rand, logger hclog.Logger) []Lab {
	sorted := make([]cluster, len(clusters))
	copy(sorted, clusters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].size > sorted[j].size
	})

	selected := make([]Lab, 0, n)

	// Phase 1: most populous clusters whose centroids keep minDistance
	// from everything already accepted.
	for _, c := range sorted {
		if len(selected) >= n {
			break
		}
		if distinctFrom(c.centroid, selected, minDistance) {
			selected = append(selected, c.centroid)
		}
	}

	// Phase 2: relaxed threshold, skipping centroids that are effectively
	// colours we already took.
	if len(selected) < n {
		for _, c := range sorted {
			if len(selected) >= n {
				break
			}
			if !distinctFrom(c.centroid, selected, duplicateDistance) {
				continue
			}
			if distinctFrom(c.centroid, selected, relaxedMinDistance) {
				selected = append(selected, c.centroid)
			}
		}
	}

	// Phase 3: synthesize complementary colours until the palette is full.
	for len(selected) < n {
		candidate := synthesizeColor(selected, rng)
		if distinctFrom(candidate, selected, minDistance) {
			selected = append(selected, candidate)
			continue
		}
		perturbed := Lab{
			L: clampF(candidate.L+(rng.Float64()*2.0-1.0)*30.0, 0, 100),
			A: clampF(candidate.A+(rng.Float64()*2.0-1.0)*45.0, -128, 127),
			B: clampF(candidate.B+(rng.Float64()*2.0-1.0)*45.0, -128, 127),
		}
		selected = append(selected, perturbed)
		logger.Debug("synthesized fallback colour accepted after perturbation",
			"have", len(selected), "want", n)
	}

	return selected
}

// synthesizeColor produces a fallback candidate: a uniformly random
// mid-lightness colour when nothing has been accepted yet, otherwise the
// perceptual reflection of the mean of the accepted colours, biasing toward
// a complementary hue.
func synthesizeColor(selected []Lab, rng *rand.Rand) Lab {
	if len(selected) == 0 {
		return Lab{
			L: 20.0 + rng.Float64()*60.0,
			A: -100.0 + rng.Float64()*200.0,
			B: -100.0 + rng.Float64()*200.0,
		}
	}

	var avg Lab
	for _, c := range selected {
		avg.L += c.L
		avg.A += c.A
		avg.B += c.B
	}
	count := float64(len(selected))
	return Lab{
		L: 100.0 - avg.L/count,
		A: -avg.A / count,
		B: -avg.B / count,
	}
}

// distinctFrom reports whether candidate keeps at least minDist from every
// colour in selected.
func distinctFrom(candidate Lab, selected []Lab, minDist float64) bool {
	for _, s := range selected {
		if DeltaE2000(candidate, s) < minDist {
			return false
		}
	}
	return true
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
