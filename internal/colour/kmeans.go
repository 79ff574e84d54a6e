package colour

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Clustering parameters.
const (
	// DefaultClusters is the fixed k used for one extraction call. Kept at
	// 8 regardless of the requested palette size; selection reduces the
	// clusters to the final palette.
	DefaultClusters = 8

	// DefaultMaxIterations bounds the assign/update passes.
	DefaultMaxIterations = 30

	// convergenceDelta is the centroid-movement threshold, in CIEDE2000
	// units, below which clustering terminates early.
	convergenceDelta = 1.0
)

// cluster is a centroid in Lab space plus the number of samples assigned to
// it on the final update pass.
type cluster struct {
	centroid Lab
	size     int
}

// kmeansLab clusters the samples into k groups using DeltaE2000 as the
// assignment metric. Centroids are initialized by uniform random draws from
// the sample set; a cluster that receives zero assignments is reseeded from
// a fresh random sample rather than left undefined. The returned slice
// always has length k.
func kmeansLab(samples []Lab, k, maxIterations, workers int, rng *rand.Rand, logger hclog.Logger) ([]cluster, error) {
	if len(samples) == 0 || k <= 0 {
		return nil, fmt.Errorf("%w: k-means invoked with %d samples and k=%d",
			ErrInternal, len(samples), k)
	}

	centroids := make([]Lab, k)
	for i := range centroids {
		centroids[i] = samples[rng.Intn(len(samples))]
	}

	assignments := make([]int, len(samples))
	sizes := make([]int, k)

	for iter := 0; iter < maxIterations; iter++ {
		// Each sample's nearest-centroid search is independent and reads
		// centroids only, so the pass is distributed across workers with
		// per-index writes and no locking.
		parallelFor(len(samples), workers, func(start, end int) {
			for i := start; i < end; i++ {
				nearest := 0
				minDist := math.MaxFloat64
				for j := range centroids {
					if d := DeltaE2000(samples[i], centroids[j]); d < minDist {
						minDist = d
						nearest = j
					}
				}
				assignments[i] = nearest
			}
		})

		sums := make([]Lab, k)
		for i := range sizes {
			sizes[i] = 0
		}
		for i, c := range assignments {
			sums[c].L += samples[i].L
			sums[c].A += samples[i].A
			sums[c].B += samples[i].B
			sizes[c]++
		}

		newCentroids := make([]Lab, k)
		for j := range newCentroids {
			if sizes[j] > 0 {
				n := float64(sizes[j])
				newCentroids[j] = Lab{L: sums[j].L / n, A: sums[j].A / n, B: sums[j].B / n}
			} else {
				// Empty cluster: reseed from the sample set so it never
				// propagates an undefined centroid.
				newCentroids[j] = samples[rng.Intn(len(samples))]
			}
		}

		converged := true
		for j := range centroids {
			if DeltaE2000(centroids[j], newCentroids[j]) > convergenceDelta {
				converged = false
				break
			}
		}

		centroids = newCentroids

		if converged {
			logger.Debug("k-means converged", "iterations", iter+1)
			break
		}
	}

	clusters := make([]cluster, k)
	for j := range clusters {
		clusters[j] = cluster{centroid: centroids[j], size: sizes[j]}
	}
	return clusters, nil
}

// parallelFor splits [0, n) into contiguous chunks and runs fn over them on
// up to workers goroutines. workers of 1 runs the whole range inline, so
// sequential and parallel execution are interchangeable.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n < workers*2 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
