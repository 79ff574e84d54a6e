package colour

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/hashicorp/go-hclog"
)

// testSamples builds a sample set around three well-separated Lab anchors.
func testSamples(n int, seed int64) []Lab {
	anchors := []Lab{
		{L: 30, A: 50, B: 20},
		{L: 60, A: -40, B: 40},
		{L: 80, A: 10, B: -50},
	}

	rng := rand.New(rand.NewSource(seed))
	samples := make([]Lab, n)
	for i := range samples {
		anchor := anchors[i%len(anchors)]
		samples[i] = Lab{
			L: anchor.L + rng.Float64()*2 - 1,
			A: anchor.A + rng.Float64()*2 - 1,
			B: anchor.B + rng.Float64()*2 - 1,
		}
	}
	return samples
}

func TestKMeansDeterministicUnderSeed(t *testing.T) {
	samples := testSamples(300, 11)
	logger := hclog.NewNullLogger()

	first, err := kmeansLab(samples, 8, 30, 1, rand.New(rand.NewSource(42)), logger)
	if err != nil {
		t.Fatalf("kmeansLab() error: %v", err)
	}
	second, err := kmeansLab(samples, 8, 30, 1, rand.New(rand.NewSource(42)), logger)
	if err != nil {
		t.Fatalf("kmeansLab() error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cluster %d differs across identically seeded runs: %+v vs %+v",
				i, first[i], second[i])
		}
	}
}

// The assignment pass must not depend on how the samples are split across
// workers, so sequential and parallel runs with the same seed are
// interchangeable.
func TestKMeansWorkerCountInvariant(t *testing.T) {
	samples := testSamples(500, 23)
	logger := hclog.NewNullLogger()

	sequential, err := kmeansLab(samples, 8, 30, 1, rand.New(rand.NewSource(7)), logger)
	if err != nil {
		t.Fatalf("kmeansLab() error: %v", err)
	}
	parallel, err := kmeansLab(samples, 8, 30, 4, rand.New(rand.NewSource(7)), logger)
	if err != nil {
		t.Fatalf("kmeansLab() error: %v", err)
	}

	for i := range sequential {
		if sequential[i] != parallel[i] {
			t.Errorf("cluster %d differs between 1 and 4 workers: %+v vs %+v",
				i, sequential[i], parallel[i])
		}
	}
}

func TestKMeansClusterInvariants(t *testing.T) {
	samples := testSamples(300, 5)
	clusters, err := kmeansLab(samples, 8, 30, 0, rand.New(rand.NewSource(3)), hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("kmeansLab() error: %v", err)
	}

	if len(clusters) != 8 {
		t.Fatalf("got %d clusters, want 8", len(clusters))
	}

	total := 0
	for i, c := range clusters {
		if math.IsNaN(c.centroid.L) || math.IsNaN(c.centroid.A) || math.IsNaN(c.centroid.B) {
			t.Errorf("cluster %d has NaN centroid: %+v", i, c.centroid)
		}
		total += c.size
	}
	if total != len(samples) {
		t.Errorf("cluster populations sum to %d, want %d", total, len(samples))
	}
}

// More clusters than distinct colours forces empty clusters every
// iteration; reseeding must still yield k well-defined centroids.
func TestKMeansReseedsEmptyClusters(t *testing.T) {
	samples := make([]Lab, 40)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = Lab{L: 25, A: 30, B: 10}
		} else {
			samples[i] = Lab{L: 75, A: -30, B: -10}
		}
	}

	clusters, err := kmeansLab(samples, 8, 30, 1, rand.New(rand.NewSource(9)), hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("kmeansLab() error: %v", err)
	}

	if len(clusters) != 8 {
		t.Fatalf("got %d clusters, want 8", len(clusters))
	}
	for i, c := range clusters {
		if math.IsNaN(c.centroid.L) || math.IsNaN(c.centroid.A) || math.IsNaN(c.centroid.B) {
			t.Errorf("cluster %d has NaN centroid after reseeding: %+v", i, c.centroid)
		}
	}
}

func TestKMeansEmptySampleSet(t *testing.T) {
	_, err := kmeansLab(nil, 8, 30, 1, rand.New(rand.NewSource(1)), hclog.NewNullLogger())
	if !errors.Is(err, ErrInternal) {
		t.Errorf("kmeansLab(nil) error = %v, want ErrInternal", err)
	}
}

func TestParallelFor(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		workers int
	}{
		{name: "sequential", n: 100, workers: 1},
		{name: "parallel", n: 100, workers: 4},
		{name: "more workers than items", n: 3, workers: 16},
		{name: "default workers", n: 1000, workers: 0},
		{name: "empty range", n: 0, workers: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visited := make([]int, tt.n)
			parallelFor(tt.n, tt.workers, func(start, end int) {
				for i := start; i < end; i++ {
					visited[i]++
				}
			})
			for i, v := range visited {
				if v != 1 {
					t.Fatalf("index %d visited %d times, want exactly once", i, v)
				}
			}
		})
	}
}
