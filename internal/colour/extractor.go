package colour

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultNumColors is the palette size when the caller does not request one.
const DefaultNumColors = 5

// Options configures palette extraction. The zero value selects defaults
// for every field.
type Options struct {
	// NumColors is the exact number of palette entries produced.
	NumColors int

	// MinDistance is the CIEDE2000 distance palette entries keep from each
	// other during primary selection.
	MinDistance float64

	// MaxSampleDim bounds each axis of the internal downscale before
	// sampling.
	MaxSampleDim int

	// MaxSamples caps the number of pixels fed into clustering.
	MaxSamples int

	// Clusters is the k used for k-means. Fixed for the extraction call.
	Clusters int

	// MaxIterations bounds the clustering passes.
	MaxIterations int

	// Workers is the number of goroutines used for the cluster-assignment
	// pass. Zero means GOMAXPROCS; 1 forces sequential execution.
	Workers int

	// Rand is the random source driving centroid initialization, empty
	// cluster reseeding, subsampling, and fallback synthesis. Supplying a
	// seeded source makes extraction reproducible. Nil draws a
	// time-derived seed.
	Rand *rand.Rand

	// Logger receives debug events. Nil discards them.
	Logger hclog.Logger
}

// DefaultOptions returns the extraction defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		NumColors:     DefaultNumColors,
		MinDistance:   DefaultMinDistance,
		MaxSampleDim:  DefaultMaxSampleDim,
		MaxSamples:    DefaultMaxSamples,
		Clusters:      DefaultClusters,
		MaxIterations: DefaultMaxIterations,
	}
}

// withDefaults fills unset fields with their default values.
func (o Options) withDefaults() Options {
	if o.NumColors <= 0 {
		o.NumColors = DefaultNumColors
	}
	if o.MinDistance <= 0 {
		o.MinDistance = DefaultMinDistance
	}
	if o.MaxSampleDim <= 0 {
		o.MaxSampleDim = DefaultMaxSampleDim
	}
	if o.MaxSamples <= 0 {
		o.MaxSamples = DefaultMaxSamples
	}
	if o.Clusters <= 0 {
		o.Clusters = DefaultClusters
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// ExtractPalette extracts opts.NumColors visually distinct dominant colours
// from a decoded pixel buffer. pixels is row-major interleaved 8-bit data
// with 3 (RGB) or 4 (RGBA) channels. The returned palette always contains
// exactly opts.NumColors entries; extraction is all-or-nothing and returns
// no partial result on error.
func ExtractPalette(pixels []byte, width, height, channels int, opts Options) (*Palette, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image dimensions %dx%d", ErrInvalidInput, width, height)
	}
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: %d channels (need RGB or RGBA)", ErrInvalidInput, channels)
	}
	if len(pixels) < width*height*channels {
		return nil, fmt.Errorf("%w: pixel buffer holds %d bytes, geometry requires %d",
			ErrInvalidInput, len(pixels), width*height*channels)
	}

	opts = opts.withDefaults()

	samples, err := sampleLab(pixels, width, height, channels,
		opts.MaxSampleDim, opts.MaxSamples, opts.Rand, opts.Logger)
	if err != nil {
		return nil, err
	}

	clusters, err := kmeansLab(samples, opts.Clusters, opts.MaxIterations,
		opts.Workers, opts.Rand, opts.Logger)
	if err != nil {
		return nil, err
	}

	labColors := selectPalette(clusters, opts.NumColors, opts.MinDistance, opts.Rand, opts.Logger)

	colors := make([]RGB, len(labColors))
	for i, lab := range labColors {
		r, g, b := LabToRGB(lab)
		colors[i] = RGB{R: r, G: g, B: b}
	}

	return NewPalette(colors), nil
}
