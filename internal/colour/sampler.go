package colour

import (
	"fmt"
	"math/rand"

	"github.com/hashicorp/go-hclog"
)

// Sampling parameters. Brightness limits drop near-white and near-black
// pixels, which are assumed to be non-representative background or shadow.
const (
	// DefaultMaxSampleDim is the default upper bound on each axis of the
	// resampled image fed into clustering.
	DefaultMaxSampleDim = 150

	// DefaultMaxSamples caps the number of Lab samples handed to k-means.
	DefaultMaxSamples = 5000

	// minValidPixels is the minimum number of pixels that must survive
	// filtering for extraction to proceed.
	minValidPixels = 10

	alphaThreshold  = 128
	brightnessFloor = 20
	brightnessCeil  = 240
)

// rgbSample is a surviving pixel prior to Lab conversion.
type rgbSample struct {
	r, g, b uint8
}

// sampleLab turns a raw interleaved pixel buffer into a bounded set of Lab
// samples: nearest-neighbour downscale, alpha and extreme-luminance
// filtering, random subsampling to the cap, then sRGB to Lab conversion.
// Dimensions and channel count are assumed already validated.
func sampleLab(pixels []byte, width, height, channels, maxDim, maxSamples int, rng *rand.Rand, logger hclog.Logger) ([]Lab, error) {
	targetWidth := min(width, maxDim)
	targetHeight := min(height, maxDim)

	survivors := make([]rgbSample, 0, targetWidth*targetHeight)
	for y := 0; y < targetHeight; y++ {
		srcY := y * height / targetHeight
		for x := 0; x < targetWidth; x++ {
			srcX := x * width / targetWidth
			idx := (srcY*width + srcX) * channels

			r := pixels[idx]
			g := pixels[idx+1]
			b := pixels[idx+2]

			if channels == 4 && pixels[idx+3] < alphaThreshold {
				continue
			}

			brightness := (int(r) + int(g) + int(b)) / 3
			if brightness > brightnessCeil || brightness < brightnessFloor {
				continue
			}

			survivors = append(survivors, rgbSample{r, g, b})
		}
	}

	if len(survivors) < minValidPixels {
		return nil, fmt.Errorf("%w: %d usable pixels after filtering (need at least %d)",
			ErrInsufficientData, len(survivors), minValidPixels)
	}

	if len(survivors) > maxSamples {
		rng.Shuffle(len(survivors), func(i, j int) {
			survivors[i], survivors[j] = survivors[j], survivors[i]
		})
		survivors = survivors[:maxSamples]
	}

	samples := make([]Lab, len(survivors))
	for i, s := range survivors {
		samples[i] = RGBToLab(s.r, s.g, s.b)
	}

	logger.Debug("sampled pixels", "source", fmt.Sprintf("%dx%d", width, height),
		"target", fmt.Sprintf("%dx%d", targetWidth, targetHeight), "samples", len(samples))

	return samples, nil
}
