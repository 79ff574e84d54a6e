package image

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"
)

// SeedMode determines how the random seed for clustering is generated.
type SeedMode string

const (
	// SeedModeContent generates the seed from a hash of the pixel data
	// (default, deterministic by content).
	SeedModeContent SeedMode = "content"
	// SeedModeFilepath generates the seed from the absolute file path hash
	// (deterministic by path).
	SeedModeFilepath SeedMode = "filepath"
	// SeedModeManual uses a user-provided seed value.
	SeedModeManual SeedMode = "manual"
	// SeedModeRandom uses a non-deterministic seed (varies each run).
	SeedModeRandom SeedMode = "random"
)

// CalculateSeed determines the clustering seed for a loaded image according
// to the seed mode.
func CalculateSeed(buf *Buffer, imagePath string, mode SeedMode, manual int64) (int64, error) {
	switch mode {
	case SeedModeContent:
		return contentSeed(buf), nil
	case SeedModeFilepath:
		return filepathSeed(imagePath), nil
	case SeedModeManual:
		return manual, nil
	case SeedModeRandom:
		return randomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", mode)
	}
}

// contentSeed generates a deterministic seed from image content. The same
// pixel data produces the same seed regardless of filename or location.
func contentSeed(buf *Buffer) int64 {
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(buf.Width))
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(buf.Height))
	hasher.Write(dimBytes)

	// Sample rows in a stride pattern; hashing every pixel of a large
	// cover is unnecessary to identify it.
	rowStride := buf.Width * buf.Channels
	step := max(buf.Height/100, 1)
	for y := 0; y < buf.Height; y += step {
		hasher.Write(buf.Pixels[y*rowStride : (y+1)*rowStride])
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8]))
}

// filepathSeed generates a deterministic seed from the absolute file path.
func filepathSeed(imagePath string) int64 {
	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		// If we can't resolve the absolute path, use the path as-is.
		absPath = imagePath
	}
	if isURL(imagePath) {
		absPath = imagePath
	}

	hash := sha256.Sum256([]byte(absPath))
	return int64(binary.LittleEndian.Uint64(hash[:8]))
}

// randomSeed generates a non-deterministic seed.
func randomSeed() int64 {
	// #nosec G404 -- Random seed generation is intentionally non-deterministic
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}
