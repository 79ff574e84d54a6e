package image

import "testing"

// testBuffer builds a small RGBA buffer with a deterministic gradient.
func testBuffer(width, height int) *Buffer {
	pixels := make([]byte, width*height*4)
	for i := range pixels {
		pixels[i] = byte(i * 7)
	}
	return &Buffer{Pixels: pixels, Width: width, Height: height, Channels: 4}
}

func TestCalculateSeedContent(t *testing.T) {
	buf := testBuffer(8, 8)

	seed1, err := CalculateSeed(buf, "/path/a.png", SeedModeContent, 0)
	if err != nil {
		t.Fatalf("CalculateSeed error: %v", err)
	}

	// Same pixels under a different path must give the same seed.
	seed2, err := CalculateSeed(buf, "/other/b.png", SeedModeContent, 0)
	if err != nil {
		t.Fatalf("CalculateSeed error: %v", err)
	}
	if seed1 != seed2 {
		t.Errorf("content seed varies with path: %d vs %d", seed1, seed2)
	}

	// Different pixels must give a different seed.
	other := testBuffer(8, 8)
	other.Pixels[0] ^= 0xff
	seed3, err := CalculateSeed(other, "/path/a.png", SeedModeContent, 0)
	if err != nil {
		t.Fatalf("CalculateSeed error: %v", err)
	}
	if seed1 == seed3 {
		t.Error("content seed unchanged after pixel modification")
	}
}

func TestCalculateSeedFilepath(t *testing.T) {
	bufA := testBuffer(4, 4)
	bufB := testBuffer(6, 6)

	// Same path, different content: identical seed.
	seed1, err := CalculateSeed(bufA, "/covers/album.png", SeedModeFilepath, 0)
	if err != nil {
		t.Fatalf("CalculateSeed error: %v", err)
	}
	seed2, err := CalculateSeed(bufB, "/covers/album.png", SeedModeFilepath, 0)
	if err != nil {
		t.Fatalf("CalculateSeed error: %v", err)
	}
	if seed1 != seed2 {
		t.Errorf("filepath seed varies with content: %d vs %d", seed1, seed2)
	}

	seed3, err := CalculateSeed(bufA, "/covers/other.png", SeedModeFilepath, 0)
	if err != nil {
		t.Fatalf("CalculateSeed error: %v", err)
	}
	if seed1 == seed3 {
		t.Error("filepath seed unchanged for different path")
	}
}

func TestCalculateSeedFilepathURL(t *testing.T) {
	buf := testBuffer(4, 4)

	seed1, err := CalculateSeed(buf, "https://example.com/cover.jpg", SeedModeFilepath, 0)
	if err != nil {
		t.Fatalf("CalculateSeed error: %v", err)
	}
	seed2, err := CalculateSeed(buf, "https://example.com/cover.jpg", SeedModeFilepath, 0)
	if err != nil {
		t.Fatalf("CalculateSeed error: %v", err)
	}
	if seed1 != seed2 {
		t.Errorf("URL seed not deterministic: %d vs %d", seed1, seed2)
	}
}

func TestCalculateSeedManual(t *testing.T) {
	buf := testBuffer(4, 4)

	seed, err := CalculateSeed(buf, "/covers/album.png", SeedModeManual, 42)
	if err != nil {
		t.Fatalf("CalculateSeed error: %v", err)
	}
	if seed != 42 {
		t.Errorf("manual seed = %d, want 42", seed)
	}
}

func TestCalculateSeedUnknownMode(t *testing.T) {
	buf := testBuffer(4, 4)

	if _, err := CalculateSeed(buf, "/covers/album.png", SeedMode("bogus"), 0); err == nil {
		t.Error("expected error for unknown seed mode, got nil")
	}
}
