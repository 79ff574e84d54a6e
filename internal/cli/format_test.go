package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/assetfilter/coverswatch/internal/colour"
)

func testPalette() *colour.Palette {
	return colour.NewPalette([]colour.RGB{
		{R: 255, G: 0, B: 0},
		{R: 26, G: 43, B: 60},
	})
}

func TestFormatPaletteHex(t *testing.T) {
	got, err := formatPalette(testPalette(), "hex", false)
	if err != nil {
		t.Fatalf("formatPalette error: %v", err)
	}
	if got != "#ff0000\n#1a2b3c\n" {
		t.Errorf("hex output = %q", got)
	}
}

func TestFormatPaletteRGB(t *testing.T) {
	got, err := formatPalette(testPalette(), "rgb", false)
	if err != nil {
		t.Fatalf("formatPalette error: %v", err)
	}
	if got != "rgb(255, 0, 0)\nrgb(26, 43, 60)\n" {
		t.Errorf("rgb output = %q", got)
	}
}

func TestFormatPaletteJSON(t *testing.T) {
	got, err := formatPalette(testPalette(), "json", false)
	if err != nil {
		t.Fatalf("formatPalette error: %v", err)
	}

	var decoded colour.PaletteJSON
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("json output not parseable: %v", err)
	}
	if decoded.Count != 2 {
		t.Errorf("count = %d, want 2", decoded.Count)
	}
	if decoded.Colors[0].Hex != "#ff0000" {
		t.Errorf("first colour = %q, want #ff0000", decoded.Colors[0].Hex)
	}
}

func TestFormatPaletteUnsupported(t *testing.T) {
	if _, err := formatPalette(testPalette(), "yaml", false); err == nil {
		t.Error("expected error for unsupported format, got nil")
	}
}

func TestFormatPaletteWithPreview(t *testing.T) {
	got, err := formatPalette(testPalette(), "hex", true)
	if err != nil {
		t.Fatalf("formatPalette error: %v", err)
	}
	// Preview output carries ANSI truecolor escapes plus the hex code.
	if !strings.Contains(got, "\x1b[48;2;255;0;0m") {
		t.Errorf("preview output missing ANSI background escape: %q", got)
	}
	if !strings.Contains(got, "#ff0000") {
		t.Errorf("preview output missing hex code: %q", got)
	}
}
