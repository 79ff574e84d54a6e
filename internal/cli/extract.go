package cli

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetfilter/coverswatch/internal/colour"
	"github.com/assetfilter/coverswatch/internal/image"
)

var (
	// Extract command flags
	extractColours      int
	extractMinDistance  float64
	extractMaxDimension int
	extractFormat       string
	extractOutput       string
	extractShowPreview  bool
	extractSeedMode     string
	extractSeedValue    int64
	extractWorkers      int
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract a dominant colour palette from an image",
	Long: `Extract a small palette of visually distinct dominant colours from an image.

The image is downscaled and filtered (transparent, near-white, and
near-black pixels are dropped), the surviving pixels are clustered in
CIELAB space, and the cluster centroids are reduced to a palette whose
entries keep a minimum perceptual distance from each other. When an image
is too uniform to yield enough distinct colours, complementary fallback
colours are synthesized so the palette always has the requested size.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 5 colours (default) from cover art
  swatch extract cover.jpg

  # Extract 8 colours with terminal preview blocks
  swatch extract --preview -c 8 cover.png

  # Output as JSON
  swatch extract --format json cover.jpg

  # Relax the perceptual-distance constraint
  swatch extract --min-distance 12 cover.jpg

  # Reproducible extraction for a fixed seed
  swatch extract --seed-mode manual --seed-value 42 cover.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	// Define flags for the extract command
	extractCmd.Flags().IntVarP(&extractColours, "colours", "c", colour.DefaultNumColors, "number of colours to extract")
	extractCmd.Flags().Float64Var(&extractMinDistance, "min-distance", colour.DefaultMinDistance, "minimum CIEDE2000 distance between palette colours")
	extractCmd.Flags().IntVar(&extractMaxDimension, "max-dimension", colour.DefaultMaxSampleDim, "maximum sampling dimension per axis")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour previews in terminal")
	extractCmd.Flags().StringVar(&extractSeedMode, "seed-mode", string(image.SeedModeContent), "seed mode: content, filepath, manual, random")
	extractCmd.Flags().Int64Var(&extractSeedValue, "seed-value", 0, "seed value (only used with --seed-mode=manual)")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "worker goroutines for clustering (0 = all CPUs)")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	logger := newLogger()

	// Validate the image path
	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	if extractColours < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", extractColours)
	}

	// Load and flatten the image
	logger.Debug("loading image", "path", imagePath)
	loader := image.NewSmartLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	buf := image.Flatten(img)
	logger.Debug("image loaded", "width", buf.Width, "height", buf.Height)

	// Resolve the clustering seed
	seed, err := image.CalculateSeed(buf, imagePath, image.SeedMode(extractSeedMode), extractSeedValue)
	if err != nil {
		return err
	}
	logger.Debug("clustering seed resolved", "mode", extractSeedMode, "seed", seed)

	// Extract the colour palette
	opts := colour.DefaultOptions()
	opts.NumColors = extractColours
	opts.MinDistance = extractMinDistance
	opts.MaxSampleDim = extractMaxDimension
	opts.Workers = extractWorkers
	opts.Rand = rand.New(rand.NewSource(seed)) // #nosec G404 -- seeded deliberately for reproducible clustering
	opts.Logger = logger

	palette, err := colour.ExtractPalette(buf.Pixels, buf.Width, buf.Height, buf.Channels, opts)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}

	// Format the output
	showPreview := extractShowPreview && extractOutput == "" && colour.SupportsANSIColours()
	output, err := formatPalette(palette, extractFormat, showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Write output to file or stdout
	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "Wrote palette to %s\n", extractOutput)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}
