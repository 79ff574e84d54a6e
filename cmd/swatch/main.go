// Coverswatch - perceptual dominant-colour extraction
//
// Coverswatch extracts visually distinct dominant colour swatches from
// cover art and thumbnail images using CIELAB clustering and the CIEDE2000
// perceptual difference metric.
package main

import (
	"os"

	"github.com/assetfilter/coverswatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
