// Package cli provides the command-line interface for coverswatch.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/assetfilter/coverswatch/internal/version"
)

var (
	// Global flags
	flagVerbose bool
	flagQuiet   bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "swatch",
		Short: "Extract dominant colour swatches from cover art",
		Long: `Coverswatch extracts a small palette of visually distinct dominant colours
from cover art and thumbnail images.

Pixels are clustered in CIELAB space using the CIEDE2000 perceptual
difference metric, so the resulting swatches track what a viewer actually
sees rather than raw RGB component distances.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// NewRootCmd returns the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-error output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
}

// newLogger builds the logger backing a command invocation, honouring the
// verbose flag.
func newLogger() hclog.Logger {
	if flagVerbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "swatch",
			Output: os.Stderr,
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
