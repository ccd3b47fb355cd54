// Package cli provides the command-line interface for pixelnet.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/born-ml/pixelnet/internal/backend/cpu"
	"github.com/born-ml/pixelnet/internal/config"
	"github.com/born-ml/pixelnet/internal/logging"
	"github.com/born-ml/pixelnet/internal/model"
	"github.com/born-ml/pixelnet/internal/nn"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var Version = "0.1.0-dev"

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "pixelnet",
		Short: "pixelnet - digit classifier with in-graph pixel normalization",
		Long: `pixelnet assembles a small dense image classifier whose first stage
rescales raw 8-bit pixels to [0, 1], so unnormalized images can be fed
straight into the model.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			level, _ := config.ParseLevel(cfg.LogLevel)
			logging.Setup(cmd.ErrOrStderr(), level)
			slog.Debug("config loaded", "file", cfgFile, "model", fmt.Sprintf("%+v", cfg.Model), "seed", cfg.Seed, "workers", cfg.Workers)

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML)")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.Int64("seed", 0, "Weight initialization seed (0 = time based)")
	flags.Int("workers", 0, "CPU kernel goroutines (0 = one per CPU)")
	flags.Int("rows", 0, "Image height in pixels")
	flags.Int("cols", 0, "Image width in pixels")
	flags.Float64("scale", 0, "Pixel rescale divisor")
	flags.Int("hidden-units", 0, "Width of the hidden dense layer")
	flags.String("hidden-activation", "", "Hidden layer activation (relu|sigmoid|softmax|linear)")
	flags.Int("classes", 0, "Number of output classes")
	flags.String("output-activation", "", "Output layer activation (relu|sigmoid|softmax|linear)")

	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewSummaryCommand())
	rootCmd.AddCommand(NewPredictCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// configFrom returns the config stored by PersistentPreRunE.
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// buildPipeline assembles the configured model on backend.
func buildPipeline(cfg *config.Config, backend *cpu.CPUBackend) (*nn.Sequential[*cpu.CPUBackend], error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	//nolint:gosec // weight initialization is not security-critical
	rng := rand.New(rand.NewSource(seed))
	return model.Build(cfg.Model, backend, rng)
}
