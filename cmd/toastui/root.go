// Package main provides the CLI entrypoint for toastui.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/audio"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/design"
	"github.com/jmylchreest/toastui/internal/display"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		design     string
		logFile    string
	}
	logger  *slog.Logger
	logSink io.Closer

	designs *design.Loader
	sounds  *audio.Manager
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "toastui",
	Short: "Transient banner notifications for terminal and desktop",
	Long: `toastui shows transient banners at the top or bottom edge of the screen.

Banners are shown one at a time. Banners requested while one is visible are
queued and shown in order. A banner leaves after a duration derived from its
text, when tapped, or when swiped toward its edge.

Running toastui without a subcommand launches the interactive demo.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		if err := setupLogger(); err != nil {
			return err
		}

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if globalOpts.design != "" {
			cfg.Design.Name = globalOpts.design
		}

		designs = design.NewLoaderFromConfig(cfg, logger)
		sounds = audio.NewManager(cfg, designs, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if designs != nil {
			designs.StopHotReload()
		}
		if sounds != nil {
			sounds.Stop()
		}
		if logSink != nil {
			return logSink.Close()
		}
		return nil
	},
	// Default to the demo when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/toastui/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.design, "design", "",
		"Design name, overriding the config file")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logFile, "log-file", "",
		"Write logs to this file instead of stderr")
}

// setupLogger configures the global slog logger. Banners are drawn on the
// terminal, so --log-file keeps verbose output off the screen.
func setupLogger() error {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var w io.Writer = os.Stderr
	if globalOpts.logFile != "" {
		f, err := os.OpenFile(globalOpts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		logSink = f
	}

	handler := slog.NewTextHandler(w, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

// soundPlayer returns the audio manager when sounds are enabled.
func soundPlayer(ctx context.Context) display.SoundPlayer {
	if !sounds.Enabled() {
		return nil
	}
	sounds.Start(ctx)
	return sounds
}
