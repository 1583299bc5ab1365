package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/config"
)

var configOpts struct {
	init  bool
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration as TOML, after defaults and the config
file are merged.

Use --init to write the default configuration to the config file.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configOpts.init, "init", false,
		"Write the default configuration to the config file")
	configCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing config file with --init")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configOpts.init {
		path := globalOpts.configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !configOpts.force {
			return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		return nil
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
