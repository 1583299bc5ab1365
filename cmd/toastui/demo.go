package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/tui"
)

var demoOpts struct {
	hotReload bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive banner demo",
	Long: `Launch an interactive terminal demo that shows banners over an activity log.

Key bindings:
  1/2/3/4     Show a message/warning/error/success banner
  enter       Tap the banner
  s           Swipe the banner toward its edge
  b           Press the banner button
  d           Dismiss the banner
  j/k, ↑/↓    Scroll the activity log
  ?           Show help
  q           Quit

Mouse clicks tap the banner or press its button, the wheel swipes it.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&demoOpts.hotReload, "watch", false,
		"Reload the config and design when their files change")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var watcher *config.Watcher
	if demoOpts.hotReload {
		designs.StartHotReload(ctx)

		watcher = config.NewWatcher(globalOpts.configPath, nil, logger)
		watcher.Start(ctx, cfg)
		defer watcher.Stop()
	}

	return tui.Run(tui.RunOptions{
		Config:  cfg,
		Styles:  designs,
		Sound:   soundPlayer(ctx),
		Logger:  logger,
		Watcher: watcher,
		Options: tui.Options{
			Demo:     true,
			OnConfig: applyConfig,
		},
	})
}

// applyConfig switches the design and sounds to a reloaded config.
func applyConfig(newCfg *config.Config) {
	if globalOpts.design != "" {
		newCfg.Design.Name = globalOpts.design
	}
	designs.SetOverrides(newCfg.Design.Overrides)
	if newCfg.Design.Name != cfg.Design.Name {
		designs.LoadDesign(newCfg.Design.Name)
	}
	sounds.UpdateConfig(newCfg)
	cfg = newCfg
}
