// Package main is the entry point for toastui-gtk, which shows banners as
// layer-shell popups on Wayland.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/audio"
	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/design"
	"github.com/jmylchreest/toastui/internal/display"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/popup"
)

const appID = "io.github.jmylchreest.toastui"

var (
	// Build-time variables
	version = "dev"
)

// options holds the parsed command line.
type options struct {
	title      string
	subtitle   string
	msgType    string
	position   string
	duration   int
	endless    bool
	noDismiss  bool
	icon       string
	button     string
	background string
	foreground string
	sound      string
	monitor    int
	configPath string
	design     string
	verbose    bool
	watch      bool
}

func main() {
	opts, ok := parseFlags()
	if !ok {
		os.Exit(2)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	os.Exit(run(opts, logger))
}

func parseFlags() (options, bool) {
	var opts options
	flag.StringVar(&opts.msgType, "type", string(model.TypeMessage), "Message type (message, warning, error, success)")
	flag.StringVar(&opts.position, "position", "", "Screen edge (top, bottom; default from config)")
	flag.IntVar(&opts.duration, "duration", 0, "Display duration in milliseconds (0 derives it from the text length)")
	flag.BoolVar(&opts.endless, "endless", false, "Keep the banner until it is dismissed")
	flag.BoolVar(&opts.noDismiss, "no-dismiss", false, "Ignore clicks and swipes")
	flag.StringVar(&opts.icon, "icon", "", "Icon name, replacing the design icon")
	flag.StringVar(&opts.button, "button", "", "Button title; pressing it dismisses the banner")
	flag.StringVar(&opts.background, "bg", "", "Background color override (hex)")
	flag.StringVar(&opts.foreground, "fg", "", "Text color override (hex)")
	flag.StringVar(&opts.sound, "sound", "", "Sound file to play instead of the type's sound")
	flag.IntVar(&opts.monitor, "monitor", 0, "Monitor to show banners on, 1-indexed (0 uses the first)")
	flag.StringVar(&opts.configPath, "config", "", "Path to config file (default: ~/.config/toastui/config.toml)")
	flag.StringVar(&opts.design, "design", "", "Design name, overriding the config file")
	flag.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the config and design when their files change")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] TITLE [SUBTITLE]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println("toastui-gtk version", version)
		os.Exit(0)
	}

	switch flag.NArg() {
	case 1:
		opts.title = flag.Arg(0)
	case 2:
		opts.title = flag.Arg(0)
		opts.subtitle = flag.Arg(1)
	default:
		flag.Usage()
		return opts, false
	}
	return opts, true
}

// buildMessage builds the message described by the command line.
func buildMessage(opts options, cfg *config.Config) *model.Message {
	msg := model.NewMessage(opts.title, opts.subtitle, model.ParseType(opts.msgType))
	msg.Position = cfg.DefaultPosition()
	if opts.position != "" {
		msg.Position = model.ParsePosition(opts.position)
	}
	if opts.duration > 0 {
		msg.Duration = time.Duration(opts.duration) * time.Millisecond
	}
	if opts.endless {
		msg.Duration = model.DurationEndless
	}
	msg.UserDismissEnabled = cfg.Behavior.UserDismiss && !opts.noDismiss
	msg.Icon = opts.icon
	msg.Background = opts.background
	msg.Foreground = opts.foreground
	msg.Sound = opts.sound
	if opts.button != "" {
		msg.Button = &model.Button{Title: opts.button}
	}
	return msg
}

func run(opts options, logger *slog.Logger) int {
	logger.Info("starting toastui-gtk", "version", version)

	cfg, err := config.LoadPixelConfig(opts.configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}
	if opts.design != "" {
		cfg.Design.Name = opts.design
	}

	app := adw.NewApplication(appID, 0)

	var (
		displayManager *display.Manager
		designs        *design.Loader
		audioManager   *audio.Manager
		configWatcher  *config.Watcher
		running        atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		// Views and hosts are owned by the GTK main loop
		glib.IdleAdd(func() {
			if displayManager != nil {
				displayManager.Reset()
			}
			app.Quit()
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		designs = design.NewLoaderFromConfig(cfg, logger)

		host, err := popup.NewHost(&app.Application, popup.Options{
			Monitor:  opts.monitor,
			Settings: banner.SettingsFromConfig(cfg),
			Logger:   logger,
		})
		if err != nil {
			logger.Error("failed to create popup host", "error", err)
			app.Quit()
			return
		}

		displayManager = display.NewManager(host, cfg, designs, logger)
		displayManager.SetCustomizer(func(v *banner.View) {
			if title := v.ButtonTitle(); title != "" {
				v.SetButton(title, v.Dismiss)
			}
		})
		notifier := display.NewNotifier(func(msg *model.Message) {
			glib.IdleAdd(func() {
				displayManager.Show(msg)
			})
		}, logger)

		if cfg.Audio.Enabled {
			audioManager = audio.NewManager(cfg, designs, logger)
			audioManager.Start(ctx)
			displayManager.SetSoundPlayer(notifier.ReportingSoundPlayer(audioManager))
		}

		// Quit once the last banner has left the screen
		displayManager.SetCloseCallback(func(id string, reason banner.DismissReason) {
			logger.Debug("banner closed", "id", id, "reason", reason.String())
			if displayManager.TotalCount() == 0 {
				app.Quit()
			}
		})

		if opts.watch {
			configWatcher = watchConfig(ctx, opts, cfg, host, displayManager, notifier, designs, audioManager, logger)
		}

		// GTK apps quit when all windows are closed; banners come and go
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)

		displayManager.Show(buildMessage(opts, cfg))
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if audioManager != nil {
			audioManager.Stop()
		}
		if designs != nil {
			designs.StopHotReload()
		}
		if configWatcher != nil {
			configWatcher.Stop()
		}
		running.Store(false)
	})

	status := app.Run(os.Args[:1])
	if status != 0 {
		logger.Error("application exited with error", "status", status)
	}
	return status
}

// watchConfig reloads the config and the design file while banners are shown.
// Reloads are applied on the GTK main loop and announced with a banner.
func watchConfig(
	ctx context.Context,
	opts options,
	cfg *config.Config,
	host *popup.Host,
	displayManager *display.Manager,
	notifier *display.Notifier,
	designs *design.Loader,
	audioManager *audio.Manager,
	logger *slog.Logger,
) *config.Watcher {
	designs.SetChangeCallback(func(d *design.Design) {
		notifier.NotifyDesignReloaded(d.Name)
	})
	designs.StartHotReload(ctx)

	current := cfg
	w := config.NewWatcher(opts.configPath, config.LoadPixelConfig, logger)
	w.SetReloadCallback(func(newCfg *config.Config) {
		if opts.design != "" {
			newCfg.Design.Name = opts.design
		}
		glib.IdleAdd(func() {
			displayManager.UpdateConfig(newCfg)
			host.UpdateSettings(banner.SettingsFromConfig(newCfg))
			if audioManager != nil {
				audioManager.UpdateConfig(newCfg)
			}
			designs.SetOverrides(newCfg.Design.Overrides)
			if newCfg.Design.Name != current.Design.Name {
				designs.LoadDesign(newCfg.Design.Name)
				designs.StartHotReload(ctx)
			}
			current = newCfg
		})
		notifier.NotifyConfigReloaded()
	})
	w.SetErrorCallback(notifier.NotifyConfigError)
	w.Start(ctx, cfg)
	return w
}
