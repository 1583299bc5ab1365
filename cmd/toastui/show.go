package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/adapter/input"
	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/color"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/tui"
)

var showOpts struct {
	subtitle   string
	msgType    string
	position   string
	duration   time.Duration
	endless    bool
	noDismiss  bool
	icon       string
	button     string
	background string
	foreground string
	sound      string
	stdin      bool
}

var showCmd = &cobra.Command{
	Use:   "show [TITLE...]",
	Short: "Show banners in the terminal and exit",
	Long: `Show one banner per TITLE, one after another, and exit once the last one
has left the screen.

Examples:
  toastui show "Build finished"
  toastui show --type error --subtitle "3 tests failed" "Build failed"
  toastui show --position bottom --endless --button OK "Read me"
  make 2>&1 | tail -n1 | toastui show --stdin

With --stdin, messages are read from standard input after the TITLE
arguments: one per line as "title" or "title<TAB>subtitle", one JSON object
per line, or a JSON array. JSON fields: title, subtitle, type, position,
duration ("3s"), endless, user_dismiss, icon, button, background, foreground,
sound.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !showOpts.stdin {
			return fmt.Errorf("requires at least one TITLE or --stdin")
		}
		return nil
	},
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOpts.subtitle, "subtitle", "s", "",
		"Text below the title")
	showCmd.Flags().StringVarP(&showOpts.msgType, "type", "t", string(model.TypeMessage),
		"Message type (message, warning, error, success)")
	showCmd.Flags().StringVarP(&showOpts.position, "position", "p", "",
		"Screen edge (top, bottom; default from config)")
	showCmd.Flags().DurationVarP(&showOpts.duration, "duration", "d", 0,
		"Display duration (0 derives it from the text length)")
	showCmd.Flags().BoolVar(&showOpts.endless, "endless", false,
		"Keep the banner until it is dismissed")
	showCmd.Flags().BoolVar(&showOpts.noDismiss, "no-dismiss", false,
		"Ignore taps and swipes")
	showCmd.Flags().StringVar(&showOpts.icon, "icon", "",
		"Icon name, replacing the design icon")
	showCmd.Flags().StringVar(&showOpts.button, "button", "",
		"Button title; pressing it dismisses the banner")
	showCmd.Flags().StringVar(&showOpts.background, "bg", "",
		"Background color override (hex)")
	showCmd.Flags().StringVar(&showOpts.foreground, "fg", "",
		"Text color override (hex)")
	showCmd.Flags().StringVar(&showOpts.sound, "sound", "",
		"Sound file to play instead of the type's sound")
	showCmd.Flags().BoolVar(&showOpts.stdin, "stdin", false,
		"Read further messages from standard input")
}

func runShow(cmd *cobra.Command, args []string) error {
	messages, err := buildMessages(args)
	if err != nil {
		return err
	}

	if showOpts.stdin {
		piped, err := input.NewStdinAdapter(cfg).Import(cmd.Context())
		if err != nil {
			return err
		}
		messages = append(messages, piped...)
	}
	if len(messages) == 0 {
		logger.Debug("no messages to show")
		return nil
	}

	return tui.Run(tui.RunOptions{
		Config: cfg,
		Styles: designs,
		Sound:  soundPlayer(cmd.Context()),
		Logger: logger,
		Options: tui.Options{
			Messages:     messages,
			QuitWhenIdle: true,
		},
		Customize: dismissOnButton,
		InputTTY:  showOpts.stdin,
	})
}

// dismissOnButton makes the button of a command line banner dismiss it.
func dismissOnButton(v *banner.View) {
	if title := v.ButtonTitle(); title != "" {
		v.SetButton(title, v.Dismiss)
	}
}

// buildMessages creates one message per title from the show flags.
func buildMessages(titles []string) ([]*model.Message, error) {
	for name, value := range map[string]string{"bg": showOpts.background, "fg": showOpts.foreground} {
		if value != "" && !color.Valid(value) {
			return nil, fmt.Errorf("invalid --%s color %q", name, value)
		}
	}
	if showOpts.duration < 0 {
		return nil, fmt.Errorf("invalid --duration %s, must not be negative", showOpts.duration)
	}

	t := model.ParseType(showOpts.msgType)
	if !model.Type(showOpts.msgType).Valid() {
		logger.Warn("unknown message type, using message", "type", showOpts.msgType)
	}

	messages := make([]*model.Message, 0, len(titles))
	for _, title := range titles {
		msg := model.NewMessage(title, showOpts.subtitle, t)
		msg.Position = model.Position(showOpts.position)
		if showOpts.position == "" {
			msg.Position = cfg.DefaultPosition()
		}
		msg.Duration = showOpts.duration
		if showOpts.endless {
			msg.Duration = model.DurationEndless
		}
		msg.UserDismissEnabled = cfg.Behavior.UserDismiss && !showOpts.noDismiss
		msg.Icon = showOpts.icon
		msg.Background = showOpts.background
		msg.Foreground = showOpts.foreground
		msg.Sound = showOpts.sound

		if showOpts.button != "" {
			msg.Button = &model.Button{Title: showOpts.button}
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
