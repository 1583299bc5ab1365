package input

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/model"
)

// StdinAdapter reads message requests from standard input.
//
// Three formats are accepted:
//  1. A JSON array of entries
//  2. One JSON entry per line
//  3. Plain text, one message per line, "title" or "title<TAB>subtitle"
type StdinAdapter struct {
	reader io.Reader
	cfg    *config.Config
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin. cfg
// supplies the default position and dismissal, nil uses the defaults.
func NewStdinAdapter(cfg *config.Config) *StdinAdapter {
	return NewStdinAdapterWithReader(os.Stdin, cfg)
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader, cfg *config.Config) *StdinAdapter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &StdinAdapter{reader: r, cfg: cfg}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// stdinEntry is one message in the JSON formats.
type stdinEntry struct {
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle,omitempty"`
	Type        string          `json:"type,omitempty"`
	Position    string          `json:"position,omitempty"`
	Duration    config.Duration `json:"duration,omitempty"`
	Endless     bool            `json:"endless,omitempty"`
	UserDismiss *bool           `json:"user_dismiss,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Button      string          `json:"button,omitempty"`
	Background  string          `json:"background,omitempty"`
	Foreground  string          `json:"foreground,omitempty"`
	Sound       string          `json:"sound,omitempty"`
}

// Import reads all messages from the input.
func (a *StdinAdapter) Import(ctx context.Context) ([]*model.Message, error) {
	scanner := bufio.NewScanner(a.reader)
	const maxSize = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxSize)

	var lines [][]byte
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines = append(lines, bytes.Clone(scanner.Bytes()))
	}
	if err := scanner.Err(); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	data := bytes.TrimSpace(bytes.Join(lines, []byte("\n")))
	switch {
	case len(data) == 0:
		return nil, nil
	case data[0] == '[':
		return a.parseJSONArray(data)
	case data[0] == '{':
		return a.parseJSONLines(lines)
	default:
		return a.parsePlain(lines), nil
	}
}

func (a *StdinAdapter) parseJSONArray(data []byte) ([]*model.Message, error) {
	var entries []stdinEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to parse JSON input",
			Err:     err,
		}
	}

	messages := make([]*model.Message, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, a.convert(entry))
	}
	return messages, nil
}

func (a *StdinAdapter) parseJSONLines(lines [][]byte) ([]*model.Message, error) {
	var messages []*model.Message
	for i, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var entry stdinEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, &AdapterError{
				Source:  "stdin",
				Message: fmt.Sprintf("failed to parse JSON on line %d", i+1),
				Err:     err,
			}
		}
		messages = append(messages, a.convert(entry))
	}
	return messages, nil
}

func (a *StdinAdapter) parsePlain(lines [][]byte) []*model.Message {
	var messages []*model.Message
	for _, line := range lines {
		title, subtitle, _ := strings.Cut(string(line), "\t")
		title = sanitizeString(title)
		subtitle = sanitizeString(subtitle)
		if title == "" && subtitle == "" {
			continue
		}
		messages = append(messages, a.convert(stdinEntry{Title: title, Subtitle: subtitle}))
	}
	return messages
}

// convert builds a message from entry with the configured defaults.
func (a *StdinAdapter) convert(entry stdinEntry) *model.Message {
	msg := model.NewMessage(sanitizeString(entry.Title), sanitizeString(entry.Subtitle), model.ParseType(entry.Type))

	msg.Position = a.cfg.DefaultPosition()
	if entry.Position != "" {
		msg.Position = model.ParsePosition(entry.Position)
	}

	if d := entry.Duration.Duration(); d > 0 {
		msg.Duration = d
	}
	if entry.Endless {
		msg.Duration = model.DurationEndless
	}

	msg.UserDismissEnabled = a.cfg.Behavior.UserDismiss
	if entry.UserDismiss != nil {
		msg.UserDismissEnabled = *entry.UserDismiss
	}

	msg.Icon = entry.Icon
	msg.Background = entry.Background
	msg.Foreground = entry.Foreground
	msg.Sound = entry.Sound
	if entry.Button != "" {
		msg.Button = &model.Button{Title: entry.Button}
	}
	return msg
}

// sanitizeString replaces control characters, except newlines and tabs,
// with spaces and trims the result.
func sanitizeString(s string) string {
	var result strings.Builder
	for _, r := range s {
		if r < 32 && r != '\n' && r != '\t' {
			result.WriteRune(' ')
		} else {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
