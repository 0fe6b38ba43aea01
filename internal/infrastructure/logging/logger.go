// Package logging builds the process slog.Logger on top of charmbracelet/log.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type Options struct {
	Level      string // debug|info|warn|error
	Format     string // text|json|logfmt
	Prefix     string
	TimeFormat string
	Output     io.Writer
}

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
}

// New returns a slog.Logger backed by a charm handler. Unknown levels fall back
// to info, unknown formats to text.
func New(o Options) *slog.Logger {
	out := o.Output
	if out == nil {
		out = os.Stdout
	}
	level, err := log.ParseLevel(strings.ToLower(o.Level))
	if err != nil {
		level = log.InfoLevel
	}
	formatter, ok := formatters[strings.ToLower(o.Format)]
	if !ok {
		formatter = log.TextFormatter
	}

	h := log.NewWithOptions(out, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      o.TimeFormat,
		Level:           level,
		Prefix:          o.Prefix,
		Formatter:       formatter,
	})
	h.SetStyles(levelStyles())
	return slog.New(h)
}

var levelColors = map[log.Level]lipgloss.AdaptiveColor{
	log.DebugLevel: {Light: "#7E57C2", Dark: "#7E57C2"},
	log.InfoLevel:  {Light: "#04B575", Dark: "#04B575"},
	log.WarnLevel:  {Light: "#EE6FF8", Dark: "#EE6FF8"},
	log.ErrorLevel: {Light: "#FF6B6B", Dark: "#FF6B6B"},
}

// levelStyles colours level labels and the error key. Only the text
// formatter renders them; json and logfmt output are unaffected.
func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	for lvl, c := range levelColors {
		styles.Levels[lvl] = lipgloss.NewStyle().
			SetString(strings.ToUpper(lvl.String())).
			Bold(true).
			MaxWidth(5).
			Foreground(c)
	}
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel])
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)
	return styles
}

// Discard is for tests and tools that must not write logs.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
