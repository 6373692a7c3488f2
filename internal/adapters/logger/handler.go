package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/unify/internal/ui/output"
	"go.trai.ch/unify/internal/ui/style"
)

const (
	// errorAttr is the record attribute carrying the error passed to Logger.Error.
	errorAttr = "error"
	// outputKey is the error metadata key holding captured build tool output.
	outputKey = "output"
)

// messager describes an error that can report its own message without the chain.
type messager interface {
	Message() string
}

// metadater describes an error that carries key-value metadata.
type metadater interface {
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// consoleHandler renders records for a terminal. Errors attached under
// errorAttr are expanded into their chain of causes with metadata.
type consoleHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &consoleHandler{
		out:   output.New(w),
		level: level,
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrs = append(attrs, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		if err, ok := attr.Value.Any().(error); ok && attr.Key == errorAttr {
			msg = formatErrorEntries(collectErrorEntries(err))
			return true
		}
		attrs = append(attrs, formatAttr(h.group, attr))
		return true
	})
	if len(attrs) > 0 {
		msg += " " + strings.Join(attrs, " ")
	}

	var color termenv.Color
	switch r.Level {
	case slog.LevelWarn:
		msg = style.Warning + " " + msg
		color = termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		msg = style.Cross + " " + msg
		color = termenv.RGBColor(string(style.Red))
	default:
		color = termenv.RGBColor(string(style.Slate))
	}

	_, err := h.out.WriteString(h.out.String(msg).Foreground(color).String() + "\n")
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(slices.Clip(h.attrs), attrs...)
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.group = name
	return &next
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}

// collectErrorEntries walks the error chain. Joined errors contribute the
// entries of each of their members in order.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		if joined, ok := current.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				entries = append(entries, collectErrorEntries(e)...)
			}
			break
		}

		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadater); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}
	return entries
}

func formatErrorEntries(entries []ErrorEntry) string {
	lines := make([]string, 0, len(entries)*2)

	for i, e := range entries {
		msgLines := strings.Split(e.Message, "\n")

		first, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			first, indent = "    → ", "      "
		}

		lines = append(lines, first+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		lines = append(lines, formatMetadata(e.Metadata, indent)...)
	}

	return strings.Join(lines, "\n")
}

// formatMetadata lists metadata sorted by key. Build tool output goes last,
// quoted line by line.
func formatMetadata(md map[string]any, indent string) []string {
	var lines []string
	for _, k := range slices.Sorted(maps.Keys(md)) {
		if k != outputKey {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, md[k]))
		}
	}

	raw, ok := md[outputKey]
	if !ok {
		return lines
	}
	text := strings.TrimRight(strings.ReplaceAll(fmt.Sprint(raw), "\r\n", "\n"), "\n")
	if text == "" {
		return lines
	}
	lines = append(lines, indent+outputKey+":")
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimRight(indent+"  | "+line, " "))
	}
	return lines
}
