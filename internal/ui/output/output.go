// Package output provides utilities for creating termenv.Output with consistent
// color profile and TTY handling across the CLI.
package output

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/unify/internal/ui/style"
)

// ColorProfile returns the color profile to use for terminal output.
// It checks if NO_COLOR is set, returning Ascii if so.
// Otherwise, it detects the terminal's capabilities automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output with the specific profile logic.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// ColorDiff colors the added and removed lines of a unified diff.
func ColorDiff(out *termenv.Output, diff string) string {
	if diff == "" {
		return ""
	}
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(out.String(line).Bold().String())
		case strings.HasPrefix(line, "@@"):
			b.WriteString(out.String(line).Foreground(termenv.RGBColor(string(style.Iris))).String())
		case strings.HasPrefix(line, "+"):
			b.WriteString(out.String(line).Foreground(termenv.RGBColor(string(style.Green))).String())
		case strings.HasPrefix(line, "-"):
			b.WriteString(out.String(line).Foreground(termenv.RGBColor(string(style.Red))).String())
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}
