package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/logifold/internal/config"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBold  = "\033[1m"
)

// palette wraps text in ANSI escapes when enabled.
type palette struct {
	enabled bool
}

func (p palette) wrap(code, s string) string {
	if !p.enabled {
		return s
	}
	return code + s + colorReset
}

func (p palette) red(s string) string   { return p.wrap(colorRed, s) }
func (p palette) green(s string) string { return p.wrap(colorGreen, s) }
func (p palette) bold(s string) string  { return p.wrap(colorBold, s) }

// useColor decides whether output to w is colored. NO_COLOR and -no-color
// always win; in auto mode w must be a terminal.
func useColor(w io.Writer, mode string, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
