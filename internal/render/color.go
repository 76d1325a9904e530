package render

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"dialogedit/internal/config"
	"dialogedit/internal/dialogue"
)

const ansiReset = "\x1b[0m"

// ShouldColorize resolves a display.color mode against the writer. In auto
// mode only terminals get colour; NO_COLOR disables auto colour entirely.
func ShouldColorize(w io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Swatch returns a two-cell block painted in the given colour, or "" when the
// value does not parse.
func Swatch(hex string) string {
	c, err := dialogue.ParseColor(hex)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  %s", c.R, c.G, c.B, ansiReset)
}

// Paint renders s in the given foreground colour, or returns s unchanged when
// the colour does not parse.
func Paint(s, hex string) string {
	c, err := dialogue.ParseColor(hex)
	if err != nil {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s%s", c.R, c.G, c.B, s, ansiReset)
}
