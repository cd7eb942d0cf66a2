package report

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// errorPrefixColor highlights the ERROR: prefix on terminal output.
var errorPrefixColor = color.New(color.FgRed, color.Bold)

// ShouldColorize reports whether output to f is a terminal that supports
// color. Honors NO_COLOR via the color library's global flag.
func ShouldColorize(f *os.File) bool {
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
