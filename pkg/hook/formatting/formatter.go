// Package formatting renders the per-hook status lines.
package formatting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// lineWidth is the total status line width, dots included.
const lineWidth = 79

var (
	passedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0"))
	failedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15"))
	skippedStyle = lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0"))
)

// Formatter writes one status line per hook, padded with dots to a fixed
// width the way pre-commit renders its progress.
type Formatter struct {
	out   io.Writer
	color bool
}

// NewFormatter writes status lines to out. Styling is dropped when color
// is false, for non-TTY output.
func NewFormatter(out io.Writer, color bool) *Formatter {
	return &Formatter{out: out, color: color}
}

// Passed renders a green success line.
func (f *Formatter) Passed(name string, duration time.Duration) {
	f.line(name, "Passed", passedStyle, durationSuffix(duration))
}

// Failed renders a red failure line.
func (f *Formatter) Failed(name string, duration time.Duration) {
	f.line(name, "Failed", failedStyle, durationSuffix(duration))
}

// Skipped renders a yellow skip line carrying the reason.
func (f *Formatter) Skipped(name, reason string) {
	suffix := ""
	if reason != "" {
		suffix = " (" + reason + ")"
	}
	f.line(name, "Skipped", skippedStyle, suffix)
}

// line pads name with dots so the plain-text rendering lands on the fixed
// width, then applies the badge style to the status word only.
func (f *Formatter) line(name, status string, style lipgloss.Style, suffix string) {
	dotsLen := max(lineWidth-len(name)-len(status)-len(suffix), 1)
	dots := strings.Repeat(".", dotsLen)

	rendered := status
	if f.color {
		rendered = style.Render(status)
	}
	fmt.Fprintf(f.out, "%s%s%s%s\n", name, dots, rendered, suffix)
}

// durationSuffix appends noticeable runtimes to the status, leaving fast
// hooks uncluttered.
func durationSuffix(d time.Duration) string {
	if d < 2*time.Second {
		return ""
	}
	return fmt.Sprintf(" (%.1fs)", d.Seconds())
}
