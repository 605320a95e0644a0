// Package logging provides the process-wide slog handler: compact lines
// with a timestamp, a colored level badge and key=value attrs, written to
// stderr.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	timeStyle  = lipgloss.NewStyle().Faint(true)
	attrStyle  = lipgloss.NewStyle().Faint(true)
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Options configures the Handler.
type Options struct {
	Level    slog.Level
	UseColor bool
}

// Handler is a compact slog.Handler for CLI output.
type Handler struct {
	w       io.Writer
	opts    Options
	mu      *sync.Mutex
	attrs   []slog.Attr
	bufPool *sync.Pool
}

// NewHandler creates a Handler writing to w.
func NewHandler(w io.Writer, opts *Options) *Handler {
	h := &Handler{
		w:  w,
		mu: &sync.Mutex{},
		bufPool: &sync.Pool{
			New: func() any { return new(bytes.Buffer) },
		},
	}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Setup installs the handler as the default logger. Tracing enables debug
// records; it is switched on by flag or by the PRECO_TRACING variable.
func Setup(tracing bool) {
	level := slog.LevelInfo
	if tracing || os.Getenv("PRECO_TRACING") != "" {
		level = slog.LevelDebug
	}
	handler := NewHandler(os.Stderr, &Options{
		Level:    level,
		UseColor: isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}

// Enabled reports whether records at the given level are handled.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

// Handle formats and writes the record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufPool.Put(buf)

	h.writeTime(buf, r.Time)
	buf.WriteByte(' ')
	h.writeLevel(buf, r.Level)
	if r.Message != "" {
		buf.WriteByte(' ')
		buf.WriteString(r.Message)
	}

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)
		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a Handler carrying the extra attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		h2.attrs = append(h2.attrs, a)
	}
	return h2
}

// WithGroup returns the Handler unchanged; grouped attrs are flattened.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

func (h *Handler) clone() *Handler {
	return &Handler{
		w:       h.w,
		opts:    h.opts,
		mu:      h.mu,
		attrs:   append([]slog.Attr(nil), h.attrs...),
		bufPool: h.bufPool,
	}
}

func (h *Handler) writeTime(buf *bytes.Buffer, t time.Time) {
	stamp := t.Format("15:04:05.000")
	if h.opts.UseColor {
		stamp = timeStyle.Render(stamp)
	}
	buf.WriteString(stamp)
}

func (h *Handler) writeLevel(buf *bytes.Buffer, level slog.Level) {
	var label string
	var style lipgloss.Style
	switch {
	case level >= slog.LevelError:
		label, style = "ERR", errorStyle
	case level >= slog.LevelWarn:
		label, style = "WRN", warnStyle
	case level >= slog.LevelInfo:
		label, style = "INF", infoStyle
	default:
		label, style = "DBG", debugStyle
	}
	if h.opts.UseColor {
		label = style.Render(label)
	}
	buf.WriteString(label)
}

func (h *Handler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	text := a.Key + "=" + formatValue(a.Value)
	if h.opts.UseColor {
		text = attrStyle.Render(text)
	}
	buf.WriteByte(' ')
	buf.WriteString(text)
}

func formatValue(v slog.Value) string {
	s := fmt.Sprint(v.Any())
	if needsQuoting(s) {
		return fmt.Sprintf("%q", s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for i := range len(s) {
		c := s[i]
		if c <= ' ' || c == '"' || c == '\\' || c == '=' {
			return true
		}
	}
	return false
}
