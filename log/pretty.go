package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTrace = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleDim   = lipgloss.NewStyle().Faint(true)
	styleKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

func levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l < slog.LevelDebug:
		return styleTrace
	case l < slog.LevelInfo:
		return styleDebug
	case l < slog.LevelWarn:
		return styleInfo
	case l < slog.LevelError:
		return styleWarn
	default:
		return styleError
	}
}

// prettyHandler renders records as colorized single lines for terminals.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); !a.Equal(slog.Attr{}) {
			buf.WriteString(styleDim.Render(a.Value.String()))
			buf.WriteByte(' ')
		}
	}

	level := h.replace(slog.Any(slog.LevelKey, r.Level))
	buf.WriteString(levelStyle(r.Level).Render(level.Value.String()))
	buf.WriteByte(' ')

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf.WriteString(styleDim.Render(fmt.Sprintf("%s:%d", src.File, src.Line)))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(r.Message)

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

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			g.Key = a.Key + "." + g.Key
			h.writeAttr(buf, g)
		}

		return
	}

	a = h.replace(a)
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}

	buf.WriteByte(' ')
	buf.WriteString(styleKey.Render(key))
	buf.WriteByte('=')
	buf.WriteString(a.Value.String())
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(h.groups, a)
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(append([]string{}, h.groups...), name)

	return &c
}
