// Package report carries the human-readable narration of a run. It is a
// side channel: nothing in the pipeline depends on what a Reporter does.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Reporter interface {
	Section(title string)
	Reportf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Styles
var (
	accentFg  = lipgloss.Color("#7C3AED")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	errorFg   = lipgloss.Color("#EF4444")

	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	lineStyle  = lipgloss.NewStyle()
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	errorStyle = lipgloss.NewStyle().Foreground(errorFg)
)

// Console writes styled lines, errors to a separate stream.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

func NewConsole(out, errOut io.Writer) *Console {
	return &Console{out: out, err: errOut}
}

// Stdio reports to the process stdout and stderr.
func Stdio() *Console {
	return NewConsole(os.Stdout, os.Stderr)
}

func (c *Console) Section(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(title))
}

func (c *Console) Reportf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	// indented continuation lines are detail
	if strings.HasPrefix(msg, "  ") {
		fmt.Fprintln(c.out, dimStyle.Render(msg))
		return
	}
	fmt.Fprintln(c.out, lineStyle.Render(msg))
}

func (c *Console) Errorf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.err, errorStyle.Render(fmt.Sprintf(format, args...)))
}

// Discard drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Section(string)         {}
func (discard) Reportf(string, ...any) {}
func (discard) Errorf(string, ...any)  {}

// Recorder keeps every line in memory, errors prefixed with "error: ".
type Recorder struct {
	mu    sync.Mutex
	Lines []string
}

func (r *Recorder) Section(title string) {
	r.add("== " + title)
}

func (r *Recorder) Reportf(format string, args ...any) {
	r.add(fmt.Sprintf(format, args...))
}

func (r *Recorder) Errorf(format string, args ...any) {
	r.add("error: " + fmt.Sprintf(format, args...))
}

func (r *Recorder) add(s string) {
	r.mu.Lock()
	r.Lines = append(r.Lines, s)
	r.mu.Unlock()
}

// Errors returns the recorded error lines without their prefix.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, l := range r.Lines {
		if s, ok := strings.CutPrefix(l, "error: "); ok {
			out = append(out, s)
		}
	}
	return out
}

// Contains reports whether any line contains sub.
func (r *Recorder) Contains(sub string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.Lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}
