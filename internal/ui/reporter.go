package ui

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/huh/spinner"
	"github.com/fatih/color"

	"github.com/propelauth/cli/internal/terminal"
)

// Reporter is the progress surface threaded through setup steps.
// Start/Stop bracket long-running work; Info, Warn, and Success emit lines.
type Reporter interface {
	Start(title string)
	Stop()
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Success(format string, args ...any)
}

// SpinnerReporter implements Reporter with a huh spinner on interactive
// terminals and plain lines otherwise.
type SpinnerReporter struct {
	out        io.Writer
	isTerminal func() bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSpinnerReporter creates a reporter writing to out.
func NewSpinnerReporter(out io.Writer) *SpinnerReporter {
	return &SpinnerReporter{out: out, isTerminal: terminal.IsInteractive}
}

// Start begins a spinner with the given title. A previous spinner, if any,
// is stopped first.
func (r *SpinnerReporter) Start(title string) {
	r.Stop()
	if !r.isTerminal() {
		_, _ = fmt.Fprintf(r.out, "%s...\n", title)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	r.mu.Lock()
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	go func() {
		defer close(done)
		_ = spinner.New().Title(title).Context(ctx).Run()
	}()
}

// Stop halts the active spinner, if any, and waits for its teardown so the
// next output line does not interleave with the renderer.
func (r *SpinnerReporter) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Info prints an informational line.
func (r *SpinnerReporter) Info(format string, args ...any) {
	r.Stop()
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

// Warn prints a yellow warning line.
func (r *SpinnerReporter) Warn(format string, args ...any) {
	r.Stop()
	_, _ = color.New(color.FgYellow).Fprintf(r.out, format+"\n", args...)
}

// Success prints a green success line.
func (r *SpinnerReporter) Success(format string, args ...any) {
	r.Stop()
	_, _ = color.New(color.FgGreen).Fprintf(r.out, format+"\n", args...)
}
