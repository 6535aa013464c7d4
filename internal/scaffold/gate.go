// Package scaffold generates auth wiring files in the target app: route
// handlers, middleware, and .env.local entries. Every file write goes
// through a reconciliation gate that diffs against existing content and
// asks before overwriting.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/propelauth/cli/internal/diffview"
	"github.com/propelauth/cli/internal/fsutil"
	"github.com/propelauth/cli/internal/messages"
	"github.com/propelauth/cli/internal/ui"
)

// System abstracts the filesystem operations the gate performs.
type System interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// RealSystem is the production System backed by the OS, with atomic
// full-file writes.
type RealSystem struct{}

func (RealSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (RealSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(path, data, perm)
}

func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Status is the outcome of one gate pass over a file.
type Status int

const (
	// StatusWritten means the file was created or overwritten.
	StatusWritten Status = iota
	// StatusIdentical means the file already had the desired content.
	StatusIdentical
	// StatusSkipped means the file differed and the user declined the
	// overwrite.
	StatusSkipped
)

// Gate reconciles desired file content against what is on disk. A missing
// file is written outright; identical content is a no-op; differing content
// is shown as a diff and overwritten only with consent.
type Gate struct {
	Sys System
	UI  ui.UI
	Out io.Writer
}

// NewGate returns a Gate over the real filesystem.
func NewGate(u ui.UI, out io.Writer) *Gate {
	return &Gate{Sys: RealSystem{}, UI: u, Out: out}
}

// Reconcile drives one file through the gate. Cancellation during the
// overwrite prompt propagates ui.ErrCancelled so the caller can stop the
// whole run.
func (g *Gate) Reconcile(path string, content string) (Status, error) {
	existing, err := g.Sys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := g.write(path, content); err != nil {
			return StatusSkipped, err
		}
		return StatusWritten, nil
	}
	if err != nil {
		return StatusSkipped, fmt.Errorf(messages.ScaffoldReadErrFmt, path, err)
	}

	if string(existing) == content {
		return StatusIdentical, nil
	}

	diff := diffview.Unified(path, path+" (proposed)", string(existing), content)
	fmt.Fprintln(g.Out, diffview.Colorize(diff))

	var overwrite bool
	if err := g.UI.Confirm(fmt.Sprintf(messages.ScaffoldOverwritePromptFmt, path), &overwrite); err != nil {
		return StatusSkipped, err
	}
	if !overwrite {
		return StatusSkipped, nil
	}
	if err := g.write(path, content); err != nil {
		return StatusSkipped, err
	}
	return StatusWritten, nil
}

func (g *Gate) write(path string, content string) error {
	if err := g.Sys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.ScaffoldMkdirErrFmt, filepath.Dir(path), err)
	}
	if err := g.Sys.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf(messages.ScaffoldWriteErrFmt, path, err)
	}
	return nil
}
