// Package ui provides the interactive prompt surface and progress reporting.
//
// All prompt methods return ErrCancelled when the user aborts, so commands
// decide exit behavior in one place instead of terminating mid-prompt.
package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/propelauth/cli/internal/messages"
	"github.com/propelauth/cli/internal/terminal"
)

// ErrCancelled indicates the user deliberately aborted a prompt.
// It is not an error condition; top-level commands translate it to exit 0.
var ErrCancelled = errors.New(messages.UICancelled)

// IsCancelled reports whether err represents a user-driven abort.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// Option is a labeled value for select prompts.
type Option struct {
	Label string
	Value string
}

// UI defines the interaction methods used by commands.
type UI interface {
	Select(title string, options []Option, value *string) error
	Confirm(title string, value *bool) error
	Input(title string, placeholder string, value *string) error
	SecretInput(title string, value *string) error
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI using the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

// ensureInteractive returns an error when the UI is invoked without a terminal.
func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.UIRequiresTerminal)
}

// promptKeyMap returns the keymap for setup prompts. Both Esc and Ctrl+C
// abort the form; there is no back navigation in this CLI's flows.
func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// formFilter converts InterruptMsg (huh's CancelCmd or an external SIGINT)
// to QuitMsg so bubbletea takes the graceful shutdown path and the renderer
// clears the form output before the process decides how to exit.
func formFilter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if _, ok := msg.(tea.InterruptMsg); ok {
			return tea.QuitMsg{}
		}
		return msg
	}
}

// runForm validates terminal availability and runs the provided form.
// A user abort is mapped to ErrCancelled.
func (ui *HuhUI) runForm(form *huh.Form) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}

	form.WithKeyMap(promptKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithFilter(formFilter()),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// Select renders a single-choice prompt.
func (ui *HuhUI) Select(title string, options []Option, value *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, o.Value)
	}

	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(value),
		),
	))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(value),
		),
	))
}

// Input renders a plain text input prompt.
func (ui *HuhUI) Input(title string, placeholder string, value *string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(value),
		),
	))
}

// SecretInput renders a masked input prompt for secrets.
func (ui *HuhUI) SecretInput(title string, value *string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(value).
				EchoMode(huh.EchoModePassword),
		),
	))
}
