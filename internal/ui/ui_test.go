package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRunForm(t *testing.T, fn func(*huh.Form) error) {
	t.Helper()
	original := runFormFunc
	runFormFunc = fn
	t.Cleanup(func() { runFormFunc = original })
}

func TestHuhUI_RequiresTerminal(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return false }}
	var value string
	err := ui.Input("Title", "", &value)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestHuhUI_MapsUserAbortToErrCancelled(t *testing.T) {
	withRunForm(t, func(*huh.Form) error { return huh.ErrUserAborted })
	ui := &HuhUI{isTerminal: func() bool { return true }}

	var confirmed bool
	err := ui.Confirm("Continue?", &confirmed)
	assert.True(t, IsCancelled(err))
}

func TestHuhUI_PassesThroughFormErrors(t *testing.T) {
	formErr := errors.New("render failed")
	withRunForm(t, func(*huh.Form) error { return formErr })
	ui := &HuhUI{isTerminal: func() bool { return true }}

	var value string
	err := ui.Select("Pick", []Option{{Label: "a", Value: "a"}}, &value)
	assert.ErrorIs(t, err, formErr)
}

func TestHuhUI_SuccessfulForm(t *testing.T) {
	withRunForm(t, func(*huh.Form) error { return nil })
	ui := &HuhUI{isTerminal: func() bool { return true }}

	var value string
	assert.NoError(t, ui.SecretInput("API key", &value))
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(ErrCancelled))
	assert.False(t, IsCancelled(errors.New("other")))
	assert.False(t, IsCancelled(nil))
}

func TestSpinnerReporter_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewSpinnerReporter(&buf)
	r.isTerminal = func() bool { return false }

	r.Start("Fetching projects")
	r.Stop()
	r.Info("found %d projects", 2)
	r.Warn("skipping %s", "layout.tsx")
	r.Success("done")

	out := buf.String()
	assert.Contains(t, out, "Fetching projects...")
	assert.Contains(t, out, "found 2 projects")
	assert.Contains(t, out, "skipping layout.tsx")
	assert.Contains(t, out, "done")
}

func TestSpinnerReporter_StopWithoutStart(t *testing.T) {
	r := NewSpinnerReporter(&bytes.Buffer{})
	assert.NotPanics(t, func() { r.Stop() })
}
