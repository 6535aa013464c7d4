package scaffold

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propelauth/cli/internal/envfile"
	"github.com/propelauth/cli/internal/ui"
)

type fakeSystem struct {
	files    map[string]string
	readErr  error
	writeErr error
}

func newFakeSystem(files map[string]string) *fakeSystem {
	if files == nil {
		files = make(map[string]string)
	}
	return &fakeSystem{files: files}
}

func (s *fakeSystem) ReadFile(path string) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	content, ok := s.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(content), nil
}

func (s *fakeSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.files[path] = string(data)
	return nil
}

func (s *fakeSystem) MkdirAll(path string, perm os.FileMode) error {
	return nil
}

type fakeUI struct {
	confirm    bool
	confirmErr error
	confirms   int
}

func (u *fakeUI) Select(title string, options []ui.Option, value *string) error { return nil }

func (u *fakeUI) Confirm(title string, value *bool) error {
	u.confirms++
	if u.confirmErr != nil {
		return u.confirmErr
	}
	*value = u.confirm
	return nil
}

func (u *fakeUI) Input(title string, placeholder string, value *string) error { return nil }
func (u *fakeUI) SecretInput(title string, value *string) error               { return nil }

func newTestGate(sys *fakeSystem, u *fakeUI) (*Gate, *bytes.Buffer) {
	var out bytes.Buffer
	return &Gate{Sys: sys, UI: u, Out: &out}, &out
}

func TestReconcile_NotExists(t *testing.T) {
	sys := newFakeSystem(nil)
	prompts := &fakeUI{}
	gate, out := newTestGate(sys, prompts)

	status, err := gate.Reconcile("/app/middleware.ts", "content\n")

	require.NoError(t, err)
	assert.Equal(t, StatusWritten, status)
	assert.Equal(t, "content\n", sys.files["/app/middleware.ts"])
	assert.Zero(t, prompts.confirms)
	assert.Empty(t, out.String())
}

func TestReconcile_ExistsIdentical(t *testing.T) {
	sys := newFakeSystem(map[string]string{"/app/middleware.ts": "content\n"})
	prompts := &fakeUI{}
	gate, out := newTestGate(sys, prompts)

	status, err := gate.Reconcile("/app/middleware.ts", "content\n")

	require.NoError(t, err)
	assert.Equal(t, StatusIdentical, status)
	assert.Zero(t, prompts.confirms)
	assert.Empty(t, out.String())
}

func TestReconcile_ExistsDifferent_Accepted(t *testing.T) {
	sys := newFakeSystem(map[string]string{"/app/middleware.ts": "old\n"})
	prompts := &fakeUI{confirm: true}
	gate, out := newTestGate(sys, prompts)

	status, err := gate.Reconcile("/app/middleware.ts", "new\n")

	require.NoError(t, err)
	assert.Equal(t, StatusWritten, status)
	assert.Equal(t, "new\n", sys.files["/app/middleware.ts"])
	assert.Equal(t, 1, prompts.confirms)
	assert.Contains(t, out.String(), "-old")
	assert.Contains(t, out.String(), "+new")
}

func TestReconcile_ExistsDifferent_Declined(t *testing.T) {
	sys := newFakeSystem(map[string]string{"/app/middleware.ts": "old\n"})
	prompts := &fakeUI{confirm: false}
	gate, _ := newTestGate(sys, prompts)

	status, err := gate.Reconcile("/app/middleware.ts", "new\n")

	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, status)
	assert.Equal(t, "old\n", sys.files["/app/middleware.ts"])
}

func TestReconcile_PromptCancelled(t *testing.T) {
	sys := newFakeSystem(map[string]string{"/app/middleware.ts": "old\n"})
	prompts := &fakeUI{confirmErr: ui.ErrCancelled}
	gate, _ := newTestGate(sys, prompts)

	_, err := gate.Reconcile("/app/middleware.ts", "new\n")

	assert.True(t, ui.IsCancelled(err))
	assert.Equal(t, "old\n", sys.files["/app/middleware.ts"])
}

func TestReconcile_ReadError(t *testing.T) {
	sys := newFakeSystem(nil)
	sys.readErr = errors.New("permission denied")
	gate, _ := newTestGate(sys, &fakeUI{})

	_, err := gate.Reconcile("/app/middleware.ts", "content\n")
	assert.Error(t, err)
}

func TestWriteEnvEntries(t *testing.T) {
	sys := newFakeSystem(nil)
	gate, _ := newTestGate(sys, &fakeUI{})

	entries := EnvEntries("https://auth.example.com", "key-123", "verifier-key", "http://localhost:3000/api/auth/callback")
	changed, err := gate.WriteEnvEntries("/app/.env.local", entries)

	require.NoError(t, err)
	assert.True(t, changed)
	content := sys.files["/app/.env.local"]
	assert.Contains(t, content, "# Your PropelAuth instance URL\nNEXT_PUBLIC_AUTH_URL=https://auth.example.com\n")
	assert.Contains(t, content, "PROPELAUTH_API_KEY=key-123\n")
	assert.Contains(t, content, "PROPELAUTH_VERIFIER_KEY=verifier-key\n")
	assert.Contains(t, content, "PROPELAUTH_REDIRECT_URI=http://localhost:3000/api/auth/callback\n")
}

func TestWriteEnvEntries_ExistingKeysKept(t *testing.T) {
	sys := newFakeSystem(map[string]string{
		"/app/.env.local": "NEXT_PUBLIC_AUTH_URL=https://already.example.com\n",
	})
	gate, _ := newTestGate(sys, &fakeUI{})

	changed, err := gate.WriteEnvEntries("/app/.env.local", []envfile.Entry{
		{Key: "NEXT_PUBLIC_AUTH_URL", Value: "https://new.example.com"},
	})

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "NEXT_PUBLIC_AUTH_URL=https://already.example.com\n", sys.files["/app/.env.local"])
}
