package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/propelauth/cli/internal/api"
	"github.com/propelauth/cli/internal/config"
	"github.com/propelauth/cli/internal/ui"
)

// fakeClient scripts the remote API for command tests.
type fakeClient struct {
	whoamiErr       error
	whoamiCalls     int
	projects        []api.Project
	listErr         error
	integration     *api.BeIntegration
	fetchErr        error
	updated         *api.BeIntegration
	updateErr       error
	createdKeyName  string
	apiKey          string
	createKeyErr    error
	lastClientKey   string
	integrationOrg  string
	integrationProj string
}

func (c *fakeClient) Whoami(ctx context.Context) error {
	c.whoamiCalls++
	return c.whoamiErr
}

func (c *fakeClient) ListProjects(ctx context.Context) ([]api.Project, error) {
	return c.projects, c.listErr
}

func (c *fakeClient) FetchBeIntegration(ctx context.Context, orgID string, projectID string) (*api.BeIntegration, error) {
	c.integrationOrg = orgID
	c.integrationProj = projectID
	return c.integration, c.fetchErr
}

func (c *fakeClient) UpdateBeIntegration(ctx context.Context, orgID string, projectID string, settings api.BeIntegration) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	c.updated = &settings
	return nil
}

func (c *fakeClient) CreateAPIKey(ctx context.Context, orgID string, projectID string, name string) (*api.APIKeyResult, error) {
	if c.createKeyErr != nil {
		return nil, c.createKeyErr
	}
	c.createdKeyName = name
	return &api.APIKeyResult{APIKey: c.apiKey}, nil
}

// scriptedUI replays queued prompt answers.
type scriptedUI struct {
	selects   []string
	secrets   []string
	inputs    []string
	confirms  []bool
	promptErr error
}

func (u *scriptedUI) next(queue *[]string) string {
	if len(*queue) == 0 {
		return ""
	}
	head := (*queue)[0]
	*queue = (*queue)[1:]
	return head
}

func (u *scriptedUI) Select(title string, options []ui.Option, value *string) error {
	if u.promptErr != nil {
		return u.promptErr
	}
	*value = u.next(&u.selects)
	return nil
}

func (u *scriptedUI) Confirm(title string, value *bool) error {
	if u.promptErr != nil {
		return u.promptErr
	}
	if len(u.confirms) > 0 {
		*value = u.confirms[0]
		u.confirms = u.confirms[1:]
	}
	return nil
}

func (u *scriptedUI) Input(title string, placeholder string, value *string) error {
	if u.promptErr != nil {
		return u.promptErr
	}
	*value = u.next(&u.inputs)
	return nil
}

func (u *scriptedUI) SecretInput(title string, value *string) error {
	if u.promptErr != nil {
		return u.promptErr
	}
	*value = u.next(&u.secrets)
	return nil
}

// withSeams installs in-memory config storage and the provided fakes,
// restoring the real implementations afterwards.
func withSeams(t *testing.T, cfg *config.Config, client *fakeClient, prompts *scriptedUI) *config.Config {
	t.Helper()

	saved := *cfg
	origLoad, origSave := loadConfigFunc, saveConfigFunc
	origUI, origClient := newUIFunc, newAPIClientFunc
	loadConfigFunc = func() (*config.Config, error) {
		copied := saved
		return &copied, nil
	}
	saveConfigFunc = func(c *config.Config) error {
		saved = *c
		return nil
	}
	newUIFunc = func() ui.UI { return prompts }
	newAPIClientFunc = func(apiKey string) apiClient {
		client.lastClientKey = apiKey
		return client
	}
	t.Cleanup(func() {
		loadConfigFunc, saveConfigFunc = origLoad, origSave
		newUIFunc, newAPIClientFunc = origUI, origClient
	})
	return &saved
}

// runCommand executes the root command with args, capturing output.
func runCommand(args ...string) (string, string, error) {
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
