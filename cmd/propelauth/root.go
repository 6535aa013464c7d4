package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/propelauth/cli/internal/api"
	"github.com/propelauth/cli/internal/config"
	"github.com/propelauth/cli/internal/messages"
	"github.com/propelauth/cli/internal/ui"
)

// apiClient is the remote surface commands depend on. Tests swap
// newAPIClientFunc for a fake.
type apiClient interface {
	Whoami(ctx context.Context) error
	ListProjects(ctx context.Context) ([]api.Project, error)
	FetchBeIntegration(ctx context.Context, orgID string, projectID string) (*api.BeIntegration, error)
	UpdateBeIntegration(ctx context.Context, orgID string, projectID string, settings api.BeIntegration) error
	CreateAPIKey(ctx context.Context, orgID string, projectID string, name string) (*api.APIKeyResult, error)
}

// Seams for tests.
var (
	getwd            = os.Getwd
	loadConfigFunc   = config.Load
	saveConfigFunc   = config.Save
	newUIFunc        = func() ui.UI { return ui.NewHuhUI() }
	newAPIClientFunc = func(apiKey string) apiClient { return api.NewClient(apiKey) }
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newProjectCmd())

	return cmd
}

// chooseProject picks the project setup targets: the stored default when the
// user opted into one, otherwise a prompt over the projects the API key can
// access.
func chooseProject(ctx context.Context, client apiClient, prompts ui.UI, cfg *config.Config) (config.ProjectInfo, error) {
	if cfg.ProjectSelection.Option == config.SelectionUseDefault && cfg.ProjectSelection.DefaultProject != nil {
		return *cfg.ProjectSelection.DefaultProject, nil
	}
	return promptForProject(ctx, client, prompts)
}

// promptForProject lists the user's projects and asks for one. A single
// project is selected without prompting.
func promptForProject(ctx context.Context, client apiClient, prompts ui.UI) (config.ProjectInfo, error) {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return config.ProjectInfo{}, err
	}
	if len(projects) == 0 {
		return config.ProjectInfo{}, errNoProjects
	}
	if len(projects) == 1 {
		return projectInfo(projects[0]), nil
	}

	options := make([]ui.Option, len(projects))
	byID := make(map[string]api.Project, len(projects))
	for i, project := range projects {
		id := project.OrgID + "/" + project.ProjectID
		options[i] = ui.Option{Label: project.DisplayName, Value: id}
		byID[id] = project
	}

	var selected string
	if err := prompts.Select(messages.ProjectSelectPrompt, options, &selected); err != nil {
		return config.ProjectInfo{}, err
	}
	return projectInfo(byID[selected]), nil
}

func projectInfo(p api.Project) config.ProjectInfo {
	return config.ProjectInfo{
		OrgID:       p.OrgID,
		ProjectID:   p.ProjectID,
		DisplayName: p.DisplayName,
	}
}
