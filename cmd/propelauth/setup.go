package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/propelauth/cli/internal/jsx"
	"github.com/propelauth/cli/internal/messages"
	"github.com/propelauth/cli/internal/nextjs"
	"github.com/propelauth/cli/internal/reconcile"
	"github.com/propelauth/cli/internal/scaffold"
	"github.com/propelauth/cli/internal/ui"
)

// clientPackage is the npm package the scaffolded code imports.
const clientPackage = "@propelauth/nextjs"

// Seams for tests.
var (
	detectProjectFunc = nextjs.Detect
	newReporterFunc   = func(out io.Writer) ui.Reporter { return ui.NewSpinnerReporter(out) }
	newGateFunc       = func(prompts ui.UI, out io.Writer) *scaffold.Gate { return scaffold.NewGate(prompts, out) }
	runInstallFunc    = runInstall
	readFileFunc      = os.ReadFile
)

func newSetupCmd() *cobra.Command {
	var skipInstall bool

	cmd := &cobra.Command{
		Use:   messages.SetupUse,
		Short: messages.SetupShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFunc()
			if err != nil {
				return err
			}
			if !cfg.IsAuthenticated() {
				return fmt.Errorf(messages.NotLoggedInLoginHint)
			}

			root, err := resolveTargetDir(args)
			if err != nil {
				return err
			}

			project, ok, err := detectProjectFunc(root)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf(messages.SetupNotNextAppFmt, root)
			}
			if project.LayoutPath == "" && project.AppFilePath == "" {
				return fmt.Errorf(messages.SetupNoLayoutFmt, root)
			}

			prompts := newUIFunc()
			reporter := newReporterFunc(cmd.ErrOrStderr())
			gate := newGateFunc(prompts, cmd.ErrOrStderr())
			client := newAPIClientFunc(cfg.APIKey)

			selected, err := chooseProject(cmd.Context(), client, prompts, cfg)
			if err != nil {
				return err
			}
			reporter.Info(messages.SetupTargetProjectFmt, selected.DisplayName)

			return runSetup(cmd.Context(), setupDeps{
				client:   client,
				prompts:  prompts,
				reporter: reporter,
				gate:     gate,
			}, project, selected.OrgID, selected.ProjectID, skipInstall)
		},
	}

	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, messages.SetupSkipInstallFlagHelp)

	return cmd
}

type setupDeps struct {
	client   apiClient
	prompts  ui.UI
	reporter ui.Reporter
	gate     *scaffold.Gate
}

// runSetup performs the scaffolding steps against an already selected
// project. Cancellation aborts the run; a failed provider insertion degrades
// to printed manual instructions.
func runSetup(ctx context.Context, deps setupDeps, project *nextjs.Project, orgID string, projectID string, skipInstall bool) error {
	reporter := deps.reporter

	reporter.Start(messages.SetupFetchingSettings)
	integration, err := deps.client.FetchBeIntegration(ctx, orgID, projectID)
	reporter.Stop()
	if err != nil {
		return err
	}

	reporter.Start(messages.SetupCreatingAPIKey)
	keyResult, err := deps.client.CreateAPIKey(ctx, orgID, projectID, messages.SetupAPIKeyName)
	reporter.Stop()
	if err != nil {
		return err
	}

	testEnv := reconcile.Localhost(project.DetectPort())
	redirectURI := testEnv.String() + reconcile.DesiredLoginRedirectPath

	envPath := filepath.Join(project.Root, ".env.local")
	entries := scaffold.EnvEntries(integration.AuthURL, keyResult.APIKey, integration.VerifierKey, redirectURI)
	changed, err := deps.gate.WriteEnvEntries(envPath, entries)
	if err != nil {
		return err
	}
	if changed {
		reporter.Success(messages.SetupEnvWrittenFmt, envPath)
	} else {
		reporter.Info(messages.SetupEnvUnchangedFmt, envPath)
	}

	if !skipInstall {
		manager := nextjs.DetectPackageManager(project.Root)
		name, installArgs := manager.InstallArgs(clientPackage)
		reporter.Start(fmt.Sprintf(messages.SetupInstallingFmt, clientPackage, manager))
		err := runInstallFunc(ctx, project.Root, name, installArgs)
		reporter.Stop()
		if err != nil {
			return fmt.Errorf(messages.SetupInstallErrFmt, clientPackage, err)
		}
	}

	if err := writeGenerated(deps, project); err != nil {
		return err
	}
	if err := insertProvider(deps, project); err != nil {
		return err
	}

	reconciler := &reconcile.Reconciler{Settings: deps.client, UI: deps.prompts, Reporter: reporter}
	if err := reconciler.Run(ctx, orgID, projectID, testEnv); err != nil {
		return err
	}

	reporter.Success(messages.SetupComplete)
	return nil
}

// writeGenerated drives the route handler and middleware through the gate.
func writeGenerated(deps setupDeps, project *nextjs.Project) error {
	routePath := scaffold.RouteFilePath(project)
	route := scaffold.RouteHandler(project.NextMajor)
	if !project.UsesAppRouter() {
		route = scaffold.PagesRouteHandler(project.NextMajor)
	}
	if err := reportGateResult(deps, routePath, route); err != nil {
		return err
	}

	if project.UsesAppRouter() {
		middlewarePath := scaffold.MiddlewareFilePath(project)
		if err := reportGateResult(deps, middlewarePath, scaffold.Middleware()); err != nil {
			return err
		}
	}
	return nil
}

func reportGateResult(deps setupDeps, path string, content string) error {
	status, err := deps.gate.Reconcile(path, content)
	if err != nil {
		return err
	}
	switch status {
	case scaffold.StatusWritten:
		deps.reporter.Success(messages.SetupFileWrittenFmt, path)
	case scaffold.StatusIdentical:
		deps.reporter.Info(messages.SetupFileUnchangedFmt, path)
	case scaffold.StatusSkipped:
		deps.reporter.Warn(messages.SetupFileSkippedFmt, path)
	}
	return nil
}

// insertProvider mutates the root layout (app router) or _app file (pages
// router) to wrap content in the auth provider. Failure to find an insertion
// point is a warning with manual instructions, never a crash.
func insertProvider(deps setupDeps, project *nextjs.Project) error {
	path := project.LayoutPath
	mutate := jsx.MutateLayout
	if !project.UsesAppRouter() {
		path = project.AppFilePath
		mutate = jsx.MutateAppFile
	}

	content, err := readFileFunc(path)
	if err != nil {
		return fmt.Errorf(messages.SetupReadSourceErrFmt, path, err)
	}

	result := mutate(string(content))
	switch {
	case result.HasAuthProvider:
		deps.reporter.Info(messages.SetupProviderPresentFmt, path)
		return nil
	case !result.Modified:
		deps.reporter.Warn(messages.SetupProviderManualFmt, path)
		deps.reporter.Info(messages.SetupProviderInstructions)
		return nil
	}

	return reportGateResult(deps, path, result.UpdatedContent)
}

// resolveTargetDir picks the setup target: the positional argument when
// given, otherwise the working directory.
func resolveTargetDir(args []string) (string, error) {
	if len(args) == 1 {
		return filepath.Abs(args[0])
	}
	return getwd()
}

// runInstall executes the package manager in the project directory. Stdout
// is suppressed so installer noise does not fight the spinner; stderr passes
// through for real failures.
func runInstall(ctx context.Context, dir string, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = io.Discard
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf(messages.SetupInstallExitFmt, name, exitErr.ExitCode())
		}
		return err
	}
	return nil
}
