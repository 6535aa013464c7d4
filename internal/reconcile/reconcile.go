package reconcile

import (
	"context"
	"fmt"

	"github.com/propelauth/cli/internal/api"
	"github.com/propelauth/cli/internal/messages"
	"github.com/propelauth/cli/internal/ui"
)

// Redirect paths the scaffolded route handlers serve.
const (
	DesiredLoginRedirectPath  = "/api/auth/callback"
	DesiredLogoutRedirectPath = "/api/auth/logout"
)

// Change is one settings field that differs from its desired value.
type Change struct {
	Field   string
	Current string
	Desired string
}

// Plan compares current settings against what the scaffolded app needs and
// returns the differing fields. An empty plan means the dashboard is already
// configured.
func Plan(current *api.BeIntegration, testEnv TestEnv) []Change {
	var changes []Change
	if current.LoginRedirectPath != DesiredLoginRedirectPath {
		changes = append(changes, Change{
			Field:   "login redirect path",
			Current: current.LoginRedirectPath,
			Desired: DesiredLoginRedirectPath,
		})
	}
	if current.LogoutRedirectPath != DesiredLogoutRedirectPath {
		changes = append(changes, Change{
			Field:   "logout redirect path",
			Current: current.LogoutRedirectPath,
			Desired: DesiredLogoutRedirectPath,
		})
	}
	if ParseTestEnv(current.TestEnv) != testEnv {
		changes = append(changes, Change{
			Field:   "test environment",
			Current: current.TestEnv,
			Desired: testEnv.String(),
		})
	}
	return changes
}

// desired returns the full settings object to upload: current settings with
// the managed fields replaced. The API only accepts whole-object updates.
func desired(current *api.BeIntegration, testEnv TestEnv) api.BeIntegration {
	updated := *current
	updated.LoginRedirectPath = DesiredLoginRedirectPath
	updated.LogoutRedirectPath = DesiredLogoutRedirectPath
	updated.TestEnv = testEnv.String()
	return updated
}

// Settings is the remote API surface the reconciler needs.
type Settings interface {
	FetchBeIntegration(ctx context.Context, orgID string, projectID string) (*api.BeIntegration, error)
	UpdateBeIntegration(ctx context.Context, orgID string, projectID string, settings api.BeIntegration) error
}

// Reconciler fetches a project's dashboard settings, shows the differences,
// and applies them in a single update after confirmation.
type Reconciler struct {
	Settings Settings
	UI       ui.UI
	Reporter ui.Reporter
}

// Run reconciles one project's settings against the desired test
// environment. A declined update is a warning, not an error; cancellation
// during the prompt propagates for the caller's exit policy.
func (r *Reconciler) Run(ctx context.Context, orgID string, projectID string, testEnv TestEnv) error {
	r.Reporter.Start(messages.ReconcileFetching)
	current, err := r.Settings.FetchBeIntegration(ctx, orgID, projectID)
	r.Reporter.Stop()
	if err != nil {
		return fmt.Errorf(messages.ReconcileFetchErrFmt, err)
	}

	changes := Plan(current, testEnv)
	if len(changes) == 0 {
		r.Reporter.Success(messages.ReconcileUpToDate)
		return nil
	}

	r.Reporter.Info(messages.ReconcileChangesHeader)
	for _, change := range changes {
		currentValue := change.Current
		if currentValue == "" {
			currentValue = messages.ReconcileUnsetValue
		}
		r.Reporter.Info(messages.ReconcileChangeLineFmt, change.Field, currentValue, change.Desired)
	}

	var apply bool
	if err := r.UI.Confirm(messages.ReconcileConfirmPrompt, &apply); err != nil {
		return err
	}
	if !apply {
		r.Reporter.Warn(messages.ReconcileDeclined)
		return nil
	}

	r.Reporter.Start(messages.ReconcileUpdating)
	err = r.Settings.UpdateBeIntegration(ctx, orgID, projectID, desired(current, testEnv))
	r.Reporter.Stop()
	if err != nil {
		return fmt.Errorf(messages.ReconcileUpdateErrFmt, err)
	}
	r.Reporter.Success(messages.ReconcileUpdated)
	return nil
}
