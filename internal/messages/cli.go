package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "propelauth"
	// RootShort is the short description for the root command.
	RootShort = "PropelAuth CLI"

	// VersionCommitFmt formats the version with its commit hash.
	VersionCommitFmt = "%s (commit %s)"
	VersionBuildFmt  = "%s, built %s"
	VersionTemplate  = "{{.Version}}\n"

	// Cancelled is printed when the user aborts a prompt.
	Cancelled = "Cancelled."

	NotLoggedIn          = "not logged in; run 'propelauth login' first"
	NotLoggedInLoginHint = "you need to log in before running setup; run 'propelauth login' first"
	NoProjects           = "no projects are available to this API key"

	// LoginUse is the login command name.
	LoginUse             = "login"
	LoginShort           = "Authenticate with your PropelAuth API key"
	LoginKeyPrompt       = "PropelAuth API key"
	LoginAPIKeyFlagHelp  = "API key to validate and store (skips the prompt)"
	LoginEmptyKey        = "API key cannot be empty."
	LoginInvalidKey      = "the provided API key was rejected"
	LoginInvalidKeyRetry = "That API key was rejected. Try again."
	LoginSuccess         = "Logged in."

	LogoutUse         = "logout"
	LogoutShort       = "Remove the stored API key"
	LogoutNotLoggedIn = "No API key is stored."
	LogoutSuccess     = "Logged out."

	// ProjectUse is the project command name.
	ProjectUse              = "project"
	ProjectShort            = "Configure how setup picks a project"
	ProjectModePrompt       = "How should setup choose a project?"
	ProjectOptionAlwaysAsk  = "Ask every time"
	ProjectOptionUseDefault = "Use a default project"
	ProjectSelectPrompt     = "Select a project"
	ProjectDefaultSavedFmt  = "Default project set to %s\n"
	ProjectAlwaysAskSaved   = "Setup will ask for a project on each run."

	// SetupUse is the setup command usage.
	SetupUse                 = "setup [dir]"
	SetupShort               = "Scaffold PropelAuth into a Next.js app"
	SetupSkipInstallFlagHelp = "Skip installing the @propelauth/nextjs package"
	SetupAPIKeyName          = "nextjs-integration"
	SetupTargetProjectFmt    = "Using project %s"
	SetupFetchingSettings    = "Fetching project settings"
	SetupCreatingAPIKey      = "Creating a backend API key"
	SetupInstallingFmt       = "Installing %s with %s"
	SetupEnvWrittenFmt       = "Wrote environment variables to %s"
	SetupEnvUnchangedFmt     = "%s already has all required entries"
	SetupFileWrittenFmt      = "Wrote %s"
	SetupFileUnchangedFmt    = "%s is already up to date"
	SetupFileSkippedFmt      = "Skipped %s"
	SetupProviderPresentFmt  = "AuthProvider is already present in %s"
	SetupProviderManualFmt   = "Could not insert AuthProvider into %s automatically"
	SetupProviderInstructions = "Add it manually:\n" +
		"  import { AuthProvider } from \"@propelauth/nextjs/client\";\n" +
		"  <AuthProvider authUrl={process.env.NEXT_PUBLIC_AUTH_URL!}>...</AuthProvider>"
	SetupComplete = "Setup complete."

	// ScaffoldOverwritePromptFmt asks before replacing an existing file.
	ScaffoldOverwritePromptFmt = "Overwrite %s?"

	// ReconcileChangesHeader introduces the dashboard settings diff.
	ReconcileChangesHeader = "Dashboard settings to update:"
	ReconcileChangeLineFmt = "  %s: %s -> %s"
	ReconcileUnsetValue    = "(unset)"
	ReconcileConfirmPrompt = "Apply these changes to the PropelAuth dashboard?"
	ReconcileFetching      = "Fetching dashboard settings"
	ReconcileUpdating      = "Updating dashboard settings"
	ReconcileUpToDate      = "Dashboard settings are already configured."
	ReconcileUpdated       = "Dashboard settings updated."
	ReconcileDeclined      = "Skipped the dashboard update; settings were left unchanged."
)
