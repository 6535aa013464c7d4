package messages

// System messages for internal operations and error wrapping.
const (
	// UICancelled is the text of the cancellation sentinel.
	UICancelled = "cancelled"
	// UIRequiresTerminal is returned when prompts run without a TTY.
	UIRequiresTerminal = "prompts require an interactive terminal"

	ConfigResolveHomeErrFmt = "resolve home dir: %w"
	ConfigReadErrFmt        = "read config %s: %w"
	ConfigInvalidJSONFmt    = "parse config %s: %w"
	ConfigCreateDirErrFmt   = "create config dir %s: %w"
	ConfigEncodeErrFmt      = "encode config: %w"
	ConfigWriteErrFmt       = "write config %s: %w"

	// APIUnauthorized is the text of the 401 sentinel.
	APIUnauthorized         = "invalid or expired API key"
	APIEncodeRequestErrFmt  = "encode request body: %w"
	APICreateRequestErrFmt  = "create request: %w"
	APIRequestErrFmt        = "request failed: %w"
	APIUnexpectedStatusFmt  = "%s %s returned %s"
	APIDecodeResponseErrFmt = "decode response: %w"

	NextReadPackageJSONErrFmt    = "read package.json: %w"
	NextInvalidPackageJSONErrFmt = "parse package.json: %w"

	// EnvfileCommentFmt renders an entry's description line.
	EnvfileCommentFmt    = "# %s\n"
	EnvfileAssignmentFmt = "%s=%s\n"

	JSXExpectedElementErrFmt      = "expected element at offset %d"
	JSXUnclosedTagErrFmt          = "unclosed tag <%s>"
	JSXMalformedClosingTagErrFmt  = "malformed closing tag </%s>"
	JSXMismatchedClosingTagErrFmt = "closing tag </%s> does not match <%s>"
	JSXUnclosedExpressionErrFmt   = "unclosed expression at offset %d"
	JSXOverlappingEditsErrFmt     = "overlapping edits at offsets %d and %d"

	ScaffoldReadErrFmt  = "read %s: %w"
	ScaffoldMkdirErrFmt = "create directory %s: %w"
	ScaffoldWriteErrFmt = "write %s: %w"

	ReconcileFetchErrFmt  = "fetch dashboard settings: %w"
	ReconcileUpdateErrFmt = "update dashboard settings: %w"

	SetupNotNextAppFmt    = "%s does not look like a Next.js app (missing package.json or next dependency)"
	SetupNoLayoutFmt      = "no app/layout or pages/_app file found under %s"
	SetupReadSourceErrFmt = "read %s: %w"
	SetupInstallErrFmt    = "install %s: %w"
	SetupInstallExitFmt   = "%s exited with code %d"
)
