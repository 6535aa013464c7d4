package scaffold

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/propelauth/cli/internal/envfile"
	"github.com/propelauth/cli/internal/messages"
)

// EnvEntries builds the .env.local entries for a configured project. The
// auth URL is public; the remaining values are server-side secrets.
func EnvEntries(authURL string, apiKey string, verifierKey string, redirectURI string) []envfile.Entry {
	return []envfile.Entry{
		{
			Key:         "NEXT_PUBLIC_AUTH_URL",
			Value:       authURL,
			Description: "Your PropelAuth instance URL",
		},
		{
			Key:         "PROPELAUTH_API_KEY",
			Value:       apiKey,
			Description: "API key for server-side PropelAuth calls",
		},
		{
			Key:         "PROPELAUTH_VERIFIER_KEY",
			Value:       verifierKey,
			Description: "Public key used to verify PropelAuth tokens",
		},
		{
			Key:         "PROPELAUTH_REDIRECT_URI",
			Value:       redirectURI,
			Description: "OAuth callback URL for this app",
		},
	}
}

// WriteEnvEntries appends any missing entries to the env file at path,
// creating it when absent. Existing keys keep their values. It reports
// whether the file changed.
func (g *Gate) WriteEnvEntries(path string, entries []envfile.Entry) (bool, error) {
	existing, err := g.Sys.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf(messages.ScaffoldReadErrFmt, path, err)
	}

	updated, changed := envfile.AppendMissing(string(existing), entries)
	if !changed {
		return false, nil
	}
	if err := g.write(path, updated); err != nil {
		return false, err
	}
	return true, nil
}
