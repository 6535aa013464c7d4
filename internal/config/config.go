// Package config persists the CLI configuration record under the user's
// home directory as formatted JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/propelauth/cli/internal/fsutil"
	"github.com/propelauth/cli/internal/messages"
)

// Project selection options.
const (
	// SelectionAlwaysAsk prompts for a project on every setup run.
	SelectionAlwaysAsk = "always-ask"
	// SelectionUseDefault reuses the stored default project.
	SelectionUseDefault = "use-default"
)

// ProjectInfo identifies one hosted project.
type ProjectInfo struct {
	OrgID       string `json:"orgId"`
	ProjectID   string `json:"projectId"`
	DisplayName string `json:"displayName"`
}

// ProjectSelection records how setup chooses the target project.
type ProjectSelection struct {
	Option         string       `json:"option"`
	DefaultProject *ProjectInfo `json:"defaultProject,omitempty"`
}

// Config is the persisted CLI configuration record.
type Config struct {
	APIKey           string           `json:"apiKey"`
	ProjectSelection ProjectSelection `json:"projectSelection"`
}

var homeDirFunc = homedir.Dir

// Path returns the location of the config file (~/.propelauth/config.json).
func Path() (string, error) {
	home, err := homeDirFunc()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeErrFmt, err)
	}
	return filepath.Join(home, ".propelauth", "config.json"), nil
}

// Load reads the persisted config. A missing file yields a zero Config with
// the always-ask selection rather than an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{ProjectSelection: ProjectSelection{Option: SelectionAlwaysAsk}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadErrFmt, path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidJSONFmt, path, err)
	}
	if cfg.ProjectSelection.Option == "" {
		cfg.ProjectSelection.Option = SelectionAlwaysAsk
	}
	return &cfg, nil
}

// Save writes the config as formatted JSON via an atomic full-file replace.
// The file is created with 0600 since it holds the API key.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf(messages.ConfigCreateDirErrFmt, filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.ConfigEncodeErrFmt, err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFileAtomic(path, data, 0o600); err != nil {
		return fmt.Errorf(messages.ConfigWriteErrFmt, path, err)
	}
	return nil
}

// IsAuthenticated reports whether a non-empty API key is stored.
func (c *Config) IsAuthenticated() bool {
	return c != nil && c.APIKey != ""
}
