// Package nextjs detects Next.js project structure: framework version,
// router flavor, dev-server port, and package manager.
package nextjs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/propelauth/cli/internal/messages"
)

// DefaultPort is the Next.js dev-server port when none is configured.
const DefaultPort = 3000

// Project describes a detected Next.js application.
type Project struct {
	Root      string
	NextMajor int
	Scripts   map[string]string
	// LayoutPath is the app-router root layout, when present.
	LayoutPath string
	// AppFilePath is the pages-router _app file, when present.
	AppFilePath string
}

type packageJSON struct {
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Detect inspects root for a Next.js project. A missing package.json or a
// package.json without a next dependency reports ok=false, not an error;
// only unreadable or malformed files are errors.
func Detect(root string) (*Project, bool, error) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf(messages.NextReadPackageJSONErrFmt, err)
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, false, fmt.Errorf(messages.NextInvalidPackageJSONErrFmt, err)
	}

	spec, ok := pkg.Dependencies["next"]
	if !ok {
		spec, ok = pkg.DevDependencies["next"]
	}
	if !ok {
		return nil, false, nil
	}

	project := &Project{
		Root:        root,
		NextMajor:   majorVersion(spec),
		Scripts:     pkg.Scripts,
		LayoutPath:  firstExisting(root, layoutCandidates),
		AppFilePath: firstExisting(root, appFileCandidates),
	}
	return project, true, nil
}

var layoutCandidates = []string{
	"app/layout.tsx",
	"app/layout.jsx",
	"app/layout.js",
	"src/app/layout.tsx",
	"src/app/layout.jsx",
	"src/app/layout.js",
}

var appFileCandidates = []string{
	"pages/_app.tsx",
	"pages/_app.jsx",
	"pages/_app.js",
	"src/pages/_app.tsx",
	"src/pages/_app.jsx",
	"src/pages/_app.js",
}

// firstExisting returns the absolute path of the first candidate that exists.
func firstExisting(root string, candidates []string) string {
	for _, rel := range candidates {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// majorVersion extracts the major version from a dependency spec such as
// "^15.1.0" or "~14.2". Specs without a leading number ("latest", "canary",
// workspace ranges) yield 0.
func majorVersion(spec string) int {
	trimmed := strings.TrimLeft(strings.TrimSpace(spec), "^~>=v ")
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	major, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0
	}
	return major
}

// DetectPort extracts the dev-server port from the project's dev script.
// It understands "--port N" and "-p N"; anything else falls back to 3000.
func (p *Project) DetectPort() int {
	script, ok := p.Scripts["dev"]
	if !ok {
		return DefaultPort
	}
	fields := strings.Fields(script)
	for i, field := range fields {
		if field != "--port" && field != "-p" {
			continue
		}
		if i+1 >= len(fields) {
			return DefaultPort
		}
		port, err := strconv.Atoi(fields[i+1])
		if err != nil || port <= 0 {
			return DefaultPort
		}
		return port
	}
	return DefaultPort
}

// UsesAppRouter reports whether the project has an app-router root layout.
func (p *Project) UsesAppRouter() bool {
	return p.LayoutPath != ""
}

// PackageManager identifies the package manager used by a project.
type PackageManager string

// Supported package managers, detected by lockfile.
const (
	Npm  PackageManager = "npm"
	Pnpm PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Bun  PackageManager = "bun"
)

// DetectPackageManager picks the package manager by lockfile presence,
// defaulting to npm.
func DetectPackageManager(root string) PackageManager {
	checks := []struct {
		lockfile string
		manager  PackageManager
	}{
		{"pnpm-lock.yaml", Pnpm},
		{"yarn.lock", Yarn},
		{"bun.lockb", Bun},
		{"package-lock.json", Npm},
	}
	for _, check := range checks {
		if _, err := os.Stat(filepath.Join(root, check.lockfile)); err == nil {
			return check.manager
		}
	}
	return Npm
}

// InstallArgs returns the command and arguments to install a dependency.
func (m PackageManager) InstallArgs(pkg string) (string, []string) {
	switch m {
	case Pnpm:
		return "pnpm", []string{"add", pkg}
	case Yarn:
		return "yarn", []string{"add", pkg}
	case Bun:
		return "bun", []string{"add", pkg}
	default:
		return "npm", []string{"install", pkg}
	}
}
