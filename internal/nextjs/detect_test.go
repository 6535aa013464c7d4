package nextjs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDetect_MissingPackageJSON(t *testing.T) {
	_, ok, err := Detect(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDetect_NoNextDependency(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies":{"react":"^18.0.0"}}`)

	_, ok, err := Detect(root)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDetect_MalformedPackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", "{broken")

	_, _, err := Detect(root)
	assert.Error(t, err)
}

func TestDetect_AppRouterProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
  "scripts": {"dev": "next dev --port 4000"},
  "dependencies": {"next": "^15.1.0", "react": "^19.0.0"}
}`)
	writeFile(t, root, "app/layout.tsx", "export default function RootLayout() {}")

	project, ok, err := Detect(root)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 15, project.NextMajor)
	assert.True(t, project.UsesAppRouter())
	assert.Equal(t, filepath.Join(root, "app", "layout.tsx"), project.LayoutPath)
	assert.Empty(t, project.AppFilePath)
	assert.Equal(t, 4000, project.DetectPort())
}

func TestDetect_PagesRouterProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies":{"next":"~14.2.3"}}`)
	writeFile(t, root, "src/pages/_app.tsx", "export default function MyApp() {}")

	project, ok, err := Detect(root)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 14, project.NextMajor)
	assert.False(t, project.UsesAppRouter())
	assert.Equal(t, filepath.Join(root, "src", "pages", "_app.tsx"), project.AppFilePath)
}

func TestMajorVersion(t *testing.T) {
	tests := []struct {
		spec string
		want int
	}{
		{"^15.1.0", 15},
		{"~14.2", 14},
		{"15", 15},
		{">=13.0.0", 13},
		{"v12.3.4", 12},
		{"latest", 0},
		{"canary", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, majorVersion(tt.spec))
		})
	}
}

func TestDetectPort(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   int
	}{
		{"long flag", "next dev --port 4000", 4000},
		{"short flag", "next dev -p 8080", 8080},
		{"no flag", "next dev", 3000},
		{"flag without value", "next dev --port", 3000},
		{"non-numeric value", "next dev --port abc", 3000},
		{"turbopack with port", "next dev --turbopack --port 5000", 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := &Project{Scripts: map[string]string{"dev": tt.script}}
			assert.Equal(t, tt.want, project.DetectPort())
		})
	}
}

func TestDetectPort_NoDevScript(t *testing.T) {
	project := &Project{Scripts: map[string]string{}}
	assert.Equal(t, DefaultPort, project.DetectPort())
}

func TestDetectPackageManager(t *testing.T) {
	tests := []struct {
		name     string
		lockfile string
		want     PackageManager
	}{
		{"pnpm", "pnpm-lock.yaml", Pnpm},
		{"yarn", "yarn.lock", Yarn},
		{"bun", "bun.lockb", Bun},
		{"npm", "package-lock.json", Npm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, root, tt.lockfile, "")
			assert.Equal(t, tt.want, DetectPackageManager(root))
		})
	}
}

func TestDetectPackageManager_DefaultsToNpm(t *testing.T) {
	assert.Equal(t, Npm, DetectPackageManager(t.TempDir()))
}

func TestInstallArgs(t *testing.T) {
	cmd, args := Pnpm.InstallArgs("@propelauth/nextjs")
	assert.Equal(t, "pnpm", cmd)
	assert.Equal(t, []string{"add", "@propelauth/nextjs"}, args)

	cmd, args = Npm.InstallArgs("@propelauth/nextjs")
	assert.Equal(t, "npm", cmd)
	assert.Equal(t, []string{"install", "@propelauth/nextjs"}, args)
}
