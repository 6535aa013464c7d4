package scaffold

import (
	"embed"
	"path/filepath"
	"strings"

	"github.com/propelauth/cli/internal/nextjs"
)

//go:embed templates/*.ts
var templateFS embed.FS

// asyncHandlerMajor is the first Next.js major whose route handlers take the
// async request APIs. Older majors get the synchronous handler symbols.
const asyncHandlerMajor = 15

func template(name string) string {
	data, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		// Embedded files cannot be missing at runtime.
		panic(err)
	}
	return string(data)
}

// swapHandlerSymbols rewrites the async handler symbols to their synchronous
// counterparts for pre-15 Next.js majors. Unknown majors (0) are treated as
// current.
func swapHandlerSymbols(content string, nextMajor int) string {
	if nextMajor == 0 || nextMajor >= asyncHandlerMajor {
		return content
	}
	content = strings.ReplaceAll(content, "getRouteHandlerAsync", "getRouteHandler")
	content = strings.ReplaceAll(content, "postRouteHandlerAsync", "postRouteHandler")
	return content
}

// RouteHandler returns the app-router auth route handler source for the
// given Next.js major version.
func RouteHandler(nextMajor int) string {
	return swapHandlerSymbols(template("app_route.ts"), nextMajor)
}

// PagesRouteHandler returns the pages-router auth route handler source for
// the given Next.js major version.
func PagesRouteHandler(nextMajor int) string {
	return swapHandlerSymbols(template("pages_route.ts"), nextMajor)
}

// Middleware returns the auth middleware source.
func Middleware() string {
	return template("middleware.ts")
}

// RouteFilePath returns where the auth route handler belongs in the project:
// next to the detected app directory for the app router, or under pages/api
// for the pages router.
func RouteFilePath(p *nextjs.Project) string {
	if p.UsesAppRouter() {
		appDir := filepath.Dir(p.LayoutPath)
		return filepath.Join(appDir, "api", "auth", "[slug]", "route.ts")
	}
	pagesDir := filepath.Dir(p.AppFilePath)
	return filepath.Join(pagesDir, "api", "auth", "[slug].ts")
}

// MiddlewareFilePath returns where middleware.ts belongs: beside the app
// directory (project root, or src/ when the app lives there).
func MiddlewareFilePath(p *nextjs.Project) string {
	base := p.Root
	if p.UsesAppRouter() {
		base = filepath.Dir(filepath.Dir(p.LayoutPath))
	}
	return filepath.Join(base, "middleware.ts")
}
