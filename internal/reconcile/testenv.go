// Package reconcile aligns a project's remote dashboard settings (redirect
// paths and test environment) with what the local app needs.
package reconcile

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// TestEnvKind discriminates the test-environment variants.
type TestEnvKind int

// Test-environment variants.
const (
	// KindLocalhost is a local dev server identified only by port.
	KindLocalhost TestEnvKind = iota
	// KindSchemeAndDomain is a full origin kept verbatim.
	KindSchemeAndDomain
)

// TestEnv is the tagged union describing where a project's test traffic
// originates. Exactly one variant is meaningful per value, selected by Kind.
type TestEnv struct {
	Kind TestEnvKind

	// KindLocalhost
	Port int

	// KindSchemeAndDomain
	Value string
}

// Localhost returns the local-dev variant for the given port.
func Localhost(port int) TestEnv {
	return TestEnv{Kind: KindLocalhost, Port: port}
}

// SchemeAndDomain returns the verbatim-origin variant.
func SchemeAndDomain(value string) TestEnv {
	return TestEnv{Kind: KindSchemeAndDomain, Value: value}
}

// defaultPort is the port assumed when a localhost value carries none.
const defaultPort = 3000

// String renders the wire representation: localhost as
// "http://localhost:{port}", origins verbatim.
func (e TestEnv) String() string {
	if e.Kind == KindLocalhost {
		port := e.Port
		if port <= 0 {
			port = defaultPort
		}
		return fmt.Sprintf("http://localhost:%d", port)
	}
	return e.Value
}

// ParseTestEnv interprets a stored test-environment value. Localhost URLs
// become the Localhost variant, other valid origins stay verbatim, a bare
// port number is treated as localhost on that port, and anything
// unintelligible falls back to localhost:3000 rather than failing.
func ParseTestEnv(value string) TestEnv {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Localhost(defaultPort)
	}

	if port, err := strconv.Atoi(trimmed); err == nil && port > 0 {
		return Localhost(port)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Localhost(defaultPort)
	}
	if parsed.Hostname() == "localhost" || parsed.Hostname() == "127.0.0.1" {
		port := defaultPort
		if p := parsed.Port(); p != "" {
			if parsedPort, err := strconv.Atoi(p); err == nil && parsedPort > 0 {
				port = parsedPort
			}
		}
		return Localhost(port)
	}
	return SchemeAndDomain(trimmed)
}
