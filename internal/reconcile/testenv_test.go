package reconcile

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestEnvString(t *testing.T) {
	assert.Equal(t, "http://localhost:3000", Localhost(3000).String())
	assert.Equal(t, "http://localhost:4000", Localhost(4000).String())
	assert.Equal(t, "http://localhost:3000", Localhost(0).String())
	assert.Equal(t, "https://staging.example.com", SchemeAndDomain("https://staging.example.com").String())
}

func TestParseTestEnv(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TestEnv
	}{
		{"localhost with port", "http://localhost:4000", Localhost(4000)},
		{"localhost without port", "http://localhost", Localhost(3000)},
		{"loopback ip", "http://127.0.0.1:8080", Localhost(8080)},
		{"full origin", "https://staging.example.com", SchemeAndDomain("https://staging.example.com")},
		{"bare port", "5173", Localhost(5173)},
		{"empty", "", Localhost(3000)},
		{"garbage", "not a url at all", Localhost(3000)},
		{"missing scheme", "example.com", Localhost(3000)},
		{"whitespace", "  http://localhost:4000  ", Localhost(4000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTestEnv(tt.input))
		})
	}
}

func TestTestEnvRoundTrip(t *testing.T) {
	values := []TestEnv{
		Localhost(3000),
		Localhost(4000),
		Localhost(65535),
		SchemeAndDomain("https://staging.example.com"),
		SchemeAndDomain("https://app.example.com:8443"),
	}
	for _, env := range values {
		assert.Equal(t, env, ParseTestEnv(env.String()))
	}
}

func FuzzParseTestEnv(f *testing.F) {
	f.Add("http://localhost:3000")
	f.Add("https://staging.example.com")
	f.Add("4000")
	f.Add("")
	f.Add("::::")
	f.Fuzz(func(t *testing.T, input string) {
		env := ParseTestEnv(input)

		// Parsing never fails and always yields a renderable value.
		rendered := env.String()
		if rendered == "" {
			t.Fatalf("empty rendering for input %q", input)
		}

		// Rendering then re-parsing is stable.
		again := ParseTestEnv(rendered)
		if again != env {
			t.Fatalf("round trip changed %q: %#v vs %#v", input, env, again)
		}

		if env.Kind == KindLocalhost {
			if env.Port <= 0 && !strings.Contains(rendered, strconv.Itoa(defaultPort)) {
				t.Fatalf("localhost without port rendered %q", rendered)
			}
		}
	})
}
