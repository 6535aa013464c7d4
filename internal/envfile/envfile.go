// Package envfile reads and appends to dotenv-style files such as .env.local.
//
// Values are kept exactly as written: quoting is part of the value and is
// never stripped, because the generated entries are consumed verbatim by the
// Next.js dev server rather than re-parsed by this tool.
package envfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/propelauth/cli/internal/messages"
)

// Entry is one environment variable to append, with a human-readable
// description emitted as a comment line above the assignment.
type Entry struct {
	Key         string
	Value       string
	Description string
}

// Parse reads dotenv content into a key-value map. Values are literal:
// surrounding quotes are preserved. Blank lines and # comments are skipped.
func Parse(content string) map[string]string {
	env := make(map[string]string)
	if content == "" {
		return env
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, exists := env[key]; !exists {
			env[key] = value
		}
	}
	return env
}

// Has reports whether content already assigns the given key.
func Has(content string, key string) bool {
	_, ok := Parse(content)[key]
	return ok
}

// AppendMissing returns content with the given entries appended, skipping any
// key that content already assigns. Existing values are never overwritten.
// Each appended entry is preceded by a comment line with its description.
func AppendMissing(content string, entries []Entry) (string, bool) {
	existing := Parse(content)

	var b strings.Builder
	b.WriteString(content)
	appended := false
	for _, entry := range entries {
		if entry.Key == "" {
			continue
		}
		if _, ok := existing[entry.Key]; ok {
			continue
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
		if entry.Description != "" {
			b.WriteString(fmt.Sprintf(messages.EnvfileCommentFmt, entry.Description))
		}
		b.WriteString(fmt.Sprintf(messages.EnvfileAssignmentFmt, entry.Key, entry.Value))
		appended = true
	}
	return b.String(), appended
}

// parseLine extracts a key/value assignment from one dotenv line.
// Malformed lines are skipped rather than rejected: .env.local is
// user-owned and this tool only ever appends to it.
func parseLine(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	if strings.HasPrefix(trimmed, "export ") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	}
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", "", false
	}
	key := strings.TrimSpace(trimmed[:idx])
	if key == "" {
		return "", "", false
	}
	value := strings.TrimSpace(trimmed[idx+1:])
	return key, value, true
}
