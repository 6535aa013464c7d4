// Package diffview renders unified diffs for the file reconciliation gate.
package diffview

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"
)

var (
	addedLine   = color.New(color.FgGreen)
	removedLine = color.New(color.FgRed)
	hunkHeader  = color.New(color.FgCyan)
	fileHeader  = color.New(color.Bold)
)

// Unified computes a unified diff between before and after, labeled with the
// given names. Identical inputs yield an empty string.
func Unified(fromName string, toName string, before string, after string) string {
	if before == after {
		return ""
	}
	return udiff.Unified(fromName, toName, before, after)
}

// Colorize applies terminal colors to a unified diff line by line: additions
// green, removals red, hunk headers cyan, file headers bold. Input that is
// not a diff passes through unchanged.
func Colorize(diff string) string {
	if diff == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			b.WriteString(fileHeader.Sprint(strings.TrimSuffix(line, "\n")))
			b.WriteString("\n")
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkHeader.Sprint(strings.TrimSuffix(line, "\n")))
			b.WriteString("\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedLine.Sprint(strings.TrimSuffix(line, "\n")))
			b.WriteString("\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString(removedLine.Sprint(strings.TrimSuffix(line, "\n")))
			b.WriteString("\n")
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}
