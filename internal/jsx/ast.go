// Package jsx implements the source-file-mutation engine that inserts the
// auth provider wrapper into Next.js layout and _app files.
//
// The parser builds a small typed tree over the four node shapes the engine
// actually handles: import declarations, JSX elements, JSX expressions, and
// return statements. Nodes carry byte spans into the original text; the only
// permitted mutations are span edits recorded on the document, and the final
// text is always produced by re-serializing, so unrelated formatting is
// preserved byte for byte.
package jsx

import (
	"fmt"
	"sort"

	"github.com/propelauth/cli/internal/messages"
)

// Kind enumerates the node shapes handled by the engine.
type Kind int

// Node kinds.
const (
	KindImport Kind = iota
	KindElement
	KindExpression
	KindReturn
	KindFunction
)

// Node is one parsed syntax node. Start and End are byte offsets into the
// document text; End is exclusive.
type Node struct {
	Kind  Kind
	Start int
	End   int

	// KindElement
	Tag         string
	SelfClosing bool
	Children    []*Node

	// KindExpression: the text between the braces, exclusive.
	Expr string

	// KindImport
	Module  string
	Symbols []string

	// KindFunction
	Name            string
	Exported        bool
	ExportedDefault bool
	// Return is the JSX root of the function's return statement, when the
	// function returns JSX. Nil otherwise.
	Return *Node
}

// Source returns the node's source text within doc.
func (n *Node) Source(doc *Document) string {
	return doc.text[n.Start:n.End]
}

// Document owns one source file's text and its parsed tree, plus the span
// edits accumulated by mutation.
type Document struct {
	text      string
	Imports   []*Node
	Functions []*Node

	edits []edit
}

type edit struct {
	start int
	end   int
	text  string
}

// ReplaceSpan records an in-place replacement of the node's source text.
func (d *Document) ReplaceSpan(n *Node, text string) {
	d.edits = append(d.edits, edit{start: n.Start, end: n.End, text: text})
}

// InsertAt records an insertion at the given byte offset.
func (d *Document) InsertAt(offset int, text string) {
	d.edits = append(d.edits, edit{start: offset, end: offset, text: text})
}

// Modified reports whether any edits have been recorded.
func (d *Document) Modified() bool {
	return len(d.edits) > 0
}

// Text serializes the document: the original text with all recorded edits
// applied. Edits must not overlap.
func (d *Document) Text() (string, error) {
	if len(d.edits) == 0 {
		return d.text, nil
	}
	edits := make([]edit, len(d.edits))
	copy(edits, d.edits)
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })
	for i := 1; i < len(edits); i++ {
		if edits[i].start < edits[i-1].end {
			return "", fmt.Errorf(messages.JSXOverlappingEditsErrFmt, edits[i-1].start, edits[i].start)
		}
	}

	out := make([]byte, 0, len(d.text))
	cursor := 0
	for _, e := range edits {
		out = append(out, d.text[cursor:e.start]...)
		out = append(out, e.text...)
		cursor = e.end
	}
	out = append(out, d.text[cursor:]...)
	return string(out), nil
}

// walk visits n and its descendants depth-first, calling fn with each node
// and its depth relative to n (n itself is depth 0). Returning false stops
// descent below that node.
func walk(n *Node, depth int, fn func(n *Node, depth int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}
