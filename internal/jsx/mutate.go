package jsx

import "strings"

// MutationResult is the output contract of the wrapper mutator.
//
// Modified is true only when a textual insertion occurred this run.
// HasAuthProvider reports whether the provider was already present before
// mutation. UpdatedContent equals the input text whenever nothing changed,
// so callers can hand it straight to the file reconciliation gate.
type MutationResult struct {
	Modified        bool
	HasAuthProvider bool
	UpdatedContent  string
}

// MutateLayout inserts the provider wrapper into an app-router root layout.
// It never panics or returns an error: malformed input, a missing host
// structure, or any internal failure degrades to the original content with
// Modified=false, leaving the caller to print manual instructions.
func MutateLayout(content string) (result MutationResult) {
	result = MutationResult{UpdatedContent: content}
	defer func() {
		if recover() != nil {
			result = MutationResult{UpdatedContent: content}
		}
	}()

	doc := Parse(content)
	body, found, err := doc.FirstElement("body")
	if err != nil || !found {
		return result
	}
	if HasProviderElement(body) {
		result.HasAuthProvider = true
		return result
	}

	target, ok := locateLayoutIn(doc, body)
	if !ok {
		return result
	}
	return applyWrap(doc, target, content)
}

// MutateAppFile inserts the provider wrapper into a pages-router _app file,
// with the same degradation contract as MutateLayout.
func MutateAppFile(content string) (result MutationResult) {
	result = MutationResult{UpdatedContent: content}
	defer func() {
		if recover() != nil {
			result = MutationResult{UpdatedContent: content}
		}
	}()

	doc := Parse(content)
	fn := appComponentFunction(doc)
	if fn == nil || fn.Return == nil || len(fn.Return.Children) == 0 {
		return result
	}
	if HasProviderElement(fn.Return.Children[0]) {
		result.HasAuthProvider = true
		return result
	}

	target, ok := locateAppIn(doc, fn)
	if !ok {
		return result
	}
	return applyWrap(doc, target, content)
}

// applyWrap records the wrap and import edits and serializes. All tree
// mutations complete before the document is re-serialized.
func applyWrap(doc *Document, target *InsertionTarget, original string) MutationResult {
	doc.ReplaceSpan(target.Node, providerOpenTag+target.Node.Source(doc)+providerCloseTag)
	ensureProviderImport(doc)

	updated, err := doc.Text()
	if err != nil {
		return MutationResult{UpdatedContent: original}
	}
	return MutationResult{Modified: true, UpdatedContent: updated}
}

// ensureProviderImport records an import insertion unless the provider
// import already exists. It never duplicates the declaration.
func ensureProviderImport(doc *Document) {
	if HasProviderImport(doc) {
		return
	}
	if last := lastImport(doc); last != nil {
		doc.InsertAt(last.End, "\n"+providerImport)
		return
	}
	doc.InsertAt(afterDirectivePrologue(doc.text), providerImport+"\n")
}

func lastImport(doc *Document) *Node {
	var last *Node
	for _, imp := range doc.Imports {
		if last == nil || imp.End > last.End {
			last = imp
		}
	}
	return last
}

// afterDirectivePrologue returns the insertion offset for a file with no
// imports: past a leading "use client" (or other) directive when present,
// otherwise the start of the file.
func afterDirectivePrologue(src string) int {
	pos := skipSpace(src, 0)
	if pos >= len(src) || (src[pos] != '\'' && src[pos] != '"') {
		return 0
	}
	end := skipStringLit(src, pos)
	directive := strings.Trim(src[pos:end], `"'`)
	if !strings.HasPrefix(directive, "use ") {
		return 0
	}
	end = consumeSemicolon(src, end)
	if end < len(src) && src[end] == '\n' {
		end++
	}
	return end
}
