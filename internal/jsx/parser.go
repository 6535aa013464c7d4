package jsx

import (
	"fmt"
	"strings"

	"github.com/propelauth/cli/internal/messages"
)

// Parse builds a Document from source text. Import declarations and function
// declarations are collected in one pass; JSX inside a function's return
// statement is parsed eagerly, and a function whose return JSX is malformed
// simply has no Return node. Element parsing for layout files happens in
// FirstElement, where malformed JSX is a hard error.
func Parse(content string) *Document {
	doc := &Document{text: content}
	doc.Imports = parseImports(content)
	doc.Functions = parseFunctions(content)
	markDefaultExports(content, doc.Functions)
	return doc
}

// FirstElement finds the first JSX element with the given opening tag name
// and parses it. found=false means no such tag exists (a recoverable
// outcome); a non-nil error means the element exists but is malformed.
func (d *Document) FirstElement(tag string) (node *Node, found bool, err error) {
	src := d.text
	needle := "<" + tag
	for i := 0; i+len(needle) <= len(src); i++ {
		if !strings.HasPrefix(src[i:], needle) {
			continue
		}
		after := i + len(needle)
		if after < len(src) && isIdentPart(src[after]) {
			continue
		}
		el, _, perr := parseElement(src, i)
		if perr != nil {
			return nil, true, perr
		}
		return el, true, nil
	}
	return nil, false, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '.' || c == '-'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func skipSpace(src string, pos int) int {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	return pos
}

// skipStringLit advances past a ' or " string literal starting at pos.
func skipStringLit(src string, pos int) int {
	quote := src[pos]
	pos++
	for pos < len(src) {
		switch src[pos] {
		case '\\':
			pos += 2
			continue
		case quote:
			return pos + 1
		}
		pos++
	}
	return pos
}

// skipTemplate advances past a backtick template literal, including nested
// ${...} interpolations.
func skipTemplate(src string, pos int) int {
	pos++
	for pos < len(src) {
		switch {
		case src[pos] == '\\':
			pos += 2
			continue
		case src[pos] == '`':
			return pos + 1
		case src[pos] == '$' && pos+1 < len(src) && src[pos+1] == '{':
			pos = skipBraces(src, pos+1)
			continue
		}
		pos++
	}
	return pos
}

// skipBraces advances past a brace-balanced block starting at an opening
// brace, ignoring braces inside strings, templates, and comments.
func skipBraces(src string, pos int) int {
	depth := 0
	for pos < len(src) {
		switch src[pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return pos + 1
			}
		case '\'', '"':
			pos = skipStringLit(src, pos)
			continue
		case '`':
			pos = skipTemplate(src, pos)
			continue
		case '/':
			if pos+1 < len(src) {
				if src[pos+1] == '/' {
					for pos < len(src) && src[pos] != '\n' {
						pos++
					}
					continue
				}
				if src[pos+1] == '*' {
					end := strings.Index(src[pos+2:], "*/")
					if end < 0 {
						return len(src)
					}
					pos += 2 + end + 2
					continue
				}
			}
		}
		pos++
	}
	return pos
}

// skipParens advances past a paren-balanced group starting at an opening
// paren, with the same string and comment handling as skipBraces.
func skipParens(src string, pos int) int {
	depth := 0
	for pos < len(src) {
		switch src[pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return pos + 1
			}
		case '\'', '"':
			pos = skipStringLit(src, pos)
			continue
		case '`':
			pos = skipTemplate(src, pos)
			continue
		case '{':
			pos = skipBraces(src, pos)
			continue
		}
		pos++
	}
	return pos
}

func parseIdent(src string, pos int) (string, int) {
	start := pos
	if pos < len(src) && isIdentStart(src[pos]) {
		pos++
		for pos < len(src) && isIdentPart(src[pos]) {
			pos++
		}
	}
	return src[start:pos], pos
}

// parseElement parses a JSX element or fragment starting at the '<' at pos.
// It returns the node and the offset just past the element.
func parseElement(src string, pos int) (*Node, int, error) {
	start := pos
	if pos >= len(src) || src[pos] != '<' {
		return nil, pos, fmt.Errorf(messages.JSXExpectedElementErrFmt, pos)
	}
	pos++
	tag, pos := parseIdent(src, pos)

	// Attributes (or nothing, for fragments).
	selfClosing := false
	for {
		if pos >= len(src) {
			return nil, pos, fmt.Errorf(messages.JSXUnclosedTagErrFmt, tag)
		}
		c := src[pos]
		switch {
		case c == '>':
			pos++
		case c == '/' && pos+1 < len(src) && src[pos+1] == '>':
			selfClosing = true
			pos += 2
		case c == '\'' || c == '"':
			pos = skipStringLit(src, pos)
			continue
		case c == '{':
			pos = skipBraces(src, pos)
			continue
		default:
			pos++
			continue
		}
		break
	}

	node := &Node{Kind: KindElement, Start: start, Tag: tag, SelfClosing: selfClosing}
	if selfClosing {
		node.End = pos
		return node, pos, nil
	}

	// Children until the matching closing tag.
	for {
		if pos >= len(src) {
			return nil, pos, fmt.Errorf(messages.JSXUnclosedTagErrFmt, tag)
		}
		switch src[pos] {
		case '<':
			if pos+1 < len(src) && src[pos+1] == '/' {
				name, next := parseIdent(src, pos+2)
				next = skipSpace(src, next)
				if next >= len(src) || src[next] != '>' {
					return nil, pos, fmt.Errorf(messages.JSXMalformedClosingTagErrFmt, name)
				}
				if name != tag {
					return nil, pos, fmt.Errorf(messages.JSXMismatchedClosingTagErrFmt, name, tag)
				}
				node.End = next + 1
				return node, node.End, nil
			}
			child, next, err := parseElement(src, pos)
			if err != nil {
				return nil, pos, err
			}
			node.Children = append(node.Children, child)
			pos = next
		case '{':
			end := skipBraces(src, pos)
			if end > len(src) || end == pos {
				return nil, pos, fmt.Errorf(messages.JSXUnclosedExpressionErrFmt, pos)
			}
			node.Children = append(node.Children, &Node{
				Kind:  KindExpression,
				Start: pos,
				End:   end,
				Expr:  src[pos+1 : end-1],
			})
			pos = end
		default:
			pos++
		}
	}
}

// parseImports collects import declarations. Only statement-position imports
// (at the start of a line) are recognized.
func parseImports(src string) []*Node {
	var imports []*Node
	pos := 0
	for pos < len(src) {
		lineStart := pos
		lineEnd := strings.IndexByte(src[pos:], '\n')
		if lineEnd < 0 {
			lineEnd = len(src)
		} else {
			lineEnd += pos
		}
		trimStart := skipSpace(src, lineStart)
		if strings.HasPrefix(src[trimStart:], "import") {
			after := trimStart + len("import")
			if after >= len(src) || !isIdentPart(src[after]) {
				if node, next, ok := parseImportStatement(src, trimStart); ok {
					imports = append(imports, node)
					pos = next
					continue
				}
			}
		}
		pos = lineEnd + 1
	}
	return imports
}

// parseImportStatement parses one import declaration starting at the
// "import" keyword. It recognizes default, namespace, and named clauses.
func parseImportStatement(src string, start int) (*Node, int, bool) {
	pos := skipSpace(src, start+len("import"))
	node := &Node{Kind: KindImport, Start: start}

	// Side-effect import: import "module";
	if pos < len(src) && (src[pos] == '"' || src[pos] == '\'') {
		end := skipStringLit(src, pos)
		node.Module = strings.Trim(src[pos:end], `"'`)
		node.End = consumeSemicolon(src, end)
		return node, node.End, true
	}

	for pos < len(src) {
		switch {
		case src[pos] == '{':
			end := skipBraces(src, pos)
			for _, part := range strings.Split(src[pos+1:end-1], ",") {
				name := strings.TrimSpace(part)
				if idx := strings.Index(name, " as "); idx >= 0 {
					name = strings.TrimSpace(name[idx+4:])
				}
				if name != "" {
					node.Symbols = append(node.Symbols, name)
				}
			}
			pos = end
		case src[pos] == '*':
			pos = skipSpace(src, pos+1)
			if strings.HasPrefix(src[pos:], "as") {
				pos = skipSpace(src, pos+2)
				name, next := parseIdent(src, pos)
				node.Symbols = append(node.Symbols, name)
				pos = next
			}
		case isIdentStart(src[pos]):
			name, next := parseIdent(src, pos)
			if name == "from" {
				pos = skipSpace(src, next)
				if pos < len(src) && (src[pos] == '"' || src[pos] == '\'') {
					end := skipStringLit(src, pos)
					node.Module = strings.Trim(src[pos:end], `"'`)
					node.End = consumeSemicolon(src, end)
					return node, node.End, true
				}
				return nil, start, false
			}
			if name == "type" {
				pos = skipSpace(src, next)
				continue
			}
			node.Symbols = append(node.Symbols, name)
			pos = next
		case src[pos] == ',' || isSpace(src[pos]):
			pos++
		default:
			return nil, start, false
		}
	}
	return nil, start, false
}

func consumeSemicolon(src string, pos int) int {
	pos = skipSpaceNoNewline(src, pos)
	if pos < len(src) && src[pos] == ';' {
		return pos + 1
	}
	return pos
}

func skipSpaceNoNewline(src string, pos int) int {
	for pos < len(src) && (src[pos] == ' ' || src[pos] == '\t') {
		pos++
	}
	return pos
}

// parseFunctions collects function declarations, their export modifiers, and
// the JSX root of their first JSX-returning return statement.
func parseFunctions(src string) []*Node {
	var functions []*Node
	pos := 0
	for {
		idx := strings.Index(src[pos:], "function")
		if idx < 0 {
			return functions
		}
		kw := pos + idx
		pos = kw + len("function")
		if kw > 0 && isIdentPart(src[kw-1]) {
			continue
		}
		if pos < len(src) && isIdentPart(src[pos]) {
			continue
		}

		nameStart := skipSpace(src, pos)
		name, afterName := parseIdent(src, nameStart)
		if name == "" {
			continue
		}

		parenStart := skipSpace(src, afterName)
		if parenStart >= len(src) || src[parenStart] != '(' {
			continue
		}
		afterParams := skipParens(src, parenStart)

		// Skip a possible return-type annotation up to the body brace.
		bodyStart := afterParams
		for bodyStart < len(src) && src[bodyStart] != '{' {
			bodyStart++
		}
		if bodyStart >= len(src) {
			continue
		}
		bodyEnd := skipBraces(src, bodyStart)

		node := &Node{Kind: KindFunction, Start: kw, End: bodyEnd, Name: name}
		node.Exported, node.ExportedDefault = exportModifiers(src, kw)
		if node.Exported {
			node.Start = exportStart(src, kw)
		}
		node.Return = parseReturnJSX(src, bodyStart+1, bodyEnd-1)
		functions = append(functions, node)
		pos = bodyStart + 1
	}
}

// exportModifiers inspects the tokens immediately before the function
// keyword for export and export-default modifiers.
func exportModifiers(src string, kw int) (exported bool, exportedDefault bool) {
	tokens := precedingTokens(src, kw, 3)
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i] {
		case "async":
			continue
		case "default":
			exportedDefault = true
		case "export":
			exported = true
		default:
			return exported, exported && exportedDefault
		}
	}
	return exported, exported && exportedDefault
}

func exportStart(src string, kw int) int {
	idx := strings.LastIndex(src[:kw], "export")
	if idx < 0 {
		return kw
	}
	return idx
}

// precedingTokens returns up to max identifier tokens immediately before pos,
// in source order, stopping at anything that is not an identifier.
func precedingTokens(src string, pos int, max int) []string {
	var reversed []string
	for len(reversed) < max {
		end := pos
		for end > 0 && isSpace(src[end-1]) {
			end--
		}
		start := end
		for start > 0 && isIdentPart(src[start-1]) {
			start--
		}
		if start == end {
			break
		}
		reversed = append(reversed, src[start:end])
		pos = start
	}
	tokens := make([]string, len(reversed))
	for i, tok := range reversed {
		tokens[len(reversed)-1-i] = tok
	}
	return tokens
}

// parseReturnJSX finds the first return statement between start and end whose
// expression is JSX, and returns a KindReturn node whose single child is the
// parsed element. Returns nil when no return yields parseable JSX.
func parseReturnJSX(src string, start int, end int) *Node {
	if end > len(src) {
		end = len(src)
	}
	pos := start
	for pos < end {
		idx := strings.Index(src[pos:end], "return")
		if idx < 0 {
			return nil
		}
		kw := pos + idx
		pos = kw + len("return")
		if kw > 0 && isIdentPart(src[kw-1]) {
			continue
		}
		if pos < end && isIdentPart(src[pos]) {
			continue
		}

		exprStart := skipSpace(src, pos)
		parenWrapped := false
		if exprStart < end && src[exprStart] == '(' {
			parenWrapped = true
			exprStart = skipSpace(src, exprStart+1)
		}
		if exprStart >= end || src[exprStart] != '<' {
			continue
		}
		element, elementEnd, err := parseElement(src, exprStart)
		if err != nil {
			return nil
		}
		stmtEnd := elementEnd
		if parenWrapped {
			closing := skipSpace(src, elementEnd)
			if closing < len(src) && src[closing] == ')' {
				stmtEnd = closing + 1
			}
		}
		return &Node{Kind: KindReturn, Start: kw, End: stmtEnd, Children: []*Node{element}}
	}
	return nil
}

// markDefaultExports marks functions referenced by a separate
// "export default Name" statement.
func markDefaultExports(src string, functions []*Node) {
	pos := 0
	for {
		idx := strings.Index(src[pos:], "export default ")
		if idx < 0 {
			return
		}
		at := pos + idx
		pos = at + len("export default ")
		if at > 0 && isIdentPart(src[at-1]) {
			continue
		}
		name, after := parseIdent(src, skipSpace(src, pos))
		if name == "" || name == "function" || name == "async" {
			continue
		}
		rest := skipSpace(src, after)
		if rest < len(src) && src[rest] != ';' && src[rest] != '\n' {
			continue
		}
		for _, fn := range functions {
			if fn.Name == name {
				fn.ExportedDefault = true
				fn.Exported = true
			}
		}
	}
}
