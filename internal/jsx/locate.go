package jsx

import "strings"

// TargetKind distinguishes the two insertion-target variants.
type TargetKind int

// Insertion-target variants.
const (
	// TargetChildrenExpression wraps a {children} expression in a layout.
	TargetChildrenExpression TargetKind = iota
	// TargetComponentElement wraps the <Component .../> element in an _app file.
	TargetComponentElement
)

// InsertionTarget identifies the JSX node that must become the child of the
// inserted provider wrapper.
type InsertionTarget struct {
	Kind TargetKind
	Node *Node
}

// complexityTagThreshold is the tag count above which a host structure is
// treated as nested. See classifyComplexity.
const complexityTagThreshold = 2

// classifyComplexity is the policy that decides between the simple and
// nested insertion strategies. It counts JSX tag occurrences in the host's
// source text; more than two tags suggests the host already wraps its
// content in other elements (typically nested providers). This is a
// heuristic, not a guarantee: a host with three unrelated sibling tags and
// no nesting is classified complex as well.
func classifyComplexity(source string) bool {
	return countTags(source) > complexityTagThreshold
}

// countTags counts opening, closing, and self-closing JSX tag occurrences in
// source text.
func countTags(source string) int {
	count := 0
	for i := 0; i+1 < len(source); i++ {
		if source[i] != '<' {
			continue
		}
		next := source[i+1]
		if isIdentStart(next) || next == '/' {
			count++
		}
	}
	return count
}

// LocateLayoutTarget finds the children expression to wrap in a root layout.
// It anchors on the first <body> element. found=false means no recognizable
// host structure exists; the caller falls back to manual instructions.
// A non-nil error means the file's JSX is malformed.
func LocateLayoutTarget(doc *Document) (*InsertionTarget, bool, error) {
	body, found, err := doc.FirstElement("body")
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	target, ok := locateLayoutIn(doc, body)
	return target, ok, nil
}

// locateLayoutIn applies the layout-mode strategy within an already parsed
// body element.
func locateLayoutIn(doc *Document, body *Node) (*InsertionTarget, bool) {
	if classifyComplexity(body.Source(doc)) {
		// Likely nested providers: take the most deeply nested {children}
		// expression so the wrapper lands immediately around the content.
		if node := deepestChildrenExpression(body); node != nil {
			return &InsertionTarget{Kind: TargetChildrenExpression, Node: node}, true
		}
		return nil, false
	}

	for _, child := range body.Children {
		if child.Kind == KindExpression && strings.Contains(child.Expr, "children") {
			return &InsertionTarget{Kind: TargetChildrenExpression, Node: child}, true
		}
	}
	return nil, false
}

// deepestChildrenExpression returns the most deeply nested expression whose
// inner identifier is exactly "children". Ties at the maximum depth go to
// the first node found there.
func deepestChildrenExpression(root *Node) *Node {
	var best *Node
	bestDepth := -1
	walk(root, 0, func(n *Node, depth int) bool {
		if n.Kind == KindExpression && strings.TrimSpace(n.Expr) == "children" && depth > bestDepth {
			best = n
			bestDepth = depth
		}
		return true
	})
	return best
}

// LocateAppTarget finds the <Component .../> element to wrap in a pages-
// router _app file. The host function is the first declaration that is named
// App or MyApp, carries an export modifier, or is default-exported
// separately. found=false means no recognizable host structure exists.
func LocateAppTarget(doc *Document) (*InsertionTarget, bool, error) {
	fn := appComponentFunction(doc)
	if fn == nil || fn.Return == nil || len(fn.Return.Children) == 0 {
		return nil, false, nil
	}
	target, ok := locateAppIn(doc, fn)
	return target, ok, nil
}

// locateAppIn applies the app-file strategy within an already selected host
// function.
func locateAppIn(doc *Document, fn *Node) (*InsertionTarget, bool) {
	returnRoot := fn.Return.Children[0]
	returnSource := fn.Return.Source(doc)

	if classifyComplexity(returnSource) || strings.Contains(returnSource, "Provider") {
		if node := deepestComponentElement(returnRoot); node != nil {
			return &InsertionTarget{Kind: TargetComponentElement, Node: node}, true
		}
		return nil, false
	}

	if node := firstComponentElement(returnRoot); node != nil {
		return &InsertionTarget{Kind: TargetComponentElement, Node: node}, true
	}
	return nil, false
}

func appComponentFunction(doc *Document) *Node {
	for _, fn := range doc.Functions {
		if fn.Name == "App" || fn.Name == "MyApp" || fn.Exported || fn.ExportedDefault {
			return fn
		}
	}
	return nil
}

func isComponentElement(n *Node) bool {
	return n.Kind == KindElement && n.Tag == "Component"
}

// deepestComponentElement returns the most deeply nested element tagged
// Component, ties at maximum depth going to the first found there.
func deepestComponentElement(root *Node) *Node {
	var best *Node
	bestDepth := -1
	walk(root, 0, func(n *Node, depth int) bool {
		if isComponentElement(n) && depth > bestDepth {
			best = n
			bestDepth = depth
		}
		return true
	})
	return best
}

// firstComponentElement returns the first element tagged Component in
// document order, including the root itself.
func firstComponentElement(root *Node) *Node {
	var found *Node
	walk(root, 0, func(n *Node, depth int) bool {
		if found != nil {
			return false
		}
		if isComponentElement(n) {
			found = n
			return false
		}
		return true
	})
	return found
}
