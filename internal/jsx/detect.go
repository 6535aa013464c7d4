package jsx

// Provider wiring constants. The authUrl attribute references the public
// environment variable rather than a literal so generated code stays
// portable across environments.
const (
	// ProviderTag is the JSX tag name of the auth provider wrapper.
	ProviderTag = "AuthProvider"
	// ProviderModule is the module path the provider is imported from.
	ProviderModule = "@propelauth/nextjs/client"

	providerOpenTag  = `<AuthProvider authUrl={process.env.NEXT_PUBLIC_AUTH_URL!}>`
	providerCloseTag = `</AuthProvider>`
	providerImport   = `import { AuthProvider } from "@propelauth/nextjs/client";`
)

// HasProviderImport reports whether the document imports the provider symbol
// from its fixed module path. A stale import with no usage is possible.
func HasProviderImport(doc *Document) bool {
	for _, imp := range doc.Imports {
		if imp.Module != ProviderModule {
			continue
		}
		for _, symbol := range imp.Symbols {
			if symbol == ProviderTag {
				return true
			}
		}
	}
	return false
}

// HasProviderElement reports whether a JSX element with the provider's tag
// name exists anywhere inside the given subtree. A nil root is a valid
// absent result.
func HasProviderElement(root *Node) bool {
	if root == nil {
		return false
	}
	found := false
	walk(root, 0, func(n *Node, depth int) bool {
		if n.Kind == KindElement && n.Tag == ProviderTag {
			found = true
			return false
		}
		return !found
	})
	return found
}
