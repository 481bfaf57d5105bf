// Package semantics parses TypeScript/JavaScript sources into the indexer's
// syntax tree and answers the semantic queries the symbol namer and the
// occurrence emitter depend on.
package semantics

import "github.com/symdex-dev/symdex/internal/syntax"

// SemanticSymbol is the binder's answer for one identifier occurrence: the
// ordered declarations the identifier may denote (more than one for merged
// declarations) and the documentation attached to them.
type SemanticSymbol struct {
	Declarations  []*syntax.Node
	Documentation []string
}

// Resolver answers identifier and declaration queries. The core engine only
// consumes this interface; the Binder in this package is one implementation.
type Resolver interface {
	// ResolveIdentifier returns the declarations an identifier denotes.
	// The second result is false when the identifier resolves to nothing.
	ResolveIdentifier(id *syntax.Node) (*SemanticSymbol, bool)

	// TypeSignatureOf renders a declaration's type signature.
	TypeSignatureOf(node *syntax.Node) string

	// AliasedDeclarations returns the underlying declarations an import
	// specifier re-exports, empty when the alias target is unknown.
	AliasedDeclarations(node *syntax.Node) []*syntax.Node

	// ShorthandValueDeclarations returns the declarations of the value
	// binding a shorthand object-literal property implicitly references.
	ShorthandValueDeclarations(node *syntax.Node) []*syntax.Node

	// ImplementsDeclarations returns the declarations named by a class's
	// implements clause.
	ImplementsDeclarations(node *syntax.Node) []*syntax.Node
}
