package semantics

import (
	"path"
	"strings"

	"github.com/symdex-dev/symdex/internal/syntax"
)

// scope is one level of the lexical environment. Object-literal scopes hold
// property declarations but are skipped during value lookups: property names
// are not referencable from the surrounding code.
type scope struct {
	owner  *syntax.Node
	parent *scope
	names  map[string][]*syntax.Node
}

func (s *scope) declare(name string, decl *syntax.Node) {
	if s.names == nil {
		s.names = make(map[string][]*syntax.Node)
	}
	s.names[name] = append(s.names[name], decl)
}

// Binder builds lexical scopes for every bound tree and resolves identifier
// occurrences against them. It implements Resolver. Add every tree of the
// project before querying: import specifiers resolve against the export
// tables of sibling trees.
type Binder struct {
	trees  map[string]*syntax.Tree
	scopes map[*syntax.Node]*scope
}

func NewBinder() *Binder {
	return &Binder{
		trees:  make(map[string]*syntax.Tree),
		scopes: make(map[*syntax.Node]*scope),
	}
}

// Add binds one tree into the project.
func (b *Binder) Add(tree *syntax.Tree) {
	b.trees[path.Clean(tree.Path)] = tree
	fileScope := &scope{owner: tree.Root}
	b.scopes[tree.Root] = fileScope
	b.bind(tree.Root, fileScope)
}

func (b *Binder) bind(node *syntax.Node, current *scope) {
	for _, child := range node.Children {
		// Import specifiers bind their local name like declarations do, but
		// they are not definitions: the namer resolves them to the identity
		// of the imported declaration.
		if (child.Kind.IsDeclaration() || child.Kind == syntax.KindImportSpecifier) && child.Name != nil {
			current.declare(child.Name.Text, child)
		}
		next := current
		if opensScope(child.Kind) {
			next = &scope{owner: child, parent: current}
			b.scopes[child] = next
		}
		b.bind(child, next)
	}
}

func opensScope(kind syntax.Kind) bool {
	switch kind {
	case syntax.KindBlock,
		syntax.KindModuleDeclaration,
		syntax.KindClassDeclaration,
		syntax.KindInterfaceDeclaration,
		syntax.KindEnumDeclaration,
		syntax.KindFunctionDeclaration,
		syntax.KindMethodDeclaration,
		syntax.KindMethodSignature,
		syntax.KindConstructor,
		syntax.KindObjectLiteral:
		return true
	}
	return false
}

// enclosingScope returns the scope a node's names are looked up in. With
// skipSelf set, a scope-opening node is resolved against its parent scope,
// which is where its own name was declared.
func (b *Binder) enclosingScope(node *syntax.Node, skipSelf bool) *scope {
	n := node
	if skipSelf {
		n = node.Parent
	}
	for ; n != nil; n = n.Parent {
		if s, ok := b.scopes[n]; ok {
			return s
		}
	}
	return nil
}

func (b *Binder) lookup(from *scope, name string, skipObjectScopes bool) []*syntax.Node {
	for s := from; s != nil; s = s.parent {
		if skipObjectScopes && s.owner != nil && s.owner.Kind == syntax.KindObjectLiteral {
			continue
		}
		if decls, ok := s.names[name]; ok {
			return decls
		}
	}
	return nil
}

// ResolveIdentifier implements Resolver. Declaration names resolve to their
// own declaration entry, including merged declarations registered under the
// same name in the same scope; reference identifiers resolve through the
// scope chain.
func (b *Binder) ResolveIdentifier(id *syntax.Node) (*SemanticSymbol, bool) {
	if id.Kind != syntax.KindIdentifier {
		return nil, false
	}

	var decls []*syntax.Node
	if parent := id.Parent; parent != nil && parent.Name == id && parent.Kind.IsDeclaration() {
		decls = b.declarationEntry(parent, id.Text)
	} else {
		s := b.enclosingScope(id, false)
		decls = b.lookup(s, id.Text, true)
	}
	if len(decls) == 0 {
		return nil, false
	}

	return &SemanticSymbol{
		Declarations:  decls,
		Documentation: documentationOf(decls),
	}, true
}

// declarationEntry returns every declaration sharing the given name in the
// scope decl was declared in (merged declarations), falling back to the
// declaration itself.
func (b *Binder) declarationEntry(decl *syntax.Node, name string) []*syntax.Node {
	s := b.enclosingScope(decl, opensScope(decl.Kind))
	if s == nil {
		return []*syntax.Node{decl}
	}
	entry := s.names[name]
	merged := make([]*syntax.Node, 0, len(entry))
	for _, other := range entry {
		if other == decl || mergeable(decl.Kind, other.Kind) {
			merged = append(merged, other)
		}
	}
	if len(merged) == 0 {
		return []*syntax.Node{decl}
	}
	return merged
}

// mergeable reports declaration kinds TypeScript merges when they share a
// name in one scope.
func mergeable(a, b syntax.Kind) bool {
	pair := func(x, y syntax.Kind) bool {
		return (a == x && b == y) || (a == y && b == x)
	}
	switch {
	case a == syntax.KindInterfaceDeclaration && b == syntax.KindInterfaceDeclaration:
		return true
	case a == syntax.KindModuleDeclaration && b == syntax.KindModuleDeclaration:
		return true
	case pair(syntax.KindInterfaceDeclaration, syntax.KindModuleDeclaration),
		pair(syntax.KindClassDeclaration, syntax.KindModuleDeclaration),
		pair(syntax.KindEnumDeclaration, syntax.KindModuleDeclaration),
		pair(syntax.KindFunctionDeclaration, syntax.KindModuleDeclaration),
		pair(syntax.KindInterfaceDeclaration, syntax.KindClassDeclaration):
		return true
	}
	return a == syntax.KindFunctionDeclaration && b == syntax.KindFunctionDeclaration
}

func documentationOf(decls []*syntax.Node) []string {
	for _, decl := range decls {
		if decl.Doc != "" {
			return []string{decl.Doc}
		}
	}
	return nil
}

// ShorthandValueDeclarations implements Resolver: the value binding a
// shorthand property captures is the name resolved in the enclosing lexical
// environment, outside any object-literal scope.
func (b *Binder) ShorthandValueDeclarations(node *syntax.Node) []*syntax.Node {
	if node.Kind != syntax.KindShorthandPropertyAssignment || node.Name == nil {
		return nil
	}
	return b.lookup(b.enclosingScope(node, false), node.Name.Text, true)
}

// ImplementsDeclarations implements Resolver: the declarations named by a
// class's implements clause, resolved lexically.
func (b *Binder) ImplementsDeclarations(node *syntax.Node) []*syntax.Node {
	if node.Kind != syntax.KindClassDeclaration {
		return nil
	}
	var targets []*syntax.Node
	for _, clause := range heritageClausesUnder(node) {
		for _, id := range identifiersUnder(clause) {
			targets = append(targets, b.lookup(b.enclosingScope(node, true), id.Text, true)...)
		}
	}
	return targets
}

// heritageClausesUnder finds heritage clauses below a class node, looking
// through wrapper nodes but not into member declarations.
func heritageClausesUnder(node *syntax.Node) []*syntax.Node {
	var clauses []*syntax.Node
	for _, child := range node.Children {
		switch {
		case child.Kind == syntax.KindHeritageClause:
			clauses = append(clauses, child)
		case child.Kind == syntax.KindOther:
			clauses = append(clauses, heritageClausesUnder(child)...)
		}
	}
	return clauses
}

func identifiersUnder(node *syntax.Node) []*syntax.Node {
	var ids []*syntax.Node
	for _, child := range node.Children {
		if child.Kind == syntax.KindIdentifier {
			ids = append(ids, child)
			continue
		}
		ids = append(ids, identifiersUnder(child)...)
	}
	return ids
}

// AliasedDeclarations implements Resolver: an import specifier resolves
// through the imported module's export table to the underlying declarations.
// Only relative module specifiers are resolved; bare package imports have no
// tree in the project.
func (b *Binder) AliasedDeclarations(node *syntax.Node) []*syntax.Node {
	if node.Kind != syntax.KindImportSpecifier {
		return nil
	}

	imported := ""
	for _, child := range node.Children {
		if child.Kind == syntax.KindIdentifier {
			imported = child.Text
			break
		}
	}
	if imported == "" {
		return nil
	}

	decl := node.Parent
	for decl != nil && decl.Kind != syntax.KindImportDeclaration {
		decl = decl.Parent
	}
	if decl == nil || decl.Text == "" {
		return nil
	}

	target := b.resolveModule(node.Tree().Path, decl.Text)
	if target == nil {
		return nil
	}
	entry := b.scopes[target.Root].names[imported]
	exported := make([]*syntax.Node, 0, len(entry))
	for _, d := range entry {
		if d.Exported {
			exported = append(exported, d)
		}
	}
	if len(exported) > 0 {
		return exported
	}
	return entry
}

var moduleExtensions = []string{"", ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs",
	"/index.ts", "/index.tsx", "/index.js"}

func (b *Binder) resolveModule(fromPath, specifier string) *syntax.Tree {
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return nil
	}
	base := path.Join(path.Dir(path.Clean(fromPath)), specifier)
	for _, ext := range moduleExtensions {
		if tree, ok := b.trees[path.Clean(base+ext)]; ok {
			return tree
		}
	}
	return nil
}

// TypeSignatureOf implements Resolver by rendering the declaration header
// from source text: everything before the body for container-like
// declarations, the keyword-prefixed declarator for variables.
func (b *Binder) TypeSignatureOf(node *syntax.Node) string {
	switch node.Kind {
	case syntax.KindVariableDeclaration:
		return variableSignature(node)
	case syntax.KindFunctionDeclaration,
		syntax.KindMethodDeclaration,
		syntax.KindMethodSignature,
		syntax.KindConstructor,
		syntax.KindClassDeclaration,
		syntax.KindInterfaceDeclaration,
		syntax.KindEnumDeclaration,
		syntax.KindModuleDeclaration:
		return headerSignature(node)
	}
	return collapseWhitespace(firstLine(node.SourceText()))
}

// headerSignature cuts the declaration's source at its body.
func headerSignature(node *syntax.Node) string {
	text := node.SourceText()
	for _, child := range node.Children {
		if child.Kind == syntax.KindBlock || child.Kind == syntax.KindModuleBody {
			if child.StartByte >= node.StartByte {
				text = string(node.Tree().Source[node.StartByte:child.StartByte])
			}
			break
		}
	}
	if idx := strings.IndexByte(text, '{'); idx >= 0 &&
		(node.Kind == syntax.KindClassDeclaration ||
			node.Kind == syntax.KindInterfaceDeclaration ||
			node.Kind == syntax.KindEnumDeclaration) {
		text = text[:idx]
	}
	return collapseWhitespace(text)
}

// variableSignature renders "<keyword> <declarator-head>", taking the
// keyword from the enclosing statement and stopping before the initializer.
func variableSignature(node *syntax.Node) string {
	text := node.SourceText()
	if idx := strings.IndexByte(text, '='); idx >= 0 {
		text = text[:idx]
	}
	keyword := "var"
	for stmt := node.Parent; stmt != nil; stmt = stmt.Parent {
		if stmt.Kind == syntax.KindVariableStatement {
			head := strings.TrimSpace(stmt.SourceText())
			if word, _, ok := strings.Cut(head, " "); ok {
				word = strings.TrimSpace(word)
				if word == "const" || word == "let" || word == "var" {
					keyword = word
				}
			}
			break
		}
	}
	return collapseWhitespace(keyword + " " + strings.TrimSpace(text))
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
