package symbols

import (
	"fmt"
	"sync"

	"github.com/symdex-dev/symdex/internal/descriptor"
	"github.com/symdex-dev/symdex/internal/syntax"
)

// constructorName is the fixed method name used for constructors regardless
// of source text.
const constructorName = "<constructor>"

// PackageResolver maps a file path to the package descriptor rooting its
// global symbols, if any.
type PackageResolver interface {
	PackageOf(path string) (descriptor.Descriptor, bool)
}

// AliasResolver reports the underlying declarations an import binding
// re-exports. Aliases are transparent: they adopt the identity of their
// target instead of minting a new global name.
type AliasResolver interface {
	AliasedDeclarations(node *syntax.Node) []*syntax.Node
}

// Namer computes canonical symbol identities for declaration nodes. The
// global cache spans the whole indexing run so files can be processed in any
// order; it is guarded by a mutex so callers may index files concurrently.
// A declaration node is never assigned two different identities.
type Namer struct {
	packages PackageResolver
	aliases  AliasResolver

	mu           sync.Mutex
	global       map[*syntax.Node]Identity
	localCounter *Counter
}

func NewNamer(packages PackageResolver, aliases AliasResolver) *Namer {
	return &Namer{
		packages:     packages,
		aliases:      aliases,
		global:       make(map[*syntax.Node]Identity),
		localCounter: NewCounter(),
	}
}

// ForFile returns a resolver view scoped to one file's traversal. The local
// cache and per-name property counters it carries are private to the file
// and must not be shared across files.
func (n *Namer) ForFile(tree *syntax.Tree) *FileNamer {
	return &FileNamer{
		namer:            n,
		tree:             tree,
		local:            make(map[*syntax.Node]Identity),
		propertyCounters: make(map[string]*Counter),
	}
}

func (n *Namer) lookupGlobal(node *syntax.Node) (Identity, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id, ok := n.global[node]
	return id, ok
}

func (n *Namer) storeGlobal(node *syntax.Node, id Identity) Identity {
	n.mu.Lock()
	defer n.mu.Unlock()
	// First store wins: resolution is idempotent even under concurrent
	// traversals reaching the same declaration through different paths.
	if cached, ok := n.global[node]; ok {
		return cached
	}
	n.global[node] = id
	return id
}

func (n *Namer) nextLocal() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.localCounter.Next()
}

// FileNamer resolves declaration nodes to identities during one file's
// traversal.
type FileNamer struct {
	namer            *Namer
	tree             *syntax.Tree
	local            map[*syntax.Node]Identity
	propertyCounters map[string]*Counter
}

// Resolve returns the canonical symbol identity for a declaration node. It
// is memoized, deterministic, and total: when no better answer exists the
// node becomes file-local rather than failing.
func (f *FileNamer) Resolve(node *syntax.Node) Identity {
	if id, ok := f.namer.lookupGlobal(node); ok {
		return id
	}
	if id, ok := f.local[node]; ok {
		return id
	}

	id := f.resolve(node)
	if id.IsLocal() {
		f.local[node] = id
		return id
	}
	return f.namer.storeGlobal(node, id)
}

func (f *FileNamer) resolve(node *syntax.Node) Identity {
	switch node.Kind {
	case syntax.KindBlock:
		// Lexical blocks are not indexable containers.
		return EmptyIdentity()

	case syntax.KindSourceFile:
		if pkg, ok := f.namer.packages.PackageOf(node.Tree().Path); ok {
			return PackageIdentity(pkg)
		}
		return EmptyIdentity()

	case syntax.KindPropertyAssignment, syntax.KindShorthandPropertyAssignment:
		// Object-literal members are not declarations in the surrounding
		// scope. A Meta descriptor with a per-file, per-name counter keeps
		// them out of the Type/Term namespaces while still distinguishing
		// literals that reuse one property name.
		if node.Name == nil {
			return f.newLocal()
		}
		owner := f.Resolve(node.Tree().Root)
		if !owner.IsGlobal() {
			return f.newLocal()
		}
		name := node.Name.Text
		counter, ok := f.propertyCounters[name]
		if !ok {
			counter = NewCounter()
			f.propertyCounters[name] = counter
		}
		return GlobalIdentity(owner, descriptor.NewMeta(fmt.Sprintf("%s%d", name, counter.Next())))
	}

	if node.Parent == nil {
		return f.newLocal()
	}

	owner := f.Resolve(node.Parent)
	if owner.IsEmpty() || owner.IsLocal() {
		// Nothing under a non-global container is part of the global
		// namespace.
		return f.newLocal()
	}

	if isTransparentContainer(node.Kind) {
		return owner
	}

	if node.Kind == syntax.KindImportSpecifier {
		for _, decl := range f.namer.aliases.AliasedDeclarations(node) {
			if decl == node {
				continue
			}
			return f.Resolve(decl)
		}
		// Unresolvable alias: fall through to the local fallback below.
	}

	if desc, ok := descriptorFor(node); ok {
		return GlobalIdentity(owner, desc)
	}
	return f.newLocal()
}

func (f *FileNamer) newLocal() Identity {
	return LocalIdentity(f.namer.nextLocal())
}

// isTransparentContainer reports node kinds that contribute no descriptor of
// their own: their children belong directly to the surrounding owner.
func isTransparentContainer(kind syntax.Kind) bool {
	switch kind {
	case syntax.KindImportDeclaration,
		syntax.KindImportClause,
		syntax.KindNamedImports,
		syntax.KindVariableStatement,
		syntax.KindVariableDeclarationList,
		syntax.KindModuleBody:
		return true
	}
	return false
}

// descriptorFor computes the descriptor a declaration contributes to its
// owner chain. Anonymous declarations and kinds outside the dispatch table
// produce none; the caller falls back to a local identity, which is a
// legitimate outcome rather than an error.
func descriptorFor(node *syntax.Node) (descriptor.Descriptor, bool) {
	if node.Kind == syntax.KindConstructor {
		return descriptor.NewMethod(constructorName, ""), true
	}
	if node.Name == nil || node.Name.Text == "" {
		return descriptor.Descriptor{}, false
	}
	name := node.Name.Text
	switch node.Kind {
	case syntax.KindInterfaceDeclaration,
		syntax.KindEnumDeclaration,
		syntax.KindClassDeclaration:
		return descriptor.NewType(name), true
	case syntax.KindFunctionDeclaration,
		syntax.KindMethodDeclaration,
		syntax.KindMethodSignature:
		return descriptor.NewMethod(name, ""), true
	case syntax.KindPropertyDeclaration,
		syntax.KindPropertySignature,
		syntax.KindEnumMember,
		syntax.KindVariableDeclaration:
		return descriptor.NewTerm(name), true
	case syntax.KindModuleDeclaration:
		return descriptor.NewPackage(name), true
	case syntax.KindParameter:
		return descriptor.NewParameter(name), true
	case syntax.KindTypeParameter:
		return descriptor.NewTypeParameter(name), true
	}
	return descriptor.Descriptor{}, false
}
