// Package syntax defines the semantic syntax tree the indexer operates on.
// Trees are produced by a language front end (internal/semantics) and
// consumed by the symbol namer and the occurrence emitter.
package syntax

// Kind classifies a tree node by its syntactic shape.
type Kind int

const (
	KindOther Kind = iota
	KindSourceFile
	KindBlock
	KindModuleDeclaration
	KindModuleBody
	KindImportDeclaration
	KindImportClause
	KindNamedImports
	KindImportSpecifier
	KindVariableStatement
	KindVariableDeclarationList
	KindVariableDeclaration
	KindClassDeclaration
	KindInterfaceDeclaration
	KindEnumDeclaration
	KindEnumMember
	KindFunctionDeclaration
	KindMethodDeclaration
	KindMethodSignature
	KindConstructor
	KindPropertyDeclaration
	KindPropertySignature
	KindPropertyAssignment
	KindShorthandPropertyAssignment
	KindObjectLiteral
	KindParameter
	KindTypeParameter
	KindHeritageClause
	KindIdentifier
)

func (k Kind) String() string {
	switch k {
	case KindSourceFile:
		return "source_file"
	case KindBlock:
		return "block"
	case KindModuleDeclaration:
		return "module_declaration"
	case KindModuleBody:
		return "module_body"
	case KindImportDeclaration:
		return "import_declaration"
	case KindImportClause:
		return "import_clause"
	case KindNamedImports:
		return "named_imports"
	case KindImportSpecifier:
		return "import_specifier"
	case KindVariableStatement:
		return "variable_statement"
	case KindVariableDeclarationList:
		return "variable_declaration_list"
	case KindVariableDeclaration:
		return "variable_declaration"
	case KindClassDeclaration:
		return "class_declaration"
	case KindInterfaceDeclaration:
		return "interface_declaration"
	case KindEnumDeclaration:
		return "enum_declaration"
	case KindEnumMember:
		return "enum_member"
	case KindFunctionDeclaration:
		return "function_declaration"
	case KindMethodDeclaration:
		return "method_declaration"
	case KindMethodSignature:
		return "method_signature"
	case KindConstructor:
		return "constructor"
	case KindPropertyDeclaration:
		return "property_declaration"
	case KindPropertySignature:
		return "property_signature"
	case KindPropertyAssignment:
		return "property_assignment"
	case KindShorthandPropertyAssignment:
		return "shorthand_property_assignment"
	case KindObjectLiteral:
		return "object_literal"
	case KindParameter:
		return "parameter"
	case KindTypeParameter:
		return "type_parameter"
	case KindHeritageClause:
		return "heritage_clause"
	case KindIdentifier:
		return "identifier"
	default:
		return "other"
	}
}

// IsDeclaration reports whether nodes of this kind introduce a named binding
// whose name child marks a definition occurrence.
func (k Kind) IsDeclaration() bool {
	switch k {
	case KindModuleDeclaration,
		KindVariableDeclaration,
		KindClassDeclaration,
		KindInterfaceDeclaration,
		KindEnumDeclaration,
		KindEnumMember,
		KindFunctionDeclaration,
		KindMethodDeclaration,
		KindMethodSignature,
		KindConstructor,
		KindPropertyDeclaration,
		KindPropertySignature,
		KindPropertyAssignment,
		KindShorthandPropertyAssignment,
		KindParameter,
		KindTypeParameter:
		return true
	}
	return false
}

// Node is one node of the semantic syntax tree. Node identity is pointer
// identity: two syntactically identical declarations at different tree
// positions are distinct. ID is the arena index assigned at build time and
// is stable for the life of the tree.
type Node struct {
	ID       int
	Kind     Kind
	Range    Range
	Parent   *Node
	Children []*Node

	// Text is the identifier text; empty for non-identifier nodes except
	// import declarations, which carry their module specifier here.
	Text string

	// Name is the identifier child that names this declaration, nil for
	// anonymous declarations and non-declarations.
	Name *Node

	// Doc carries the documentation comment attached to a declaration.
	Doc string

	// Exported marks top-level declarations reachable from other files.
	Exported bool

	// StartByte and EndByte delimit the node's source text in Tree.Source.
	StartByte uint32
	EndByte   uint32

	tree *Tree
}

// Tree is the arena of nodes for one source file.
type Tree struct {
	Path   string
	Source []byte
	Root   *Node
	Nodes  []*Node
}

// NewTree creates an empty tree for the given file.
func NewTree(path string, source []byte) *Tree {
	return &Tree{Path: path, Source: source}
}

// NewNode allocates a node in the tree's arena and links it under parent.
// Passing a nil parent makes the node the tree root.
func (t *Tree) NewNode(kind Kind, parent *Node) *Node {
	n := &Node{ID: len(t.Nodes), Kind: kind, Parent: parent, tree: t}
	t.Nodes = append(t.Nodes, n)
	if parent == nil {
		t.Root = n
	} else {
		parent.Children = append(parent.Children, n)
	}
	return n
}

// Tree returns the tree this node belongs to.
func (n *Node) Tree() *Tree {
	return n.tree
}

// SourceText returns the slice of the file covered by this node.
func (n *Node) SourceText() string {
	src := n.tree.Source
	if int(n.EndByte) > len(src) || n.StartByte > n.EndByte {
		return ""
	}
	return string(src[n.StartByte:n.EndByte])
}
