package semantics

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/symdex-dev/symdex/internal/syntax"
)

// Parser turns TypeScript/JavaScript sources into semantic syntax trees.
type Parser struct {
	tsParser  *sitter.Parser
	tsxParser *sitter.Parser
	jsParser  *sitter.Parser
}

func NewParser() *Parser {
	ts := sitter.NewParser()
	ts.SetLanguage(typescript.GetLanguage())

	tx := sitter.NewParser()
	tx.SetLanguage(tsx.GetLanguage())

	js := sitter.NewParser()
	js.SetLanguage(javascript.GetLanguage())

	return &Parser{tsParser: ts, tsxParser: tx, jsParser: js}
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}
}

// ParseFile parses one source file into a syntax tree. The path is recorded
// on the tree verbatim and becomes the document's relative path.
func (p *Parser) ParseFile(path string, content []byte) (*syntax.Tree, error) {
	grammar := p.tsParser
	switch {
	case strings.HasSuffix(path, ".tsx"):
		grammar = p.tsxParser
	case strings.HasSuffix(path, ".js"),
		strings.HasSuffix(path, ".jsx"),
		strings.HasSuffix(path, ".mjs"),
		strings.HasSuffix(path, ".cjs"):
		grammar = p.jsParser
	}

	tsTree, err := grammar.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tsTree.Close()

	tree := syntax.NewTree(path, content)
	c := &converter{tree: tree, source: content}
	root := tree.NewNode(syntax.KindSourceFile, nil)
	c.fill(root, tsTree.RootNode())
	c.children(tsTree.RootNode(), root, false)
	return tree, nil
}

// converter lowers a tree-sitter parse tree into the syntax arena. Wrapper
// nodes the TypeScript AST does not have (class bodies, parameter lists,
// export statements) are spliced away so the namer sees the owner chain the
// resolution rules are written against.
type converter struct {
	tree   *syntax.Tree
	source []byte
}

func (c *converter) children(ts *sitter.Node, parent *syntax.Node, exported bool) {
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		c.node(ts.NamedChild(i), parent, exported)
	}
}

func (c *converter) node(ts *sitter.Node, parent *syntax.Node, exported bool) {
	switch ts.Type() {
	case "comment":
		return

	case "export_statement":
		c.children(ts, parent, true)
		return

	case "ambient_declaration":
		c.children(ts, parent, exported)
		return

	case "class_body", "interface_body", "object_type", "formal_parameters", "type_parameters":
		c.children(ts, parent, false)
		return

	case "enum_body":
		c.enumMembers(ts, parent)
		return

	case "shorthand_property_identifier":
		// Shorthand syntax is both a property declaration and a value
		// reference in one token; model it as a property assignment whose
		// name spans the whole token.
		prop := c.newNode(syntax.KindShorthandPropertyAssignment, parent, ts)
		prop.Name = c.identifier(ts, prop)
		return

	case "member_expression", "nested_identifier", "nested_type_identifier":
		// The property side of a qualified name needs type information to
		// resolve; suppress it so lexical lookup cannot bind it to an
		// unrelated local of the same name.
		c.qualifiedName(ts, parent, exported)
		return

	case "lexical_declaration", "variable_declaration":
		stmt := c.newNode(syntax.KindVariableStatement, parent, ts)
		list := c.newNode(syntax.KindVariableDeclarationList, stmt, ts)
		c.children(ts, list, exported)
		return
	}

	kind := c.kindOf(ts)
	n := c.newNode(kind, parent, ts)

	switch kind {
	case syntax.KindIdentifier:
		n.Text = ts.Content(c.source)
		return
	case syntax.KindImportDeclaration:
		if source := ts.ChildByFieldName("source"); source != nil {
			n.Text = strings.Trim(source.Content(c.source), "\"'`")
		}
	}

	c.children(ts, n, false)

	if kind.IsDeclaration() {
		n.Exported = exported
		n.Doc = c.docFor(ts)
		c.assignName(n, ts)
	} else if kind == syntax.KindImportSpecifier {
		// Not a declaration, but the local name it binds must be known to
		// the binder and the namer.
		c.assignName(n, ts)
	}
}

// enumMembers lowers an enum body: bare names and initialized assignments
// both become enum member declarations attached directly to the enum.
func (c *converter) enumMembers(body *sitter.Node, parent *syntax.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "property_identifier":
			member := c.newNode(syntax.KindEnumMember, parent, child)
			member.Name = c.identifier(child, member)
		case "enum_assignment":
			member := c.newNode(syntax.KindEnumMember, parent, child)
			c.children(child, member, false)
			c.assignName(member, child)
		default:
			c.node(child, parent, false)
		}
	}
}

func (c *converter) qualifiedName(ts *sitter.Node, parent *syntax.Node, exported bool) {
	n := c.newNode(syntax.KindOther, parent, ts)
	property := ts.ChildByFieldName("property")
	if property == nil {
		// nested identifiers name the right side "name"
		property = ts.ChildByFieldName("name")
	}
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if property != nil && child.Equal(property) {
			c.newNode(syntax.KindOther, n, child)
			continue
		}
		c.node(child, n, exported)
	}
}

func (c *converter) kindOf(ts *sitter.Node) syntax.Kind {
	switch ts.Type() {
	case "statement_block":
		if p := ts.Parent(); p != nil && (p.Type() == "internal_module" || p.Type() == "module") {
			return syntax.KindModuleBody
		}
		return syntax.KindBlock
	case "internal_module", "module":
		return syntax.KindModuleDeclaration
	case "import_statement":
		return syntax.KindImportDeclaration
	case "import_clause":
		return syntax.KindImportClause
	case "named_imports":
		return syntax.KindNamedImports
	case "import_specifier":
		return syntax.KindImportSpecifier
	case "variable_declarator":
		return syntax.KindVariableDeclaration
	case "class_declaration", "abstract_class_declaration", "class":
		return syntax.KindClassDeclaration
	case "interface_declaration":
		return syntax.KindInterfaceDeclaration
	case "enum_declaration":
		return syntax.KindEnumDeclaration
	case "function_declaration", "generator_function_declaration", "function_signature",
		"arrow_function", "function_expression", "function", "generator_function":
		// Anonymous function-like expressions carry no name and resolve to
		// file-local identities, but they still scope their parameters.
		return syntax.KindFunctionDeclaration
	case "method_definition":
		if name := ts.ChildByFieldName("name"); name != nil && name.Content(c.source) == "constructor" {
			return syntax.KindConstructor
		}
		return syntax.KindMethodDeclaration
	case "method_signature", "abstract_method_signature":
		return syntax.KindMethodSignature
	case "public_field_definition":
		return syntax.KindPropertyDeclaration
	case "property_signature":
		return syntax.KindPropertySignature
	case "pair":
		return syntax.KindPropertyAssignment
	case "object":
		return syntax.KindObjectLiteral
	case "required_parameter", "optional_parameter":
		return syntax.KindParameter
	case "type_parameter":
		return syntax.KindTypeParameter
	case "implements_clause":
		return syntax.KindHeritageClause
	case "identifier", "property_identifier", "type_identifier",
		"shorthand_property_identifier_pattern":
		return syntax.KindIdentifier
	}
	return syntax.KindOther
}

func (c *converter) newNode(kind syntax.Kind, parent *syntax.Node, ts *sitter.Node) *syntax.Node {
	n := c.tree.NewNode(kind, parent)
	c.fill(n, ts)
	return n
}

func (c *converter) identifier(ts *sitter.Node, parent *syntax.Node) *syntax.Node {
	id := c.newNode(syntax.KindIdentifier, parent, ts)
	id.Text = ts.Content(c.source)
	return id
}

func (c *converter) fill(n *syntax.Node, ts *sitter.Node) {
	n.StartByte = ts.StartByte()
	n.EndByte = ts.EndByte()
	n.Range = syntax.Range{
		Start: syntax.Position{Line: int32(ts.StartPoint().Row), Character: int32(ts.StartPoint().Column)},
		End:   syntax.Position{Line: int32(ts.EndPoint().Row), Character: int32(ts.EndPoint().Column)},
	}
}

// assignName links the converted identifier child that names a declaration.
// Wrappers are never name fields, so matching by byte offset against the
// grammar's name field is unambiguous.
func (c *converter) assignName(n *syntax.Node, ts *sitter.Node) {
	nameField := ts.ChildByFieldName(nameFieldOf(ts.Type()))
	if nameField == nil {
		return
	}
	if n.Kind == syntax.KindImportSpecifier {
		if alias := ts.ChildByFieldName("alias"); alias != nil {
			nameField = alias
		}
	}
	for _, child := range n.Children {
		if child.Kind == syntax.KindIdentifier && child.StartByte == nameField.StartByte() {
			n.Name = child
			return
		}
	}
}

func nameFieldOf(tsType string) string {
	switch tsType {
	case "pair":
		return "key"
	case "required_parameter", "optional_parameter":
		return "pattern"
	default:
		return "name"
	}
}

// docFor harvests the documentation comment directly above a declaration,
// looking through an enclosing export statement when present.
func (c *converter) docFor(ts *sitter.Node) string {
	node := ts
	if p := ts.Parent(); p != nil {
		switch p.Type() {
		case "export_statement", "ambient_declaration":
			node = p
		case "lexical_declaration", "variable_declaration":
			node = p
			if pp := p.Parent(); pp != nil && pp.Type() == "export_statement" {
				node = pp
			}
		}
	}
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	text := prev.Content(c.source)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return cleanDocComment(text)
}

func cleanDocComment(text string) string {
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line == "" && len(out) == 0 {
			continue
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
