package semantics

import (
	"strings"
	"testing"

	"github.com/symdex-dev/symdex/internal/syntax"
)

func parseProject(t *testing.T, files map[string]string) *Project {
	t.Helper()
	project := NewProject()
	for path, src := range files {
		if _, err := project.AddFile(path, []byte(src)); err != nil {
			t.Fatalf("AddFile(%s): %v", path, err)
		}
	}
	return project
}

func parseOne(t *testing.T, src string) (*Project, *syntax.Tree) {
	t.Helper()
	project := parseProject(t, map[string]string{"main.ts": src})
	return project, project.Trees[0]
}

func findDecl(t *testing.T, tree *syntax.Tree, kind syntax.Kind, name string) *syntax.Node {
	t.Helper()
	for _, n := range tree.Nodes {
		if n.Kind == kind && n.Name != nil && n.Name.Text == name {
			return n
		}
	}
	t.Fatalf("no %s named %q in %s", kind, name, tree.Path)
	return nil
}

func findIdentifiers(tree *syntax.Tree, text string) []*syntax.Node {
	var ids []*syntax.Node
	for _, n := range tree.Nodes {
		if n.Kind == syntax.KindIdentifier && n.Text == text {
			ids = append(ids, n)
		}
	}
	return ids
}

func TestParseClassWithMembers(t *testing.T) {
	src := `export class Config {
  timeout: number;

  constructor(path: string) {}

  load(force: boolean): void {}
}
`
	_, tree := parseOne(t, src)

	class := findDecl(t, tree, syntax.KindClassDeclaration, "Config")
	if !class.Exported {
		t.Error("exported class not marked exported")
	}

	findDecl(t, tree, syntax.KindPropertyDeclaration, "timeout")
	method := findDecl(t, tree, syntax.KindMethodDeclaration, "load")
	if method.Parent != class {
		t.Error("class body wrapper leaked into the tree")
	}
	findDecl(t, tree, syntax.KindParameter, "force")

	hasCtor := false
	for _, n := range tree.Nodes {
		if n.Kind == syntax.KindConstructor {
			hasCtor = true
		}
	}
	if !hasCtor {
		t.Error("constructor not recognized")
	}
}

func TestParseVariableStatement(t *testing.T) {
	_, tree := parseOne(t, "const limit = 10;\n")

	v := findDecl(t, tree, syntax.KindVariableDeclaration, "limit")
	if v.Parent == nil || v.Parent.Kind != syntax.KindVariableDeclarationList {
		t.Fatalf("declarator parent = %v", v.Parent)
	}
	if v.Parent.Parent == nil || v.Parent.Parent.Kind != syntax.KindVariableStatement {
		t.Fatalf("list parent = %v", v.Parent.Parent)
	}
}

func TestParseDocComment(t *testing.T) {
	src := `/**
 * Loads the config.
 *
 * Slowly.
 */
export function load() {}
`
	_, tree := parseOne(t, src)

	fn := findDecl(t, tree, syntax.KindFunctionDeclaration, "load")
	if want := "Loads the config.\n\nSlowly."; fn.Doc != want {
		t.Errorf("Doc = %q, want %q", fn.Doc, want)
	}
}

func TestParseEnumMembers(t *testing.T) {
	_, tree := parseOne(t, "enum Color { Red, Green = 2 }\n")

	enum := findDecl(t, tree, syntax.KindEnumDeclaration, "Color")
	red := findDecl(t, tree, syntax.KindEnumMember, "Red")
	green := findDecl(t, tree, syntax.KindEnumMember, "Green")
	if red.Parent != enum || green.Parent != enum {
		t.Error("enum members should attach directly to the enum")
	}
}

func TestParseNamespace(t *testing.T) {
	src := `namespace net {
  export interface Socket {}
}
`
	_, tree := parseOne(t, src)

	mod := findDecl(t, tree, syntax.KindModuleDeclaration, "net")
	iface := findDecl(t, tree, syntax.KindInterfaceDeclaration, "Socket")
	if iface.Parent == nil || iface.Parent.Kind != syntax.KindModuleBody {
		t.Fatalf("interface parent = %v", iface.Parent)
	}
	if iface.Parent.Parent != mod {
		t.Error("module body should attach to the module declaration")
	}
}

func TestBinderResolvesReference(t *testing.T) {
	src := `const base = 1;
const next = base;
`
	project, tree := parseOne(t, src)

	decl := findDecl(t, tree, syntax.KindVariableDeclaration, "base")
	var ref *syntax.Node
	for _, id := range findIdentifiers(tree, "base") {
		if id != decl.Name {
			ref = id
		}
	}
	if ref == nil {
		t.Fatal("no reference identifier for base")
	}

	sym, ok := project.Binder.ResolveIdentifier(ref)
	if !ok {
		t.Fatal("reference did not resolve")
	}
	if len(sym.Declarations) != 1 || sym.Declarations[0] != decl {
		t.Errorf("resolved declarations = %v", sym.Declarations)
	}
}

func TestBinderResolvesDeclarationName(t *testing.T) {
	project, tree := parseOne(t, "class Task {}\n")

	decl := findDecl(t, tree, syntax.KindClassDeclaration, "Task")
	sym, ok := project.Binder.ResolveIdentifier(decl.Name)
	if !ok {
		t.Fatal("declaration name did not resolve")
	}
	if len(sym.Declarations) != 1 || sym.Declarations[0] != decl {
		t.Errorf("resolved declarations = %v", sym.Declarations)
	}
}

func TestBinderMergedDeclarations(t *testing.T) {
	src := `interface Widget { id: number; }
namespace Widget {
  export const kind = "widget";
}
`
	project, tree := parseOne(t, src)

	iface := findDecl(t, tree, syntax.KindInterfaceDeclaration, "Widget")
	sym, ok := project.Binder.ResolveIdentifier(iface.Name)
	if !ok {
		t.Fatal("merged declaration name did not resolve")
	}
	if len(sym.Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2 (interface + namespace)", len(sym.Declarations))
	}
}

func TestBinderShorthandValue(t *testing.T) {
	src := `const name = "x";
const o = { name };
`
	project, tree := parseOne(t, src)

	prop := findDecl(t, tree, syntax.KindShorthandPropertyAssignment, "name")
	value := findDecl(t, tree, syntax.KindVariableDeclaration, "name")

	decls := project.Binder.ShorthandValueDeclarations(prop)
	if len(decls) != 1 || decls[0] != value {
		t.Errorf("shorthand value declarations = %v, want the outer binding", decls)
	}
}

func TestBinderObjectPropertiesNotReferencable(t *testing.T) {
	src := `const o = { hidden: 1 };
const x = hidden;
`
	project, tree := parseOne(t, src)

	var ref *syntax.Node
	prop := findDecl(t, tree, syntax.KindPropertyAssignment, "hidden")
	for _, id := range findIdentifiers(tree, "hidden") {
		if id != prop.Name {
			ref = id
		}
	}
	if ref == nil {
		t.Fatal("no reference identifier for hidden")
	}
	if sym, ok := project.Binder.ResolveIdentifier(ref); ok {
		t.Errorf("object property leaked into lexical scope: %v", sym.Declarations)
	}
}

func TestBinderImportResolution(t *testing.T) {
	project := parseProject(t, map[string]string{
		"lib.ts": "export class Widget {}\n",
		"app.ts": `import { Widget } from "./lib";
const w = new Widget();
`,
	})

	var appTree, libTree *syntax.Tree
	for _, tree := range project.Trees {
		switch tree.Path {
		case "app.ts":
			appTree = tree
		case "lib.ts":
			libTree = tree
		}
	}

	spec := findDecl(t, appTree, syntax.KindImportSpecifier, "Widget")
	target := findDecl(t, libTree, syntax.KindClassDeclaration, "Widget")

	decls := project.Binder.AliasedDeclarations(spec)
	if len(decls) != 1 || decls[0] != target {
		t.Fatalf("aliased declarations = %v, want the exported class", decls)
	}

	// The use site resolves to the import specifier, which the namer then
	// follows to the target.
	var use *syntax.Node
	for _, id := range findIdentifiers(appTree, "Widget") {
		if id != spec.Name {
			use = id
		}
	}
	if use == nil {
		t.Fatal("no use of Widget in app.ts")
	}
	sym, ok := project.Binder.ResolveIdentifier(use)
	if !ok {
		t.Fatal("imported name did not resolve")
	}
	if len(sym.Declarations) != 1 || sym.Declarations[0] != spec {
		t.Errorf("use resolves to %v, want the import specifier", sym.Declarations)
	}
}

func TestBinderImplements(t *testing.T) {
	src := `interface Runner { run(): void; }
class Task implements Runner {
  run(): void {}
}
`
	project, tree := parseOne(t, src)

	iface := findDecl(t, tree, syntax.KindInterfaceDeclaration, "Runner")
	class := findDecl(t, tree, syntax.KindClassDeclaration, "Task")

	targets := project.Binder.ImplementsDeclarations(class)
	if len(targets) != 1 || targets[0] != iface {
		t.Errorf("implements targets = %v, want the interface", targets)
	}
}

func TestTypeSignatures(t *testing.T) {
	src := `const limit = 10;
export function load(path: string): void {}
class Config {}
`
	project, tree := parseOne(t, src)

	v := findDecl(t, tree, syntax.KindVariableDeclaration, "limit")
	if got := project.Binder.TypeSignatureOf(v); got != "const limit" {
		t.Errorf("variable signature = %q", got)
	}

	fn := findDecl(t, tree, syntax.KindFunctionDeclaration, "load")
	sig := project.Binder.TypeSignatureOf(fn)
	if !strings.HasPrefix(sig, "function load(path: string)") {
		t.Errorf("function signature = %q", sig)
	}
	if strings.Contains(sig, "{") {
		t.Errorf("function signature includes body: %q", sig)
	}

	class := findDecl(t, tree, syntax.KindClassDeclaration, "Config")
	if got := project.Binder.TypeSignatureOf(class); got != "class Config" {
		t.Errorf("class signature = %q", got)
	}
}

func TestParserExtensions(t *testing.T) {
	project := parseProject(t, map[string]string{
		"a.tsx": "export const App = () => <div/>;\n",
		"b.js":  "function legacy() {}\n",
	})
	if len(project.Trees) != 2 {
		t.Fatalf("got %d trees, want 2", len(project.Trees))
	}
	for _, tree := range project.Trees {
		if tree.Root == nil || tree.Root.Kind != syntax.KindSourceFile {
			t.Errorf("%s: bad root", tree.Path)
		}
	}
}
