package index

import (
	"fmt"

	"github.com/symdex-dev/symdex/internal/semantics"
	"github.com/symdex-dev/symdex/internal/symbols"
	"github.com/symdex-dev/symdex/internal/syntax"
)

// Emitter walks one file's syntax tree at a time and produces its Document.
// The namer it carries spans the whole run, so documents from different
// files agree on global symbol strings regardless of processing order.
type Emitter struct {
	namer    *symbols.Namer
	resolver semantics.Resolver
}

func NewEmitter(namer *symbols.Namer, resolver semantics.Resolver) *Emitter {
	return &Emitter{namer: namer, resolver: resolver}
}

// IndexFile traverses the tree depth-first in source order — the order that
// fixes local indices and per-name property counters — and returns the
// file's Document. A malformed range or unrenderable symbol aborts this
// file's document; the caller may continue with other files.
func (e *Emitter) IndexFile(tree *syntax.Tree) (*Document, error) {
	fn := e.namer.ForFile(tree)
	doc := &Document{RelativePath: tree.Path}
	if err := e.visit(tree.Root, fn, doc); err != nil {
		return nil, fmt.Errorf("index %s: %w", tree.Path, err)
	}
	return doc, nil
}

func (e *Emitter) visit(node *syntax.Node, fn *symbols.FileNamer, doc *Document) error {
	if node.Kind == syntax.KindIdentifier {
		if err := e.emitIdentifier(node, fn, doc); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := e.visit(child, fn, doc); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitIdentifier(id *syntax.Node, fn *symbols.FileNamer, doc *Document) error {
	sym, ok := e.resolver.ResolveIdentifier(id)
	if !ok {
		return nil
	}

	isDefinition := id.Parent != nil && id.Parent.Name == id && id.Parent.Kind.IsDeclaration()

	encoded, err := id.Range.Encode()
	if err != nil {
		return err
	}

	for _, decl := range sym.Declarations {
		identity := fn.Resolve(decl)
		if identity.IsEmpty() {
			continue
		}
		rendered, err := identity.String()
		if err != nil {
			return err
		}

		var roles int32
		if isDefinition {
			roles |= RoleDefinition
		}
		doc.Occurrences = append(doc.Occurrences, Occurrence{
			Range:       encoded,
			Symbol:      rendered,
			SymbolRoles: roles,
		})

		if !isDefinition {
			continue
		}

		info := SymbolInformation{
			Symbol:        rendered,
			Documentation: e.documentation(decl, sym),
		}
		info.Relationships, err = e.relationships(decl, fn)
		if err != nil {
			return err
		}
		doc.Symbols = append(doc.Symbols, info)

		if decl.Kind == syntax.KindShorthandPropertyAssignment {
			if err := e.emitShorthandValue(decl, encoded, fn, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// emitShorthandValue adds the pure-reference occurrence a shorthand property
// carries: the same token also reads the captured value binding.
func (e *Emitter) emitShorthandValue(decl *syntax.Node, encoded []int32, fn *symbols.FileNamer, doc *Document) error {
	for _, valueDecl := range e.resolver.ShorthandValueDeclarations(decl) {
		identity := fn.Resolve(valueDecl)
		if identity.IsEmpty() {
			continue
		}
		rendered, err := identity.String()
		if err != nil {
			return err
		}
		doc.Occurrences = append(doc.Occurrences, Occurrence{
			Range:  encoded,
			Symbol: rendered,
		})
	}
	return nil
}

func (e *Emitter) documentation(decl *syntax.Node, sym *semantics.SemanticSymbol) []string {
	docs := []string{"```ts\n" + e.resolver.TypeSignatureOf(decl) + "\n```"}
	return append(docs, sym.Documentation...)
}

func (e *Emitter) relationships(decl *syntax.Node, fn *symbols.FileNamer) ([]Relationship, error) {
	targets := e.resolver.ImplementsDeclarations(decl)
	if len(targets) == 0 {
		return nil, nil
	}
	rels := make([]Relationship, 0, len(targets))
	for _, target := range targets {
		identity := fn.Resolve(target)
		if identity.IsEmpty() || identity.IsLocal() {
			continue
		}
		rendered, err := identity.String()
		if err != nil {
			return nil, err
		}
		rels = append(rels, Relationship{
			Symbol:           rendered,
			IsImplementation: true,
			IsReference:      true,
		})
	}
	if len(rels) == 0 {
		return nil, nil
	}
	return rels, nil
}
