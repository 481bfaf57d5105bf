package semantics

import (
	"fmt"
	"sort"

	"github.com/symdex-dev/symdex/internal/syntax"
)

// Project holds the parsed and bound trees of one indexing run. All files
// must be added before occurrences are emitted so import specifiers can
// resolve against sibling trees.
type Project struct {
	Parser *Parser
	Binder *Binder
	Trees  []*syntax.Tree
}

func NewProject() *Project {
	return &Project{Parser: NewParser(), Binder: NewBinder()}
}

// AddFile parses and binds one source file, keyed by its project-relative
// slash-separated path.
func (p *Project) AddFile(relPath string, content []byte) (*syntax.Tree, error) {
	tree, err := p.Parser.ParseFile(relPath, content)
	if err != nil {
		return nil, fmt.Errorf("add %s: %w", relPath, err)
	}
	p.Binder.Add(tree)
	p.Trees = append(p.Trees, tree)
	return tree, nil
}

// SortedTrees returns the project trees in path order, the traversal order
// the indexer uses for deterministic output.
func (p *Project) SortedTrees() []*syntax.Tree {
	trees := append([]*syntax.Tree(nil), p.Trees...)
	sort.Slice(trees, func(i, j int) bool { return trees[i].Path < trees[j].Path })
	return trees
}
