// Package query answers go-to-definition and find-references lookups over
// an emitted index.
package query

import (
	"fmt"
	"os"
	"strings"

	"github.com/symdex-dev/symdex/internal/fileutil"
	"github.com/symdex-dev/symdex/internal/index"
	"github.com/symdex-dev/symdex/internal/symbols"
	"github.com/symdex-dev/symdex/internal/syntax"
)

// Location is one resolved source position.
type Location struct {
	Path   string  `json:"path"`
	Range  []int32 `json:"range"`
	Symbol string  `json:"symbol"`
}

// Index is a loaded set of documents.
type Index struct {
	Documents []index.Document
	byPath    map[string]*index.Document
}

// Load reads a JSONL index file.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("index missing at %s (run symdex index)", path)
		}
		return nil, fmt.Errorf("read index: %w", err)
	}
	docs, err := fileutil.DecodeJSONL[index.Document](data)
	if err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}

	ix := &Index{Documents: docs, byPath: make(map[string]*index.Document, len(docs))}
	for i := range ix.Documents {
		ix.byPath[ix.Documents[i].RelativePath] = &ix.Documents[i]
	}
	return ix, nil
}

// DocumentFor returns the document for a relative path, or nil.
func (ix *Index) DocumentFor(file string) *index.Document {
	return ix.byPath[file]
}

// SymbolAt returns the symbol of the occurrence covering the position,
// preferring the occurrence that starts latest (the innermost one).
func (ix *Index) SymbolAt(file string, line, column int32) (string, bool) {
	doc, ok := ix.byPath[file]
	if !ok {
		return "", false
	}
	best := ""
	bestStart := int32(-1)
	for _, occ := range doc.Occurrences {
		r, err := syntax.DecodeRange(occ.Range)
		if err != nil {
			continue
		}
		if r.Contains(line, column) && r.Start.Character > bestStart {
			best = occ.Symbol
			bestStart = r.Start.Character
		}
	}
	return best, best != ""
}

// Definitions returns every definition occurrence of symbol. Local symbols
// are only comparable within the file they were observed in, so lookups for
// them are restricted to fromFile.
func (ix *Index) Definitions(symbol, fromFile string) []Location {
	return ix.collect(symbol, fromFile, func(occ index.Occurrence) bool {
		return occ.SymbolRoles&index.RoleDefinition != 0
	})
}

// References returns every occurrence of symbol, definitions included.
func (ix *Index) References(symbol, fromFile string) []Location {
	return ix.collect(symbol, fromFile, func(index.Occurrence) bool { return true })
}

func (ix *Index) collect(symbol, fromFile string, keep func(index.Occurrence) bool) []Location {
	var docs []index.Document
	if isLocal(symbol) {
		doc, ok := ix.byPath[fromFile]
		if !ok {
			return nil
		}
		docs = []index.Document{*doc}
	} else {
		docs = ix.Documents
	}

	var out []Location
	for _, doc := range docs {
		for _, occ := range doc.Occurrences {
			if occ.Symbol == symbol && keep(occ) {
				out = append(out, Location{Path: doc.RelativePath, Range: occ.Range, Symbol: occ.Symbol})
			}
		}
	}
	return out
}

func isLocal(symbol string) bool {
	return strings.HasPrefix(symbol, symbols.LocalPrefix+" ")
}
