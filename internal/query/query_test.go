package query

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/symdex-dev/symdex/internal/fileutil"
	"github.com/symdex-dev/symdex/internal/index"
)

func writeIndex(t *testing.T, docs []index.Document) string {
	t.Helper()
	data, err := fileutil.EncodeJSONL(docs)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "index.jsonl")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testIndex(t *testing.T) *Index {
	t.Helper()
	path := writeIndex(t, []index.Document{
		{
			RelativePath: "lib.ts",
			Occurrences: []index.Occurrence{
				{Range: []int32{0, 13, 19}, Symbol: "mypkg/Widget#", SymbolRoles: index.RoleDefinition},
				{Range: []int32{2, 6, 7}, Symbol: "local 0", SymbolRoles: index.RoleDefinition},
				{Range: []int32{3, 0, 1}, Symbol: "local 0"},
			},
		},
		{
			RelativePath: "app.ts",
			Occurrences: []index.Occurrence{
				{Range: []int32{1, 14, 20}, Symbol: "mypkg/Widget#"},
				{Range: []int32{4, 6, 7}, Symbol: "local 1", SymbolRoles: index.RoleDefinition},
			},
		},
	})
	ix, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ix
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "index.jsonl"))
	if err == nil || !strings.Contains(err.Error(), "run symdex index") {
		t.Fatalf("got %v, want missing-index hint", err)
	}
}

func TestSymbolAt(t *testing.T) {
	ix := testIndex(t)

	sym, ok := ix.SymbolAt("lib.ts", 0, 15)
	if !ok || sym != "mypkg/Widget#" {
		t.Errorf("SymbolAt = %q, %v", sym, ok)
	}

	if _, ok := ix.SymbolAt("lib.ts", 0, 0); ok {
		t.Error("position outside any occurrence resolved")
	}
	if _, ok := ix.SymbolAt("missing.ts", 0, 0); ok {
		t.Error("unknown file resolved")
	}
}

func TestDefinitions(t *testing.T) {
	ix := testIndex(t)

	defs := ix.Definitions("mypkg/Widget#", "app.ts")
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1", len(defs))
	}
	if defs[0].Path != "lib.ts" {
		t.Errorf("definition in %q, want lib.ts", defs[0].Path)
	}
}

func TestReferences(t *testing.T) {
	ix := testIndex(t)

	refs := ix.References("mypkg/Widget#", "")
	if len(refs) != 2 {
		t.Fatalf("got %d references, want 2", len(refs))
	}
}

func TestLocalSymbolsStayInFile(t *testing.T) {
	ix := testIndex(t)

	refs := ix.References("local 0", "lib.ts")
	if len(refs) != 2 {
		t.Fatalf("got %d references, want 2", len(refs))
	}
	for _, loc := range refs {
		if loc.Path != "lib.ts" {
			t.Errorf("local reference escaped to %q", loc.Path)
		}
	}

	if got := ix.References("local 0", "app.ts"); len(got) != 0 {
		t.Errorf("local lookup from another file returned %v", got)
	}
}

func TestDocumentFor(t *testing.T) {
	ix := testIndex(t)
	if doc := ix.DocumentFor("lib.ts"); doc == nil || doc.RelativePath != "lib.ts" {
		t.Errorf("DocumentFor = %v", doc)
	}
	if doc := ix.DocumentFor("missing.ts"); doc != nil {
		t.Errorf("DocumentFor(missing) = %v", doc)
	}
}
