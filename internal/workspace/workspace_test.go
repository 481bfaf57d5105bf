package workspace

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.ts", "")
	writeFile(t, root, "src/util.tsx", "")
	writeFile(t, root, "README.md", "")
	writeFile(t, root, "node_modules/dep/index.ts", "")
	writeFile(t, root, ".symdex/index.jsonl", "")

	files, err := Discover(root, []string{".ts", ".tsx"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"src/app.ts", "src/util.tsx"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Discover = %v, want %v", files, want)
	}
}

func TestDiscoverHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\n*.gen.ts\n")
	writeFile(t, root, "src/app.ts", "")
	writeFile(t, root, "src/api.gen.ts", "")
	writeFile(t, root, "generated/types.ts", "")

	files, err := Discover(root, []string{".ts"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"src/app.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Discover = %v, want %v", files, want)
	}
}

func TestPackageOf(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "rootpkg", "version": "1.2.3"}`)
	writeFile(t, root, "packages/web/package.json", `{"name": "webpkg"}`)
	writeFile(t, root, "packages/web/src/app.ts", "")
	writeFile(t, root, "src/main.ts", "")

	r := NewPackageResolver(root)

	desc, ok := r.PackageOf("packages/web/src/app.ts")
	if !ok {
		t.Fatal("nested package not found")
	}
	if desc.Name != "webpkg 0.0.0" {
		t.Errorf("nested package = %q", desc.Name)
	}

	desc, ok = r.PackageOf("src/main.ts")
	if !ok {
		t.Fatal("root package not found")
	}
	if desc.Name != "rootpkg 1.2.3" {
		t.Errorf("root package = %q", desc.Name)
	}
}

func TestPackageOfMissing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "")

	r := NewPackageResolver(root)
	if _, ok := r.PackageOf("src/main.ts"); ok {
		t.Error("found a package where none exists")
	}
}

func TestPackageOfIgnoresMalformed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/package.json", `{not json`)
	writeFile(t, root, "package.json", `{"name": "rootpkg", "version": "2.0.0"}`)
	writeFile(t, root, "sub/a.ts", "")

	r := NewPackageResolver(root)
	desc, ok := r.PackageOf("sub/a.ts")
	if !ok {
		t.Fatal("should fall through to the root package")
	}
	if desc.Name != "rootpkg 2.0.0" {
		t.Errorf("package = %q", desc.Name)
	}
}
