// Package workspace locates indexable sources and maps them to their
// enclosing distributable package identity.
package workspace

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/symdex-dev/symdex/internal/descriptor"
)

type packageJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// PackageResolver resolves a project-relative file path to the package
// descriptor of its nearest enclosing package.json. Lookups are cached per
// directory; the cache is safe for concurrent use.
type PackageResolver struct {
	root string

	mu    sync.Mutex
	cache map[string]*descriptor.Descriptor // dir -> descriptor, nil entry = none
}

func NewPackageResolver(root string) *PackageResolver {
	return &PackageResolver{
		root:  root,
		cache: make(map[string]*descriptor.Descriptor),
	}
}

// PackageOf implements symbols.PackageResolver. The descriptor name is
// "<name> <version>"; version defaults to 0.0.0 when package.json omits it.
func (r *PackageResolver) PackageOf(relPath string) (descriptor.Descriptor, bool) {
	dir := path.Dir(path.Clean(filepath.ToSlash(relPath)))
	for {
		if desc := r.lookupDir(dir); desc != nil {
			return *desc, true
		}
		if dir == "." || dir == "/" {
			return descriptor.Descriptor{}, false
		}
		dir = path.Dir(dir)
	}
}

func (r *PackageResolver) lookupDir(dir string) *descriptor.Descriptor {
	r.mu.Lock()
	if desc, ok := r.cache[dir]; ok {
		r.mu.Unlock()
		return desc
	}
	r.mu.Unlock()

	desc := r.readPackageJSON(dir)

	r.mu.Lock()
	r.cache[dir] = desc
	r.mu.Unlock()
	return desc
}

func (r *PackageResolver) readPackageJSON(dir string) *descriptor.Descriptor {
	data, err := os.ReadFile(filepath.Join(r.root, filepath.FromSlash(dir), "package.json"))
	if err != nil {
		return nil
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil || pkg.Name == "" {
		return nil
	}
	version := pkg.Version
	if version == "" {
		version = "0.0.0"
	}
	desc := descriptor.NewPackage(pkg.Name + " " + version)
	return &desc
}
