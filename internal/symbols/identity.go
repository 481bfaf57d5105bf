package symbols

import (
	"fmt"
	"strings"

	"github.com/symdex-dev/symdex/internal/descriptor"
)

// LocalPrefix is the scope marker that opens every file-local symbol string.
// Local symbol strings are comparable only within one file.
const LocalPrefix = "local"

type identityTag int

const (
	tagEmpty identityTag = iota
	tagLocal
	tagGlobal
)

// Identity is the canonical symbol identity of one declaration: Empty for
// non-indexable entities, Local for entities with no meaningful cross-file
// name, or Global with an owner chain of descriptors rooted at a package.
type Identity struct {
	tag   identityTag
	index int
	chain []descriptor.Descriptor
}

// EmptyIdentity is the identity of non-indexable entities.
func EmptyIdentity() Identity {
	return Identity{tag: tagEmpty}
}

// LocalIdentity is a file-scoped identity with the given index.
func LocalIdentity(index int) Identity {
	return Identity{tag: tagLocal, index: index}
}

// PackageIdentity roots a new global owner chain at the given package
// descriptor.
func PackageIdentity(pkg descriptor.Descriptor) Identity {
	return Identity{tag: tagGlobal, chain: []descriptor.Descriptor{pkg}}
}

// GlobalIdentity extends the owner's chain by one descriptor. The owner must
// be global.
func GlobalIdentity(owner Identity, desc descriptor.Descriptor) Identity {
	chain := make([]descriptor.Descriptor, 0, len(owner.chain)+1)
	chain = append(chain, owner.chain...)
	chain = append(chain, desc)
	return Identity{tag: tagGlobal, chain: chain}
}

func (id Identity) IsEmpty() bool  { return id.tag == tagEmpty }
func (id Identity) IsLocal() bool  { return id.tag == tagLocal }
func (id Identity) IsGlobal() bool { return id.tag == tagGlobal }

// Chain returns the owner chain of a global identity, nil otherwise.
func (id Identity) Chain() []descriptor.Descriptor {
	return id.chain
}

// String renders the symbol string: the concatenated descriptor suffixes for
// a global identity, the scope marker plus a file-scoped index for a local
// one, and the empty string for Empty. Rendering a descriptor with an
// unknown kind fails; the caller aborts the file rather than emit an
// inconsistent symbol string.
func (id Identity) String() (string, error) {
	switch id.tag {
	case tagEmpty:
		return "", nil
	case tagLocal:
		return fmt.Sprintf("%s %d", LocalPrefix, id.index), nil
	}
	var sb strings.Builder
	for _, desc := range id.chain {
		suffix, err := desc.Format()
		if err != nil {
			return "", err
		}
		sb.WriteString(suffix)
	}
	return sb.String(), nil
}
