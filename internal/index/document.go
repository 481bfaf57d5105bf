// Package index emits per-file occurrence documents: for every identifier,
// which symbol it denotes and whether the occurrence defines it.
package index

// RoleDefinition is bit 0 of an occurrence's role bitmask.
const RoleDefinition int32 = 1

// Occurrence records one mention of a symbol in source text. Range is the
// 3-component [line, startColumn, endColumn] form for single-line
// occurrences and the 4-component [startLine, startColumn, endLine,
// endColumn] form otherwise; positions are zero-based, end-exclusive.
type Occurrence struct {
	Range       []int32 `json:"range"`
	Symbol      string  `json:"symbol"`
	SymbolRoles int32   `json:"symbolRoles,omitempty"`
}

// Relationship links a symbol to a related symbol.
type Relationship struct {
	Symbol           string `json:"symbol"`
	IsImplementation bool   `json:"isImplementation,omitempty"`
	IsReference      bool   `json:"isReference,omitempty"`
	IsTypeDefinition bool   `json:"isTypeDefinition,omitempty"`
}

// SymbolInformation carries the metadata attached to a symbol's definition.
// A symbol with multiple merged declarations legitimately produces one entry
// per definition occurrence; consumers must tolerate the duplicates.
type SymbolInformation struct {
	Symbol        string         `json:"symbol"`
	Documentation []string       `json:"documentation,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty"`
}

// Document is the per-file index output. It is populated during one file's
// traversal and never mutated afterwards.
type Document struct {
	RelativePath string              `json:"relativePath"`
	Occurrences  []Occurrence        `json:"occurrences"`
	Symbols      []SymbolInformation `json:"symbols"`
}
