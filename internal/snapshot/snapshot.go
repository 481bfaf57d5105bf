// Package snapshot renders documents as human-readable annotated source,
// used for test fixtures and the snapshot CLI command.
package snapshot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/symdex-dev/symdex/internal/index"
	"github.com/symdex-dev/symdex/internal/syntax"
)

// Format interleaves source lines with one annotation line per occurrence:
// carets under the occurrence's span, its role, and its symbol string.
func Format(doc *index.Document, source []byte) (string, error) {
	byLine := make(map[int32][]index.Occurrence)
	for _, occ := range doc.Occurrences {
		r, err := syntax.DecodeRange(occ.Range)
		if err != nil {
			return "", fmt.Errorf("snapshot %s: %w", doc.RelativePath, err)
		}
		byLine[r.Start.Line] = append(byLine[r.Start.Line], occ)
	}

	var sb strings.Builder
	lines := strings.Split(strings.TrimSuffix(string(source), "\n"), "\n")
	for lineNo, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')

		occs := byLine[int32(lineNo)]
		sort.SliceStable(occs, func(i, j int) bool {
			if occs[i].Range[1] != occs[j].Range[1] {
				return occs[i].Range[1] < occs[j].Range[1]
			}
			return occs[i].Symbol < occs[j].Symbol
		})
		for _, occ := range occs {
			sb.WriteString(annotation(occ))
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

func annotation(occ index.Occurrence) string {
	start := occ.Range[1]
	width := int32(1)
	if len(occ.Range) == 3 && occ.Range[2] > start {
		width = occ.Range[2] - start
	}
	role := "reference"
	if occ.SymbolRoles&index.RoleDefinition != 0 {
		role = "definition"
	}
	return strings.Repeat(" ", int(start)) +
		strings.Repeat("^", int(width)) +
		" " + role + " " + occ.Symbol
}
