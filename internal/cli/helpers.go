package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/symdex-dev/symdex/internal/fileutil"
	"github.com/symdex-dev/symdex/internal/query"
	"github.com/symdex-dev/symdex/internal/syntax"
)

// SourceLocation is a parsed file:line:col argument. Line and Column are
// zero-based; the CLI accepts one-based positions.
type SourceLocation struct {
	File   string
	Line   int32
	Column int32
}

// ParseLocation parses "file:line:col" with one-based line and column.
// Windows drive letters keep the file part intact because the line and
// column are split off the right.
func ParseLocation(arg string) (SourceLocation, error) {
	rest := arg
	colIdx := strings.LastIndex(rest, ":")
	if colIdx <= 0 {
		return SourceLocation{}, fmt.Errorf("invalid location %q (want file:line:col)", arg)
	}
	colStr := rest[colIdx+1:]
	rest = rest[:colIdx]

	lineIdx := strings.LastIndex(rest, ":")
	if lineIdx <= 0 {
		return SourceLocation{}, fmt.Errorf("invalid location %q (want file:line:col)", arg)
	}
	lineStr := rest[lineIdx+1:]
	file := rest[:lineIdx]

	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return SourceLocation{}, fmt.Errorf("invalid line in %q (want file:line:col, 1-based)", arg)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 1 {
		return SourceLocation{}, fmt.Errorf("invalid column in %q (want file:line:col, 1-based)", arg)
	}

	return SourceLocation{
		File:   filepath.ToSlash(file),
		Line:   int32(line - 1),
		Column: int32(col - 1),
	}, nil
}

// PrintLocations writes results one per line as path:line:col (one-based),
// or as a JSON array with --json.
func PrintLocations(w io.Writer, results []query.Location, asJSON bool) error {
	if asJSON {
		if results == nil {
			results = []query.Location{}
		}
		return fileutil.PrintJSON(w, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "no results")
		return nil
	}
	for _, loc := range results {
		r, err := syntax.DecodeRange(loc.Range)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s:%d:%d\t%s\n", loc.Path, r.Start.Line+1, r.Start.Character+1, loc.Symbol)
	}
	return nil
}

// PrintRunSummary writes the human or JSON form of an indexing run result.
func PrintRunSummary(summary *RunSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(os.Stdout, summary)
	}

	fmt.Printf("Indexed %d of %d files (%d reused, %d failed) in %dms\n",
		summary.Indexed, summary.Files, summary.Reused, summary.Failed, summary.DurationMS)
	fmt.Printf("  %d occurrences, %d symbols -> %s\n",
		summary.Occurrences, summary.Symbols, summary.OutputPath)
	for _, issue := range summary.Issues {
		fmt.Printf("  warning: %s: %s\n", issue.File, issue.Message)
	}
	return nil
}
