package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/symdex-dev/symdex/internal/query"
)

func RunDefinition(cmd *cobra.Command, args []string) error {
	ix, loc, err := loadAndLocate(cmd, args[0])
	if err != nil {
		return err
	}

	symbol, ok := ix.SymbolAt(loc.File, loc.Line, loc.Column)
	if !ok {
		return fmt.Errorf("no symbol at %s:%d:%d", loc.File, loc.Line+1, loc.Column+1)
	}

	results := ix.Definitions(symbol, loc.File)
	return printLocations(cmd, results)
}

func RunReferences(cmd *cobra.Command, args []string) error {
	target := args[0]

	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return fmt.Errorf("failed to read --root flag: %w", err)
	}
	rootPath, err := resolveProjectRoot(root)
	if err != nil {
		return err
	}
	ix, err := query.Load(filepath.Join(rootPath, OutputDir, IndexFile))
	if err != nil {
		return err
	}

	var symbol, fromFile string
	if loc, ok := tryParseLocation(target); ok {
		symbol, ok = ix.SymbolAt(loc.File, loc.Line, loc.Column)
		if !ok {
			return fmt.Errorf("no symbol at %s:%d:%d", loc.File, loc.Line+1, loc.Column+1)
		}
		fromFile = loc.File
	} else {
		symbol = target
	}

	results := ix.References(symbol, fromFile)
	return printLocations(cmd, results)
}

func loadAndLocate(cmd *cobra.Command, arg string) (*query.Index, SourceLocation, error) {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return nil, SourceLocation{}, fmt.Errorf("failed to read --root flag: %w", err)
	}
	rootPath, err := resolveProjectRoot(root)
	if err != nil {
		return nil, SourceLocation{}, err
	}

	loc, err := ParseLocation(arg)
	if err != nil {
		return nil, SourceLocation{}, err
	}

	ix, err := query.Load(filepath.Join(rootPath, OutputDir, IndexFile))
	if err != nil {
		return nil, SourceLocation{}, err
	}
	return ix, loc, nil
}

func printLocations(cmd *cobra.Command, results []query.Location) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}
	return PrintLocations(cmd.OutOrStdout(), results, asJSON)
}

func tryParseLocation(arg string) (SourceLocation, bool) {
	if strings.Count(arg, ":") < 2 {
		return SourceLocation{}, false
	}
	loc, err := ParseLocation(arg)
	if err != nil {
		return SourceLocation{}, false
	}
	return loc, true
}
