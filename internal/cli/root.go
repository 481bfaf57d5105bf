// Package cli wires the symdex commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "symdex",
		Short: "Index symbol definitions and references for code navigation",
		Long: `Symdex assigns stable, globally comparable symbols to every named
entity in a TypeScript/JavaScript source tree and records each identifier
occurrence as a definition or reference. The per-file index it writes to
.symdex/index.jsonl backs go-to-definition, find-references, and hover
documentation across the whole project.`,
	}

	indexCmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Index the project and write .symdex/index.jsonl",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunIndex,
	}
	indexCmd.Flags().Bool("incremental", false, "Reuse documents for files unchanged since the last run")
	indexCmd.Flags().String("out", "", "Output directory (default <path>/.symdex)")
	indexCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Print a file's occurrences as annotated source",
		Args:  cobra.ExactArgs(1),
		RunE:  RunSnapshot,
	}
	snapshotCmd.Flags().String("root", ".", "Project root the file is indexed within")

	definitionCmd := &cobra.Command{
		Use:   "definition <file:line:col>",
		Short: "Resolve the definition of the symbol at a source position",
		Args:  cobra.ExactArgs(1),
		RunE:  RunDefinition,
	}
	definitionCmd.Flags().String("root", ".", "Project root holding the .symdex index")
	definitionCmd.Flags().Bool("json", false, "Print machine-readable locations")

	referencesCmd := &cobra.Command{
		Use:   "references <file:line:col|symbol>",
		Short: "List references to the symbol at a position or named directly",
		Args:  cobra.ExactArgs(1),
		RunE:  RunReferences,
	}
	referencesCmd.Flags().String("root", ".", "Project root holding the .symdex index")
	referencesCmd.Flags().Bool("json", false, "Print machine-readable locations")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("symdex %s\n", version)
		},
	}

	rootCmd.AddCommand(
		indexCmd,
		snapshotCmd,
		definitionCmd,
		referencesCmd,
		versionCmd,
	)

	return rootCmd
}
