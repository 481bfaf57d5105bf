package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/symdex-dev/symdex/internal/index"
	"github.com/symdex-dev/symdex/internal/semantics"
	"github.com/symdex-dev/symdex/internal/snapshot"
	"github.com/symdex-dev/symdex/internal/symbols"
	"github.com/symdex-dev/symdex/internal/syntax"
	"github.com/symdex-dev/symdex/internal/workspace"
)

// RunSnapshot indexes the project containing the file and prints the file's
// source interleaved with occurrence annotations.
func RunSnapshot(cmd *cobra.Command, args []string) error {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return fmt.Errorf("failed to read --root flag: %w", err)
	}
	rootPath, err := resolveProjectRoot(root)
	if err != nil {
		return err
	}

	target, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", args[0], err)
	}
	rel, err := filepath.Rel(rootPath, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("file %q is outside project root %q", args[0], rootPath)
	}
	rel = filepath.ToSlash(rel)

	project := semantics.NewProject()
	files, err := workspace.Discover(rootPath, project.Parser.Extensions())
	if err != nil {
		return fmt.Errorf("failed to discover source files: %w", err)
	}
	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(rootPath, filepath.FromSlash(file)))
		if err != nil {
			continue
		}
		if _, err := project.AddFile(file, content); err != nil && file == rel {
			return err
		}
	}

	var tree *syntax.Tree
	for _, t := range project.Trees {
		if t.Path == rel {
			tree = t
			break
		}
	}
	if tree == nil {
		return fmt.Errorf("file %q was not indexed (unsupported extension or ignored)", rel)
	}

	packages := workspace.NewPackageResolver(rootPath)
	namer := symbols.NewNamer(packages, project.Binder)
	emitter := index.NewEmitter(namer, project.Binder)

	doc, err := emitter.IndexFile(tree)
	if err != nil {
		return err
	}

	out, err := snapshot.Format(doc, tree.Source)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
