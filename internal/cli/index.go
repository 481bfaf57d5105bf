package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/symdex-dev/symdex/internal/fileutil"
	"github.com/symdex-dev/symdex/internal/index"
	"github.com/symdex-dev/symdex/internal/query"
	"github.com/symdex-dev/symdex/internal/semantics"
	"github.com/symdex-dev/symdex/internal/state"
	"github.com/symdex-dev/symdex/internal/symbols"
	"github.com/symdex-dev/symdex/internal/workspace"
)

const (
	// OutputDir holds the index and run state, relative to the project root.
	OutputDir = ".symdex"
	IndexFile = "index.jsonl"
)

// IndexIssue is a non-fatal per-file failure. The offending file's document
// is dropped; the run continues.
type IndexIssue struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// IndexOptions configures one indexing run.
type IndexOptions struct {
	// OutDir is where the index and run state land. Empty means
	// <root>/.symdex.
	OutDir      string
	Incremental bool
}

// RunSummary is the machine-readable result of one indexing run.
type RunSummary struct {
	Mode        string       `json:"mode"`
	RootPath    string       `json:"root_path"`
	OutputPath  string       `json:"output_path"`
	Files       int          `json:"files"`
	Indexed     int          `json:"indexed"`
	Reused      int          `json:"reused"`
	Failed      int          `json:"failed"`
	Occurrences int          `json:"occurrences"`
	Symbols     int          `json:"symbols"`
	DurationMS  int64        `json:"duration_ms"`
	Issues      []IndexIssue `json:"issues,omitempty"`
}

func RunIndex(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	incremental, err := cmd.Flags().GetBool("incremental")
	if err != nil {
		return fmt.Errorf("failed to read --incremental flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to read --out flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	rootPath, err := resolveProjectRoot(path)
	if err != nil {
		return err
	}

	summary, err := IndexProject(rootPath, IndexOptions{OutDir: outDir, Incremental: incremental})
	if err != nil {
		return err
	}
	return PrintRunSummary(summary, asJSON)
}

// IndexProject indexes every discoverable source file under rootPath and
// writes the JSONL index plus run state. With incremental set, files whose
// content hash matches the previous run reuse their previous document.
func IndexProject(rootPath string, opts IndexOptions) (*RunSummary, error) {
	start := time.Now()
	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(rootPath, OutputDir)
	}
	indexPath := filepath.Join(outDir, IndexFile)

	summary := &RunSummary{
		Mode:       "index",
		RootPath:   rootPath,
		OutputPath: indexPath,
	}
	if opts.Incremental {
		summary.Mode = "index-incremental"
	}

	project := semantics.NewProject()
	files, err := workspace.Discover(rootPath, project.Parser.Extensions())
	if err != nil {
		return nil, fmt.Errorf("failed to discover source files: %w", err)
	}
	summary.Files = len(files)

	hashes := make(map[string]string, len(files))
	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(rootPath, filepath.FromSlash(file)))
		if err != nil {
			summary.Issues = append(summary.Issues, IndexIssue{File: file, Message: err.Error()})
			summary.Failed++
			continue
		}
		hashes[file] = fileutil.HashContent(content)
		if _, err := project.AddFile(file, content); err != nil {
			summary.Issues = append(summary.Issues, IndexIssue{File: file, Message: err.Error()})
			summary.Failed++
		}
	}

	previous, err := state.Load(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load index state: %w", err)
	}
	var previousIndex *query.Index
	if opts.Incremental {
		previousIndex, _ = query.Load(indexPath)
	}

	packages := workspace.NewPackageResolver(rootPath)
	namer := symbols.NewNamer(packages, project.Binder)
	emitter := index.NewEmitter(namer, project.Binder)

	next := state.New()
	docs := make([]index.Document, 0, len(project.Trees))
	for _, tree := range project.SortedTrees() {
		if opts.Incremental && previousIndex != nil && !previous.HasChanged(tree.Path, hashes[tree.Path]) {
			if doc := previousIndex.DocumentFor(tree.Path); doc != nil {
				docs = append(docs, *doc)
				next.SetFile(tree.Path, hashes[tree.Path])
				summary.Reused++
				continue
			}
		}

		doc, err := emitter.IndexFile(tree)
		if err != nil {
			summary.Issues = append(summary.Issues, IndexIssue{File: tree.Path, Message: err.Error()})
			summary.Failed++
			continue
		}
		docs = append(docs, *doc)
		next.SetFile(tree.Path, hashes[tree.Path])
		summary.Indexed++
	}

	for _, doc := range docs {
		summary.Occurrences += len(doc.Occurrences)
		summary.Symbols += len(doc.Symbols)
	}

	data, err := fileutil.EncodeJSONL(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	if err := fileutil.WriteIfChanged(indexPath, data); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}

	next.IndexHash = fileutil.HashContent(data)
	if err := next.Save(outDir); err != nil {
		return nil, fmt.Errorf("failed to persist index state: %w", err)
	}

	summary.DurationMS = time.Since(start).Milliseconds()
	return summary, nil
}

func resolveProjectRoot(path string) (string, error) {
	rootPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("failed to access path %q: %w", rootPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", rootPath)
	}
	return rootPath, nil
}
