// Package engine orchestrates a scan run: it reads the discovered files,
// drives the per-file analyses in parallel, then merges everything into one
// aggregated report. All parallel work writes into per-index slots and is
// merged sequentially, so a run over the same tree is fully deterministic.
package engine

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/structhound/structhound/internal/boundary"
	"github.com/structhound/structhound/internal/cluster"
	"github.com/structhound/structhound/internal/lexer"
	"github.com/structhound/structhound/internal/symbols"
	"github.com/structhound/structhound/internal/violations"
	"github.com/structhound/structhound/pkg/shared"
	"github.com/structhound/structhound/pkg/shared/config"
	"github.com/structhound/structhound/pkg/shared/files"
)

// Engine runs the analysis pipeline over a file list.
type Engine struct {
	root   string
	cfg    *config.Config
	logger hclog.Logger
}

// FileIssue records a file the scan could not fully process and why.
type FileIssue struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result is the outcome of one scan run.
type Result struct {
	RunID     string            `json:"run_id"`
	Root      string            `json:"root"`
	Report    violations.Report `json:"report"`
	Skipped   []FileIssue       `json:"skipped,omitempty"`
	Truncated []string          `json:"truncated,omitempty"`
}

// fileResult is one file's complete per-file analysis, produced in parallel
// and merged in path order.
type fileResult struct {
	path      string
	text      string
	lines     int
	spans     []boundary.Span
	headers   []boundary.Header
	syms      symbols.FileSymbols
	solid     []violations.Violation
	truncated bool
	err       error
}

// New returns an Engine scanning files relative to root.
func New(root string, cfg *config.Config, logger hclog.Logger) *Engine {
	return &Engine{root: root, cfg: cfg, logger: logger}
}

// Run analyzes the given relative paths and returns the aggregated result.
// Paths are expected in sorted order; the walker guarantees that.
func (e *Engine) Run(paths []string) (*Result, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to analyze under %q", e.root)
	}

	runID := uuid.New().String()
	e.logger.Info("scan started", "run_id", runID, "root", e.root, "files", len(paths), "threads", e.cfg.Analysis.Threads)

	results := make([]fileResult, len(paths))
	shared.ForEveryIndexWithBoundedGoroutines(e.cfg.Analysis.Threads, len(paths), func(i int) {
		results[i] = e.analyzeFile(paths[i])
	})

	res := &Result{RunID: runID, Root: e.root}

	// Sequential merge in path order.
	var (
		stats    []violations.FileStat
		spans    []boundary.Span
		perFile  []symbols.FileSymbols
		solid    []violations.Violation
		analyzed []int
	)
	builder := cluster.NewBuilder()
	for i := range results {
		r := &results[i]
		if r.err != nil {
			e.logger.Warn("file skipped", "path", r.path, "error", r.err)
			res.Skipped = append(res.Skipped, FileIssue{Path: r.path, Reason: r.err.Error()})
			continue
		}
		if r.truncated {
			e.logger.Warn("unterminated string or comment, detection stopped early", "path", r.path)
			res.Truncated = append(res.Truncated, r.path)
		}
		stats = append(stats, violations.FileStat{Path: r.path, Lines: r.lines})
		spans = append(spans, r.spans...)
		perFile = append(perFile, r.syms)
		solid = append(solid, r.solid...)
		for _, hdr := range r.headers {
			builder.Add(r.path, hdr.Signature)
		}
		analyzed = append(analyzed, i)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("all %d files were skipped", len(paths))
	}

	index := symbols.NewIndex(perFile)

	// Reference counting reads the index and one file's text; safe to fan
	// out. The fold back into the index is sequential.
	refs := make([]symbols.RefCounts, len(analyzed))
	shared.ForEveryIndexWithBoundedGoroutines(e.cfg.Analysis.Threads, len(analyzed), func(i int) {
		r := &results[analyzed[i]]
		refs[i] = index.CountReferences(r.path, r.text)
	})
	for _, rc := range refs {
		index.AddReferences(rc)
	}

	candidates := make([]string, len(stats))
	for i, fs := range stats {
		candidates[i] = fs.Path
	}
	deadFiles := index.DeadFiles(candidates, symbols.DeadFileOptions{
		Exclude: e.deadFileExclusion(perFile),
	})

	clusters := cluster.Reportable(
		builder.Clusters(),
		e.cfg.Analysis.DuplicateFileThreshold,
		e.cfg.Analysis.MinSignatureLength,
	)

	res.Report = violations.Aggregate(violations.Input{
		Files:       stats,
		Spans:       spans,
		DeadFiles:   deadFiles,
		DeadSymbols: index.DeadSymbols(),
		Clusters:    clusters,
		Solid:       solid,
	}, violations.Thresholds{
		FileLineLimit:   e.cfg.Analysis.FileLineLimit,
		MethodLineLimit: e.cfg.Analysis.MethodLineLimit,
	})

	e.logger.Info("scan finished",
		"run_id", runID,
		"violations", len(res.Report.Violations),
		"skipped", len(res.Skipped),
		"conformity", fmt.Sprintf("%.1f%%", res.Report.Stats.Conformity),
	)
	return res, nil
}

// analyzeFile runs every per-file analysis over one source file. The result
// is self-contained; nothing here touches shared state.
func (e *Engine) analyzeFile(rel string) fileResult {
	r := fileResult{path: rel}

	data, err := os.ReadFile(filepath.Join(e.root, filepath.FromSlash(rel)))
	if err != nil {
		r.err = fmt.Errorf("read failed: %w", err)
		return r
	}
	r.text = string(data)
	r.lines = files.CountLines(r.text)

	lex := lexer.Scan(r.text)
	r.truncated = lex.Truncated
	r.spans = boundary.Detect(rel, r.text, lex)
	r.headers = boundary.Headers(r.text, lex)
	r.syms = symbols.Extract(rel, r.text, e.cfg.Analysis.IgnoredImportPrefixes)
	r.solid = violations.InspectSOLID(rel, r.text, violations.SolidLimits{
		PublicMethodLimit: e.cfg.Analysis.PublicMethodLimit,
		ImportLimit:       e.cfg.Analysis.ImportLimit,
		ConcreteDepLimit:  e.cfg.Analysis.ConcreteDepLimit,
		SwitchCaseLimit:   e.cfg.Analysis.SwitchCaseLimit,
	})
	return r
}

// deadFileExclusion builds the predicate suppressing dead-file reports for
// entry points, generated files, test files and export barrels.
func (e *Engine) deadFileExclusion(perFile []symbols.FileSymbols) func(string) bool {
	barrels := make(map[string]bool, len(perFile))
	for _, fs := range perFile {
		if len(fs.Exports) > 0 {
			barrels[fs.Path] = true
		}
	}
	entryPoints := e.cfg.Analysis.EntryPoints
	suffixes := e.cfg.Exclusions.GeneratedSuffixes

	return func(filePath string) bool {
		base := path.Base(filePath)
		for _, ep := range entryPoints {
			if base == ep {
				return true
			}
		}
		for _, suffix := range suffixes {
			if strings.HasSuffix(filePath, suffix) {
				return true
			}
		}
		if strings.HasPrefix(filePath, "test/") || strings.Contains(filePath, "/test/") || strings.HasSuffix(base, "_test.dart") {
			return true
		}
		return barrels[filePath]
	}
}
