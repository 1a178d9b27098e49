// Package walker discovers the source files a scan will analyze. When the
// root is a git repository the index is authoritative: only tracked files
// are scanned, which skips build output and editor litter for free. Outside
// a repository it falls back to a filesystem walk honoring .gitignore.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/hashicorp/go-hclog"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/structhound/structhound/pkg/shared/config"
)

// Directories never worth descending into, even without a .gitignore.
var skipDirs = map[string]struct{}{
	".git":         {},
	".dart_tool":   {},
	".idea":        {},
	".vscode":      {},
	"build":        {},
	"node_modules": {},
}

// Walker lists candidate source files under a root directory.
type Walker struct {
	root   string
	cfg    *config.Config
	logger hclog.Logger
}

// New returns a Walker rooted at root. The root must exist and be a
// directory.
func New(root string, cfg *config.Config, logger hclog.Logger) (*Walker, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %q is not a directory", root)
	}
	return &Walker{root: root, cfg: cfg, logger: logger}, nil
}

// Walk returns the relative, slash-separated paths of every file to
// analyze, sorted lexicographically.
func (w *Walker) Walk() ([]string, error) {
	paths, err := w.fromGitIndex()
	if err != nil {
		w.logger.Debug("not a usable git repository, walking the filesystem", "root", w.root, "reason", err)
		paths, err = w.fromFilesystem()
		if err != nil {
			return nil, err
		}
	} else {
		w.logger.Debug("file list taken from git index", "root", w.root, "files", len(paths))
	}

	selected := make([]string, 0, len(paths))
	for _, p := range paths {
		if w.selectable(p) {
			selected = append(selected, p)
		}
	}
	sort.Strings(selected)
	return selected, nil
}

// fromGitIndex lists tracked files via the repository index.
func (w *Walker) fromGitIndex() ([]string, error) {
	repo, err := git.PlainOpen(w.root)
	if err != nil {
		return nil, err
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(idx.Entries))
	for _, entry := range idx.Entries {
		// Index entries are already slash-separated and repo-relative.
		if _, err := os.Stat(filepath.Join(w.root, filepath.FromSlash(entry.Name))); err != nil {
			continue // tracked but deleted from the working tree
		}
		paths = append(paths, entry.Name)
	}
	return paths, nil
}

// fromFilesystem walks the tree, pruning skipDirs and .gitignore matches.
func (w *Walker) fromFilesystem() ([]string, error) {
	var ignore *gitignore.GitIgnore
	if ign, err := gitignore.CompileIgnoreFile(filepath.Join(w.root, ".gitignore")); err == nil {
		ignore = ign
	}

	var paths []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			if ignore != nil && ignore.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", w.root, err)
	}
	return paths, nil
}

// selectable applies the extension filter and the configured exclusions.
func (w *Walker) selectable(rel string) bool {
	a := w.cfg.Analysis
	matched := false
	for _, ext := range a.Extensions {
		if strings.HasSuffix(rel, ext) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, suffix := range w.cfg.Exclusions.GeneratedSuffixes {
		if strings.HasSuffix(rel, suffix) {
			return false
		}
	}
	for _, prefix := range w.cfg.Exclusions.PathPrefixes {
		if strings.HasPrefix(rel, prefix) {
			return false
		}
	}
	return true
}

// Root returns the scan root the walker was created with.
func (w *Walker) Root() string {
	return w.root
}
