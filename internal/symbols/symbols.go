// Package symbols builds the cross-file symbol index: declared type names,
// raw import/export strings, and per-file reference presence for every
// declared name. The index powers the dead-file and dead-symbol queries.
//
// Reachability is a substring heuristic over recorded import strings, not a
// module-graph closure. Two files sharing a basename can suppress a true
// positive; that behavior is intentional and covered by tests.
package symbols

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

var (
	importPattern = regexp.MustCompile(`import\s+['"]([^'"]+)['"]`)
	exportPattern = regexp.MustCompile(`export\s+['"]([^'"]+)['"]`)
	classPattern  = regexp.MustCompile(`class\s+(\w+)(?:\s+extends|\s+implements|\s+with|\s*\{)`)
)

// FileSymbols is the per-file extraction result. It is immutable once
// produced, so extraction can run in parallel across files; the index is
// assembled afterwards in one deterministic merge.
type FileSymbols struct {
	Path        string
	Definitions []string
	Imports     []string
	Exports     []string
}

// Extract pulls declarations and import/export edges out of one file's text.
// ignoredImportPrefixes filters framework and SDK imports (e.g. "dart:",
// "package:flutter") that never resolve to project files.
func Extract(filePath, text string, ignoredImportPrefixes []string) FileSymbols {
	fs := FileSymbols{Path: filePath}

	for _, m := range importPattern.FindAllStringSubmatch(text, -1) {
		imp := m[1]
		if hasAnyPrefix(imp, ignoredImportPrefixes) {
			continue
		}
		fs.Imports = append(fs.Imports, imp)
	}
	for _, m := range exportPattern.FindAllStringSubmatch(text, -1) {
		fs.Exports = append(fs.Exports, m[1])
	}
	for _, m := range classPattern.FindAllStringSubmatch(text, -1) {
		fs.Definitions = append(fs.Definitions, m[1])
	}
	return fs
}

// DeadSymbol is a declared name whose total reference presence across the
// corpus is at most one file: it was seen only where its definition lives.
type DeadSymbol struct {
	Name       string   `json:"name"`
	DefinedIn  []string `json:"defined_in"`
	References int      `json:"references"`
}

// Index aggregates per-file symbol results over the whole corpus.
type Index struct {
	defs    map[string][]string       // name -> defining files, insertion order
	refs    map[string]map[string]int // name -> file -> presence (0/1)
	imports map[string][]string       // file -> raw import strings
	exports map[string][]string       // file -> raw export strings
	names   []string                  // declared names in first-seen order
	words   map[string]*regexp.Regexp // compiled token-boundary matchers
}

// NewIndex merges per-file extraction results. Input order defines discovery
// order, so the caller passes results sorted by path (or original walk
// order) to keep output deterministic.
func NewIndex(files []FileSymbols) *Index {
	ix := &Index{
		defs:    make(map[string][]string),
		refs:    make(map[string]map[string]int),
		imports: make(map[string][]string),
		exports: make(map[string][]string),
		words:   make(map[string]*regexp.Regexp),
	}
	for _, fs := range files {
		for _, name := range fs.Definitions {
			if _, seen := ix.defs[name]; !seen {
				ix.names = append(ix.names, name)
				ix.words[name] = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
			}
			if !containsString(ix.defs[name], fs.Path) {
				ix.defs[name] = append(ix.defs[name], fs.Path)
			}
		}
		if len(fs.Imports) > 0 {
			ix.imports[fs.Path] = append(ix.imports[fs.Path], fs.Imports...)
		}
		if len(fs.Exports) > 0 {
			ix.exports[fs.Path] = append(ix.exports[fs.Path], fs.Exports...)
		}
	}
	return ix
}

// RefCounts records, for one file, which declared names appear in its text.
type RefCounts struct {
	Path  string
	Found []string
}

// CountReferences scans one file's text for token-boundary occurrences of
// every declared name. The counter is per-file presence, not occurrence
// count: a symbol mentioned five times in one file still scores one. This
// matches the dead-symbol rule, where a symbol found only in its defining
// file totals exactly 1. Pure with respect to the index, so it is safe to
// call concurrently across files.
func (ix *Index) CountReferences(filePath, text string) RefCounts {
	rc := RefCounts{Path: filePath}
	for _, name := range ix.names {
		if ix.words[name].MatchString(text) {
			rc.Found = append(rc.Found, name)
		}
	}
	return rc
}

// AddReferences folds one file's reference presence into the index.
// Not safe for concurrent use; callers merge sequentially.
func (ix *Index) AddReferences(rc RefCounts) {
	for _, name := range rc.Found {
		if ix.refs[name] == nil {
			ix.refs[name] = make(map[string]int)
		}
		ix.refs[name][rc.Path] = 1
	}
}

// DefinedNames returns every declared name in first-seen order.
func (ix *Index) DefinedNames() []string {
	out := make([]string, len(ix.names))
	copy(out, ix.names)
	return out
}

// Definitions returns the files defining name.
func (ix *Index) Definitions(name string) []string {
	return ix.defs[name]
}

// Imports returns the raw import strings recorded for a file.
func (ix *Index) Imports(filePath string) []string {
	return ix.imports[filePath]
}

// TotalReferences returns how many files contain a token-boundary match of
// name, the defining file included.
func (ix *Index) TotalReferences(name string) int {
	total := 0
	for _, n := range ix.refs[name] {
		total += n
	}
	return total
}

// DeadSymbols returns declared names referenced in at most one file, sorted
// by reference count then name.
func (ix *Index) DeadSymbols() []DeadSymbol {
	var dead []DeadSymbol
	for _, name := range ix.names {
		total := ix.TotalReferences(name)
		if total <= 1 {
			dead = append(dead, DeadSymbol{
				Name:       name,
				DefinedIn:  append([]string(nil), ix.defs[name]...),
				References: total,
			})
		}
	}
	sort.SliceStable(dead, func(i, j int) bool {
		if dead[i].References != dead[j].References {
			return dead[i].References < dead[j].References
		}
		return dead[i].Name < dead[j].Name
	})
	return dead
}

// DeadFileOptions configures the dead-file query. Exclude lets the caller
// suppress entry points, generated files and export barrels; files for which
// it returns true are never reported dead.
type DeadFileOptions struct {
	Exclude func(filePath string) bool
}

// DeadFiles returns, from candidates, the files whose basename and
// slash-separated relative path appear as a substring in no recorded import
// string. A coincidental basename match in an unrelated import suppresses
// the report; that false negative is part of the heuristic's contract.
func (ix *Index) DeadFiles(candidates []string, opts DeadFileOptions) []string {
	var allImports []string
	for _, imps := range ix.imports {
		allImports = append(allImports, imps...)
	}

	var dead []string
	for _, candidate := range candidates {
		if opts.Exclude != nil && opts.Exclude(candidate) {
			continue
		}
		slashed := strings.ReplaceAll(candidate, `\`, "/")
		base := path.Base(slashed)

		imported := false
		for _, imp := range allImports {
			if strings.Contains(imp, base) || strings.Contains(imp, slashed) {
				imported = true
				break
			}
		}
		if !imported {
			dead = append(dead, candidate)
		}
	}
	return dead
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
