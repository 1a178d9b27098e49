// Package cluster groups files by canonical declaration signatures to
// surface near-duplicate functions. A signature is a whitespace-normalized
// declaration header; files sharing one above the repetition threshold form
// a reportable cluster.
package cluster

import (
	"regexp"
	"sort"
	"strings"

	"github.com/structhound/structhound/internal/boundary"
	"github.com/structhound/structhound/internal/lexer"
)

// Defaults for reportability. Short signatures like "void main()" repeat in
// every project and carry no duplication signal.
const (
	DefaultFileThreshold      = 2
	DefaultMinSignatureLength = 30
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize collapses whitespace runs to single spaces and trims the ends,
// producing the canonical signature string. Idempotent: normalizing an
// already-normalized header returns it unchanged.
func Normalize(header string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(header, " "))
}

// Cluster is one canonical signature with the set of files containing it.
// Files is sorted and deduplicated; Occurrences counts every header match,
// including repeats within one file.
type Cluster struct {
	Signature   string   `json:"signature"`
	Files       []string `json:"files"`
	Count       int      `json:"count"`
	Occurrences int      `json:"occurrences"`
}

// Builder accumulates signatures file by file. Collect extracts headers with
// the same pattern the boundary detector uses, so a method reported
// oversized and a method reported duplicated are guaranteed to be the same
// entity. Not safe for concurrent use; callers either guard it or collect
// per-file header lists in parallel and fold them in sequentially.
type Builder struct {
	files       map[string]map[string]struct{} // signature -> file set
	occurrences map[string]int
	order       []string // signatures in first-seen order
}

func NewBuilder() *Builder {
	return &Builder{
		files:       make(map[string]map[string]struct{}),
		occurrences: make(map[string]int),
	}
}

// Collect scans one file's text for declaration headers and accumulates
// their canonical signatures. It is the single-file convenience entry point;
// parallel pipelines extract headers per file themselves and fold them in
// through Add. Headers nested inside other declarations are included:
// clustering is independent of body extraction.
func (b *Builder) Collect(filePath, text string, lex lexer.Result) {
	for _, hdr := range boundary.Headers(text, lex) {
		b.Add(filePath, hdr.Signature)
	}
}

// Add records one raw header occurrence for a file.
func (b *Builder) Add(filePath, header string) {
	sig := Normalize(header)
	if _, seen := b.files[sig]; !seen {
		b.files[sig] = make(map[string]struct{})
		b.order = append(b.order, sig)
	}
	b.files[sig][filePath] = struct{}{}
	b.occurrences[sig]++
}

// Clusters returns the complete cluster set, sorted by file count descending
// then signature. No reportability filtering and no truncation happen here:
// presentation caps belong to the rendering boundary.
func (b *Builder) Clusters() []Cluster {
	clusters := make([]Cluster, 0, len(b.order))
	for _, sig := range b.order {
		fileSet := b.files[sig]
		files := make([]string, 0, len(fileSet))
		for f := range fileSet {
			files = append(files, f)
		}
		sort.Strings(files)
		clusters = append(clusters, Cluster{
			Signature:   sig,
			Files:       files,
			Count:       len(files),
			Occurrences: b.occurrences[sig],
		})
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Count != clusters[j].Count {
			return clusters[i].Count > clusters[j].Count
		}
		return clusters[i].Signature < clusters[j].Signature
	})
	return clusters
}

// Reportable filters clusters down to those worth reporting: more files than
// fileThreshold and a signature longer than minLength characters. The
// underlying cluster set stays complete; callers apply top-N truncation at
// rendering time.
func Reportable(clusters []Cluster, fileThreshold, minLength int) []Cluster {
	var out []Cluster
	for _, c := range clusters {
		if c.Count > fileThreshold && len(c.Signature) > minLength {
			out = append(out, c)
		}
	}
	return out
}
