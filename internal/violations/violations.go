// Package violations turns the scan's raw measurements into typed violation
// records and a per-file impact score used to rank the refactoring backlog.
// Kinds and severities are closed enumerations so scoring and rendering can
// switch over them exhaustively.
package violations

import (
	"fmt"
	"sort"

	"github.com/structhound/structhound/internal/boundary"
	"github.com/structhound/structhound/internal/cluster"
	"github.com/structhound/structhound/internal/symbols"
)

// Kind identifies the category of a violation.
type Kind int

const (
	OversizedFile Kind = iota
	OversizedMethod
	DeadFile
	DeadSymbol
	DuplicateSignature
	SRP
	DIP
	OCP
)

func (k Kind) String() string {
	switch k {
	case OversizedFile:
		return "oversized-file"
	case OversizedMethod:
		return "oversized-method"
	case DeadFile:
		return "dead-file"
	case DeadSymbol:
		return "dead-symbol"
	case DuplicateSignature:
		return "duplicate-signature"
	case SRP:
		return "srp"
	case DIP:
		return "dip"
	case OCP:
		return "ocp"
	}
	return "unknown"
}

// Severity is the fixed weight class of a violation kind.
type Severity int

const (
	Low Severity = iota
	Medium
	High
)

func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return "unknown"
}

// Violation is one typed finding. Immutable after creation.
type Violation struct {
	Kind        Kind     `json:"kind"`
	File        string   `json:"file"`
	Symbol      string   `json:"symbol,omitempty"`
	Measurement int      `json:"measurement"`
	Severity    Severity `json:"severity"`
	Reason      string   `json:"reason"`
}

// Thresholds configures the size checks and scoring breakpoints.
type Thresholds struct {
	FileLineLimit   int // default 500
	MethodLineLimit int // default 50
}

// DefaultThresholds mirror the historical limits the scoring formulas are
// calibrated against.
var DefaultThresholds = Thresholds{
	FileLineLimit:   500,
	MethodLineLimit: 50,
}

// FileStat is one analyzed file's identity and size, in discovery order.
type FileStat struct {
	Path  string
	Lines int
}

// FileScore is a ranked entry of the refactoring backlog.
type FileScore struct {
	Rank       int    `json:"rank"`
	File       string `json:"file"`
	Score      int    `json:"score"`
	Violations int    `json:"violations"`
}

// Stats summarizes the scan for the report header.
type Stats struct {
	TotalFiles       int     `json:"total_files"`
	TotalLines       int     `json:"total_lines"`
	FilesOverLimit   int     `json:"files_over_limit"`
	MethodsOverLimit int     `json:"methods_over_limit"`
	Conformity       float64 `json:"conformity_percent"`
}

// Input carries everything the aggregator consumes. The aggregator itself is
// a pure function over this data; it reads no files and holds no state.
type Input struct {
	Files       []FileStat
	Spans       []boundary.Span
	DeadFiles   []string
	DeadSymbols []symbols.DeadSymbol
	Clusters    []cluster.Cluster // already filtered for reportability
	Solid       []Violation       // per-file SOLID findings, discovery order
}

// Report is the aggregated outcome: the violation list, the per-file impact
// ranking, and summary statistics.
type Report struct {
	Violations []Violation `json:"violations"`
	Ranking    []FileScore `json:"ranking"`
	Stats      Stats       `json:"stats"`
}

// Aggregate combines spans, file sizes, dead-code findings, clusters and
// SOLID findings into one report.
//
// Impact scoring, preserved exactly for compatibility with earlier reports:
//
//	file:   +10 per full 100 lines over the file limit
//	method: +1  per full 10 lines over the method limit
//
// Files are ranked by total score descending, ties broken by discovery
// order. SOLID findings carry severities but never contribute to the score.
func Aggregate(in Input, th Thresholds) Report {
	var out []Violation

	scores := make(map[string]int)
	violationsPerFile := make(map[string]int)
	touch := func(file string) { violationsPerFile[file]++ }

	stats := Stats{TotalFiles: len(in.Files)}

	// Oversized files, largest first.
	var oversized []Violation
	for _, f := range in.Files {
		stats.TotalLines += f.Lines
		if f.Lines <= th.FileLineLimit {
			continue
		}
		stats.FilesOverLimit++
		excess := f.Lines - th.FileLineLimit
		scores[f.Path] += excess / 100 * 10
		touch(f.Path)
		oversized = append(oversized, Violation{
			Kind:        OversizedFile,
			File:        f.Path,
			Measurement: f.Lines,
			Severity:    High,
			Reason:      fmt.Sprintf("file has %d lines, %d over the limit", f.Lines, excess),
		})
	}
	sort.SliceStable(oversized, func(i, j int) bool {
		return oversized[i].Measurement > oversized[j].Measurement
	})
	out = append(out, oversized...)

	// Oversized methods, longest first.
	var methods []Violation
	for _, s := range in.Spans {
		if s.Lines <= th.MethodLineLimit {
			continue
		}
		stats.MethodsOverLimit++
		scores[s.File] += (s.Lines - th.MethodLineLimit) / 10
		touch(s.File)
		methods = append(methods, Violation{
			Kind:        OversizedMethod,
			File:        s.File,
			Symbol:      s.Name,
			Measurement: s.Lines,
			Severity:    Medium,
			Reason:      fmt.Sprintf("method %s spans %d lines (L%d-L%d)", s.Name, s.Lines, s.StartLine, s.EndLine),
		})
	}
	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].Measurement > methods[j].Measurement
	})
	out = append(out, methods...)

	for _, f := range in.DeadFiles {
		touch(f)
		out = append(out, Violation{
			Kind:     DeadFile,
			File:     f,
			Severity: Medium,
			Reason:   "never imported by any other file",
		})
	}

	for _, d := range in.DeadSymbols {
		file := ""
		if len(d.DefinedIn) > 0 {
			file = d.DefinedIn[0]
		}
		touch(file)
		out = append(out, Violation{
			Kind:        DeadSymbol,
			File:        file,
			Symbol:      d.Name,
			Measurement: d.References,
			Severity:    Low,
			Reason:      fmt.Sprintf("symbol %s referenced in %d file(s)", d.Name, d.References),
		})
	}

	for _, c := range in.Clusters {
		for _, f := range c.Files {
			touch(f)
		}
		file := ""
		if len(c.Files) > 0 {
			file = c.Files[0]
		}
		out = append(out, Violation{
			Kind:        DuplicateSignature,
			File:        file,
			Symbol:      c.Signature,
			Measurement: c.Count,
			Severity:    Low,
			Reason:      fmt.Sprintf("signature repeated across %d files", c.Count),
		})
	}

	for _, v := range in.Solid {
		touch(v.File)
		out = append(out, v)
	}

	if stats.TotalFiles > 0 {
		stats.Conformity = 100 - float64(stats.FilesOverLimit)/float64(stats.TotalFiles)*100
	} else {
		stats.Conformity = 100
	}

	return Report{
		Violations: out,
		Ranking:    rank(in.Files, scores, violationsPerFile),
		Stats:      stats,
	}
}

// rank orders files by impact score descending. The input slice is in
// discovery order and the sort is stable, so ties keep discovery order.
// Files with a zero score are left out: they carry no refactoring pressure.
func rank(files []FileStat, scores map[string]int, violations map[string]int) []FileScore {
	var ranking []FileScore
	for _, f := range files {
		if scores[f.Path] == 0 {
			continue
		}
		ranking = append(ranking, FileScore{
			File:       f.Path,
			Score:      scores[f.Path],
			Violations: violations[f.Path],
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking
}
