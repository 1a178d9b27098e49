package report

import (
	"fmt"
	"strings"

	"github.com/structhound/structhound/internal/engine"
	"github.com/structhound/structhound/internal/violations"
	"github.com/structhound/structhound/pkg/shared/config"
)

// renderMarkdown produces the human-readable report. Each section is capped
// by the configured presentation limits; the caption notes how many entries
// were cut.
func renderMarkdown(res *engine.Result, caps config.Report) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Structural Scan Report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", res.RunID)
	fmt.Fprintf(&b, "- Root: `%s`\n\n", res.Root)

	writeStats(&b, res.Report.Stats)

	byKind := make(map[violations.Kind][]violations.Violation)
	for _, v := range res.Report.Violations {
		byKind[v.Kind] = append(byKind[v.Kind], v)
	}

	writeSizeSection(&b, "Oversized Files", byKind[violations.OversizedFile], caps.MaxFileViolations, "Lines")
	writeSizeSection(&b, "Oversized Methods", byKind[violations.OversizedMethod], caps.MaxMethodViolations, "Lines")
	writeDeadFiles(&b, byKind[violations.DeadFile], caps.MaxDeadFiles)
	writeDeadSymbols(&b, byKind[violations.DeadSymbol], caps.MaxDeadSymbols)
	writeClusters(&b, byKind[violations.DuplicateSignature], caps.MaxClusters)
	writeDesignFindings(&b, byKind)
	writeRanking(&b, res.Report.Ranking, caps.MaxRankedFiles)
	writeWarnings(&b, res)

	return []byte(b.String())
}

func writeStats(b *strings.Builder, s violations.Stats) {
	fmt.Fprintf(b, "## Summary\n\n")
	fmt.Fprintf(b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Files analyzed | %d |\n", s.TotalFiles)
	fmt.Fprintf(b, "| Total lines | %d |\n", s.TotalLines)
	fmt.Fprintf(b, "| Files over size limit | %d |\n", s.FilesOverLimit)
	fmt.Fprintf(b, "| Methods over size limit | %d |\n", s.MethodsOverLimit)
	fmt.Fprintf(b, "| Size conformity | %.1f%% |\n\n", s.Conformity)
}

func writeSizeSection(b *strings.Builder, title string, vs []violations.Violation, limit int, measure string) {
	if len(vs) == 0 {
		return
	}
	writeSectionHeader(b, title, len(vs), limit)
	fmt.Fprintf(b, "| File | Symbol | %s | Severity |\n|---|---|---|---|\n", measure)
	for _, v := range truncate(vs, limit) {
		fmt.Fprintf(b, "| %s | %s | %d | %s |\n", v.File, orDash(v.Symbol), v.Measurement, v.Severity)
	}
	b.WriteString("\n")
}

func writeDeadFiles(b *strings.Builder, vs []violations.Violation, limit int) {
	if len(vs) == 0 {
		return
	}
	writeSectionHeader(b, "Files Never Imported", len(vs), limit)
	for _, v := range truncate(vs, limit) {
		fmt.Fprintf(b, "- `%s`\n", v.File)
	}
	b.WriteString("\n")
}

func writeDeadSymbols(b *strings.Builder, vs []violations.Violation, limit int) {
	if len(vs) == 0 {
		return
	}
	writeSectionHeader(b, "Unreferenced Symbols", len(vs), limit)
	fmt.Fprintf(b, "| Symbol | Defined In | Files Referencing |\n|---|---|---|\n")
	for _, v := range truncate(vs, limit) {
		fmt.Fprintf(b, "| %s | %s | %d |\n", v.Symbol, v.File, v.Measurement)
	}
	b.WriteString("\n")
}

func writeClusters(b *strings.Builder, vs []violations.Violation, limit int) {
	if len(vs) == 0 {
		return
	}
	writeSectionHeader(b, "Duplicated Signatures", len(vs), limit)
	fmt.Fprintf(b, "| Signature | Files |\n|---|---|\n")
	for _, v := range truncate(vs, limit) {
		fmt.Fprintf(b, "| `%s` | %d |\n", v.Symbol, v.Measurement)
	}
	b.WriteString("\n")
}

func writeDesignFindings(b *strings.Builder, byKind map[violations.Kind][]violations.Violation) {
	var findings []violations.Violation
	for _, kind := range []violations.Kind{violations.SRP, violations.DIP, violations.OCP} {
		findings = append(findings, byKind[kind]...)
	}
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(b, "## Design Findings (%d)\n\n", len(findings))
	fmt.Fprintf(b, "| File | Principle | Severity | Detail |\n|---|---|---|---|\n")
	for _, v := range findings {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", v.File, strings.ToUpper(v.Kind.String()), v.Severity, v.Reason)
	}
	b.WriteString("\n")
}

func writeRanking(b *strings.Builder, ranking []violations.FileScore, limit int) {
	if len(ranking) == 0 {
		return
	}
	writeSectionHeader(b, "Refactoring Priorities", len(ranking), limit)
	fmt.Fprintf(b, "| Rank | File | Score | Violations |\n|---|---|---|---|\n")
	for _, fs := range truncateScores(ranking, limit) {
		fmt.Fprintf(b, "| %d | %s | %d | %d |\n", fs.Rank, fs.File, fs.Score, fs.Violations)
	}
	b.WriteString("\n")
}

func writeWarnings(b *strings.Builder, res *engine.Result) {
	if len(res.Skipped) == 0 && len(res.Truncated) == 0 {
		return
	}
	fmt.Fprintf(b, "## Warnings\n\n")
	for _, issue := range res.Skipped {
		fmt.Fprintf(b, "- skipped `%s`: %s\n", issue.Path, issue.Reason)
	}
	for _, path := range res.Truncated {
		fmt.Fprintf(b, "- `%s`: unterminated string or comment, partial results\n", path)
	}
	b.WriteString("\n")
}

func writeSectionHeader(b *strings.Builder, title string, total, limit int) {
	if limit > 0 && total > limit {
		fmt.Fprintf(b, "## %s (showing %d of %d)\n\n", title, limit, total)
	} else {
		fmt.Fprintf(b, "## %s (%d)\n\n", title, total)
	}
}

// truncate bounds a section to the configured cap. Caps arrive validated
// from the config layer; a non-positive one is treated as unlimited.
func truncate(vs []violations.Violation, limit int) []violations.Violation {
	if limit > 0 && len(vs) > limit {
		return vs[:limit]
	}
	return vs
}

func truncateScores(fs []violations.FileScore, limit int) []violations.FileScore {
	if limit > 0 && len(fs) > limit {
		return fs[:limit]
	}
	return fs
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
