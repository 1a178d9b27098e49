package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structhound/structhound/internal/engine"
	"github.com/structhound/structhound/internal/violations"
	"github.com/structhound/structhound/pkg/shared/config"
)

func testCaps() config.Report {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg.Report
}

func sampleResult() *engine.Result {
	return &engine.Result{
		RunID: "11111111-2222-3333-4444-555555555555",
		Root:  "/work/project",
		Report: violations.Report{
			Violations: []violations.Violation{
				{Kind: violations.OversizedFile, File: "lib/big.dart", Measurement: 820, Severity: violations.High, Reason: "file has 820 lines, 320 over the limit"},
				{Kind: violations.OversizedMethod, File: "lib/big.dart", Symbol: "rebuildWorld", Measurement: 120, Severity: violations.Medium, Reason: "method rebuildWorld spans 120 lines (L10-L129)"},
				{Kind: violations.DeadFile, File: "lib/orphan.dart", Severity: violations.Medium, Reason: "never imported by any other file"},
				{Kind: violations.DeadSymbol, File: "lib/orphan.dart", Symbol: "OrphanHelper", Measurement: 1, Severity: violations.Low, Reason: "symbol OrphanHelper referenced in 1 file(s)"},
				{Kind: violations.DuplicateSignature, File: "lib/a.dart", Symbol: "Future<void> syncRemoteState(String endpoint)", Measurement: 3, Severity: violations.Low, Reason: "signature repeated across 3 files"},
				{Kind: violations.SRP, File: "lib/svc.dart", Symbol: "TaskServiceManager", Severity: violations.High, Reason: "class name combines 2 responsibility roles"},
			},
			Ranking: []violations.FileScore{
				{Rank: 1, File: "lib/big.dart", Score: 39, Violations: 2},
			},
			Stats: violations.Stats{
				TotalFiles: 4, TotalLines: 1200, FilesOverLimit: 1, MethodsOverLimit: 1, Conformity: 75.0,
			},
		},
		Skipped:   []engine.FileIssue{{Path: "lib/locked.dart", Reason: "read failed: permission denied"}},
		Truncated: []string{"lib/broken.dart"},
	}
}

func TestRenderMarkdownSections(t *testing.T) {
	out, err := Render(FormatMarkdown, sampleResult(), testCaps())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "# Structural Scan Report")
	assert.Contains(t, text, "| Files analyzed | 4 |")
	assert.Contains(t, text, "| Size conformity | 75.0% |")
	assert.Contains(t, text, "## Oversized Files (1)")
	assert.Contains(t, text, "## Oversized Methods (1)")
	assert.Contains(t, text, "rebuildWorld")
	assert.Contains(t, text, "## Files Never Imported (1)")
	assert.Contains(t, text, "## Unreferenced Symbols (1)")
	assert.Contains(t, text, "## Duplicated Signatures (1)")
	assert.Contains(t, text, "## Design Findings (1)")
	assert.Contains(t, text, "## Refactoring Priorities (1)")
	assert.Contains(t, text, "skipped `lib/locked.dart`")
	assert.Contains(t, text, "`lib/broken.dart`: unterminated string or comment")
}

func TestRenderMarkdownAppliesCaps(t *testing.T) {
	res := sampleResult()
	res.Report.Violations = nil
	for i := 0; i < 40; i++ {
		res.Report.Violations = append(res.Report.Violations, violations.Violation{
			Kind:        violations.DuplicateSignature,
			File:        fmt.Sprintf("lib/f%02d.dart", i),
			Symbol:      fmt.Sprintf("Future<void> duplicatedOperationNumber%02d(String a)", i),
			Measurement: 3,
			Severity:    violations.Low,
		})
	}

	out, err := Render(FormatMarkdown, res, testCaps())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "## Duplicated Signatures (showing 30 of 40)")
	assert.Contains(t, text, "duplicatedOperationNumber29")
	assert.NotContains(t, text, "duplicatedOperationNumber30")
}

func TestRenderMarkdownNonPositiveCapsShowEverything(t *testing.T) {
	res := sampleResult()
	caps := testCaps()
	caps.MaxClusters = -1
	caps.MaxRankedFiles = 0

	out, err := Render(FormatMarkdown, res, caps)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "## Duplicated Signatures (1)")
	assert.Contains(t, text, "syncRemoteState")
	assert.Contains(t, text, "## Refactoring Priorities (1)")
	assert.NotContains(t, text, "showing")
}

func TestRenderJSONRoundTrips(t *testing.T) {
	out, err := Render(FormatJSON, sampleResult(), testCaps())
	require.NoError(t, err)

	var decoded engine.Result
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", decoded.RunID)
	assert.Len(t, decoded.Report.Violations, 6)
	assert.Equal(t, 75.0, decoded.Report.Stats.Conformity)
}

func TestRenderSarifCarriesRulesAndLevels(t *testing.T) {
	out, err := Render(FormatSarif, sampleResult(), testCaps())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, `"version": "2.1.0"`)
	assert.Contains(t, text, "oversized-file")
	assert.Contains(t, text, "duplicate-signature")
	assert.Contains(t, text, `"error"`)
	assert.Contains(t, text, `"warning"`)
	assert.Contains(t, text, `"note"`)
	assert.Contains(t, text, "lib/big.dart")
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := Render("xml", sampleResult(), testCaps())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "xml"))
}

func TestExtensionPerFormat(t *testing.T) {
	assert.Equal(t, ".md", Extension(FormatMarkdown))
	assert.Equal(t, ".json", Extension(FormatJSON))
	assert.Equal(t, ".sarif", Extension(FormatSarif))
}
