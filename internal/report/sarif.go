package report

import (
	"bytes"
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/structhound/structhound/internal/engine"
	"github.com/structhound/structhound/internal/violations"
)

const toolName = "structhound"
const toolURI = "https://github.com/structhound/structhound"

var ruleDescriptions = map[violations.Kind]string{
	violations.OversizedFile:      "File exceeds the configured line limit",
	violations.OversizedMethod:    "Method body exceeds the configured line limit",
	violations.DeadFile:           "File is never imported by any other file",
	violations.DeadSymbol:         "Declared symbol is referenced in at most one file",
	violations.DuplicateSignature: "Declaration signature is repeated across files",
	violations.SRP:                "Class name combines multiple responsibility roles or the class is too wide",
	violations.DIP:                "Class constructs too many concrete dependencies directly",
	violations.OCP:                "Switch statement carries too many cases to stay open for extension",
}

// renderSarif serializes the complete violation list as a SARIF 2.1.0 log
// with one rule per violation kind.
func renderSarif(res *engine.Result) ([]byte, error) {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF log: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, v := range res.Report.Violations {
		rule := run.AddRule(v.Kind.String()).
			WithDescription(ruleDescriptions[v.Kind]).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifLevel(v.Severity),
			})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(v.File)),
		)

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(v.Reason)).
			WithLevel(toSarifLevel(v.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	log.AddRun(run)

	var buf bytes.Buffer
	if err := log.PrettyWrite(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize SARIF log: %w", err)
	}
	return buf.Bytes(), nil
}

func toSarifLevel(s violations.Severity) string {
	switch s {
	case violations.High:
		return "error"
	case violations.Medium:
		return "warning"
	default:
		return "note"
	}
}
