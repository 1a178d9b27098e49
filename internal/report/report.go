// Package report renders a scan result in one of the supported output
// formats. The markdown renderer applies the configured presentation caps;
// the machine-readable formats (json, sarif) always carry the complete
// result set, because downstream tooling does its own filtering.
package report

import (
	"fmt"

	"github.com/structhound/structhound/internal/engine"
	"github.com/structhound/structhound/pkg/shared/config"
)

// Supported output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatSarif    = "sarif"
)

// Render serializes res in the requested format.
func Render(format string, res *engine.Result, caps config.Report) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(res, caps), nil
	case FormatJSON:
		return renderJSON(res)
	case FormatSarif:
		return renderSarif(res)
	default:
		return nil, fmt.Errorf("unknown report format %q (supported: %s, %s, %s)",
			format, FormatMarkdown, FormatJSON, FormatSarif)
	}
}

// Extension returns the conventional file extension for a format.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return ".json"
	case FormatSarif:
		return ".sarif"
	default:
		return ".md"
	}
}
