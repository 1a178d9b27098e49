package report

import (
	"encoding/json"
	"fmt"

	"github.com/structhound/structhound/internal/engine"
)

// renderJSON serializes the complete result, uncapped. The JSON form is the
// canonical machine-readable output; everything the markdown renderer shows
// can be recomputed from it.
func renderJSON(res *engine.Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}
	return append(data, '\n'), nil
}
