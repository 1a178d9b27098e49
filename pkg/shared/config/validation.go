package config

import "fmt"

// ValidateConfig rejects configurations that would make the scan
// meaningless. Called once after loading, before any work starts.
func ValidateConfig(c *Config) error {
	a := c.Analysis
	if a.FileLineLimit < 1 {
		return fmt.Errorf("analysis.file_line_limit must be positive, got %d", a.FileLineLimit)
	}
	if a.MethodLineLimit < 1 {
		return fmt.Errorf("analysis.method_line_limit must be positive, got %d", a.MethodLineLimit)
	}
	if a.DuplicateFileThreshold < 1 {
		return fmt.Errorf("analysis.duplicate_file_threshold must be positive, got %d", a.DuplicateFileThreshold)
	}
	if a.MinSignatureLength < 0 {
		return fmt.Errorf("analysis.min_signature_length must not be negative, got %d", a.MinSignatureLength)
	}
	if a.Threads < 1 {
		return fmt.Errorf("analysis.threads must be positive, got %d", a.Threads)
	}
	for _, ext := range a.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("analysis.extensions entries must start with a dot, got %q", ext)
		}
	}

	caps := []struct {
		name  string
		value int
	}{
		{"max_file_violations", c.Report.MaxFileViolations},
		{"max_method_violations", c.Report.MaxMethodViolations},
		{"max_clusters", c.Report.MaxClusters},
		{"max_ranked_files", c.Report.MaxRankedFiles},
		{"max_dead_files", c.Report.MaxDeadFiles},
		{"max_dead_symbols", c.Report.MaxDeadSymbols},
	}
	for _, limit := range caps {
		if limit.value < 1 {
			return fmt.Errorf("report.%s must be positive, got %d", limit.name, limit.value)
		}
	}
	return nil
}
