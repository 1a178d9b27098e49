package config

// Historical defaults the scoring formulas and heuristics are calibrated
// against. Changing the size limits changes scores; the report caps are
// presentation only.
const (
	DefaultFileLineLimit          = 500
	DefaultMethodLineLimit        = 50
	DefaultDuplicateFileThreshold = 2
	DefaultMinSignatureLength     = 30
	DefaultPublicMethodLimit      = 15
	DefaultImportLimit            = 20
	DefaultConcreteDepLimit       = 5
	DefaultSwitchCaseLimit        = 5
	DefaultThreads                = 4

	DefaultMaxFileViolations   = 50
	DefaultMaxMethodViolations = 100
	DefaultMaxClusters         = 30
	DefaultMaxRankedFiles      = 20
	DefaultMaxDeadFiles        = 50
	DefaultMaxDeadSymbols      = 50
)

var (
	defaultExtensions            = []string{".dart"}
	defaultEntryPoints           = []string{"main.dart"}
	defaultIgnoredImportPrefixes = []string{"dart:", "package:flutter"}
	defaultGeneratedSuffixes     = []string{".g.dart", ".freezed.dart", ".mocks.dart", "_config.dart"}
)

// ApplyDefaults fills every unset field with its default value.
func (c *Config) ApplyDefaults() {
	a := &c.Analysis
	if a.FileLineLimit == 0 {
		a.FileLineLimit = DefaultFileLineLimit
	}
	if a.MethodLineLimit == 0 {
		a.MethodLineLimit = DefaultMethodLineLimit
	}
	if a.DuplicateFileThreshold == 0 {
		a.DuplicateFileThreshold = DefaultDuplicateFileThreshold
	}
	if a.MinSignatureLength == 0 {
		a.MinSignatureLength = DefaultMinSignatureLength
	}
	if a.PublicMethodLimit == 0 {
		a.PublicMethodLimit = DefaultPublicMethodLimit
	}
	if a.ImportLimit == 0 {
		a.ImportLimit = DefaultImportLimit
	}
	if a.ConcreteDepLimit == 0 {
		a.ConcreteDepLimit = DefaultConcreteDepLimit
	}
	if a.SwitchCaseLimit == 0 {
		a.SwitchCaseLimit = DefaultSwitchCaseLimit
	}
	if a.Threads == 0 {
		a.Threads = DefaultThreads
	}
	if len(a.Extensions) == 0 {
		a.Extensions = append([]string(nil), defaultExtensions...)
	}
	if len(a.EntryPoints) == 0 {
		a.EntryPoints = append([]string(nil), defaultEntryPoints...)
	}
	if len(a.IgnoredImportPrefixes) == 0 {
		a.IgnoredImportPrefixes = append([]string(nil), defaultIgnoredImportPrefixes...)
	}

	if len(c.Exclusions.GeneratedSuffixes) == 0 {
		c.Exclusions.GeneratedSuffixes = append([]string(nil), defaultGeneratedSuffixes...)
	}

	r := &c.Report
	if r.MaxFileViolations == 0 {
		r.MaxFileViolations = DefaultMaxFileViolations
	}
	if r.MaxMethodViolations == 0 {
		r.MaxMethodViolations = DefaultMaxMethodViolations
	}
	if r.MaxClusters == 0 {
		r.MaxClusters = DefaultMaxClusters
	}
	if r.MaxRankedFiles == 0 {
		r.MaxRankedFiles = DefaultMaxRankedFiles
	}
	if r.MaxDeadFiles == 0 {
		r.MaxDeadFiles = DefaultMaxDeadFiles
	}
	if r.MaxDeadSymbols == 0 {
		r.MaxDeadSymbols = DefaultMaxDeadSymbols
	}
}
