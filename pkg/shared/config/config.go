// Package config loads and validates the structhound configuration file.
// Every knob has a default, so a missing config file is not an error: the
// zero Config plus ApplyDefaults yields a fully working setup.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/structhound/structhound/pkg/shared/files"
)

// Config is the root of the YAML configuration.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	Analysis   Analysis   `yaml:"analysis"`
	Exclusions Exclusions `yaml:"exclusions"`
	Report     Report     `yaml:"report"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Analysis holds the detection thresholds. All limits are strict
// greater-than comparisons.
type Analysis struct {
	FileLineLimit          int      `yaml:"file_line_limit"`
	MethodLineLimit        int      `yaml:"method_line_limit"`
	DuplicateFileThreshold int      `yaml:"duplicate_file_threshold"`
	MinSignatureLength     int      `yaml:"min_signature_length"`
	PublicMethodLimit      int      `yaml:"public_method_limit"`
	ImportLimit            int      `yaml:"import_limit"`
	ConcreteDepLimit       int      `yaml:"concrete_dep_limit"`
	SwitchCaseLimit        int      `yaml:"switch_case_limit"`
	Extensions             []string `yaml:"extensions"`
	EntryPoints            []string `yaml:"entry_points"`
	IgnoredImportPrefixes  []string `yaml:"ignored_import_prefixes"`
	Threads                int      `yaml:"threads"`
}

// Exclusions removes files from analysis entirely, before any scanning.
type Exclusions struct {
	GeneratedSuffixes []string `yaml:"generated_suffixes"`
	PathPrefixes      []string `yaml:"path_prefixes"`
}

// Report holds the presentation caps applied at the rendering boundary.
// They bound report size only; the underlying result sets stay complete.
type Report struct {
	MaxFileViolations   int `yaml:"max_file_violations"`
	MaxMethodViolations int `yaml:"max_method_violations"`
	MaxClusters         int `yaml:"max_clusters"`
	MaxRankedFiles      int `yaml:"max_ranked_files"`
	MaxDeadFiles        int `yaml:"max_dead_files"`
	MaxDeadSymbols      int `yaml:"max_dead_symbols"`
}

// LoadConfig reads the YAML file at path and fills in defaults. An empty
// path yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func loadYAML(path string, data interface{}) error {
	if err := files.ValidatePath(path); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return fmt.Errorf("failed to decode config %q: %w", path, err)
	}
	return nil
}
