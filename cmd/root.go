package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/structhound/structhound/cmd/version"
	"github.com/structhound/structhound/pkg/shared/config"
)

const defaultConfigFile = "structhound.yml"

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "structhound [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Structhound is a structural source-quality scanner.",
		Long: `Structhound scans a source tree for structural quality violations:
oversized files and methods, files and symbols nothing references, duplicated
declaration signatures, and common design-principle smells. It renders the
findings as markdown, JSON or SARIF.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	// Accept snake_case spellings of every flag.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is structhound.yml when present)")
	rootCmd.AddCommand(version.NewVersionCmd())
}

func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	if cfgFile == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			cfgFile = defaultConfigFile
		}
	}

	var err error
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
