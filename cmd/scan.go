package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/structhound/structhound/internal/engine"
	"github.com/structhound/structhound/internal/report"
	"github.com/structhound/structhound/internal/walker"
	"github.com/structhound/structhound/pkg/shared/files"
	"github.com/structhound/structhound/pkg/shared/logger"
)

// ScanOptions holds the scan command's flag values. Non-zero values override
// the corresponding config fields.
type ScanOptions struct {
	Root    string
	Format  string
	Output  string
	Threads int
	Top     int
}

var allScanOptions ScanOptions

var scanCmd = &cobra.Command{
	Use:          "scan",
	SilenceUsage: true,
	Short:        "Analyze a source tree and report structural quality violations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&allScanOptions.Root, "root", ".", "root directory of the source tree to scan")
	scanCmd.Flags().StringVarP(&allScanOptions.Format, "format", "f", report.FormatMarkdown, "output format: markdown, json or sarif")
	scanCmd.Flags().StringVarP(&allScanOptions.Output, "output", "o", "", "write the report to this file instead of stdout")
	scanCmd.Flags().IntVarP(&allScanOptions.Threads, "threads", "j", 0, "number of parallel workers (overrides config)")
	scanCmd.Flags().IntVar(&allScanOptions.Top, "top", 0, "ranked-files section size (overrides config)")
}

func runScan() error {
	log := logger.NewLogger(AppConfig, "structhound")

	if allScanOptions.Threads > 0 {
		AppConfig.Analysis.Threads = allScanOptions.Threads
	}
	if allScanOptions.Top > 0 {
		AppConfig.Report.MaxRankedFiles = allScanOptions.Top
	}

	root, err := files.ExpandPath(allScanOptions.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve scan root: %w", err)
	}

	w, err := walker.New(root, AppConfig, log.Named("walker"))
	if err != nil {
		return err
	}
	paths, err := w.Walk()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}

	res, err := engine.New(w.Root(), AppConfig, log.Named("engine")).Run(paths)
	if err != nil {
		return err
	}

	data, err := report.Render(allScanOptions.Format, res, AppConfig.Report)
	if err != nil {
		return err
	}

	if allScanOptions.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	output := allScanOptions.Output
	if filepath.Ext(output) == "" {
		output += report.Extension(allScanOptions.Format)
	}
	if err := files.WriteReportFile(output, data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.Info("report written", "path", output, "format", allScanOptions.Format)
	return nil
}
