package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/VedoCalc/internal/engine"
	"github.com/piwi3910/VedoCalc/internal/export"
	"github.com/piwi3910/VedoCalc/internal/importer"
	"github.com/piwi3910/VedoCalc/internal/model"
)

// PDF writers, replaceable in tests.
var (
	exportPDF    = export.ExportPDF
	exportLabels = export.ExportLabels
)

var (
	outDir     string
	owner      string
	withPDF    bool
	withLabels bool
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Assign cutoffs for an order file and write the result spreadsheet",
	Long: `Reads the order file, validates every item, groups items by form type and
width, packs them into cutoffs and writes the result table to the storage
directory. Any invalid item aborts the run and nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory (default: storage_path from config)")
	processCmd.Flags().StringVar(&owner, "owner", "", "Owner recorded in the file metadata (default: owner from config)")
	processCmd.Flags().BoolVar(&withPDF, "pdf", false, "Also write a PDF cutoff report")
	processCmd.Flags().BoolVar(&withLabels, "labels", false, "Also write a PDF sheet of QR labels")
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := args[0]

	forms, err := appConfig.FormConfig()
	if err != nil {
		return fmt.Errorf("invalid form configuration: %w", err)
	}

	imported, err := importer.ImportFile(input, importer.Options{
		MaxFileSize: appConfig.MaxFileSize,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	report, err := engine.New(forms, engine.WithLogger(logger)).Process(imported.Records)
	if err != nil {
		return err
	}

	storage := appConfig.StoragePath
	if outDir != "" {
		storage = outDir
	}
	fileOwner := appConfig.Owner
	if owner != "" {
		fileOwner = owner
	}

	info, err := export.SaveReport(report, export.SaveOptions{
		StoragePath:  storage,
		OriginalName: filepath.Base(input),
		Owner:        fileOwner,
	})
	if err != nil {
		return err
	}
	logger.Info("result written",
		zap.String("file", info.Name),
		zap.Int64("size", info.Size),
		zap.String("owner", info.Owner))

	written := []string{info.Path}
	base := strings.TrimSuffix(info.Path, filepath.Ext(info.Path))
	extras := []struct {
		enabled bool
		suffix  string
		what    string
		write   func(string, model.Report) error
	}{
		{withPDF, "_report.pdf", "PDF report", exportPDF},
		{withLabels, "_labels.pdf", "labels", exportLabels},
	}
	for _, x := range extras {
		if !x.enabled {
			continue
		}
		path := base + x.suffix
		written = append(written, path)
		if err := x.write(path, report); err != nil {
			discard(written)
			return fmt.Errorf("failed to write %s: %w", x.what, err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s (%d bytes)\n", info.Path, info.Size)
	for _, path := range written[1:] {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}

	printSummary(cmd, engine.Summarize(report))
	return nil
}

// discard removes the files of a failed run so no partial output remains.
func discard(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Warn("cannot remove partial output", zap.String("file", p), zap.Error(err))
		}
	}
}

func printSummary(cmd *cobra.Command, summary engine.ReportSummary) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CUTOFF\tFORM\tWIDTH\tITEMS\tQTY\tFILL\tREFERENCE")
	for _, c := range summary.Cutoffs {
		fill := fmt.Sprintf("%d/%d", c.Quantity, c.Capacity)
		if c.OverCapacity {
			fill += " !"
		}
		fmt.Fprintf(w, "%d\t%d\t%d mm\t%d\t%d\t%s\t%s\n",
			c.ID, c.FormType, c.WidthMM, c.Items, c.Quantity, fill, c.Reference)
	}
	w.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d cutoffs, %d items, %d pieces, %.2f m2 total area\n",
		len(summary.Cutoffs), summary.Items, summary.Quantity, summary.TotalArea)
}
