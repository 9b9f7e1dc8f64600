package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/async"
	"github.com/joseph-ayodele/landdoc-verifier/internal/export"
	"github.com/joseph-ayodele/landdoc-verifier/internal/ingest"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every supported file in a directory and export the history workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

var (
	batchKind    string
	batchWorkers int
	batchXLSX    string
	batchHidden  bool
)

func init() {
	batchCmd.Flags().StringVar(&batchKind, "kind", string(constants.JobKindLand), "pipeline to run: land or contract")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent workers (default: QUEUE_WORKERS)")
	batchCmd.Flags().StringVar(&batchXLSX, "xlsx", "", "history workbook path (default: <dir>/../landdoc_history.xlsx)")
	batchCmd.Flags().BoolVar(&batchHidden, "include-hidden", false, "also process hidden files and directories")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	kind := constants.JobKind(batchKind)
	if kind != constants.JobKindLand && kind != constants.JobKindContract {
		return fmt.Errorf("--kind must be %q or %q", constants.JobKindLand, constants.JobKindContract)
	}

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	workers := batchWorkers
	if workers <= 0 {
		workers = a.Config.Intake.Workers
	}
	queue := async.NewProcessorQueue(a.Processor, a.Logger, async.WithWorkers(workers), async.WithProcessTimeout(3*time.Minute))
	ingestor := ingest.NewFSIngestor(queue, a.Logger)

	results, stats, err := ingestor.IngestDirectory(ctx, args[0], kind, !batchHidden)
	queue.Shutdown(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(os.Stderr, "skipped %s: %s\n", r.SourcePath, r.Err)
		}
	}

	out := batchXLSX
	if out == "" {
		out = filepath.Join(filepath.Dir(filepath.Clean(args[0])), "landdoc_history.xlsx")
	}
	xlsx, err := a.Exporter.ExportHistoryXLSX(ctx, export.Window{})
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, xlsx, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "history written to %s\n", out)
	return printJSON(stats)
}
