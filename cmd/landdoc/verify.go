package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/landdoc-verifier/internal/pipeline"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify a land document against the registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	file, err := pipeline.RawFileFromPath(args[0])
	if err != nil {
		return err
	}
	out, err := a.Processor.ProcessLand(ctx, file)
	if err != nil {
		return err
	}
	path, err := saveReport(out.Report)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if path != "" {
		fmt.Fprintf(os.Stderr, "report written to %s\n", path)
	}
	return printJSON(struct {
		Result       any      `json:"result"`
		KeyPoints    []string `json:"keyPoints"`
		UsedFallback bool     `json:"usedFallback"`
	}{out.Result, out.KeyPoints, out.UsedFallback})
}
