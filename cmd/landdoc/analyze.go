package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/pipeline"
	"github.com/joseph-ayodele/landdoc-verifier/internal/sections"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a contract clause by clause",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeDocType  string
	analyzeSections []string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDocType, "type", "", "document type, e.g. \"Land Ownership Contract\" (default: detect)")
	analyzeCmd.Flags().StringSliceVar(&analyzeSections, "section", nil,
		"only print these sections ("+strings.Join(constants.AsStringSlice(), ", ")+"); the full analysis is still stored")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	only, err := sections.ParseCategories(analyzeSections)
	if err != nil {
		return err
	}
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
	out, err := a.Processor.ProcessContract(ctx, file, analyzeDocType)
	if err != nil {
		return err
	}
	if path, err := saveReport(out.Report); err != nil {
		return fmt.Errorf("write report: %w", err)
	} else if path != "" {
		fmt.Fprintf(os.Stderr, "report written to %s\n", path)
	}
	out.Analysis.ExtractedText = ""
	out.Analysis.Sections = sections.Only(out.Analysis.Sections, only)
	return printJSON(struct {
		Analysis any `json:"analysis"`
		Overview any `json:"overview"`
	}{out.Analysis, out.Overview})
}
