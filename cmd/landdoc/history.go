package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/landdoc-verifier/internal/export"
	"github.com/joseph-ayodele/landdoc-verifier/internal/verify"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and export stored results",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent verifications and contract analyses",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one stored verification (or contract with --contract)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Write the history workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

var (
	historyLimit    int
	historyContract bool
	historyFrom     string
	historyTo       string
)

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of records per kind (0 = all)")
	historyShowCmd.Flags().BoolVar(&historyContract, "contract", false, "look up a contract analysis")
	historyExportCmd.Flags().StringVar(&historyFrom, "from", "", "from date YYYY-MM-DD")
	historyExportCmd.Flags().StringVar(&historyTo, "to", "", "to date YYYY-MM-DD")
	historyExportCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of records per sheet (0 = all)")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := cmdContext(cmd)
	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	vs, err := a.Verifications.ListRecent(ctx, historyLimit)
	if err != nil {
		return err
	}
	cs, err := a.Contracts.ListRecent(ctx, historyLimit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tID\tNAME\tSTATUS\tCONFIDENCE")
	for _, v := range vs {
		fmt.Fprintf(tw, "land\t%s\t%s\t%s\t%d\n", v.ID, v.DocumentName, v.Status, v.Confidence)
	}
	for _, c := range cs {
		fmt.Fprintf(tw, "contract\t%s\t%s\t%d sections\t-\n", c.ID, c.Name, len(c.Sections))
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if historyContract {
		c, err := a.Contracts.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(c)
	}
	v, err := a.Verifications.Get(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(v)
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	w := export.Window{Limit: historyLimit}
	for _, d := range []struct {
		flag string
		raw  string
		dst  **time.Time
	}{{"--from", historyFrom, &w.From}, {"--to", historyTo, &w.To}} {
		if d.raw == "" {
			continue
		}
		t, err := time.Parse(verify.DateLayout, d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s date, use YYYY-MM-DD: %w", d.flag, err)
		}
		*d.dst = &t
	}

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	xlsx, err := a.Exporter.ExportHistoryXLSX(ctx, w)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], xlsx, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "history written to %s\n", args[0])
	return nil
}
