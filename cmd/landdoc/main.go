package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/landdoc-verifier/internal/app"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/report"
)

var rootCmd = &cobra.Command{
	Use:          "landdoc",
	Short:        "Land document verification and contract analysis",
	Long:         "landdoc extracts text from land records and contracts, verifies them against the land registry and writes reports to local history.",
	SilenceUsage: true,
}

var (
	inMemory     bool
	reportFormat string
	outDir       string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&inMemory, "inmem", false, "keep history in memory instead of DB_URL")
	rootCmd.PersistentFlags().StringVar(&reportFormat, "format", report.FormatText, "report format: text or xlsx")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "directory to write reports to (default: do not write)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildApp loads configuration and wires the pipeline for one command run.
func buildApp(ctx context.Context) (*app.App, error) {
	cfg, err := common.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return app.Build(ctx, cfg, appLogger(cfg), app.Options{
		InMemory: inMemory,
		Renderer: report.RendererFor(reportFormat),
	})
}

// appLogger logs JSON to stderr unless LOG_FORMAT asks otherwise, keeping
// stdout for command output.
func appLogger(cfg *common.Config) *slog.Logger {
	if os.Getenv("LOG_FORMAT") == "" {
		cfg.Log.Format = "json"
	}
	return app.NewLogger(cfg.Log, os.Stderr)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// saveReport writes rep under --out when it is set and returns the path.
func saveReport(rep report.Report) (string, error) {
	if outDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, rep.FileName)
	if err := os.WriteFile(path, rep.Body, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
