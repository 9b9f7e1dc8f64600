package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/ocr"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr <file>",
	Short: "Run text recognition on a file and print the text",
	Args:  cobra.ExactArgs(1),
	RunE:  runOCR,
}

var ocrLang string

func init() {
	ocrCmd.Flags().StringVar(&ocrLang, "lang", "", "tesseract language (default: OCR_LANG)")
	rootCmd.AddCommand(ocrCmd)
}

func runOCR(cmd *cobra.Command, args []string) error {
	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	if ocrLang != "" {
		cfg.OCR.Language = ocrLang
	}
	logger := appLogger(cfg)

	x := ocr.NewExtractor(ocr.Config{
		Language:         cfg.OCR.Language,
		TessdataDir:      cfg.OCR.TessdataDir,
		WordConverter:    cfg.OCR.WordConverter,
		DPI:              cfg.OCR.DPI,
		MaxPages:         cfg.OCR.MaxPages,
		ArtifactCacheDir: cfg.OCR.ArtifactCacheDir,
	}, logger)

	res, err := x.ExtractPath(cmdContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("text extraction failed: %w", err)
	}
	logger.Info("text extraction OK",
		"method", res.Method,
		"pages", res.Pages,
		"confidence", res.Confidence,
		"bytes", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	fmt.Println(res.Text)
	return nil
}
