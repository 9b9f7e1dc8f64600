package ocr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
)

// extractWord converts a Word document to PDF and runs the PDF pipeline on it.
func (e *Extractor) extractWord(ctx context.Context, path, hashHex string) (Result, error) {
	pdf, warns, cleanup, err := e.convertWordToPDF(ctx, path, hashHex)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return Result{Kind: constants.MimeKindWord, Warnings: warns}, err
	}

	res, err := e.extractPDF(ctx, pdf)
	res.Kind = constants.MimeKindWord
	res.Warnings = append(warns, res.Warnings...)
	if err != nil {
		return res, err
	}
	res.Method = "word-" + strings.TrimPrefix(res.Method, "pdf-")
	return res, nil
}

// convertWordToPDF runs `soffice --headless --convert-to pdf`. When ArtifactCacheDir
// and hashHex are set the PDF is kept at {cacheDir}/{hashHex}.pdf and reused.
func (e *Extractor) convertWordToPDF(ctx context.Context, in, hashHex string) (string, []string, func(), error) {
	cacheDir := e.cfg.ArtifactCacheDir
	if cacheDir != "" && hashHex != "" {
		cached := filepath.Join(cacheDir, hashHex+".pdf")
		if st, err := os.Stat(cached); err == nil && !st.IsDir() {
			e.logger.Debug("using cached word->pdf", "cache", cached)
			return cached, nil, nil, nil
		}
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			return "", nil, nil, err
		}
	}

	tmpDir, err := os.MkdirTemp("", "ldv-word-*")
	if err != nil {
		return "", nil, nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	if _, errb, err := e.runner.Run(ctx, e.cfg.WordConverter, e.logger,
		"--headless", "--convert-to", "pdf", "--outdir", tmpDir, in); err != nil {
		return "", []string{string(errb)}, cleanup, fmt.Errorf("%s convert failed: %w", e.cfg.WordConverter, err)
	}

	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	out := filepath.Join(tmpDir, base+".pdf")
	if _, err := os.Stat(out); err != nil {
		return "", nil, cleanup, fmt.Errorf("word conversion produced no output: %w", err)
	}

	if cacheDir == "" || hashHex == "" {
		return out, nil, cleanup, nil
	}

	cached := filepath.Join(cacheDir, hashHex+".pdf")
	if err := copyFile(out, cached); err != nil {
		e.logger.Warn("failed to persist word->pdf cache; using temp", "error", err)
		return out, nil, cleanup, nil
	}
	cleanup()
	return cached, nil, nil, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
