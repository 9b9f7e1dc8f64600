package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/export"
	"github.com/joseph-ayodele/landdoc-verifier/internal/verify"
)

type exportRequest struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
	Limit    int    `json:"limit" validate:"gte=0"`
}

// ExportHistory returns the history workbook.
// - only from -> from..today (inclusive)
// - only to   -> beginning..to (inclusive)
// - none      -> all.
func (s *DocumentService) ExportHistory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req exportRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	w, err := req.window(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	xlsx, err := s.exporter.ExportHistoryXLSX(ctx, w)
	if err != nil {
		common.LoggerFromContext(ctx, s.logger).Error("export.xlsx.failed", "from", req.FromDate, "to", req.ToDate, "error", err)
		return nil, err
	}
	return encode(map[string]any{
		"fileName": fmt.Sprintf("landdoc_history_%s.xlsx", time.Now().UTC().Format(verify.DateLayout)),
		"content":  xlsx,
	})
}

func (r exportRequest) window(now time.Time) (export.Window, error) {
	w := export.Window{Limit: r.Limit}
	if fd := strings.TrimSpace(r.FromDate); fd != "" {
		t, err := time.Parse(verify.DateLayout, fd)
		if err != nil {
			return w, fmt.Errorf("%w: fromDate must be YYYY-MM-DD", common.ErrInvalidInput)
		}
		w.From = &t
	}
	if td := strings.TrimSpace(r.ToDate); td != "" {
		t, err := time.Parse(verify.DateLayout, td)
		if err != nil {
			return w, fmt.Errorf("%w: toDate must be YYYY-MM-DD", common.ErrInvalidInput)
		}
		w.To = &t
	}
	if w.From != nil && w.To == nil {
		to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		w.To = &to
	}
	return w, nil
}
