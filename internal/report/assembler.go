package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/insights"
	"github.com/joseph-ayodele/landdoc-verifier/internal/repository"
)

// Report is a rendered document ready to hand to a caller.
type Report struct {
	ID          string `json:"id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"content"`
}

// Assembler persists results to history and renders their reports.
type Assembler struct {
	verifications repository.VerificationHistory
	contracts     repository.ContractHistory
	renderer      Renderer
	now           func() time.Time
	logger        *slog.Logger
}

type AssemblerOption func(*Assembler)

func WithRenderer(r Renderer) AssemblerOption {
	return func(a *Assembler) { a.renderer = r }
}

func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) { a.now = now }
}

func NewAssembler(v repository.VerificationHistory, c repository.ContractHistory, logger *slog.Logger, opts ...AssemblerOption) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assembler{
		verifications: v,
		contracts:     c,
		renderer:      TextRenderer{},
		now:           time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssembleVerification appends res to history, then renders it.
func (a *Assembler) AssembleVerification(ctx context.Context, res entity.VerificationResult) (Report, error) {
	if err := a.verifications.Append(ctx, res); err != nil {
		return Report{}, fmt.Errorf("append verification %s: %w", res.ID, err)
	}
	return a.RenderVerification(res)
}

// AssembleContract appends c to history, then renders it.
func (a *Assembler) AssembleContract(ctx context.Context, c entity.ContractAnalysis) (Report, error) {
	if err := a.contracts.Append(ctx, c); err != nil {
		return Report{}, fmt.Errorf("append contract %s: %w", c.ID, err)
	}
	return a.RenderContract(c)
}

// RenderVerification renders without touching history.
func (a *Assembler) RenderVerification(res entity.VerificationResult) (Report, error) {
	now := a.now()
	name := fmt.Sprintf("land_verification_report_%s_%s", res.ID, now.UTC().Format("2006-01-02"))
	return a.render(res.ID, name, VerificationDocument(res, now))
}

// RenderContract renders without touching history.
func (a *Assembler) RenderContract(c entity.ContractAnalysis) (Report, error) {
	now := a.now()
	name := fmt.Sprintf("contract_analysis_report_%s_%s", c.ID, now.UTC().Format("2006-01-02"))
	return a.render(c.ID, name, ContractDocument(c, insights.ContractOverview(c.Sections), now))
}

func (a *Assembler) render(id, base string, doc Document) (Report, error) {
	var buf bytes.Buffer
	if err := a.renderer.Render(&buf, doc); err != nil {
		a.logger.Error("report.render.failed", "id", id, "format", a.renderer.Format(), "error", err)
		return Report{}, fmt.Errorf("render %s: %w", a.renderer.Format(), err)
	}
	a.logger.Info("report.render.ok", "id", id, "format", a.renderer.Format(), "bytes", buf.Len())
	return Report{
		ID:          id,
		FileName:    base + a.renderer.Extension(),
		ContentType: a.renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
