package sections

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

const (
	// minorAlertChance is the probability that a successful section carries
	// a minor info alert.
	minorAlertChance = 0.2 * 0.3
	// issueContentChance is the probability that an issue section still
	// reports usable content.
	issueContentChance = 0.8
)

// Synthesis fabricates plausible section outcomes from fixed template pools.
// It never fails and needs no external service.
type Synthesis struct {
	cfg    common.AnalysisConfig
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthesis builds a synthesizer. A zero Seed draws a random one; any
// other seed gives a reproducible sequence.
func NewSynthesis(cfg common.AnalysisConfig, logger *slog.Logger) *Synthesis {
	if logger == nil {
		logger = slog.Default()
	}
	def := common.DefaultConfig().Analysis
	if len(cfg.SuccessConfidence) == 0 {
		cfg.SuccessConfidence = def.SuccessConfidence
	}
	if len(cfg.IssueConfidence) == 0 {
		cfg.IssueConfidence = def.IssueConfidence
	}
	if cfg.SuccessRatio < 0 || cfg.SuccessRatio > 1 {
		cfg.SuccessRatio = def.SuccessRatio
	}
	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Synthesis{
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *Synthesis) Strategy() string { return StrategySynthesis }

func (s *Synthesis) Analyze(ctx context.Context, text, documentType string) []entity.SectionAnalysis {
	s.logger.Debug("sections.synthesis.start", "document_type", documentType, "text_len", len(text))
	return analyzeAll(ctx, StrategySynthesis, s.logger, func(_ context.Context, cat constants.Category) (entity.SectionAnalysis, error) {
		return s.section(cat), nil
	})
}

func (s *Synthesis) section(cat constants.Category) entity.SectionAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() < s.cfg.SuccessRatio {
		sa := entity.SectionAnalysis{
			Content:    pick(s.rng, pool(successContent, cat)),
			Confidence: pick(s.rng, s.cfg.SuccessConfidence),
			HasContent: true,
		}
		if s.rng.Float64() < minorAlertChance {
			sa.Alerts = []entity.Alert{pick(s.rng, minorAlerts(cat))}
		}
		return sa
	}

	alerts := issueAlerts(cat)
	s.rng.Shuffle(len(alerts), func(i, j int) { alerts[i], alerts[j] = alerts[j], alerts[i] })
	return entity.SectionAnalysis{
		Content:    pick(s.rng, pool(issueContent, cat)),
		Confidence: pick(s.rng, s.cfg.IssueConfidence),
		Alerts:     alerts[:1+s.rng.IntN(2)],
		HasContent: s.rng.Float64() < issueContentChance,
	}
}

func pick[T any](r *rand.Rand, xs []T) T {
	return xs[r.IntN(len(xs))]
}
