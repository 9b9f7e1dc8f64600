package sections

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/llm"
	"github.com/joseph-ayodele/landdoc-verifier/internal/metrics"
)

// ServiceBacked asks a text generator about each category in turn.
type ServiceBacked struct {
	gen    llm.Generator
	params llm.Params
	logger *slog.Logger
}

func NewServiceBacked(gen llm.Generator, params llm.Params, logger *slog.Logger) *ServiceBacked {
	if logger == nil {
		logger = slog.Default()
	}
	if params == (llm.Params{}) {
		params = llm.SectionParams
	}
	return &ServiceBacked{gen: gen, params: params, logger: logger}
}

func (s *ServiceBacked) Strategy() string { return StrategyService }

func (s *ServiceBacked) Analyze(ctx context.Context, text, documentType string) []entity.SectionAnalysis {
	return analyzeAll(ctx, StrategyService, s.logger, func(ctx context.Context, cat constants.Category) (entity.SectionAnalysis, error) {
		return s.section(ctx, cat, text, documentType)
	})
}

// section returns an error only when the generator itself failed. Unparseable
// replies are answered with the templated fallback.
func (s *ServiceBacked) section(ctx context.Context, cat constants.Category, text, documentType string) (entity.SectionAnalysis, error) {
	prompt := llm.BuildSectionPrompt(cat, documentType, text)
	reply, err := s.gen.Generate(ctx, prompt, s.params)
	if err != nil {
		return entity.SectionAnalysis{}, err
	}
	sa, err := ParseReply(reply, cat, text)
	if err != nil {
		s.logger.Warn("sections.reply.unparsed", "section", cat, "reply_len", len(reply), "error", err)
		metrics.Sections.WithLabelValues(StrategyService, "fallback").Inc()
	}
	return sa, nil
}
