package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/llm"
	"github.com/joseph-ayodele/landdoc-verifier/internal/metrics"
)

// Reply sources.
const (
	SourceGenerator = "generator"
	SourceRules     = "rules"
)

type Reply struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
}

// Assistant answers questions through a text generator when one is
// configured and through Respond otherwise.
type Assistant struct {
	gen    llm.Generator
	logger *slog.Logger
}

// NewAssistant accepts a nil generator.
func NewAssistant(gen llm.Generator, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{gen: gen, logger: logger}
}

// Ask never fails; generator errors and empty replies fall back to the rules.
func (a *Assistant) Ask(ctx context.Context, question string, rec entity.DocumentRecord, text string) Reply {
	if a.gen != nil {
		answer, err := a.gen.Generate(ctx, llm.BuildChatPrompt(question, rec, text), llm.ChatParams)
		switch {
		case err != nil:
			a.logger.Warn("chat.generate.failed", "model", a.gen.Model(), "error", err)
		case strings.TrimSpace(answer) == "":
			a.logger.Debug("chat.generate.empty", "model", a.gen.Model())
		default:
			metrics.ChatResponses.WithLabelValues(SourceGenerator).Inc()
			return Reply{Answer: strings.TrimSpace(answer), Source: SourceGenerator}
		}
	}
	metrics.ChatResponses.WithLabelValues(SourceRules).Inc()
	return Reply{Answer: Respond(question, rec, text), Source: SourceRules}
}
