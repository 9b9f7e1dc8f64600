package sections

import (
	"log/slog"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/llm"
)

// New picks the configured strategy. The service strategy needs a generator;
// without one it falls back to synthesis.
func New(cfg common.AnalysisConfig, gen llm.Generator, logger *slog.Logger) Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Strategy == StrategyService {
		if gen != nil {
			return NewServiceBacked(gen, llm.SectionParams, logger)
		}
		logger.Warn("sections.strategy.fallback", "requested", StrategyService, "using", StrategySynthesis, "reason", "no generator configured")
	}
	return NewSynthesis(cfg, logger)
}
