package sections

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/metrics"
)

// Strategy names, as used in configuration.
const (
	StrategyService   = "service"
	StrategySynthesis = "synthesis"
)

// Analyzer evaluates a document against every clause category. Implementations
// return exactly one section per category, in constants.Categories order.
type Analyzer interface {
	Analyze(ctx context.Context, text, documentType string) []entity.SectionAnalysis
	Strategy() string
}

type sectionFunc func(ctx context.Context, cat constants.Category) (entity.SectionAnalysis, error)

// analyzeAll runs fn for each category. An error or panic in one category
// degrades that section only.
func analyzeAll(ctx context.Context, strategy string, logger *slog.Logger, fn sectionFunc) []entity.SectionAnalysis {
	start := time.Now()
	cats := constants.Categories()
	out := make([]entity.SectionAnalysis, len(cats))
	degraded := 0
	for i, cat := range cats {
		sa, err := runSection(ctx, cat, fn)
		if err != nil {
			logger.Warn("sections.analyze.section_failed", "strategy", strategy, "section", cat, "error", err)
			metrics.Sections.WithLabelValues(strategy, "failed").Inc()
			sa = Degraded(cat)
			degraded++
		} else {
			metrics.Sections.WithLabelValues(strategy, "ok").Inc()
		}
		sa.Title = cat.Title()
		sa.Key = string(cat)
		out[i] = sa
	}
	logger.Info("sections.analyze.ok",
		"strategy", strategy,
		"sections", len(out),
		"degraded", degraded,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

func runSection(ctx context.Context, cat constants.Category, fn sectionFunc) (sa entity.SectionAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic analyzing %s: %v", cat, r)
		}
	}()
	sa, err = fn(ctx, cat)
	if err == nil && len(sa.Alerts) == 0 {
		sa.Alerts = []entity.Alert{noIssuesAlert(cat)}
	}
	return sa, err
}

// Degraded is the section reported when analysis of cat failed outright.
func Degraded(cat constants.Category) entity.SectionAnalysis {
	return entity.SectionAnalysis{
		Title:   cat.Title(),
		Key:     string(cat),
		Content: "Unable to analyze " + cat.Title(),
		Alerts: []entity.Alert{{
			Message:  fmt.Sprintf("Analysis failed for %s.", strings.ToLower(cat.Title())),
			Level:    constants.AlertError,
			Category: string(cat),
		}},
		Confidence: 0,
		HasContent: false,
	}
}

func noIssuesAlert(cat constants.Category) entity.Alert {
	return entity.Alert{
		Message:  fmt.Sprintf("No critical issues found in %s.", strings.ToLower(cat.Title())),
		Level:    constants.AlertInfo,
		Category: string(cat),
	}
}
