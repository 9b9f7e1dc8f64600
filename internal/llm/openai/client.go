package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/llm"
	"github.com/joseph-ayodele/landdoc-verifier/internal/metrics"
)

var errNoChoices = errors.New("no choices in openai response")

// Generate implements llm.Generator with a single-turn chat completion.
func (c *Client) Generate(ctx context.Context, prompt string, p llm.Params) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Debug("llm.generate.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", p.Temperature,
		"max_tokens", p.MaxTokens,
		"prompt_len", len(prompt),
	)

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
		TopP:        p.TopP,
	})
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues(c.cfg.Model, "error").Inc()
		c.logger.Error("llm.generate.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewServiceUnavailableError("openai", err)
	}
	if len(resp.Choices) == 0 {
		metrics.GeneratorCalls.WithLabelValues(c.cfg.Model, "empty").Inc()
		c.logger.Error("llm.generate.no_choices", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return "", common.NewServiceUnavailableError("openai", errNoChoices)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	metrics.GeneratorCalls.WithLabelValues(c.cfg.Model, "ok").Inc()
	c.logger.Info("llm.generate.ok",
		"req_id", rid,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"reply_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
