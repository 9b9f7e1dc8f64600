package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttled spaces calls to the wrapped generator at least interval apart.
type Throttled struct {
	next    Generator
	limiter *rate.Limiter
}

func NewThrottled(next Generator, interval time.Duration) *Throttled {
	lim := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		lim = rate.NewLimiter(rate.Every(interval), 1)
	}
	return &Throttled{next: next, limiter: lim}
}

func (t *Throttled) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return t.next.Generate(ctx, prompt, p)
}

func (t *Throttled) Model() string { return t.next.Model() }
