package registry

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// DefaultRateLimitDelay is the minimum spacing between portal calls.
const DefaultRateLimitDelay = 2 * time.Second

// Proxy is the land-records authority.
type Proxy interface {
	Verify(ctx context.Context, rec entity.DocumentRecord) (entity.VerificationDetails, error)
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

func registryError(msg string, cause error) error {
	return common.NewAppError(common.CodeRegistryFailed, msg, errors.Join(common.ErrRegistryVerificationFailed, cause))
}
