package registry

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// MockPortal answers every lookup with a clean record after the rate-limit delay.
// It stands in for the state portal, which has no public API.
type MockPortal struct {
	limiter *rate.Limiter
	details func(entity.DocumentRecord) (entity.VerificationDetails, error)
	logger  *slog.Logger
}

type MockOption func(*MockPortal)

// WithDetails fixes the details returned for every record.
func WithDetails(d entity.VerificationDetails) MockOption {
	return func(m *MockPortal) {
		m.details = func(entity.DocumentRecord) (entity.VerificationDetails, error) { return d, nil }
	}
}

// WithLookup lets callers compute details (or fail) per record.
func WithLookup(fn func(entity.DocumentRecord) (entity.VerificationDetails, error)) MockOption {
	return func(m *MockPortal) { m.details = fn }
}

// CleanDetails is what the mock portal reports for a document with no problems.
func CleanDetails() entity.VerificationDetails {
	return entity.VerificationDetails{
		RegistrationStatus:  constants.RegistrationRegistered,
		PortalMatch:         true,
		OwnershipVerified:   true,
		BoundariesConfirmed: true,
		TaxStatus:           constants.TaxStatusCurrent,
	}
}

func NewMockPortal(delay time.Duration, logger *slog.Logger, opts ...MockOption) *MockPortal {
	if logger == nil {
		logger = slog.Default()
	}
	m := &MockPortal{
		limiter: newLimiter(delay),
		logger:  logger,
	}
	WithDetails(CleanDetails())(m)
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *MockPortal) Verify(ctx context.Context, rec entity.DocumentRecord) (entity.VerificationDetails, error) {
	start := time.Now()
	if err := m.limiter.Wait(ctx); err != nil {
		return entity.VerificationDetails{}, registryError("rate limit wait", err)
	}
	d, err := m.details(rec)
	if err != nil {
		m.logger.Warn("registry.mock.error", "survey_number", rec.SurveyNumber, "error", err)
		return entity.VerificationDetails{}, registryError("mock lookup", err)
	}
	m.logger.Debug("registry.mock.ok",
		"survey_number", rec.SurveyNumber,
		"portal_match", d.PortalMatch,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return d, nil
}
