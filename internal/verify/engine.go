package verify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/metrics"
	"github.com/joseph-ayodele/landdoc-verifier/internal/registry"
)

// Discrepancy messages, stored verbatim in history.
const (
	DiscrepancyPortalMismatch  = "Document details do not match portal records"
	DiscrepancyOwnership       = "Ownership information could not be verified"
	DiscrepancyTaxNotCurrent   = "Tax payments are not current"
	DiscrepancyTechnicalFailed = "Unable to verify document due to technical issues"
)

// Penalties subtracted from 100 per failed check.
const (
	PenaltyRegistration   = 20
	PenaltyPortalMatch    = 25
	PenaltyOwnership      = 20
	PenaltyBoundaries     = 15
	PenaltyTaxStatus      = 10
	PenaltyPerDiscrepancy = 5
)

// DateLayout formats VerificationResult.UploadDate.
const DateLayout = "2006-01-02"

type Engine struct {
	proxy      registry.Proxy
	classifier *registry.OwnershipClassifier
	now        func() time.Time
	newID      func() string
	logger     *slog.Logger
}

type Option func(*Engine)

// WithClock overrides time.Now for the upload date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs overrides the record id generator.
func WithIDs(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

func NewEngine(proxy registry.Proxy, classifier *registry.OwnershipClassifier, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if classifier == nil {
		classifier = registry.NewOwnershipClassifier(nil)
	}
	e := &Engine{
		proxy:      proxy,
		classifier: classifier,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
		logger:     logger,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Verify cross-checks rec against the registry. It always returns a well-formed
// result; registry failures produce a terminal "Processing Failed" result.
func (e *Engine) Verify(ctx context.Context, rec entity.DocumentRecord, documentName string) entity.VerificationResult {
	start := time.Now()
	if documentName == "" {
		documentName = "Land Document"
	}

	details, err := e.proxy.Verify(ctx, rec)
	if err != nil {
		e.logger.Error("verify.registry.error", "document", documentName, "survey_number", rec.SurveyNumber, "error", err)
		res := e.failed(rec, documentName)
		metrics.Verifications.WithLabelValues(res.Status).Inc()
		return res
	}

	discrepancies := Discrepancies(details)
	res := entity.VerificationResult{
		ID:                  e.newID(),
		DocumentName:        documentName,
		UploadDate:          e.now().Format(DateLayout),
		Status:              statusFor(discrepancies),
		IsLegal:             len(discrepancies) == 0,
		OwnershipType:       e.classifier.Classify(rec.SurveyNumber),
		DocumentType:        rec.DocumentType,
		SurveyNumber:        rec.SurveyNumber,
		District:            rec.District,
		Taluk:               rec.Taluk,
		Village:             rec.Village,
		Area:                rec.Area,
		Owner:               rec.Owner,
		Classification:      rec.Classification,
		Discrepancies:       discrepancies,
		Confidence:          Confidence(details, discrepancies),
		VerificationDetails: details,
	}

	metrics.Verifications.WithLabelValues(res.Status).Inc()
	metrics.VerificationConfidence.Observe(float64(res.Confidence))
	e.logger.Info("verify.done",
		"id", res.ID,
		"document", documentName,
		"status", res.Status,
		"confidence", res.Confidence,
		"discrepancies", len(discrepancies),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

func (e *Engine) failed(rec entity.DocumentRecord, documentName string) entity.VerificationResult {
	return entity.VerificationResult{
		ID:             e.newID(),
		DocumentName:   documentName,
		UploadDate:     e.now().Format(DateLayout),
		Status:         constants.StatusProcessingFailed,
		IsLegal:        false,
		OwnershipType:  constants.Unknown,
		DocumentType:   rec.DocumentType,
		SurveyNumber:   rec.SurveyNumber,
		District:       rec.District,
		Taluk:          rec.Taluk,
		Village:        rec.Village,
		Area:           rec.Area,
		Owner:          rec.Owner,
		Classification: rec.Classification,
		Discrepancies:  []string{DiscrepancyTechnicalFailed},
		Confidence:     0,
		VerificationDetails: entity.VerificationDetails{
			RegistrationStatus: constants.RegistrationFailed,
			TaxStatus:          constants.TaxStatusUnknown,
		},
	}
}

// Discrepancies lists the failed checks that produce a discrepancy. Unconfirmed
// boundaries only cost confidence.
func Discrepancies(d entity.VerificationDetails) []string {
	out := []string{}
	if !d.PortalMatch {
		out = append(out, DiscrepancyPortalMismatch)
	}
	if !d.OwnershipVerified {
		out = append(out, DiscrepancyOwnership)
	}
	if d.TaxStatus != constants.TaxStatusCurrent {
		out = append(out, DiscrepancyTaxNotCurrent)
	}
	return out
}

// Confidence applies the fixed penalties and clamps to [0,100].
func Confidence(d entity.VerificationDetails, discrepancies []string) int {
	score := 100
	if d.RegistrationStatus == "" {
		score -= PenaltyRegistration
	}
	if !d.PortalMatch {
		score -= PenaltyPortalMatch
	}
	if !d.OwnershipVerified {
		score -= PenaltyOwnership
	}
	if !d.BoundariesConfirmed {
		score -= PenaltyBoundaries
	}
	if d.TaxStatus != constants.TaxStatusCurrent {
		score -= PenaltyTaxStatus
	}
	score -= PenaltyPerDiscrepancy * len(discrepancies)
	return max(0, min(100, score))
}

func statusFor(discrepancies []string) string {
	if len(discrepancies) == 0 {
		return constants.StatusVerified
	}
	return constants.StatusIssuesFound
}
