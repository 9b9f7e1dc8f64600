package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/httpclient"
)

type HTTPConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	RateLimitDelay time.Duration
}

// HTTPPortal posts the record to {BaseURL}/verify and expects VerificationDetails back.
type HTTPPortal struct {
	cfg     HTTPConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

type verifyRequest struct {
	SurveyNumber string `json:"surveyNumber"`
	Owner        string `json:"owner"`
	District     string `json:"district"`
	Taluk        string `json:"taluk"`
	Village      string `json:"village"`
	DocumentType string `json:"documentType"`
	Area         string `json:"area"`
}

func NewHTTPPortal(cfg HTTPConfig, logger *slog.Logger) *HTTPPortal {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPPortal{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: newLimiter(cfg.RateLimitDelay),
		logger:  logger,
	}
}

func (p *HTTPPortal) Verify(ctx context.Context, rec entity.DocumentRecord) (entity.VerificationDetails, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return entity.VerificationDetails{}, registryError("rate limit wait", err)
	}

	var headers map[string]string
	if p.cfg.APIKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + p.cfg.APIKey}
	}
	url := strings.TrimRight(p.cfg.BaseURL, "/") + "/verify"
	raw, status, err := httpclient.SendJSON(ctx, p.client, url, verifyRequest{
		SurveyNumber: rec.SurveyNumber,
		Owner:        rec.Owner,
		District:     rec.District,
		Taluk:        rec.Taluk,
		Village:      rec.Village,
		DocumentType: rec.DocumentType,
		Area:         rec.Area,
	}, headers, p.logger)
	if err != nil {
		p.logger.Error("registry.http.error", "status", status, "survey_number", rec.SurveyNumber, "error", err)
		if status == 0 || status >= 500 {
			return entity.VerificationDetails{}, common.NewServiceUnavailableError("registry", registryError(url, err))
		}
		return entity.VerificationDetails{}, registryError(fmt.Sprintf("status %d", status), err)
	}

	var d entity.VerificationDetails
	if err := json.Unmarshal(raw, &d); err != nil {
		return entity.VerificationDetails{}, registryError("decode response", err)
	}
	return d, nil
}
