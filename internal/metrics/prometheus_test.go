package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	require.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestCountersExposed(t *testing.T) {
	Init()
	before := testutil.ToFloat64(Verifications.WithLabelValues("Verified"))
	Verifications.WithLabelValues("Verified").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Verifications.WithLabelValues("Verified")))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "landdoc_verifications_total")
}
