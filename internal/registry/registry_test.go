package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

var rec = entity.DocumentRecord{SurveyNumber: "SF No. 12/3", Owner: "Selvi", District: "Salem"}

func TestMockPortal_CleanDetails(t *testing.T) {
	p := NewMockPortal(0, nil)
	d, err := p.Verify(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, CleanDetails(), d)
}

func TestMockPortal_RateLimited(t *testing.T) {
	p := NewMockPortal(60*time.Millisecond, nil)
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := p.Verify(context.Background(), rec)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 110*time.Millisecond)
}

func TestMockPortal_CancelledWhileWaiting(t *testing.T) {
	p := NewMockPortal(time.Hour, nil)
	_, err := p.Verify(context.Background(), rec)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = p.Verify(ctx, rec)
	assert.ErrorIs(t, err, common.ErrRegistryVerificationFailed)
}

func TestMockPortal_Lookup(t *testing.T) {
	p := NewMockPortal(0, nil, WithLookup(func(r entity.DocumentRecord) (entity.VerificationDetails, error) {
		if r.Owner == "" {
			return entity.VerificationDetails{}, errors.New("no owner")
		}
		d := CleanDetails()
		d.TaxStatus = "Overdue"
		return d, nil
	}))

	d, err := p.Verify(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "Overdue", d.TaxStatus)

	_, err = p.Verify(context.Background(), entity.DocumentRecord{})
	assert.ErrorIs(t, err, common.ErrRegistryVerificationFailed)
}

func TestHTTPPortal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verify", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var in verifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "SF No. 12/3", in.SurveyNumber)
		_ = json.NewEncoder(w).Encode(entity.VerificationDetails{
			RegistrationStatus: "Registered",
			PortalMatch:        true,
			TaxStatus:          "Current",
		})
	}))
	defer srv.Close()

	p := NewHTTPPortal(HTTPConfig{BaseURL: srv.URL + "/", APIKey: "secret"}, nil)
	d, err := p.Verify(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, d.PortalMatch)
	assert.False(t, d.OwnershipVerified)
	assert.Equal(t, "Registered", d.RegistrationStatus)
}

func TestHTTPPortal_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		unavailable bool
	}{
		{"server error", http.StatusServiceUnavailable, "down", true},
		{"client error", http.StatusBadRequest, "bad", false},
		{"bad json", http.StatusOK, "{not json", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPPortal(HTTPConfig{BaseURL: srv.URL}, nil).Verify(context.Background(), rec)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrRegistryVerificationFailed)
			assert.Equal(t, tt.unavailable, errors.Is(err, common.ErrServiceUnavailable))
		})
	}
}

func TestOwnershipClassifier(t *testing.T) {
	c := NewOwnershipClassifier(nil)
	assert.Equal(t, constants.OwnershipGovernment, c.Classify("SF No. 999/1"))
	assert.Equal(t, constants.OwnershipGovernment, c.Classify(" sf no.  888/2 "))
	assert.Equal(t, constants.OwnershipPrivate, c.Classify("SF No. 312/4"))
	assert.Equal(t, constants.OwnershipPrivate, c.Classify(constants.Unknown))

	custom := NewOwnershipClassifier([]string{"SF No. 1/1"})
	assert.Equal(t, constants.OwnershipPrivate, custom.Classify("SF No. 999/1"))
	assert.Equal(t, constants.OwnershipGovernment, custom.Classify("SF No. 1/1"))
}
