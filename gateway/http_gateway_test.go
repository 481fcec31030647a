package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	models "cash-kiosk/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func submission() models.Submission {
	return models.Submission{
		TransactionRequest: models.TransactionRequest{
			Kind:          models.CashIn,
			AccountName:   "Juan Dela Cruz",
			AccountNumber: "09171234567",
			Amount:        decimal.RequireFromString("2000"),
			Fee:           decimal.RequireFromString("20"),
			Total:         decimal.RequireFromString("2020"),
			Provider:      models.ProviderGCash,
		},
		ID:              "TX1",
		ReferenceNumber: "REF123",
		Timestamp:       time.Date(2026, 10, 14, 15, 4, 0, 0, time.FixedZone("PHT", 8*60*60)),
	}
}

func newGateway(url string, failures uint32) *HTTPGateway {
	return NewHTTPGateway(Config{
		Endpoint:            url,
		Timeout:             2 * time.Second,
		ConsecutiveFailures: failures,
		OpenTimeout:         time.Minute,
	}, zap.NewNop())
}

func TestHTTPGateway_Submit_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Contains(t, string(body), `"amount":2000.00`)
		assert.Contains(t, string(body), `"totalAmount":2020.00`)
		assert.NoError(t, json.Unmarshal(body, &got))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true,"next":"/thanks"}`))
	}))
	defer srv.Close()

	outcome := newGateway(srv.URL, 0).Submit(context.Background(), submission())

	assert.Equal(t, models.OutcomeSucceeded, outcome.Status)
	assert.JSONEq(t, `{"ok":true,"next":"/thanks"}`, string(outcome.Ack))

	require.NotNil(t, got)
	assert.Equal(t, "TX1", got["transactionId"])
	assert.Equal(t, "Cash-In", got["type"])
	assert.Equal(t, "GCash", got["provider"])
	assert.Equal(t, "Juan Dela Cruz", got["accountName"])
	assert.Equal(t, "09171234567", got["accountNumber"])
	assert.Equal(t, 20.0, got["fee"])
	assert.Equal(t, "REF123", got["referenceNumber"])
	assert.Equal(t, "2026-10-14T07:04:00Z", got["timestamp"])
}

func TestHTTPGateway_Submit_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		reasons []string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, reasons: []string{"status 500", "boom"}},
		{name: "validation error", status: http.StatusUnprocessableEntity, body: `{"errors":[{"field":"email"}]}`, reasons: []string{"status 422", "email"}},
		{name: "malformed body", status: http.StatusOK, body: `<html>ok</html>`, reasons: []string{"malformed response body"}},
		{name: "empty body", status: http.StatusOK, body: ``, reasons: []string{"malformed response body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			outcome := newGateway(srv.URL, 0).Submit(context.Background(), submission())
			assert.Equal(t, models.OutcomeFailed, outcome.Status)
			for _, r := range tt.reasons {
				assert.Contains(t, outcome.Reason, r)
			}
		})
	}
}

func TestHTTPGateway_Submit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	outcome := newGateway(url, 0).Submit(context.Background(), submission())
	assert.Equal(t, models.OutcomeFailed, outcome.Status)
	assert.NotEmpty(t, outcome.Reason)
}

func TestHTTPGateway_Submit_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := newGateway(srv.URL, 0).Submit(ctx, submission())
	assert.Equal(t, models.OutcomeFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "context canceled")
}

func TestHTTPGateway_Submit_BreakerOpens(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := newGateway(srv.URL, 2)
	for i := 0; i < 2; i++ {
		outcome := g.Submit(context.Background(), submission())
		assert.Equal(t, "status 503", outcome.Reason)
	}

	outcome := g.Submit(context.Background(), submission())
	assert.Equal(t, models.OutcomeFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "record-keeping service unavailable")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "open breaker must not reach the server")
}

func TestHTTPGateway_Submit_BreakerIgnoresClientErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	g := newGateway(srv.URL, 2)
	for i := 0; i < 4; i++ {
		outcome := g.Submit(context.Background(), submission())
		assert.Equal(t, models.OutcomeFailed, outcome.Status)
		assert.Equal(t, "status 422", outcome.Reason)
	}
	assert.Equal(t, int32(4), atomic.LoadInt32(&hits))
}

func TestServiceHealthy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: true},
		{name: "bad request", err: &statusError{code: http.StatusBadRequest}, want: true},
		{name: "not found", err: &statusError{code: http.StatusNotFound}, want: true},
		{name: "request timeout", err: &statusError{code: http.StatusRequestTimeout}, want: false},
		{name: "too many requests", err: &statusError{code: http.StatusTooManyRequests}, want: false},
		{name: "server error", err: &statusError{code: http.StatusBadGateway}, want: false},
		{name: "transport", err: io.ErrUnexpectedEOF, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serviceHealthy(tt.err))
		})
	}
}
