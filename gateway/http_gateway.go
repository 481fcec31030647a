// Package gateway posts finalized kiosk transactions to the external
// record-keeping service.
package gateway

import (
	// Go Internal Packages
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	// Local Packages
	models "cash-kiosk/models"

	// External Packages
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

type Config struct {
	Endpoint string
	Timeout  time.Duration
	// ConsecutiveFailures trips the breaker; zero disables it.
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// HTTPGateway never retries. While its breaker is open, submissions fail
// immediately without touching the network.
type HTTPGateway struct {
	client   *http.Client
	endpoint string
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
}

type payload struct {
	TransactionID   string      `json:"transactionId"`
	Type            string      `json:"type"`
	Provider        string      `json:"provider"`
	AccountName     string      `json:"accountName"`
	AccountNumber   string      `json:"accountNumber"`
	Amount          json.Number `json:"amount"`
	Fee             json.Number `json:"fee"`
	TotalAmount     json.Number `json:"totalAmount"`
	ReferenceNumber string      `json:"referenceNumber"`
	Timestamp       string      `json:"timestamp"`
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("status %d", e.code)
	}
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

func NewHTTPGateway(cfg Config, logger *zap.Logger) *HTTPGateway {
	g := &HTTPGateway{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: cfg.Endpoint,
		logger:   logger,
	}
	if cfg.ConsecutiveFailures > 0 {
		threshold := cfg.ConsecutiveFailures
		g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "record-keeping",
			Timeout: cfg.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsSuccessful: serviceHealthy,
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn("gateway breaker changed state",
					zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
			},
		})
	}
	return g
}

// serviceHealthy keeps client-side rejections from tripping the breaker.
// 408 and 429 still count: they signal a service under pressure.
func serviceHealthy(err error) bool {
	if err == nil {
		return true
	}
	var se *statusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return se.code >= 400 && se.code < 500
}

// Submit posts the submission as JSON. Any 2xx response with a JSON body
// is a success; everything else becomes a Failed outcome.
func (g *HTTPGateway) Submit(ctx context.Context, s models.Submission) models.Outcome {
	body, err := json.Marshal(toPayload(s))
	if err != nil {
		return g.fail(s, fmt.Sprintf("encode submission: %v", err))
	}

	var ack json.RawMessage
	if g.breaker == nil {
		ack, err = g.post(ctx, body)
	} else {
		var res interface{}
		res, err = g.breaker.Execute(func() (interface{}, error) { return g.post(ctx, body) })
		if err == nil {
			ack = res.(json.RawMessage)
		}
	}

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return g.fail(s, "record-keeping service unavailable: "+err.Error())
		}
		return g.fail(s, err.Error())
	}

	g.logger.Info("submission recorded", zap.String("transaction_id", s.ID))
	return models.Succeeded(ack)
}

func (g *HTTPGateway) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode, body: truncate(strings.TrimSpace(string(respBody)), 500)}
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("malformed response body: %q", truncate(string(respBody), 200))
	}
	return json.RawMessage(respBody), nil
}

func (g *HTTPGateway) fail(s models.Submission, reason string) models.Outcome {
	g.logger.Warn("submission failed", zap.String("transaction_id", s.ID), zap.String("reason", reason))
	return models.Failed(reason)
}

func toPayload(s models.Submission) payload {
	return payload{
		TransactionID:   s.ID,
		Type:            string(s.Kind),
		Provider:        string(s.Provider),
		AccountName:     s.AccountName,
		AccountNumber:   s.AccountNumber,
		Amount:          json.Number(s.Amount.StringFixed(2)),
		Fee:             json.Number(s.Fee.StringFixed(2)),
		TotalAmount:     json.Number(s.Total.StringFixed(2)),
		ReferenceNumber: s.ReferenceNumber,
		Timestamp:       s.Timestamp.UTC().Format(time.RFC3339),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
