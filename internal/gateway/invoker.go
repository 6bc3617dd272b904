package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"prediction-gateway/internal/common/errors"
	"prediction-gateway/internal/common/httpclient"
	"prediction-gateway/internal/common/logger"
	"prediction-gateway/internal/common/metrics"
)

// RawResponse is the decoded JSON body returned by the model endpoint.
type RawResponse interface{}

// Invoker issues the single synchronous scoring call. No retries: the
// upstream may be non-idempotent, so at most one attempt per request.
type Invoker struct {
	endpointURL string
	authToken   string
	timeout     time.Duration
	client      *httpclient.Client
	logger      logger.Logger
}

func NewInvoker(endpointURL, authToken string, timeout time.Duration, log logger.Logger) *Invoker {
	return &Invoker{
		endpointURL: endpointURL,
		authToken:   authToken,
		timeout:     timeout,
		client:      httpclient.NewClient(timeout),
		logger: log.With(map[string]interface{}{
			"component": "invoker",
		}),
	}
}

// Invoke POSTs the payload to the scoring endpoint with bearer auth, bounded
// by the configured timeout. Failures are classified as timeout, connection
// failure, upstream HTTP error, or malformed response.
func (inv *Invoker) Invoke(ctx context.Context, payload ScoringRequest) (RawResponse, error) {
	body, err := payload.Body()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, inv.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewConnectionFailedError(err)
	}
	req.Header.Set("Authorization", "Bearer "+inv.authToken)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := inv.client.Do(req)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if isTimeout(ctx, err) {
			inv.logger.Warn("scoring call timed out", map[string]interface{}{
				"endpoint": inv.endpointURL,
				"timeout":  inv.timeout.String(),
			})
			return nil, errors.NewUpstreamTimeoutError(inv.timeout)
		}
		inv.logger.Error("scoring call failed to connect", map[string]interface{}{
			"endpoint": inv.endpointURL,
			"error":    err.Error(),
		})
		return nil, errors.NewConnectionFailedError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, errors.NewUpstreamTimeoutError(inv.timeout)
		}
		return nil, errors.NewConnectionFailedError(err)
	}

	if resp.StatusCode != http.StatusOK {
		inv.logger.Warn("scoring call returned non-200", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil, errors.NewUpstreamHTTPError(resp.StatusCode, string(raw))
	}

	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.NewMalformedResponseError(err)
	}
	return parsed, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
