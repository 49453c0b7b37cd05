package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultAgentTimeout is deliberately generous — the agent runs an AI
// generation pipeline and routinely takes tens of seconds.
const DefaultAgentTimeout = 120 * time.Second

// PlannerClient posts trip forms to the AI planning agent and returns the
// raw response body for normalization. The endpoint and transport are
// injected so tests can point it at a fake server.
type PlannerClient struct {
	endpoint   string
	httpClient *http.Client
	log        *zap.Logger
}

func NewPlannerClient(endpoint string, timeout time.Duration, log *zap.Logger) *PlannerClient {
	if timeout <= 0 {
		timeout = DefaultAgentTimeout
	}
	return &PlannerClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Plan submits the form and returns the raw 2xx body. No retries at any
// layer: transport failure surfaces as ConnectivityError, a non-2xx status
// as ServerError with the most useful message the body offers.
func (c *PlannerClient) Plan(ctx context.Context, form TripFormData) ([]byte, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, errors.Wrap(err, "encode trip form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build agent request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Info("submitting trip plan to agent",
		zap.String("destination", form.Destination),
		zap.Int("days", form.Days))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectivityError{Err: errors.Wrap(err, "read agent response")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("agent returned error status",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(body)))
		return nil, &ServerError{
			Status:  resp.StatusCode,
			Message: extractErrorMessage(body, resp.Status),
		}
	}

	return body, nil
}

// extractErrorMessage digs a human-readable message out of an error body:
// a JSON "error" or "message" field first, then the raw body if it is plain
// text, then the status line.
func extractErrorMessage(body []byte, statusLine string) string {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
	} else if len(bytes.TrimSpace(body)) > 0 {
		return string(bytes.TrimSpace(body))
	}
	return statusLine
}
