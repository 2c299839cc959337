package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"notebooklm-bridge/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// UpstreamResponse is a fully-read NotebookLM answer
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// NotebookLMClient sends authenticated JSON POSTs to the NotebookLM web API.
// A single http.Client is shared so connections are pooled across requests.
type NotebookLMClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewNotebookLMClient creates a client limited to requestsPerSecond outbound calls
func NewNotebookLMClient(baseURL string, requestsPerSecond float64, logger *logrus.Logger) *NotebookLMClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	burst := int(requestsPerSecond * 2)
	if burst < 1 {
		burst = 1
	}

	client := &NotebookLMClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			// An expired session is answered with a redirect to the sign-in
			// page; it must surface as a non-200 status, not as that page.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		logger:  logger,
	}

	client.logger.WithField("baseURL", baseURL).Info("NotebookLM client initialized")
	return client
}

// Post sends payload as JSON to path. endpoint is a short label used for
// logs and metrics. The timeout covers rate-limit wait, request and body read.
// Transport failures are returned as *RequestError; any HTTP status is a
// successful call from the client's point of view.
func (c *NotebookLMClient) Post(ctx context.Context, endpoint, path string, cred *models.AuthCredential, payload interface{}, timeout time.Duration) (*UpstreamResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, &RequestError{Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = BuildHeaders(cred, c.baseURL)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"path":     path,
			"error":    err.Error(),
		}).Warn("NotebookLM request failed")
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, &RequestError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	elapsed := time.Since(start)
	upstreamLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	entry := c.logger.WithFields(logrus.Fields{
		"endpoint":    endpoint,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": elapsed.Milliseconds(),
		"body_bytes":  len(body),
	})
	if resp.StatusCode == http.StatusOK {
		entry.Debug("NotebookLM call completed")
	} else {
		entry.Warn("NotebookLM call returned non-200 status")
	}

	return &UpstreamResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
