// Package model provides the HTTP client for the pre-trained classifier
// servers. Each classifier is an opaque model exposed behind a /predict
// endpoint; this service never sees anything beyond the 0/1 prediction.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tiis/internal/domain/fraud"
)

const (
	defaultTimeout = 10 * time.Second
	predictPath    = "/predict"
)

// Client calls a single model server. Two instances are created at startup,
// one per classifier.
type Client struct {
	httpClient *http.Client
	baseURL    string
	name       string
}

var _ fraud.Classifier = (*Client)(nil)

// NewClient creates a classifier client for the model server at baseURL.
// A non-positive timeout falls back to the default.
func NewClient(name, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		name:       name,
	}
}

// Name identifies the classifier in logs.
func (c *Client) Name() string { return c.name }

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Prediction int `json:"prediction"`
}

// Predict evaluates the model over the 4-feature vector and returns its 0/1
// prediction. Transport errors, non-2xx statuses, and out-of-range predictions
// are all model failures.
func (c *Client) Predict(ctx context.Context, features [4]float64) (int, error) {
	body, err := json.Marshal(predictRequest{Features: features[:]})
	if err != nil {
		return 0, fmt.Errorf("failed to encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("predict request to %s failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for the error message; model servers
		// return short plain-text diagnostics.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return 0, fmt.Errorf("%s returned status %d: %s", c.name, resp.StatusCode, snippet)
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to decode %s response: %w", c.name, err)
	}

	if parsed.Prediction != 0 && parsed.Prediction != 1 {
		return 0, fmt.Errorf("%s returned prediction %d, want 0 or 1", c.name, parsed.Prediction)
	}
	return parsed.Prediction, nil
}
