package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/pdf-to-json/internal/models"
)

// Converter sends a base64 PDF to the conversion endpoint.
type Converter interface {
	Convert(ctx context.Context, file string) (string, error)
}

// EndpointError is a non-2xx answer from the conversion endpoint. Message is
// the endpoint's "error" field, possibly empty.
type EndpointError struct {
	StatusCode int
	Message    string
}

func (e *EndpointError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("conversion endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("conversion endpoint returned status %d: %s", e.StatusCode, e.Message)
}

type APIClient struct {
	endpoint string
	client   *http.Client
}

// NewAPIClient targets baseURL + "/api/convert".
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/convert",
		client:   &http.Client{Timeout: timeout},
	}
}

type convertReply struct {
	JSON  string `json:"json"`
	Error string `json:"error"`
}

func (c *APIClient) Convert(ctx context.Context, file string) (string, error) {
	body, err := json.Marshal(models.ConvertRequest{File: file})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var reply convertReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &EndpointError{StatusCode: resp.StatusCode, Message: reply.Error}
	}

	return reply.JSON, nil
}
