package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BerylCAtieno/pdf-to-json/internal/storage"
	"github.com/BerylCAtieno/pdf-to-json/internal/utils"
)

var (
	ErrNoObjectStore = errors.New("s3 relay target given but no object store is configured")
	ErrNotJSON       = errors.New("relay response is not valid JSON")
)

// Sender forwards a payload to a target and returns the target's response
// re-serialised for display.
type Sender interface {
	Send(ctx context.Context, target, payload string) (string, error)
}

type Relay struct {
	client *http.Client
	store  storage.ObjectStore
	logger *utils.Logger
}

// New builds a Relay. store may be nil, in which case s3:// targets fail.
func New(timeout time.Duration, store storage.ObjectStore, logger *utils.Logger) *Relay {
	return &Relay{
		client: &http.Client{Timeout: timeout},
		store:  store,
		logger: logger,
	}
}

// Send posts payload verbatim to an HTTP(S) target, or writes it to object
// storage for s3://bucket/key targets.
func (r *Relay) Send(ctx context.Context, target, payload string) (string, error) {
	if strings.HasPrefix(target, "s3://") {
		return r.sendObject(ctx, target, payload)
	}
	return r.post(ctx, target, payload)
}

func (r *Relay) post(ctx context.Context, target, payload string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send relay request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read relay response: %w", err)
	}

	r.logger.Debug("Relay responded", "target", target, "status", resp.StatusCode, "bytes", len(body))

	// The status code is not inspected: any JSON body is shown as is.
	return Indent(body)
}

func (r *Relay) sendObject(ctx context.Context, target, payload string) (string, error) {
	if r.store == nil {
		return "", ErrNoObjectStore
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid s3 target: %w", err)
	}

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", fmt.Errorf("invalid s3 target %q: want s3://bucket/key", target)
	}

	info, err := r.store.Put(ctx, bucket, key, []byte(payload), "application/json")
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to encode upload info: %w", err)
	}
	return Indent(body)
}

// Indent validates body as JSON and re-serialises it with two-space
// indentation. Key order and literal tokens (number spelling, escapes,
// duplicate keys) are kept as the target sent them.
func Indent(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return "", ErrNotJSON
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return "", fmt.Errorf("failed to indent relay response: %w", err)
	}
	return buf.String(), nil
}
