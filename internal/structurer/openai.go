package structurer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/pdf-to-json/internal/models"
	"github.com/BerylCAtieno/pdf-to-json/internal/utils"
)

// Prompt prefixes the extracted text in the single user message.
const Prompt = "Convert the following text into structured JSON:\n\n"

var ErrInvalidJSON = errors.New("model reply is not valid JSON")

// Structurer asks a language model to restructure text as JSON.
type Structurer interface {
	Structure(ctx context.Context, text string) (string, error)
}

type Options struct {
	APIKey       string
	Model        string
	BaseURL      string
	Timeout      time.Duration
	MaxIdleConns int
	// Strict rejects replies that do not parse as JSON once a surrounding
	// markdown fence is removed.
	Strict bool
}

type openAIStructurer struct {
	apiKey   string
	model    string
	endpoint string
	strict   bool
	logger   *utils.Logger
	client   *http.Client
}

// NewOpenAIStructurer builds a client for any OpenAI-compatible
// chat completions API. The returned value is safe for concurrent use and
// shares one connection pool across requests.
func NewOpenAIStructurer(opts Options, logger *utils.Logger) Structurer {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.MaxIdleConns > 0 {
		transport.MaxIdleConns = opts.MaxIdleConns
		transport.MaxIdleConnsPerHost = opts.MaxIdleConns
	}

	return &openAIStructurer{
		apiKey:   opts.APIKey,
		model:    opts.Model,
		endpoint: strings.TrimRight(opts.BaseURL, "/") + "/chat/completions",
		strict:   opts.Strict,
		logger:   logger,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
	}
}

func (s *openAIStructurer) Structure(ctx context.Context, text string) (string, error) {
	reqBody := models.ChatRequest{
		Model: s.model,
		Messages: []models.ChatMessage{
			{
				Role:    "user",
				Content: Prompt + text,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Chat completion API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("chat completion API returned status %d", resp.StatusCode)
	}

	var chatResp models.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("chat completion API error: %s", chatResp.Error.Message)
	}

	content := firstContent(chatResp)

	if s.strict {
		content = extractJSON(content)
		if !json.Valid([]byte(content)) {
			s.logger.Warn("Model reply failed JSON validation", "length", len(content))
			return "", ErrInvalidJSON
		}
	}

	return content, nil
}

// firstContent returns the trimmed content of the first choice, or "" when
// the provider sent no choices or no message.
func firstContent(resp models.ChatResponse) string {
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// extractJSON strips a surrounding markdown code block if present.
func extractJSON(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	start := strings.IndexByte(content, '\n')
	end := strings.LastIndex(content, "```")
	if start < 0 || end <= start {
		return content
	}

	return strings.TrimSpace(content[start+1 : end])
}
