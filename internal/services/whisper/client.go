package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"scribe/internal/services"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultHTTPTimeout = 10 * time.Minute
)

// Client wraps the transcription endpoint of an OpenAI-compatible API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. The supplied client's
// timeout and transport apply uniformly to probe and full calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a transcription API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Request describes a single transcription call.
type Request struct {
	// Path is the audio file submitted as the upload body.
	Path string
	// Model is the transcription model identifier.
	Model string
	// Language, when non-empty, is forwarded verbatim as a hint. The remote
	// API does not validate it further.
	Language string
	// Temperature is the decoding temperature.
	Temperature float64
}

// Transcribe submits the audio and returns the normalized response document.
func (c *Client) Transcribe(ctx context.Context, req Request) (Document, error) {
	if strings.TrimSpace(req.Path) == "" {
		return nil, services.Wrap(services.ErrUsage, "whisper", "transcribe", "audio path required", nil)
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, services.Wrap(services.ErrUsage, "whisper", "transcribe", "model required", nil)
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, services.Wrap(services.ErrUsage, "whisper", "transcribe", "api key required", nil)
	}

	body, contentType, err := buildUploadBody(req)
	if err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(c.baseURL, "/audio/transcriptions")
	if err != nil {
		return nil, services.Wrap(services.ErrAPI, "whisper", "transcribe", "build url", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, services.Wrap(services.ErrAPI, "whisper", "transcribe", "build request", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, services.Wrap(services.ErrAPI, "whisper", "transcribe", "request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrAPI, "whisper", "transcribe", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrAPI, "whisper", "transcribe",
			fmt.Sprintf("http %d: %s", resp.StatusCode, providerMessage(raw)), nil)
	}

	return Normalize(raw)
}

// buildUploadBody assembles the multipart form the transcription endpoint
// expects: the file, the model id, the decoding temperature, and the optional
// language hint.
func buildUploadBody(req Request) (io.Reader, string, error) {
	file, err := os.Open(req.Path)
	if err != nil {
		return nil, "", services.Wrap(services.ErrNotFound, "whisper", "transcribe", "open audio", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(req.Path))
	if err != nil {
		return nil, "", services.Wrap(services.ErrAPI, "whisper", "transcribe", "create form file", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", services.Wrap(services.ErrAPI, "whisper", "transcribe", "copy audio", err)
	}

	fields := map[string]string{
		"model":       req.Model,
		"temperature": strconv.FormatFloat(req.Temperature, 'f', -1, 64),
	}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		fields["language"] = lang
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", services.Wrap(services.ErrAPI, "whisper", "transcribe", "write field "+name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", services.Wrap(services.ErrAPI, "whisper", "transcribe", "finalize upload", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// providerMessage pulls the human-readable error out of a provider failure
// payload, falling back to the trimmed body.
func providerMessage(raw []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error.Message); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(string(raw))
}
