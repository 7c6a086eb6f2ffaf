// Package enrich wraps the external speech-to-text and translation services.
// Both are best-effort: callers in the submission pipeline downgrade failures
// to warnings instead of aborting persistence.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parampara/internal/errors"
)

const defaultHTTPTimeout = 60 * time.Second

// TranscriptResult carries the transcript and the language the service detected.
type TranscriptResult struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, fileName, languageHint string) (TranscriptResult, error)
}

// SpeechClient calls an HTTP speech-to-text service (a whisper-style API:
// multipart audio in, JSON transcript out).
type SpeechClient struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes an enrichment client.
type Option func(c *http.Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *http.Client) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// NewSpeechClient constructs a speech-to-text client for the given base URL.
func NewSpeechClient(baseURL string, opts ...Option) *SpeechClient {
	httpClient := &http.Client{Timeout: defaultHTTPTimeout}
	for _, opt := range opts {
		opt(httpClient)
	}
	return &SpeechClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

var _ Transcriber = (*SpeechClient)(nil)

// Transcribe sends the audio stream to the service and returns the transcript
// with the detected language. languageHint, when non-empty, is forwarded so
// the service can skip language detection.
func (c *SpeechClient) Transcribe(ctx context.Context, audio io.Reader, fileName, languageHint string) (TranscriptResult, error) {
	var empty TranscriptResult
	if c.baseURL == "" {
		return empty, fmt.Errorf("%w: no speech service configured", errors.ErrEnrichmentUnavailable)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio_file", fileName)
	if err != nil {
		return empty, fmt.Errorf("transcribe: build form: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return empty, fmt.Errorf("transcribe: read audio: %w", err)
	}
	if languageHint != "" {
		if err := mw.WriteField("language", languageHint); err != nil {
			return empty, fmt.Errorf("transcribe: build form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return empty, fmt.Errorf("transcribe: build form: %w", err)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/v1/transcribe")
	if err != nil {
		return empty, fmt.Errorf("transcribe: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return empty, fmt.Errorf("transcribe: request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("%w: %v", errors.ErrEnrichmentUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("%w: read body: %v", errors.ErrEnrichmentUnavailable, err)
	}
	if err := triageStatus(resp.StatusCode, payload); err != nil {
		return empty, err
	}

	var result TranscriptResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return empty, fmt.Errorf("%w: decode response: %v", errors.ErrEnrichmentFailed, err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return empty, fmt.Errorf("%w: empty transcript", errors.ErrEnrichmentFailed)
	}
	return result, nil
}

// triageStatus maps HTTP status classes to the enrichment error taxonomy:
// 5xx means the service itself is in trouble, 4xx means it rejected this input.
func triageStatus(status int, body []byte) error {
	switch {
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", errors.ErrEnrichmentUnavailable, status, strings.TrimSpace(string(body)))
	case status >= http.StatusBadRequest:
		return fmt.Errorf("%w: http %d: %s", errors.ErrEnrichmentFailed, status, strings.TrimSpace(string(body)))
	default:
		return nil
	}
}

// NonFatal reports whether err belongs to the enrichment taxonomy and may be
// downgraded to a warning by the submission pipeline.
func NonFatal(err error) bool {
	return stderrors.Is(err, errors.ErrEnrichmentUnavailable) || stderrors.Is(err, errors.ErrEnrichmentFailed)
}
