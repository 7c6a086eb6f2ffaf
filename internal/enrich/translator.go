package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"parampara/internal/errors"
)

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// TranslateClient calls an HTTP translation service (LibreTranslate-style API).
type TranslateClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTranslateClient constructs a translation client for the given base URL.
func NewTranslateClient(baseURL string, opts ...Option) *TranslateClient {
	httpClient := &http.Client{Timeout: defaultHTTPTimeout}
	for _, opt := range opts {
		opt(httpClient)
	}
	return &TranslateClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

var _ Translator = (*TranslateClient)(nil)

type translateRequest struct {
	Text   string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate returns text translated into targetLang. An empty sourceLang asks
// the service to auto-detect.
func (c *TranslateClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("%w: no translation service configured", errors.ErrEnrichmentUnavailable)
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if sourceLang == "" {
		sourceLang = "auto"
	}

	encoded, err := json.Marshal(translateRequest{Text: text, Source: sourceLang, Target: targetLang})
	if err != nil {
		return "", fmt.Errorf("translate: encode request: %w", err)
	}
	endpoint, err := url.JoinPath(c.baseURL, "/v1/translate")
	if err != nil {
		return "", fmt.Errorf("translate: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("translate: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrEnrichmentUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", errors.ErrEnrichmentUnavailable, err)
	}
	if err := triageStatus(resp.StatusCode, payload); err != nil {
		return "", err
	}

	var result translateResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", errors.ErrEnrichmentFailed, err)
	}
	return result.TranslatedText, nil
}
