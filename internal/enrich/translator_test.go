package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parampara/internal/errors"
)

func TestTranslateClient_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/translate", r.URL.Path)

		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "दाल चावल", req.Text)
		assert.Equal(t, "hi", req.Source)
		assert.Equal(t, "en", req.Target)

		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "lentils and rice"})
	}))
	defer server.Close()

	client := NewTranslateClient(server.URL)
	translated, err := client.Translate(context.Background(), "दाल चावल", "hi", "en")
	require.NoError(t, err)
	assert.Equal(t, "lentils and rice", translated)
}

func TestTranslateClient_DefaultsToAutoDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "auto", req.Source)
		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "ok"})
	}))
	defer server.Close()

	client := NewTranslateClient(server.URL)
	_, err := client.Translate(context.Background(), "kuch", "", "en")
	require.NoError(t, err)
}

func TestTranslateClient_EmptyTextIsNoop(t *testing.T) {
	client := NewTranslateClient("http://translator.invalid")
	translated, err := client.Translate(context.Background(), "   ", "", "en")
	require.NoError(t, err)
	assert.Equal(t, "   ", translated)
}

func TestTranslateClient_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewTranslateClient(server.URL)
	_, err := client.Translate(context.Background(), "text", "", "en")
	assert.ErrorIs(t, err, errors.ErrEnrichmentUnavailable)
}

func TestTranslateClient_BadLanguagePairIsFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported language pair", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewTranslateClient(server.URL)
	_, err := client.Translate(context.Background(), "text", "xx", "yy")
	assert.ErrorIs(t, err, errors.ErrEnrichmentFailed)
}
