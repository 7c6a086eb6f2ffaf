package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parampara/internal/errors"
)

func TestSpeechClient_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/transcribe", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("audio_file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "song.mp3", header.Filename)
		require.Equal(t, "hi", r.FormValue("language"))

		_ = json.NewEncoder(w).Encode(TranscriptResult{Text: "पुरानी कहानी", Language: "hi"})
	}))
	defer server.Close()

	client := NewSpeechClient(server.URL)
	result, err := client.Transcribe(context.Background(), strings.NewReader("audio-bytes"), "song.mp3", "hi")
	require.NoError(t, err)
	assert.Equal(t, "पुरानी कहानी", result.Text)
	assert.Equal(t, "hi", result.Language)
}

func TestSpeechClient_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewSpeechClient(server.URL)
	_, err := client.Transcribe(context.Background(), strings.NewReader("x"), "a.wav", "")
	assert.ErrorIs(t, err, errors.ErrEnrichmentUnavailable)
}

func TestSpeechClient_RejectedInputIsFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported codec", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewSpeechClient(server.URL)
	_, err := client.Transcribe(context.Background(), strings.NewReader("x"), "a.wav", "")
	assert.ErrorIs(t, err, errors.ErrEnrichmentFailed)
}

func TestSpeechClient_UnreachableServiceIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewSpeechClient(server.URL)
	_, err := client.Transcribe(context.Background(), strings.NewReader("x"), "a.wav", "")
	assert.ErrorIs(t, err, errors.ErrEnrichmentUnavailable)
}

func TestSpeechClient_TimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewSpeechClient(server.URL, WithTimeout(20*time.Millisecond))
	_, err := client.Transcribe(context.Background(), strings.NewReader("x"), "a.wav", "")
	assert.ErrorIs(t, err, errors.ErrEnrichmentUnavailable)
}

func TestSpeechClient_EmptyTranscriptIsFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(TranscriptResult{Text: "   "})
	}))
	defer server.Close()

	client := NewSpeechClient(server.URL)
	_, err := client.Transcribe(context.Background(), strings.NewReader("x"), "a.wav", "")
	assert.ErrorIs(t, err, errors.ErrEnrichmentFailed)
}

func TestNonFatal(t *testing.T) {
	assert.True(t, NonFatal(errors.ErrEnrichmentUnavailable))
	assert.True(t, NonFatal(errors.ErrEnrichmentFailed))
	assert.False(t, NonFatal(errors.ErrStorageIO))
	assert.False(t, NonFatal(nil))
}
