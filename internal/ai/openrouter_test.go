package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletion = `{
  "id": "gen-1",
  "object": "chat.completion",
  "model": "google/gemini-2.5-pro",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "hello"}, "finish_reason": "stop"}]
}`

func TestOpenRouterGateway_Generate(t *testing.T) {
	var gotHeaders http.Header
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotHeaders = r.Header.Clone()
		payload, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(payload, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatCompletion)
	}))
	defer server.Close()

	gateway := NewOpenRouterGateway(OpenRouterConfig{
		APIKey:  "or-key",
		BaseURL: server.URL,
		Referer: "http://localhost:3001",
		Title:   "Image-to-Code Pipeline",
	})

	text, err := gateway.Generate(context.Background(), Request{
		Model:  "google/gemini-2.5-flash",
		Prompt: "describe this",
		Image:  &ImagePart{Data: []byte("fake-png"), MIMEType: "image/png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	assert.Equal(t, "Bearer or-key", gotHeaders.Get("Authorization"))
	assert.Equal(t, "http://localhost:3001", gotHeaders.Get("HTTP-Referer"))
	assert.Equal(t, "Image-to-Code Pipeline", gotHeaders.Get("X-Title"))

	assert.Equal(t, "google/gemini-2.5-flash", gotBody["model"])
	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	parts, ok := messages[0].(map[string]any)["content"].([]any)
	require.True(t, ok, "image requests send multi-part content")
	require.Len(t, parts, 2)
	imagePart := parts[1].(map[string]any)
	assert.Equal(t, "image_url", imagePart["type"])
	url := imagePart["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestOpenRouterGateway_TextOnly(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(payload, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatCompletion)
	}))
	defer server.Close()

	gateway := NewOpenRouterGateway(OpenRouterConfig{APIKey: "or-key", BaseURL: server.URL})
	_, err := gateway.Generate(context.Background(), Request{Model: "google/gemini-2.5-pro", Prompt: "write code"})
	require.NoError(t, err)

	messages := gotBody["messages"].([]any)
	assert.Equal(t, "write code", messages[0].(map[string]any)["content"])
}

func TestOpenRouterGateway_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   FailureKind
		wantStatus int
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error": {"message": "No auth credentials found", "code": 401}}`,
			wantKind:   FailureAuth,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"error": {"message": "Rate limit exceeded", "code": 429}}`,
			wantKind:   FailureRateLimit,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "bad gateway without json",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantKind:   FailureUpstream,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "no choices",
			status:     http.StatusOK,
			body:       `{"id": "gen-2", "object": "chat.completion", "choices": []}`,
			wantKind:   FailureEmpty,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			gateway := NewOpenRouterGateway(OpenRouterConfig{APIKey: "or-key", BaseURL: server.URL})
			_, err := gateway.Generate(context.Background(), Request{Model: "m", Prompt: "hi"})
			require.Error(t, err)

			var gwErr *GatewayError
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, tt.wantKind, gwErr.Kind)
			assert.Equal(t, tt.wantStatus, gwErr.StatusCode)
			assert.Equal(t, "openrouter", gwErr.Provider)
		})
	}
}

func TestOpenRouterGateway_MissingKeySkipsNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	gateway := NewOpenRouterGateway(OpenRouterConfig{BaseURL: server.URL})
	_, err := gateway.Generate(context.Background(), Request{Model: "m", Prompt: "hi"})
	require.Error(t, err)
	assert.Equal(t, FailureAuth, FailureKindOf(err))
	assert.False(t, called)
}
