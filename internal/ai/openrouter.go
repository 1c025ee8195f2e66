package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenRouterBaseURL     = "https://openrouter.ai/api/v1"
	DefaultOpenRouterVisionModel = "google/gemini-2.5-flash"
	DefaultOpenRouterCodeModel   = "google/gemini-2.5-pro"
)

// OpenRouterConfig configures an OpenRouterGateway.
type OpenRouterConfig struct {
	APIKey     string
	BaseURL    string
	Referer    string // sent as HTTP-Referer for OpenRouter app attribution
	Title      string // sent as X-Title
	HTTPClient *http.Client
}

// OpenRouterGateway calls an OpenAI-compatible chat completions endpoint.
type OpenRouterGateway struct {
	client *openai.Client
	apiKey string
}

func NewOpenRouterGateway(cfg OpenRouterConfig) *OpenRouterGateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenRouterBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	withHeaders := *httpClient
	withHeaders.Transport = &headerTransport{
		base: base,
		headers: map[string]string{
			"HTTP-Referer": cfg.Referer,
			"X-Title":      cfg.Title,
		},
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &withHeaders

	return &OpenRouterGateway{
		client: openai.NewClientWithConfig(clientConfig),
		apiKey: cfg.APIKey,
	}
}

func (g *OpenRouterGateway) Name() string { return "openrouter" }

// Generate sends one user message; an attached image travels as a base64 data URL.
func (g *OpenRouterGateway) Generate(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", &GatewayError{Kind: FailureAuth, Provider: g.Name(), Model: req.Model, Err: errMissingAPIKey}
	}

	message := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if req.Image != nil {
		message.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
				URL:    dataURL(req.Image),
				Detail: openai.ImageURLDetailHigh,
			}},
		}
	} else {
		message.Content = req.Prompt
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: []openai.ChatCompletionMessage{message},
	})
	if err != nil {
		return "", g.wrapError(req.Model, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &GatewayError{Kind: FailureEmpty, Provider: g.Name(), Model: req.Model, StatusCode: http.StatusOK}
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenRouterGateway) wrapError(model string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &GatewayError{
			Kind:       KindForStatus(apiErr.HTTPStatusCode),
			Provider:   g.Name(),
			Model:      model,
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := ""
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &GatewayError{
			Kind:       KindForStatus(reqErr.HTTPStatusCode),
			Provider:   g.Name(),
			Model:      model,
			StatusCode: reqErr.HTTPStatusCode,
			Body:       body,
			Err:        err,
		}
	}
	return &GatewayError{Kind: FailureTransport, Provider: g.Name(), Model: model, Err: err}
}

func dataURL(img *ImagePart) string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for key, value := range t.headers {
		if value != "" {
			clone.Header.Set(key, value)
		}
	}
	return t.base.RoundTrip(clone)
}
