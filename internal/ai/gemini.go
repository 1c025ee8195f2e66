package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultGeminiEndpoint   = "https://generativelanguage.googleapis.com"
	DefaultGeminiAPIVersion = "v1"
	DefaultVisionModel      = "gemini-2.5-flash"
	DefaultCodeModel        = "gemini-2.5-pro"
)

// GeminiConfig configures a GeminiGateway.
type GeminiConfig struct {
	APIKey     string
	Endpoint   string
	APIVersion string
	HTTPClient *http.Client
}

// GeminiGateway calls generateContent on the Gemini API.
type GeminiGateway struct {
	apiKey     string
	endpoint   string
	apiVersion string
	httpClient *http.Client
}

func NewGeminiGateway(cfg GeminiConfig) *GeminiGateway {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultGeminiEndpoint
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultGeminiAPIVersion
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &GeminiGateway{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/") + "/",
		apiVersion: cfg.APIVersion,
		httpClient: cfg.HTTPClient,
	}
}

func (g *GeminiGateway) Name() string { return "gemini" }

// Generate sends the prompt, and the image when present, as a single user turn.
// The client is built per call so nothing is cached between requests.
func (g *GeminiGateway) Generate(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", &GatewayError{Kind: FailureAuth, Provider: g.Name(), Model: req.Model, Err: errMissingAPIKey}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     g.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    g.endpoint,
			APIVersion: g.apiVersion,
		},
	})
	if err != nil {
		return "", &GatewayError{Kind: FailureAuth, Provider: g.Name(), Model: req.Model, Err: err}
	}

	parts := []*genai.Part{{Text: req.Prompt}}
	if req.Image != nil {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			MIMEType: req.Image.MIMEType,
			Data:     req.Image.Data,
		}})
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := client.Models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		return "", g.wrapError(req.Model, err)
	}

	text := firstCandidateText(resp)
	if text == "" {
		return "", &GatewayError{Kind: FailureEmpty, Provider: g.Name(), Model: req.Model, StatusCode: http.StatusOK}
	}
	return text, nil
}

func (g *GeminiGateway) wrapError(model string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		body := apiErr.Message
		if apiErr.Status != "" {
			body = apiErr.Status + ": " + body
		}
		return &GatewayError{
			Kind:       KindForStatus(apiErr.Code),
			Provider:   g.Name(),
			Model:      model,
			StatusCode: apiErr.Code,
			Body:       body,
			Err:        err,
		}
	}
	return &GatewayError{Kind: FailureTransport, Provider: g.Name(), Model: model, Err: err}
}

// firstCandidateText reads candidates[0].content.parts[0].text.
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return ""
	}
	return content.Parts[0].Text
}
