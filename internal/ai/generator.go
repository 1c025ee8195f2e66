package ai

import (
	"errors"
	"log/slog"
)

// Generator runs the two pipeline stages against a Gateway and applies the fallback policy:
// a failed model call is logged and replaced by the demo record, never returned as an error.
type Generator struct {
	gateway       Gateway
	visionModelID string
	codeModelID   string
	logger        *slog.Logger
}

func NewGenerator(gateway Gateway, visionModelID, codeModelID string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		gateway:       gateway,
		visionModelID: visionModelID,
		codeModelID:   codeModelID,
		logger:        logger.With("provider", gateway.Name()),
	}
}

// Provider names the gateway in use.
func (g *Generator) Provider() string {
	return g.gateway.Name()
}

func (g *Generator) logGatewayFailure(stage, model string, err error) {
	attrs := []any{
		"stage", stage,
		"model", model,
		"cause", string(FailureKindOf(err)),
		"error", err,
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.StatusCode != 0 {
		attrs = append(attrs, "status", gwErr.StatusCode)
	}
	g.logger.Warn("model call failed, serving demo output", attrs...)
}

func (g *Generator) logParseFailure(stage, model string, err error, raw string) {
	g.logger.Warn("model output is not valid JSON, echoing raw text",
		"stage", stage,
		"model", model,
		"cause", string(FailureParse),
		"error", err,
		"raw_length", len(raw),
		"raw_preview", preview(raw, 200),
	)
}

func preview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
