package ai

import (
	"context"
	"encoding/json"

	"image_to_code_server/internal/ai/fallback"
	"image_to_code_server/internal/ai/prompts"
	"image_to_code_server/internal/types"
)

// GenerateCode asks the code model to recreate desc in every format. It always returns a full
// bundle: the demo one when the call fails, the raw text in every format when the answer is not JSON.
func (g *Generator) GenerateCode(ctx context.Context, desc types.UIDescription) types.CodeBundle {
	desc.Normalize()

	promptInput := desc
	promptInput.Mode = ""
	analysis, err := json.MarshalIndent(promptInput, "", "  ")
	if err != nil {
		// Only reachable if the types stop being plain data.
		g.logger.Error("could not encode UI description for prompt", "error", err)
		return fallback.DemoCodeBundle(desc)
	}

	g.logger.Info("generating code",
		"model", g.codeModelID,
		"layout", desc.LayoutType,
		"components", len(desc.Components),
	)

	text, err := g.gateway.Generate(ctx, Request{
		Model:  g.codeModelID,
		Prompt: prompts.GetCodeGenerationPrompt(string(analysis)),
	})
	if err != nil {
		g.logGatewayFailure("code", g.codeModelID, err)
		return fallback.DemoCodeBundle(desc)
	}

	bundle, err := ParseCodeBundle(text, desc)
	if err != nil {
		g.logParseFailure("code", g.codeModelID, err, text)
		return bundle
	}

	g.logger.Info("code generated", "model", g.codeModelID, "raw_length", len(text))
	return bundle
}
