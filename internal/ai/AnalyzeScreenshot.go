package ai

import (
	"context"

	"image_to_code_server/internal/ai/fallback"
	"image_to_code_server/internal/ai/prompts"
	"image_to_code_server/internal/types"
	"image_to_code_server/internal/utils"
)

// AnalyzeScreenshot asks the vision model to describe a screenshot. It always returns a
// description: the demo one when the call fails, a raw-text one when the answer is not JSON.
func (g *Generator) AnalyzeScreenshot(ctx context.Context, img ImagePart) types.UIDescription {
	width, height, _, err := utils.ImageDimensions(img.Data)
	if err != nil {
		g.logger.Debug("could not read image dimensions", "mime_type", img.MIMEType, "error", err)
	}

	g.logger.Info("analyzing screenshot",
		"model", g.visionModelID,
		"mime_type", img.MIMEType,
		"bytes", len(img.Data),
		"width", width,
		"height", height,
	)

	text, err := g.gateway.Generate(ctx, Request{
		Model:  g.visionModelID,
		Prompt: prompts.GetVisionPrompt(width, height),
		Image:  &img,
	})
	if err != nil {
		g.logGatewayFailure("vision", g.visionModelID, err)
		return fallback.DemoUIDescription()
	}

	desc, err := ParseUIDescription(text)
	if err != nil {
		g.logParseFailure("vision", g.visionModelID, err, text)
		return desc
	}

	g.logger.Info("screenshot analyzed",
		"model", g.visionModelID,
		"layout", desc.LayoutType,
		"components", len(desc.Components),
	)
	return desc
}
