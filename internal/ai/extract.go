package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"image_to_code_server/internal/ai/fallback"
	"image_to_code_server/internal/types"
	"image_to_code_server/internal/utils"
)

var errNoObject = errors.New("no JSON object found")

// decodeObject parses model output as a JSON object: first the fence-stripped text, then the
// outermost {...} span of it. Top-level values other than objects (null included) are rejected.
func decodeObject(text string, target any) error {
	cleaned := utils.StripCodeFences(text)
	err := errNoObject
	if strings.HasPrefix(cleaned, "{") {
		if err = json.Unmarshal([]byte(cleaned), target); err == nil {
			return nil
		}
	}
	if span, ok := utils.IsolateJSONObject(cleaned); ok && span != cleaned {
		if errSpan := json.Unmarshal([]byte(span), target); errSpan == nil {
			return nil
		}
	}
	return fmt.Errorf("model output is not a JSON object: %w", err)
}

// ParseUIDescription extracts a UIDescription from model output. It never fails: unparseable
// text is returned inside a description as fullTextDetected, and the error reports why.
func ParseUIDescription(text string) (types.UIDescription, error) {
	var desc types.UIDescription
	if err := decodeObject(text, &desc); err != nil {
		raw := types.UIDescription{
			LayoutType:       "unknown",
			Labels:           []string{"UI Screenshot"},
			FullTextDetected: text,
		}
		raw.Normalize()
		return raw, err
	}
	desc.Mode = ""
	desc.Normalize()
	return desc, nil
}

// ParseCodeBundle extracts a CodeBundle from model output. It never fails: unparseable text is
// echoed into every format, and the error reports why. Formats a parsed bundle lacks are filled
// from the fallback template for desc.
func ParseCodeBundle(text string, desc types.UIDescription) (types.CodeBundle, error) {
	var bundle types.CodeBundle
	if err := decodeObject(text, &bundle); err != nil {
		var raw types.CodeBundle
		for _, format := range types.Formats {
			raw.Set(format, text)
		}
		return raw, err
	}
	if missing := bundle.Missing(); len(missing) > 0 {
		demo := fallback.DemoCodeBundle(desc)
		for _, format := range missing {
			bundle.Set(format, demo.Get(format))
		}
	}
	return bundle, nil
}
