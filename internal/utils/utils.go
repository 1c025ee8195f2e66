package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ```json, ``` JSON, ```javascript, or a bare fence, with any surrounding whitespace.
	leadingFence  = regexp.MustCompile("^\\s*```[ \\t]*[A-Za-z0-9_+-]*[ \\t]*\\r?\\n?")
	trailingFence = regexp.MustCompile("\\r?\\n?[ \\t]*```\\s*$")
)

// StripCodeFences removes a leading and a trailing markdown code fence from model output.
// Fences inside the text are left alone so generated code keeps its own backticks.
func StripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = leadingFence.ReplaceAllString(cleaned, "")
	cleaned = trailingFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// IsolateJSONObject returns the span from the first '{' to the last '}' of text, for model
// output that wraps the object in prose. ok is false when no such span exists.
func IsolateJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// DetermineFileType maps an exported file name to a display type.
func DetermineFileType(filename string) string {
	lowerFilename := strings.ToLower(filename)
	ext := filepath.Ext(lowerFilename)
	switch ext {
	case ".html", ".htm":
		return "HTML"
	case ".css":
		return "CSS"
	case ".js", ".mjs":
		return "JavaScript"
	case ".jsx":
		return "JSX"
	case ".ts":
		return "TypeScript"
	case ".tsx":
		return "TSX"
	case ".vue":
		return "Vue"
	case ".json":
		return "JSON"
	case ".md":
		return "Markdown"
	case ".svg":
		return "SVG"
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return "Image"
	default:
		return "Unknown"
	}
}
