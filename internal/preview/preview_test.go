package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image_to_code_server/internal/ai/fallback"
	"image_to_code_server/internal/types"
)

func TestRender_Fragment(t *testing.T) {
	out, err := Render(types.CodeBundle{
		HTML:       `<main><button id="go">Go</button></main>`,
		CSS:        `button > span { color: #fff; }`,
		JavaScript: `if (1 < 2 && true) { document.getElementById('go'); }`,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<html>"))
	assert.Contains(t, out, `<meta charset="UTF-8"/>`)
	assert.Contains(t, out, `name="viewport"`)
	assert.Contains(t, out, `<button id="go">Go</button>`)
	// Style and script bodies are raw text and must not be escaped.
	assert.Contains(t, out, `<style>button > span { color: #fff; }</style>`)
	assert.Contains(t, out, `<script>if (1 < 2 && true) { document.getElementById('go'); }</script></body>`)
	assert.Less(t, strings.Index(out, "<style>"), strings.Index(out, "</head>"))
}

func TestRender_FullDocumentKeepsExistingMeta(t *testing.T) {
	out, err := Render(types.CodeBundle{
		HTML: `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>T</title></head><body><h1>Hi</h1></body></html>`,
		CSS:  `h1 { margin: 0; }`,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Equal(t, 1, strings.Count(strings.ToLower(out), "charset="))
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, "<title>T</title>")
	assert.NotContains(t, out, "<script>")
}

func TestRender_DemoBundle(t *testing.T) {
	bundle := fallback.DemoCodeBundle(fallback.DemoUIDescription())
	out, err := Render(bundle)
	require.NoError(t, err)

	assert.Contains(t, out, "Welcome to Our App")
	assert.Contains(t, out, `id="counter-button"`)
	assert.Contains(t, out, "addEventListener")
	assert.Contains(t, out, ".button:hover")
}

func TestRender_Empty(t *testing.T) {
	out, err := Render(types.CodeBundle{})
	require.NoError(t, err)
	assert.Contains(t, out, "<head>")
	assert.Contains(t, out, "<body>")
}
