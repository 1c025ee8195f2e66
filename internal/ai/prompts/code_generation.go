package prompts

import "fmt"

// GetCodeGenerationPrompt embeds the UI analysis (already formatted as indented JSON) into the
// six-format code generation prompt.
func GetCodeGenerationPrompt(uiAnalysis string) string {
	prompt := `You are an expert frontend engineer. Recreate the analyzed UI pixel-accurately as production-ready code.

UI ANALYSIS:
%s

Generate clean, semantic and accessible code in ALL of the following formats. Every format must reproduce
every component, text, color and spacing from the analysis.

1. **html**: a COMPLETE standalone HTML5 document (<!DOCTYPE html>, <html>, <head> with charset and viewport,
   <body>) using semantic tags. Use the ids and class names that the css and javascript formats reference.
2. **css**: modern CSS with flexbox/grid, CSS custom properties for the detected colors, responsive rules
   for widths below 640px, and hover/focus states for interactive elements.
3. **javascript**: vanilla ES6+ that wires up every interactive element of the html format. It MUST define
   these helpers, even when the UI has no form (then return true):
     - validateEmail(value) -> boolean
     - validatePassword(value) -> boolean (at least 8 characters)
     - validateRequired(value) -> boolean
     - validateForm(form) -> boolean, showing inline error messages
     - togglePasswordVisibility(inputId)
   Attach listeners inside a DOMContentLoaded handler.
4. **react**: a single functional component (default export) using hooks for state and validation.
5. **vue**: a Vue 3 single-file component using <script setup> and the composition API.
6. **tailwind**: a complete HTML document styled only with Tailwind CSS utility classes (load Tailwind from
   https://cdn.tailwindcss.com) with the same behavior inline.

CRITICAL: Return ONLY a valid JSON object. Do not wrap it in markdown code blocks. Do not add any explanation text.
Escape newlines and quotes inside the strings so the object parses.

JSON structure:
{
  "html": "complete HTML code",
  "css": "complete CSS code",
  "javascript": "complete JavaScript code",
  "react": "complete React component code",
  "vue": "complete Vue component code",
  "tailwind": "complete HTML with Tailwind classes"
}`

	return fmt.Sprintf(prompt, uiAnalysis)
}
