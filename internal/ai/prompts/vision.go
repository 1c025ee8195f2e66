package prompts

import "fmt"

// GetVisionPrompt returns the screenshot analysis prompt. When width and height are known they
// are stated so the model can report sizes relative to the real canvas.
func GetVisionPrompt(width, height int) string {
	dimensions := ""
	if width > 0 && height > 0 {
		dimensions = fmt.Sprintf("\nThe screenshot is %dx%d pixels.\n", width, height)
	}

	return `You are a UI/UX expert analyzing a user interface screenshot. Analyze this image in EXTREME DETAIL.
` + dimensions + `
TASK: Identify EVERY UI element with precise details:

1. **Layout Structure**:
   - Overall layout type (centered form, dashboard, landing page, split-screen, etc.)
   - Container positioning and alignment
   - Grid or flex structure
   - Background colors/gradients

2. **Text Elements**:
   - ALL visible text (headings, labels, buttons, links, placeholders)
   - Font sizes (heading vs body vs small)
   - Font weights (bold, semibold, regular)
   - Text colors

3. **Form Elements** (if present):
   - Input fields (email, password, text, search, etc.)
   - Labels and placeholder text for each input
   - Input field styling (borders, backgrounds, shadows)
   - Password show/hide icon, checkboxes, radio buttons

4. **Buttons**:
   - Button text and type (primary, secondary, outline, link)
   - Button colors (background, text, border)
   - Button positioning and icons

5. **Links**:
   - Link text, position and styling (underlined, colored, etc.)

6. **Images/Icons**:
   - Logos, profile pictures, decorative images
   - Icon types (SVG icons, social icons, etc.)

7. **Colors**:
   - Primary color scheme, background colors, text colors, accent colors

8. **Spacing & Layout**:
   - Padding and margins
   - Component gaps
   - Alignment (centered, left, right)

Return a valid JSON object with this EXACT structure (no extra text):

{
  "layoutType": "login form | dashboard | landing page | profile page | etc.",
  "components": [
    {
      "type": "input | button | text | heading | link | checkbox | image | logo | icon",
      "content": "exact text or description",
      "placeholder": "placeholder text if input",
      "inputType": "email | password | text | etc.",
      "position": "top-left | top-center | center | bottom-right | etc.",
      "styling": "color, size, weight details",
      "purpose": "what this element does"
    }
  ],
  "labels": ["Login Form", "Authentication", "Modern UI"],
  "colors": {
    "primary": "#hex",
    "background": "#hex",
    "text": "#hex"
  },
  "fullTextDetected": "ALL text visible in the image separated by newlines"
}

BE THOROUGH - include EVERY element you see!`
}
