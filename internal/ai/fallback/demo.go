// Package fallback builds the deterministic records served when the model cannot be reached.
// Nothing here touches the network or parses model output, so it cannot fail.
package fallback

import (
	"html"
	"strings"

	"image_to_code_server/internal/types"
)

const (
	defaultHeading     = "Welcome"
	defaultButtonLabel = "Click me"
)

// DemoUIDescription returns the canned description of a generic landing page.
func DemoUIDescription() types.UIDescription {
	return types.UIDescription{
		LayoutType: "landing page",
		Components: []types.UIComponent{
			{Type: "heading", Content: "Welcome to Our App", Position: "top-center", Styling: "large, bold", Purpose: "page title"},
			{Type: "text", Content: "This is a demo UI analysis", Position: "center", Styling: "regular, muted", Purpose: "introduction"},
			{Type: "button", Content: "Get Started", Position: "center", Styling: "primary, filled", Purpose: "primary call to action"},
			{Type: "button", Content: "Learn More", Position: "center", Styling: "secondary, outline", Purpose: "secondary call to action"},
			{Type: "input", Content: "Email address", Placeholder: "Enter your email", InputType: "email", Position: "center", Styling: "bordered, rounded", Purpose: "newsletter signup"},
			{Type: "image", Content: "Hero Image", Position: "top", Styling: "full width", Purpose: "decoration"},
		},
		Labels: []string{"Web UI", "Landing Page", "Call to Action"},
		Colors: &types.Colors{
			Primary:    "#2563eb",
			Background: "#ffffff",
			Text:       "#111827",
		},
		FullTextDetected: "Welcome to Our App\nThis is a demo UI analysis\nGet Started\nLearn More\nEnter your email",
		Mode:             "demo",
	}
}

// page is the content pulled out of a description for the demo templates.
type page struct {
	heading  string
	subtitle string
	button   string
}

func pageFrom(desc types.UIDescription) page {
	p := page{heading: defaultHeading, button: defaultButtonLabel}

	lines := strings.Split(strings.TrimSpace(desc.FullTextDetected), "\n")
	if first := strings.TrimSpace(lines[0]); first != "" {
		p.heading = first
	}
	if len(lines) > 1 {
		p.subtitle = strings.TrimSpace(lines[1])
	}

	for _, c := range desc.Components {
		if strings.EqualFold(strings.TrimSpace(string(c.Type)), "button") {
			if label := strings.TrimSpace(string(c.Content)); label != "" {
				p.button = label
				break
			}
		}
	}
	return p
}

// escapeMarkup escapes text for HTML, JSX and Vue templates. Braces become entities so JSX
// expressions and Vue interpolations are never opened by detected text.
func escapeMarkup(s string) string {
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, "{", "&#123;")
	return strings.ReplaceAll(s, "}", "&#125;")
}

// DemoCodeBundle renders a minimal page for desc in all six formats: a heading from the first
// line of fullTextDetected and a button that counts its clicks.
func DemoCodeBundle(desc types.UIDescription) types.CodeBundle {
	p := pageFrom(desc)
	heading := escapeMarkup(p.heading)
	button := escapeMarkup(p.button)
	subtitle := ""
	if p.subtitle != "" {
		subtitle = escapeMarkup(p.subtitle)
	}

	return types.CodeBundle{
		HTML:       demoHTML(heading, subtitle, button),
		CSS:        demoCSS,
		JavaScript: demoJavaScript,
		React:      demoReact(heading, subtitle, button),
		Vue:        demoVue(heading, subtitle, button),
		Tailwind:   demoTailwind(heading, subtitle, button),
	}
}

func demoHTML(heading, subtitle, button string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n")
	b.WriteString("<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + heading + "</title>\n")
	b.WriteString("  <link rel=\"stylesheet\" href=\"styles.css\">\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString("  <main class=\"container\">\n")
	b.WriteString("    <h1 class=\"title\">" + heading + "</h1>\n")
	if subtitle != "" {
		b.WriteString("    <p class=\"subtitle\">" + subtitle + "</p>\n")
	}
	b.WriteString("    <button id=\"counter-button\" class=\"button\" type=\"button\">" + button + "</button>\n")
	b.WriteString("    <p id=\"counter-output\" class=\"counter\">Clicked 0 times</p>\n")
	b.WriteString("  </main>\n")
	b.WriteString("  <script src=\"script.js\"></script>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
	return b.String()
}

const demoCSS = `* {
  box-sizing: border-box;
}

body {
  margin: 0;
  font-family: Inter, system-ui, -apple-system, sans-serif;
  background: #f9fafb;
  color: #111827;
}

.container {
  display: flex;
  flex-direction: column;
  align-items: center;
  gap: 1rem;
  max-width: 40rem;
  margin: 0 auto;
  padding: 4rem 1.5rem;
  text-align: center;
}

.title {
  margin: 0;
  font-size: 2.25rem;
  font-weight: 700;
}

.subtitle {
  margin: 0;
  color: #4b5563;
}

.button {
  padding: 0.75rem 1.5rem;
  border: none;
  border-radius: 0.5rem;
  background: #2563eb;
  color: #ffffff;
  font-size: 1rem;
  font-weight: 600;
  cursor: pointer;
}

.button:hover {
  background: #1d4ed8;
}

.counter {
  margin: 0;
  color: #6b7280;
}

@media (max-width: 640px) {
  .title {
    font-size: 1.75rem;
  }
}
`

const demoJavaScript = `document.addEventListener('DOMContentLoaded', function () {
  var count = 0;
  var button = document.getElementById('counter-button');
  var output = document.getElementById('counter-output');
  if (!button || !output) {
    return;
  }
  button.addEventListener('click', function () {
    count += 1;
    output.textContent = 'Clicked ' + count + (count === 1 ? ' time' : ' times');
  });
});
`

func demoReact(heading, subtitle, button string) string {
	var b strings.Builder
	b.WriteString("import React, { useState } from 'react';\n\n")
	b.WriteString("export default function GeneratedPage() {\n")
	b.WriteString("  const [count, setCount] = useState(0);\n\n")
	b.WriteString("  return (\n")
	b.WriteString("    <main className=\"container\">\n")
	b.WriteString("      <h1 className=\"title\">" + heading + "</h1>\n")
	if subtitle != "" {
		b.WriteString("      <p className=\"subtitle\">" + subtitle + "</p>\n")
	}
	b.WriteString("      <button className=\"button\" type=\"button\" onClick={() => setCount(count + 1)}>\n")
	b.WriteString("        " + button + "\n")
	b.WriteString("      </button>\n")
	b.WriteString("      <p className=\"counter\">Clicked {count} {count === 1 ? 'time' : 'times'}</p>\n")
	b.WriteString("    </main>\n")
	b.WriteString("  );\n")
	b.WriteString("}\n")
	return b.String()
}

func demoVue(heading, subtitle, button string) string {
	var b strings.Builder
	b.WriteString("<script setup>\n")
	b.WriteString("import { ref } from 'vue';\n\n")
	b.WriteString("const count = ref(0);\n")
	b.WriteString("</script>\n\n")
	b.WriteString("<template>\n")
	b.WriteString("  <main class=\"container\">\n")
	b.WriteString("    <h1 class=\"title\">" + heading + "</h1>\n")
	if subtitle != "" {
		b.WriteString("    <p class=\"subtitle\">" + subtitle + "</p>\n")
	}
	b.WriteString("    <button class=\"button\" type=\"button\" @click=\"count++\">" + button + "</button>\n")
	b.WriteString("    <p class=\"counter\">Clicked {{ count }} {{ count === 1 ? 'time' : 'times' }}</p>\n")
	b.WriteString("  </main>\n")
	b.WriteString("</template>\n\n")
	b.WriteString("<style scoped>\n")
	b.WriteString(demoCSS)
	b.WriteString("</style>\n")
	return b.String()
}

func demoTailwind(heading, subtitle, button string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n")
	b.WriteString("<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + heading + "</title>\n")
	b.WriteString("  <script src=\"https://cdn.tailwindcss.com\"></script>\n")
	b.WriteString("</head>\n")
	b.WriteString("<body class=\"bg-gray-50 text-gray-900 font-sans\">\n")
	b.WriteString("  <main class=\"mx-auto flex max-w-xl flex-col items-center gap-4 px-6 py-16 text-center\">\n")
	b.WriteString("    <h1 class=\"text-3xl font-bold sm:text-4xl\">" + heading + "</h1>\n")
	if subtitle != "" {
		b.WriteString("    <p class=\"text-gray-600\">" + subtitle + "</p>\n")
	}
	b.WriteString("    <button id=\"counter-button\" type=\"button\" class=\"rounded-lg bg-blue-600 px-6 py-3 font-semibold text-white hover:bg-blue-700\">" + button + "</button>\n")
	b.WriteString("    <p id=\"counter-output\" class=\"text-gray-500\">Clicked 0 times</p>\n")
	b.WriteString("  </main>\n")
	b.WriteString("  <script>\n")
	b.WriteString(demoJavaScript)
	b.WriteString("  </script>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
	return b.String()
}
