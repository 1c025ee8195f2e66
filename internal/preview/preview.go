// Package preview assembles a CodeBundle's html, css and javascript into one document that a
// browser can load in a sandbox.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"image_to_code_server/internal/types"
)

// SandboxPolicy is sent as Content-Security-Policy with rendered previews. It matches the
// iframe sandbox the web client uses.
const SandboxPolicy = "sandbox allow-scripts allow-forms allow-modals allow-popups"

// Render parses bundle.HTML (a fragment or a full document), ensures charset and viewport
// meta tags, appends bundle.CSS as a <style> in <head> and bundle.JavaScript as a <script> at
// the end of <body>.
func Render(bundle types.CodeBundle) (string, error) {
	doc, err := html.Parse(strings.NewReader(bundle.HTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse generated html: %w", err)
	}

	head := findElement(doc, atom.Head)
	body := findElement(doc, atom.Body)
	if head == nil || body == nil {
		return "", fmt.Errorf("generated html has no head or body")
	}

	if findMeta(head, "charset", "") == nil {
		head.InsertBefore(element(atom.Meta, html.Attribute{Key: "charset", Val: "UTF-8"}), head.FirstChild)
	}
	if findMeta(head, "name", "viewport") == nil {
		head.AppendChild(element(atom.Meta,
			html.Attribute{Key: "name", Val: "viewport"},
			html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1.0"},
		))
	}

	if strings.TrimSpace(bundle.CSS) != "" {
		style := element(atom.Style)
		style.AppendChild(&html.Node{Type: html.TextNode, Data: bundle.CSS})
		head.AppendChild(style)
	}
	if strings.TrimSpace(bundle.JavaScript) != "" {
		script := element(atom.Script)
		script.AppendChild(&html.Node{Type: html.TextNode, Data: bundle.JavaScript})
		body.AppendChild(script)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.String(), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// findMeta returns the first <meta> child of head with the attribute key, and with value val
// when val is not empty.
func findMeta(head *html.Node, key, val string) *html.Node {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Meta {
			continue
		}
		for _, attr := range c.Attr {
			if strings.EqualFold(attr.Key, key) && (val == "" || strings.EqualFold(attr.Val, val)) {
				return c
			}
		}
	}
	return nil
}
