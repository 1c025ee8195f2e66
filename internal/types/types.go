package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// LooseString decodes any JSON value into a string. Strings are kept verbatim, null becomes "",
// and numbers, booleans, objects and arrays keep their compact JSON text. Models do not always
// respect the requested shape, and one odd field should not discard the whole description.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = LooseString(str)
		return nil
	}
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, trimmed); err != nil {
		return err
	}
	*s = LooseString(compacted.String())
	return nil
}

// UIComponent is one element detected in a screenshot.
type UIComponent struct {
	Type        LooseString `json:"type"`
	Content     LooseString `json:"content"`
	Placeholder LooseString `json:"placeholder,omitempty"`
	InputType   LooseString `json:"inputType,omitempty"`
	Position    LooseString `json:"position"`
	Styling     LooseString `json:"styling"`
	Purpose     LooseString `json:"purpose"`
}

// Colors is the detected color scheme.
type Colors struct {
	Primary    LooseString `json:"primary"`
	Background LooseString `json:"background"`
	Text       LooseString `json:"text"`
}

// UIDescription is the structured description of a UI screenshot produced by the vision stage
// and consumed by the code stage.
type UIDescription struct {
	LayoutType       string        `json:"layoutType"`
	Components       []UIComponent `json:"components"`
	Labels           []string      `json:"labels"`
	Colors           *Colors       `json:"colors,omitempty"`
	FullTextDetected string        `json:"fullTextDetected"`
	Mode             string        `json:"mode,omitempty"` // "demo" on the canned fallback only
}

// UnmarshalJSON decodes leniently: text fields accept arrays (joined by newlines), labels accept a
// single string, colors that are not an object are dropped, and components that are not objects
// are skipped. Only a value that is not an object at all is an error.
func (d *UIDescription) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}

	var fields struct {
		LayoutType       looseText       `json:"layoutType"`
		Components       json.RawMessage `json:"components"`
		Labels           looseList       `json:"labels"`
		Colors           json.RawMessage `json:"colors"`
		FullTextDetected looseText       `json:"fullTextDetected"`
		Mode             looseText       `json:"mode"`
	}
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}

	*d = UIDescription{
		LayoutType:       string(fields.LayoutType),
		Components:       decodeComponents(fields.Components),
		Labels:           []string(fields.Labels),
		FullTextDetected: string(fields.FullTextDetected),
		Mode:             string(fields.Mode),
	}
	if isObject(fields.Colors) {
		var colors Colors
		if err := json.Unmarshal(fields.Colors, &colors); err == nil {
			d.Colors = &colors
		}
	}
	return nil
}

var errNotObject = errors.New("ui description must be a JSON object")

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// decodeComponents accepts a list of components or a single component object.
func decodeComponents(raw json.RawMessage) []UIComponent {
	trimmed := bytes.TrimSpace(raw)
	if isObject(trimmed) {
		trimmed = append(append([]byte{'['}, trimmed...), ']')
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil
	}
	components := make([]UIComponent, 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var component UIComponent
		if err := json.Unmarshal(item, &component); err == nil {
			components = append(components, component)
		}
	}
	return components
}

// looseText is a LooseString that joins arrays of values with newlines.
type looseText string

func (t *looseText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []LooseString
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		lines := make([]string, 0, len(items))
		for _, item := range items {
			if item != "" {
				lines = append(lines, string(item))
			}
		}
		*t = looseText(strings.Join(lines, "\n"))
		return nil
	}
	var s LooseString
	if err := s.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	*t = looseText(s)
	return nil
}

// looseList decodes a list of values, or a single value as a one-element list.
type looseList []string

func (l *looseList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []LooseString
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		list := make(looseList, 0, len(items))
		for _, item := range items {
			list = append(list, string(item))
		}
		*l = list
		return nil
	}
	var s LooseString
	if err := s.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	if s == "" {
		*l = nil
		return nil
	}
	*l = looseList{string(s)}
	return nil
}

// Normalize makes the description safe to serialize and consume: nil slices become empty and
// free-text fields are trimmed.
func (d *UIDescription) Normalize() {
	d.LayoutType = strings.TrimSpace(d.LayoutType)
	if d.Components == nil {
		d.Components = []UIComponent{}
	}
	labels := make([]string, 0, len(d.Labels))
	for _, label := range d.Labels {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	d.Labels = labels
	d.FullTextDetected = strings.TrimSpace(d.FullTextDetected)
}

// CodeBundle holds generated source for the six output formats. All keys are always serialized.
type CodeBundle struct {
	HTML       string `json:"html"`
	CSS        string `json:"css"`
	JavaScript string `json:"javascript"`
	React      string `json:"react"`
	Vue        string `json:"vue"`
	Tailwind   string `json:"tailwind"`
}

// Format names, in the order the bundle lists them.
const (
	FormatHTML       = "html"
	FormatCSS        = "css"
	FormatJavaScript = "javascript"
	FormatReact      = "react"
	FormatVue        = "vue"
	FormatTailwind   = "tailwind"
)

// Formats lists every format a CodeBundle carries.
var Formats = []string{FormatHTML, FormatCSS, FormatJavaScript, FormatReact, FormatVue, FormatTailwind}

// Get returns the source for a format name, or "" for unknown names.
func (b CodeBundle) Get(format string) string {
	switch format {
	case FormatHTML:
		return b.HTML
	case FormatCSS:
		return b.CSS
	case FormatJavaScript:
		return b.JavaScript
	case FormatReact:
		return b.React
	case FormatVue:
		return b.Vue
	case FormatTailwind:
		return b.Tailwind
	}
	return ""
}

// Set stores the source for a format name. Unknown names are ignored.
func (b *CodeBundle) Set(format, source string) {
	switch format {
	case FormatHTML:
		b.HTML = source
	case FormatCSS:
		b.CSS = source
	case FormatJavaScript:
		b.JavaScript = source
	case FormatReact:
		b.React = source
	case FormatVue:
		b.Vue = source
	case FormatTailwind:
		b.Tailwind = source
	}
}

// Missing returns the formats whose source is blank.
func (b CodeBundle) Missing() []string {
	var missing []string
	for _, format := range Formats {
		if strings.TrimSpace(b.Get(format)) == "" {
			missing = append(missing, format)
		}
	}
	return missing
}

// GeneratedFile is one format of a bundle rendered as a file.
type GeneratedFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"` // e.g., "HTML", "CSS", "JSX"
	Content  string `json:"content"`
}
