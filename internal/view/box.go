package view

import (
	"context"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/a-h/templ"
)

// Style is a set of inline CSS declarations keyed by property name.
// Keys may be written in CSS form (background-color) or camelCase (backgroundColor).
type Style map[string]string

type declaration struct {
	property string
	value    string
}

// boxDefaults is the fixed styling of Box, in render order.
var boxDefaults = []declaration{
	{"background-color", "#2196f3"},
	{"color", "#fff"},
	{"padding", "16px"},
	{"border-radius", "8px"},
}

// BoxStyle merges override on top of the Box defaults and returns the inline style text.
// Overridden defaults keep their position; extra properties follow in sorted order.
func BoxStyle(override Style) string {
	merged := make(map[string]string, len(override))
	for k, v := range override {
		merged[cssProperty(k)] = v
	}

	var b strings.Builder
	for _, d := range boxDefaults {
		v, ok := merged[d.property]
		if !ok {
			v = d.value
		}
		delete(merged, d.property)
		writeDeclaration(&b, d.property, v)
	}

	extra := make([]string, 0, len(merged))
	for k := range merged {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		writeDeclaration(&b, k, merged[k])
	}
	return b.String()
}

// Box wraps children in the fixed-style blue container.
func Box(children templ.Component, override Style) templ.Component {
	if children == nil {
		children = templ.NopComponent
	}
	style := BoxStyle(override)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div style="`+templ.EscapeString(style)+`">`); err != nil {
			return err
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

func writeDeclaration(b *strings.Builder, property, value string) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(property)
	b.WriteString(": ")
	b.WriteString(strings.TrimSpace(value))
	b.WriteByte(';')
}

// cssProperty converts backgroundColor to background-color.
func cssProperty(key string) string {
	key = strings.TrimSpace(key)
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
