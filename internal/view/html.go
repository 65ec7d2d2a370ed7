package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Text renders s as escaped HTML text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Paragraph renders s inside a <p> element.
func Paragraph(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>"+templ.EscapeString(s)+"</p>")
		return err
	})
}

// Pre renders preformatted text that wraps inside its container.
func Pre(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<pre style="margin: 0; white-space: pre-wrap;">`+templ.EscapeString(s)+"</pre>")
		return err
	})
}

// Group renders components one after another.
func Group(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if p == nil {
				continue
			}
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Page wraps body in a complete HTML document.
func Page(title string, body templ.Component) templ.Component {
	if body == nil {
		body = templ.NopComponent
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8" />` +
			`<meta name="viewport" content="width=device-width, initial-scale=1" />` +
			`<title>` + templ.EscapeString(title) + `</title></head><body>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}
