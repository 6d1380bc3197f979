// Package views holds the page shell shared by the editor UI. Components
// are authored directly against the templ runtime and patched over SSE.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// datastarCDN is the client runtime driving SSE patches and form posts.
const datastarCDN = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// Page wraps body in the full HTML document shell.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s</title>
<link rel="stylesheet" href="/static/css/app.css"/>
<script type="module" src="%s"></script>
</head>
<body>`, templ.EscapeString(title), datastarCDN); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body>
</html>`)
		return err
	})
}
