package frontend

import (
	"bytes"
	_ "embed"
	"html"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
)

//go:embed offline.md
var offlineMarkdown []byte

const originToken = "%ORIGIN%"

const offlineLayout = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>My Messenger · offline</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    html, body { margin: 0; padding: 0; background: #0f1115; color: #e6e9ef;
      font-family: system-ui, -apple-system, Segoe UI, Roboto, Ubuntu, sans-serif; }
    main { max-width: 560px; margin: 12vh auto 0 auto; padding: 0 1.25rem; }
    h1 { color: #7aa2ff; letter-spacing: -0.02em; }
    code { color: #9aa3b2; }
    button { margin-top: 1rem; padding: .5rem 1rem; border: 0; border-radius: 8px;
      background: #7aa2ff; color: #0f1115; font-weight: 600; cursor: pointer; }
  </style>
</head>
<body>
  <main>
    {{BODY}}
    <button onclick="location.reload()">Retry</button>
  </main>
</body>
</html>
`

var offlineTemplate []byte

func init() {
	var body bytes.Buffer
	if err := goldmark.Convert(offlineMarkdown, &body); err != nil {
		body.Reset()
		body.WriteString("<h1>Server unreachable</h1><p><code>" + originToken + "</code></p>")
	}
	page := strings.Replace(offlineLayout, "{{BODY}}", body.String(), 1)

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", mhtml.Minify)

	out, err := m.String("text/html", page)
	if err != nil {
		log.Warnf("offline page: minify: %v (using original)", err)
		out = page
	}
	offlineTemplate = []byte(out)
}

// OfflinePage returns the page shown when origin cannot be reached.
func OfflinePage(origin string) []byte {
	return bytes.ReplaceAll(offlineTemplate, []byte(originToken), []byte(html.EscapeString(origin)))
}
