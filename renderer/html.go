package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlShell wraps the converted report body into a standalone dark-theme
// page, so the published file reads well on a phone without any assets.
const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
:root { --bg: #14161a; --card: #1d2026; --text: #e8e6e3; --text-muted: #9a9996; --green: #4caf50; --red: #ef5350; --border: #2c2f36; }
body { background: var(--bg); color: var(--text); font: 15px/1.6 -apple-system, "Segoe UI", sans-serif; max-width: 860px; margin: 0 auto; padding: 24px 16px; }
h1 { font-size: 1.4em; border-bottom: 1px solid var(--border); padding-bottom: 8px; }
h2 { font-size: 1.1em; margin-top: 28px; color: var(--text); }
em { color: var(--text-muted); }
table { border-collapse: collapse; width: 100%%; margin: 12px 0; background: var(--card); border-radius: 8px; overflow: hidden; }
th, td { padding: 8px 12px; border-bottom: 1px solid var(--border); }
th { text-align: left; color: var(--text-muted); font-weight: 600; }
tr:last-child td { border-bottom: none; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTML converts a markdown report into a standalone HTML document.
func HTML(title, markdown string) (string, error) {
	var body bytes.Buffer
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := gm.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("converting report to HTML: %w", err)
	}
	return fmt.Sprintf(htmlShell, title, body.String()), nil
}
