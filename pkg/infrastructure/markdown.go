package infrastructure

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// RenderTargetID is the element whose box is rasterised on export.
const RenderTargetID = "resume-pdf"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  html, body { margin: 0; padding: 0; background: transparent; }
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 11pt; line-height: 1.45; color: #111; }
  #resume-pdf { padding: 0 4px; }
  h1 { font-size: 22pt; margin: 0 0 6px; text-align: center; }
  h1 + p { text-align: center; margin-top: 0; }
  h2 { font-size: 14pt; border-bottom: 1px solid #999; margin: 18px 0 8px; padding-bottom: 2px; }
  h3 { font-size: 12pt; margin: 12px 0 2px; }
  h3 + p { color: #555; margin: 0 0 4px; font-style: italic; }
  p, li { margin: 4px 0; }
  a { color: #1a4fa0; text-decoration: none; }
  ul, ol { padding-left: 20px; }
</style>
</head>
<body>
<div id="resume-pdf">
{{.Body}}
</div>
<script>
(function () {
  function settle() {
    requestAnimationFrame(function () {
      requestAnimationFrame(function () { window.__layoutSettled = true; });
    });
  }
  if (document.fonts && document.fonts.ready) {
    document.fonts.ready.then(settle);
  } else {
    window.addEventListener("load", settle);
  }
})();
</script>
</body>
</html>
`))

// MarkdownRenderer turns a markdown document into the standalone page that
// the chromedp renderer loads. Raw HTML in the document is not passed
// through.
type MarkdownRenderer struct {
	md    goldmark.Markdown
	title string
}

func NewMarkdownRenderer(title string) *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
		title: title,
	}
}

func (r *MarkdownRenderer) RenderHTML(markdown string) (string, error) {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &body); err != nil {
		return "", errors.Wrap(err, "convert markdown")
	}
	var out bytes.Buffer
	err := pageTemplate.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{r.title, template.HTML(body.String())})
	if err != nil {
		return "", errors.Wrap(err, "render page")
	}
	return out.String(), nil
}
