package infrastructure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	r := NewMarkdownRenderer("Resume")
	out, err := r.RenderHTML("# Ada\n\nEmail: a@b.com | LinkedIn: [https://linkedin.com/in/ada](https://linkedin.com/in/ada)\n\n## Skills\n\nGo, SQL")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<div id="`+RenderTargetID+`">`)
	assert.Contains(t, out, "<h1>Ada</h1>")
	assert.Contains(t, out, "<h2>Skills</h2>")
	assert.Contains(t, out, `<a href="https://linkedin.com/in/ada">https://linkedin.com/in/ada</a>`)
	assert.Contains(t, out, "window.__layoutSettled = true")
	assert.Contains(t, out, "<title>Resume</title>")
}

func TestRenderHTMLDropsRawHTML(t *testing.T) {
	out, err := NewMarkdownRenderer("x").RenderHTML("hello <img src=\"http://tracker/x.png\"> world\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.NotContains(t, out, "tracker")
	assert.NotContains(t, out, "alert(1)")
	assert.Contains(t, out, "hello")
}

func TestRenderHTMLEscapesTitle(t *testing.T) {
	out, err := NewMarkdownRenderer("<b>me</b>").RenderHTML("")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>&lt;b&gt;me&lt;/b&gt;</title>")
}
