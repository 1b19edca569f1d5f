// Package markdown turns stored post text into safe HTML for display.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yatube-dev/yatube/shared/logger"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// single newlines become <br>, like the linebreaks filter users expect
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &TextProcessor{md: md, policy: policy}
}

// Render never fails: text that goldmark cannot convert is shown escaped.
func (tp *TextProcessor) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		logger.Log.Warn("rendering post text", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	// raw HTML was allowed through goldmark; the policy strips anything unsafe
	return template.HTML(strings.TrimSpace(tp.policy.Sanitize(buf.String())))
}
