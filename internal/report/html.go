package report

import (
	stdhtml "html"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"tabscope/domain/run"
)

// HTML renders the Markdown report as a complete HTML page. Raw HTML in the
// Markdown is dropped and links are limited to safe protocols.
func HTML(r *run.ProfileRun) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: stdhtml.EscapeString("Profile: " + r.Source),
		Flags: html.CommonFlags | html.CompletePage | html.HrefTargetBlank | html.SkipHTML | html.Safelink,
	})
	return markdown.ToHTML([]byte(Markdown(r)), p, renderer)
}
