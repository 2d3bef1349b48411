package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrorFragment is returned by Render when the markdown engine fails.
// The pipeline never surfaces a render failure as an error.
const ErrorFragment = "<p>Unable to render markdown.</p>"

// A Renderer converts markdown source to sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer returns a new Renderer.
// Raw HTML is enabled at the goldmark stage and systematically passed
// through the sanitization policy, so parser output never reaches the
// caller unfiltered.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		policy: policy(),
	}
}

// policy builds the HTML allow-list.
// Contents of disallowed tags are kept, the tags themselves are stripped.
// data-* attributes are never allowed.
func policy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "strong", "em", "u", "del", "s",
		"a", "img",
		"ul", "ol", "li",
		"blockquote", "pre", "code",
		"table", "thead", "tbody", "tr", "th", "td",
		"hr", "div", "span",
	)
	p.AllowAttrs("href", "title", "alt", "src", "id", "class", "target", "rel").Globally()
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	return p
}

// Render converts markdown source to sanitized HTML.
// It never fails: empty input yields an empty string and an engine
// failure yields ErrorFragment.
func (r *Renderer) Render(source string) (html string) {
	if source == "" {
		return ""
	}

	defer func() {
		if recover() != nil {
			html = ErrorFragment
		}
	}()

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return ErrorFragment
	}

	return r.policy.Sanitize(buf.String())
}
