// Package htmltomarkdown renders converted inscription fragments as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/epidoc"
	"golang.org/x/net/html"
)

// Ensure Converter implements epidoc.Converter at compile time.
var _ epidoc.Converter = (*Converter)(nil)

// SectionTitles maps the ids of the EpiDoc stylesheet's top-level divs to
// the headings written for them in Markdown.
var SectionTitles = map[string]string{
	"edition":      "Edition",
	"diplomatic":   "Diplomatic",
	"apparatus":    "Apparatus",
	"translation":  "Translation",
	"commentary":   "Commentary",
	"bibliography": "Bibliography",
}

// Converter turns an edition fragment into Markdown. Edition sections get
// headings, line numbers start a new hard-broken line, and tables are kept
// for concordances.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	conv.Register.RendererFor("div", converter.TagTypeBlock, renderSection, converter.PriorityEarly)
	conv.Register.RendererFor("span", converter.TagTypeInline, renderLineNumber, converter.PriorityEarly)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", epidoc.Errorf(epidoc.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", epidoc.Errorf(epidoc.EINTERNAL, "failed to render markdown: %v", err)
	}

	return result, nil
}

// renderSection writes a level two heading for known edition sections
// unless the stylesheet already emitted one as the first child.
func renderSection(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	title, ok := SectionTitles[attr(n, "id")]
	if !ok {
		return converter.RenderTryNext
	}

	w.WriteString("\n\n")
	if !startsWithHeading(n) {
		w.WriteString("## " + title + "\n\n")
	}
	ctx.RenderChildNodes(ctx, w, n)
	w.WriteString("\n\n")
	return converter.RenderSuccess
}

// renderLineNumber puts each numbered line of the edition on its own line.
// A number following a br or opening its block needs no extra break.
func renderLineNumber(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if !hasClass(n, "linenumber") {
		return converter.RenderTryNext
	}

	if prev := previousNode(n); prev != nil && !(prev.Type == html.ElementNode && prev.Data == "br") {
		w.WriteString("  \n")
	}
	w.WriteString(strings.TrimSpace(text(n)) + " ")
	return converter.RenderSuccess
}

func startsWithHeading(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		case html.ElementNode:
			switch c.Data {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				return true
			}
			return false
		}
	}
	return false
}

// previousNode skips whitespace-only text siblings.
func previousNode(n *html.Node) *html.Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if p.Type == html.TextNode && strings.TrimSpace(p.Data) == "" {
			continue
		}
		return p
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
