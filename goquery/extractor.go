// Package goquery extracts the body fragment from rendered HTML using goquery.
// Well-formed XHTML output is read with etree first so that empty elements
// written as <a/> keep their place in the tree.
package goquery

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
	"github.com/fwojciec/epidoc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements epidoc.Extractor at compile time.
var _ epidoc.Extractor = (*Extractor)(nil)

// Extractor returns the inner content of the body element of a rendered
// HTML document, ready to be embedded in the caller's own page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the children of the first body element serialized as HTML
// and trimmed. Only the outermost body wrapper is removed; nested markup is
// kept as is. With full set, rawHTML is returned trimmed and otherwise
// untouched.
func (e *Extractor) Extract(rawHTML string, full bool) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", epidoc.Errorf(epidoc.EEMPTY, "conversion result is empty")
	}

	if full {
		return strings.TrimSpace(rawHTML), nil
	}

	if wellFormed(rawHTML) {
		return extractXML(rawHTML)
	}

	// The HTML parser synthesizes a body for any input, so the source
	// itself must carry one.
	if !hasBodyTag(rawHTML) {
		return "", epidoc.Errorf(epidoc.ENOBODY, "conversion result has no body element")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", epidoc.Errorf(epidoc.EINVALID, "failed to parse HTML: %v", err)
	}

	inner, err := doc.Find("body").First().Html()
	if err != nil {
		return "", epidoc.Errorf(epidoc.EINTERNAL, "failed to render body: %v", err)
	}

	return strings.TrimSpace(inner), nil
}

// hasBodyTag reports whether rawHTML contains a body start tag.
func hasBodyTag(rawHTML string) bool {
	z := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Body {
				return true
			}
		}
	}
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// extractXML serializes the child tokens of the first body element of a
// well-formed document, whatever namespace the body is in.
func extractXML(rawHTML string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(rawHTML); err != nil {
		return "", epidoc.Errorf(epidoc.EINVALID, "failed to parse XHTML: %v", err)
	}

	body := findBody(&doc.Element)
	if body == nil {
		return "", epidoc.Errorf(epidoc.ENOBODY, "conversion result has no body element")
	}

	var b strings.Builder
	for _, tok := range body.Child {
		switch t := tok.(type) {
		case *etree.Element:
			sub := etree.NewDocument()
			sub.SetRoot(t.Copy())
			s, err := sub.WriteToString()
			if err != nil {
				return "", epidoc.Errorf(epidoc.EINTERNAL, "failed to render body: %v", err)
			}
			b.WriteString(s)
		case *etree.CharData:
			if t.IsCData() {
				b.WriteString("<![CDATA[" + t.Data + "]]>")
			} else {
				b.WriteString(xmlEscaper.Replace(t.Data))
			}
		case *etree.Comment:
			b.WriteString("<!--" + t.Data + "-->")
		}
	}

	return strings.TrimSpace(b.String()), nil
}

// findBody returns the first body element in document order.
func findBody(e *etree.Element) *etree.Element {
	for _, c := range e.ChildElements() {
		if strings.EqualFold(c.Tag, "body") {
			return c
		}
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

// wellFormed reports whether s parses as XML with matched end tags and
// known entities only. HTML-method output such as <br> or &nbsp; fails.
func wellFormed(s string) bool {
	d := xml.NewDecoder(strings.NewReader(s))
	d.Strict = true
	seen := false
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return seen
		}
		if err != nil {
			return false
		}
		if _, ok := tok.(xml.StartElement); ok {
			seen = true
		}
	}
}
