// Package etree parses EpiDoc XML in process using beevik/etree.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/epidoc"
)

// Parser parses XML text into etree documents, appending diagnostics to a
// log the way an XSLT processor's XML parser would.
type Parser struct {
	// Log receives parse diagnostics. Must not be nil.
	Log *epidoc.Log
}

// NewParser creates a new Parser writing to log.
func NewParser(log *epidoc.Log) *Parser {
	return &Parser{Log: log}
}

// Parse parses text and returns the document, or nil if the text is not
// well-formed XML. Reasons for rejection are appended to the log.
func (p *Parser) Parse(text string) *etree.Document {
	if strings.TrimSpace(text) == "" {
		p.Log.Append(epidoc.CodeParse, "Error reported by XML parser: Premature end of file.")
		return nil
	}

	// encoding/xml accepts character data around the root element, so
	// content outside it is checked here.
	if !cleanProlog(text) {
		p.Log.Append(epidoc.CodeContentInProlog, "Error reported by XML parser: Content is not allowed in prolog.")
		return nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		p.Log.Append(epidoc.CodeParse, "Error reported by XML parser: "+err.Error())
		return nil
	}

	if doc.Root() == nil {
		p.Log.Append(epidoc.CodeParse, "Error reported by XML parser: Premature end of file.")
		return nil
	}

	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			p.Log.Append(epidoc.CodeParse, "Error reported by XML parser: Content is not allowed in trailing section.")
			return nil
		}
	}

	return doc
}

// cleanProlog reports whether everything before the first markup is XML
// whitespace.
func cleanProlog(text string) bool {
	i := strings.IndexByte(text, '<')
	if i < 0 {
		return false
	}
	return strings.Trim(text[:i], " \t\r\n") == ""
}

// Serialize renders doc back to a string for import.
func Serialize(doc *etree.Document) (string, error) {
	if doc == nil || doc.Root() == nil {
		return "", epidoc.Errorf(epidoc.EINVALID, "document has no root element")
	}
	return doc.WriteToString()
}
