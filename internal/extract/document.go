package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a rendered page that can be queried by CSS selector.
type Document interface {
	// Lookup returns the raw text of the first element matching selector.
	// ok is false when no element matches. Lookup never fails loudly.
	Lookup(selector string) (text string, ok bool)
}

// HTMLDocument is a Document over a static HTML snapshot.
type HTMLDocument struct {
	doc *goquery.Document
}

// ParseHTML reads an HTML document from r.
func ParseHTML(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}
	return &HTMLDocument{doc: doc}, nil
}

// ParseHTMLString is ParseHTML for an in-memory string.
func ParseHTMLString(html string) (*HTMLDocument, error) {
	return ParseHTML(strings.NewReader(html))
}

func (d *HTMLDocument) Lookup(selector string) (string, bool) {
	if d == nil || d.doc == nil {
		return "", false
	}

	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Text(), true
}
