// Package extractor turns HTML markup into a single line of readable text.
package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// denylist names elements whose whole subtree never contributes text.
var denylist = []string{"script", "style", "nav", "footer", "aside"}

var denySelector = strings.Join(denylist, ", ")

// Denylist returns the tag names stripped before text extraction.
func Denylist() []string {
	return append([]string(nil), denylist...)
}

// ParseError reports that markup could not be turned into a document tree.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse html: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract parses markup, drops denylisted elements and returns the remaining
// text with every whitespace run collapsed to a single space. An empty result
// is valid.
func (e *Extractor) Extract(markup string) (string, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return "", &ParseError{Err: err}
	}

	doc.Find(denySelector).Remove()

	var parts []string
	for _, root := range doc.Nodes {
		parts = collectText(root, parts)
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " "), nil
}

// parseDocument parses with scripting disabled so <noscript> content becomes
// elements instead of a raw text blob.
func parseDocument(markup string) (*goquery.Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}

// collectText appends the trimmed, non-empty text nodes under n in document
// order. Comments and doctypes are skipped.
func collectText(n *html.Node, parts []string) []string {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			parts = append(parts, s)
		}
		return parts
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = collectText(c, parts)
	}
	return parts
}
