package scraper

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Node is a handle on a parsed HTML element (or a whole document) that can be
// queried with CSS selectors.
type Node interface {
	// FindAll returns every descendant matching selector, in document order.
	FindAll(selector string) []Node
	// FindFirst returns the first descendant matching selector. The boolean
	// is false when nothing matches.
	FindFirst(selector string) (Node, bool)
	// Text returns the combined text of the node and its descendants.
	Text() string
	// InnerHTML returns the HTML of the node's children.
	InnerHTML() (string, error)
	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)
}

// selectionNode implements Node on top of a goquery selection.
type selectionNode struct {
	sel *goquery.Selection
}

// ParseHTML parses an HTML document from r.
func ParseHTML(r io.Reader) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return NewNode(doc.Selection), nil
}

// NewNode wraps a goquery selection.
func NewNode(sel *goquery.Selection) Node {
	return selectionNode{sel: sel}
}

func (n selectionNode) FindAll(selector string) []Node {
	found := n.sel.Find(selector)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, selectionNode{sel: s})
	})
	return nodes
}

func (n selectionNode) FindFirst(selector string) (Node, bool) {
	found := n.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return selectionNode{sel: found}, true
}

func (n selectionNode) Text() string {
	return n.sel.Text()
}

func (n selectionNode) InnerHTML() (string, error) {
	return n.sel.Html()
}

func (n selectionNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
