// Package document wraps a parsed markup tree behind a small query surface:
// find one element, find all matching elements, read text, read attributes.
// Extraction code consumes this surface and never touches the tree directly.
package document

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is an opaque handle over a parsed markup tree. It carries no
// shared mutable state and is owned by the caller after a successful fetch.
type Document struct {
	root *goquery.Document
}

// FromReader parses raw markup into a Document.
func FromReader(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: goquery.NewDocumentFromNode(node)}, nil
}

// Find returns the first element matching the CSS selector, or nil when
// nothing matches.
func (d *Document) Find(selector string) *Element {
	return wrapFirst(d.root.Find(selector))
}

// FindAll returns every element matching the CSS selector in document order.
func (d *Document) FindAll(selector string) []*Element {
	return wrapAll(d.root.Find(selector))
}

// FindMatcher returns the first element matching a precompiled matcher,
// or nil when nothing matches.
func (d *Document) FindMatcher(m goquery.Matcher) *Element {
	return wrapFirst(d.root.FindMatcher(m))
}

// Element is a single node of a Document.
type Element struct {
	sel *goquery.Selection
}

// Find returns the first descendant matching the CSS selector, or nil.
func (e *Element) Find(selector string) *Element {
	return wrapFirst(e.sel.Find(selector))
}

// FindAll returns every descendant matching the CSS selector.
func (e *Element) FindAll(selector string) []*Element {
	return wrapAll(e.sel.Find(selector))
}

// Text returns the combined text content of the element and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	v, _ := e.sel.Attr(name)
	return v
}

func wrapFirst(sel *goquery.Selection) *Element {
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel.First()}
}

func wrapAll(sel *goquery.Selection) []*Element {
	if sel.Length() == 0 {
		return nil
	}
	elements := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}
