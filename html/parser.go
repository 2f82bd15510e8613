// Package html parses HTML documents into dom trees using
// golang.org/x/net/html as the underlying parser implementation.
package html

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/spurwing-main/lazyloadvideo/dom"
)

// Parse reads an HTML document from r and converts it into a
// dom.Document.
func Parse(r io.Reader) (*dom.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	doc := dom.NewDocument()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := convert(doc, c); n != nil {
			doc.AsNode().AppendChild(n)
		}
	}
	return doc, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(s string) (*dom.Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the HTML document at path.
func ParseFile(path string) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// convert maps one parsed node (and its subtree) into the dom package's
// representation. Comments, doctypes, and other node kinds the document
// model does not carry are dropped.
func convert(doc *dom.Document, n *html.Node) *dom.Node {
	switch n.Type {
	case html.ElementNode:
		el := doc.CreateElement(n.Data)
		for _, a := range n.Attr {
			el.SetAttribute(a.Key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(doc, c); child != nil {
				el.AsNode().AppendChild(child)
			}
		}
		return el.AsNode()
	case html.TextNode:
		return doc.CreateTextNode(n.Data)
	default:
		return nil
	}
}
