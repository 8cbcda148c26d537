package generator

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// NodeKind classifies a document node
type NodeKind int

const (
	// OtherNode covers documents, comments and doctypes
	OtherNode NodeKind = iota
	ElementNode
	TextNode
)

// Node is the read-only view of a document tree that extraction works on.
// Any HTML tree reader can back it.
type Node interface {
	Kind() NodeKind
	// Tag returns the lower-case element name, or "" for non-elements.
	Tag() string
	Attr(name string) (string, bool)
	HasClass(class string) bool
	// Text returns the text content of the node and all of its descendants.
	Text() string
	Parent() Node
	FirstChild() Node
	NextSibling() Node
}

// ParseDocument parses an HTML document. Parse errors are returned unchanged.
func ParseDocument(r io.Reader) (Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return wrapHTML(doc), nil
}

type htmlNode struct {
	n *html.Node
}

func wrapHTML(n *html.Node) Node {
	if n == nil {
		return nil
	}
	return htmlNode{n: n}
}

func (h htmlNode) Kind() NodeKind {
	switch h.n.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	default:
		return OtherNode
	}
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return h.n.Data
}

func (h htmlNode) Attr(name string) (string, bool) {
	for _, attr := range h.n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func (h htmlNode) HasClass(class string) bool {
	value, ok := h.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(value) {
		if c == class {
			return true
		}
	}
	return false
}

func (h htmlNode) Text() string {
	if h.n.Type == html.TextNode {
		return h.n.Data
	}
	var sb strings.Builder
	collectText(h.n, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.ElementNode:
			collectText(c, sb)
		}
	}
}

func (h htmlNode) Parent() Node      { return wrapHTML(h.n.Parent) }
func (h htmlNode) FirstChild() Node  { return wrapHTML(h.n.FirstChild) }
func (h htmlNode) NextSibling() Node { return wrapHTML(h.n.NextSibling) }

// walk visits root and its descendants in document order. The children of a
// node are skipped when visit returns false.
func walk(root Node, visit func(Node) bool) {
	if root == nil || !visit(root) {
		return
	}
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		walk(c, visit)
	}
}

// findFirst returns the first descendant of root (excluding root) matching match
func findFirst(root Node, match func(Node) bool) Node {
	var found Node
	for c := root.FirstChild(); c != nil && found == nil; c = c.NextSibling() {
		walk(c, func(n Node) bool {
			if found != nil {
				return false
			}
			if match(n) {
				found = n
				return false
			}
			return true
		})
	}
	return found
}

func nextElementSibling(n Node) Node {
	for s := n.NextSibling(); s != nil; s = s.NextSibling() {
		if s.Kind() == ElementNode {
			return s
		}
	}
	return nil
}

func isElement(tag string) func(Node) bool {
	return func(n Node) bool {
		return n.Kind() == ElementNode && n.Tag() == tag
	}
}
