package generator

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	periodLineBrk  = regexp.MustCompile(`(?i)\.\s*<br.*?>`)
	markupTag      = regexp.MustCompile(`<[^>]*>`)
	trailingPeriod = regexp.MustCompile(`\s*\.+\s*$`)
)

// anchorIndex maps anchor names to the first <a name="..."> carrying them
type anchorIndex map[string]Node

func indexAnchors(doc Node) anchorIndex {
	idx := make(anchorIndex)
	walk(doc, func(n Node) bool {
		if n.Kind() != ElementNode || n.Tag() != "a" {
			return true
		}
		if name, ok := n.Attr("name"); ok {
			if _, seen := idx[name]; !seen {
				idx[name] = n
			}
		}
		return true
	})
	return idx
}

// findDescription recovers the prose following a function's body block. The
// walk stops at the next named anchor, which starts another function.
func (e *Extractor) findDescription(anchors anchorIndex, name string) string {
	anchor, ok := anchors[name]
	if !ok {
		return ""
	}

	var body Node
	for current := nextElementSibling(anchor); current != nil; current = nextElementSibling(current) {
		if current.HasClass(e.conv.BodyClass) {
			body = current
			break
		}
	}
	if body == nil {
		return ""
	}

	for sibling := body.NextSibling(); sibling != nil; sibling = sibling.NextSibling() {
		switch sibling.Kind() {
		case TextNode:
			if text := strings.TrimSpace(sibling.Text()); e.longEnough(text) {
				return cleanDescriptionText(text)
			}
		case ElementNode:
			if sibling.Tag() == "a" {
				if name, _ := sibling.Attr("name"); name != "" {
					return ""
				}
			}
			if sibling.Tag() == "br" || e.conv.isStructuralClass(sibling) {
				continue
			}
			if text := strings.TrimSpace(sibling.Text()); e.longEnough(text) {
				return cleanDescriptionText(text)
			}
		}
	}
	return ""
}

func (e *Extractor) longEnough(text string) bool {
	return len([]rune(text)) > e.conv.MinDescriptionLength
}

// cleanDescriptionText collapses whitespace, drops markup and ends the text
// with a single period when it already ended with one.
func cleanDescriptionText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = periodLineBrk.ReplaceAllString(text, ".")
	text = markupTag.ReplaceAllString(text, "")
	text = trailingPeriod.ReplaceAllString(text, ".")
	return strings.TrimSpace(text)
}
