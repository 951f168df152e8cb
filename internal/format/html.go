package format

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FormatHTML reindents an HTML fragment, one element per line with two-space
// indentation. Text nodes are trimmed; elements whose content is a single
// short text node stay on one line. Parse errors propagate.
func FormatHTML(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var b strings.Builder
	for _, node := range nodes {
		writeNode(&b, node, 0)
	}
	return b.String(), nil
}

func writeNode(b *strings.Builder, n *html.Node, depth int) {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text != "" {
			writeLine(b, depth, text)
		}
	case html.CommentNode:
		writeLine(b, depth, "<!--"+n.Data+"-->")
	case html.ElementNode:
		open := openTag(n)
		if n.FirstChild == nil {
			if voidTag(n) {
				writeLine(b, depth, open)
			} else {
				writeLine(b, depth, open+"</"+n.Data+">")
			}
			return
		}
		if only := onlyShortText(n); only != "" {
			writeLine(b, depth, open+only+"</"+n.Data+">")
			return
		}
		writeLine(b, depth, open)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(b, c, depth+1)
		}
		writeLine(b, depth, "</"+n.Data+">")
	}
}

func openTag(n *html.Node) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.Data)
	for _, attr := range n.Attr {
		b.WriteString(" ")
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attr.Val)
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}

// onlyShortText returns the trimmed content when the element holds exactly
// one text child short enough to keep inline, or an empty string otherwise.
func onlyShortText(n *html.Node) string {
	c := n.FirstChild
	if c == nil || c.NextSibling != nil || c.Type != html.TextNode {
		return ""
	}
	text := strings.TrimSpace(c.Data)
	if len(text) > 60 {
		return ""
	}
	return text
}

func voidTag(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
		atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

func writeLine(b *strings.Builder, depth int, line string) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(line)
	b.WriteString("\n")
}
