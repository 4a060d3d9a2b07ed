// Package htmltext converts Mastodon status HTML to plain text suitable for re-posting.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	mentions   = regexp.MustCompile(`(^|\s)@\s*([\w.-]+)`)
)

// Returns the text content of a status HTML fragment.
//
// Paragraphs are separated by a blank line and line breaks become newlines. Links keep their full text, including the parts Mastodon hides with the "invisible" class. Output is NFC normalized and trimmed. Input which fails to parse is returned as-is.
func Sanitize(content string) string {
	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return content
	}

	var sb strings.Builder
	for _, n := range nodes {
		extractText(n, &sb)
	}
	out := blankLines.ReplaceAllString(sb.String(), "\n\n")
	return strings.TrimSpace(norm.NFC.String(out))
}

func extractText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "br":
			sb.WriteString("\n")
			return
		case "p", "blockquote", "pre", "ul", "ol":
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
		case "li":
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, sb)
	}
}

// Inserts a zero-width space after the '@' of every handle, so that re-posted text does not notify the accounts it mentions. Also joins "@ user" (as left by some HTML strippers) back to the handle.
func DefuseMentions(text string) string {
	return mentions.ReplaceAllString(text, "$1@\u200b$2")
}
