package engine

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Length of text as Mastodon counts it: in grapheme clusters, so that an emoji sequence or a letter with combining marks counts as one character.
func TextLength(s string) int {
	n := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		n++
	}
	return n
}

// A word with its trailing whitespace, pre-split in to grapheme clusters.
type token struct {
	graphemes []string
}

func (t *token) String() string {
	return strings.Join(t.graphemes, "")
}

func tokenize(text string) []token {
	var out []token
	var cur []string
	inSpace := false
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		space := unicode.IsSpace(gr.Runes()[0])
		if !space && inSpace {
			out = append(out, token{graphemes: cur})
			cur = nil
		}
		cur = append(cur, gr.Str())
		inSpace = space
	}
	if len(cur) > 0 {
		out = append(out, token{graphemes: cur})
	}
	return out
}

// Splits text in to chunks of at most size grapheme clusters, greedily packing whole words.
//
// Whitespace stays attached to the word before it, so joining the chunks gives back the exact input. A word (with its trailing whitespace) longer than size is cut at grapheme boundaries. Empty text, or a size below one, gives no chunks.
func SplitText(text string, size int) []string {
	if size <= 0 {
		return nil
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, tok := range tokenize(text) {
		n := len(tok.graphemes)
		if curLen+n <= size {
			cur.WriteString(tok.String())
			curLen += n
			continue
		}
		flush()
		if n <= size {
			cur.WriteString(tok.String())
			curLen = n
			continue
		}
		for _, g := range tok.graphemes {
			if curLen == size {
				flush()
			}
			cur.WriteString(g)
			curLen++
		}
	}
	flush()
	return chunks
}
