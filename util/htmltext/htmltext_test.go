package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>Hello</p><p>World</p>", "Hello\n\nWorld"},
		{"<p>line one<br>line two</p>", "line one\nline two"},
		{"<p>caf&eacute; &amp; cr&egrave;me</p>", "caf\u00e9 & cr\u00e8me"},
		{`<p><span class="h-card"><a href="https://example.social/@barmaid" class="u-url mention">@<span>barmaid</span></a></span> help please</p>`, "@barmaid help please"},
		{`<p>see <a href="https://example.com/a/long/path"><span class="invisible">https://</span><span class="ellipsis">example.com/a/lo</span><span class="invisible">ng/path</span></a></p>`, "see https://example.com/a/long/path"},
		{"<p>a</p><script>alert(1)</script><p>b</p>", "a\n\nb"},
		{"<ul><li>one</li><li>two</li></ul>", "one\ntwo"},
		{"<p>a</p><p></p><p></p><p>b</p>", "a\n\nb"},
		// decomposed input is normalized
		{"<p>e\u0301te\u0301</p>", "\u00e9t\u00e9"},
	}
	for _, f := range fixtures {
		assert.Equal(f.want, Sanitize(f.in), f.in)
	}
}

func TestDefuseMentions(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("no mentions here", DefuseMentions("no mentions here"))
	assert.Equal("@\u200bbarmaid hi", DefuseMentions("@barmaid hi"))
	assert.Equal("hi @\u200balice and @\u200bbob@example.com", DefuseMentions("hi @alice and @bob@example.com"))
	assert.Equal("cc\n@\u200bmodo", DefuseMentions("cc\n@modo"))
	assert.Equal("@\u200bspaced out", DefuseMentions("@ spaced out"))
	// email addresses are not mentions
	assert.Equal("mail me@example.com", DefuseMentions("mail me@example.com"))
}
