package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// render runs the input through a fresh parser with the given extensions
// and HTML renderer flags.
func render(input string, ext Extensions, flags HTMLFlags) string {
	renderer := NewHTMLRenderer(HTMLRendererParameters{Flags: flags})
	return string(Markdown([]byte(input), renderer, ext))
}

// renderCommon is the shortcut used by most tests: common extensions and
// XHTML-style output.
func renderCommon(input string) string {
	return render(input, CommonExtensions, UseXHTML)
}

func TestVersionInfo(t *testing.T) {
	t.Parallel()
	major, minor, revision := VersionInfo()
	assert.Equal(t, 1, major)
	assert.Equal(t, 1, minor)
	assert.Equal(t, 0, revision)
}

func TestMarkdownNilRenderer(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Markdown([]byte("# hi\n"), nil, NoExtensions))
}

func TestPreprocessing(t *testing.T) {
	t.Parallel()

	t.Run("BOMIsStripped", func(t *testing.T) {
		t.Parallel()
		plain := renderCommon("# hi\n")
		bom := renderCommon("\xEF\xBB\xBF# hi\n")
		assert.Equal(t, plain, bom)
		assert.Equal(t, "<h1>hi</h1>\n", bom)
	})

	t.Run("BOMOnlyAtOffsetZero", func(t *testing.T) {
		t.Parallel()
		// a BOM in the middle of the document is ordinary text
		out := renderCommon("a\xEF\xBB\xBFb\n")
		assert.Equal(t, "<p>a\xEF\xBB\xBFb</p>\n", out)
	})

	t.Run("NewlinesAreNormalized", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>a\nb</p>\n", renderCommon("a\r\nb\r"))
		assert.Equal(t, "<p>a\nb</p>\n", renderCommon("a\nb"))
	})

	t.Run("TrailingNewlineIsEnsured", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<h1>hi</h1>\n", renderCommon("# hi"))
	})

	t.Run("TabsExpandToFourColumnStops", func(t *testing.T) {
		t.Parallel()
		// a tab at column 1 yields three spaces
		assert.Equal(t, "<p>a   b</p>\n", renderCommon("a\tb\n"))
		// a leading tab makes an indented code block
		assert.Equal(t, "<pre><code>hello\n</code></pre>\n", renderCommon("\thello\n"))
	})
}

func TestReferences(t *testing.T) {
	t.Parallel()

	t.Run("DefinitionOnlyDocumentIsEmpty", func(t *testing.T) {
		t.Parallel()
		renderer := NewHTMLRenderer(HTMLRendererParameters{Flags: UseXHTML})
		p := NewParser(CommonExtensions, 0, renderer)
		out := p.Render([]byte("[id]: http://e.com \"t\"\n"))
		assert.Empty(t, out)

		ref := p.lookupRef([]byte("id"))
		require.NotNil(t, ref)
		assert.Equal(t, "http://e.com", string(ref.link))
		assert.Equal(t, "t", string(ref.title))
	})

	t.Run("ResolvedAcrossPhases", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("[x][y]\n\n[y]: http://e.com \"t\"\n")
		assert.Equal(t, "<p><a href=\"http://e.com\" title=\"t\">x</a></p>\n", out)
	})

	t.Run("DefinitionMayFollowUse", func(t *testing.T) {
		t.Parallel()
		before := renderCommon("[y]: http://e.com\n\n[x][y]\n")
		after := renderCommon("[x][y]\n\n[y]: http://e.com\n")
		assert.Equal(t, before, after)
	})

	t.Run("LabelsAreCaseInsensitive", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("[x][ID]\n\n[id]: /here\n")
		assert.Equal(t, "<p><a href=\"/here\">x</a></p>\n", out)
	})

	t.Run("AngleBracketedURL", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("[x][y]\n\n[y]: <http://e.com/path>\n")
		assert.Equal(t, "<p><a href=\"http://e.com/path\">x</a></p>\n", out)
	})

	t.Run("ClearedBetweenRenders", func(t *testing.T) {
		t.Parallel()
		renderer := NewHTMLRenderer(HTMLRendererParameters{Flags: UseXHTML})
		p := NewParser(CommonExtensions, 0, renderer)
		p.Render([]byte("[id]: http://e.com\n"))
		p.Render([]byte("plain\n"))
		assert.Nil(t, p.lookupRef([]byte("id")))
	})

	t.Run("FingerprintIsCaseInsensitive", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, hashLabel([]byte("Some Label")), hashLabel([]byte("sOME lABEL")))
	})
}

func TestParserReuse(t *testing.T) {
	t.Parallel()

	renderer := NewHTMLRenderer(HTMLRendererParameters{Flags: UseXHTML})
	p := NewParser(CommonExtensions, 0, renderer)
	doc := []byte("# title\n\nsome *text* with a [link](http://e.com).\n\n* one\n* two\n")

	first := p.Render(doc)
	second := p.Render(doc)
	assert.Equal(t, string(first), string(second), "re-rendering must be byte-identical")

	assert.Zero(t, p.blockBufs.active, "block scratch pool must drain")
	assert.Zero(t, p.spanBufs.active, "span scratch pool must drain")
}

func TestNestingBound(t *testing.T) {
	t.Parallel()

	renderer := NewHTMLRenderer(HTMLRendererParameters{Flags: UseXHTML})
	p := NewParser(CommonExtensions, 2, renderer)

	// deeply nested quotes overflow the bound; parsing stops silently
	// inside the overflowing subtree instead of failing
	out := p.Render([]byte("> > > > > > deep\n"))
	assert.NotNil(t, out)
	assert.Zero(t, p.blockBufs.active)
	assert.Zero(t, p.spanBufs.active)
}

func TestCallbackTable(t *testing.T) {
	t.Parallel()

	t.Run("UnregisteredSpansPassThrough", func(t *testing.T) {
		t.Parallel()
		// a renderer without emphasis callbacks leaves the markers alone
		renderer := &Renderer{
			Paragraph: func(out *bytes.Buffer, text []byte, _ interface{}) {
				out.Write(text)
			},
		}
		out := Markdown([]byte("*hi* `code`\n"), renderer, NoExtensions)
		assert.Equal(t, "*hi* `code`", string(out))
	})

	t.Run("DecliningCallbackEmitsVerbatim", func(t *testing.T) {
		t.Parallel()
		renderer := &Renderer{
			Paragraph: func(out *bytes.Buffer, text []byte, _ interface{}) {
				out.Write(text)
			},
			Emphasis: func(out *bytes.Buffer, text []byte, _ interface{}) int {
				return 0 // decline every span
			},
		}
		out := Markdown([]byte("*hi*\n"), renderer, NoExtensions)
		assert.Equal(t, "*hi*", string(out))
	})

	t.Run("OpaqueIsHandedBack", func(t *testing.T) {
		t.Parallel()
		var got interface{}
		renderer := &Renderer{
			Paragraph: func(out *bytes.Buffer, text []byte, opaque interface{}) {
				got = opaque
			},
			Opaque: "state",
		}
		Markdown([]byte("hi\n"), renderer, NoExtensions)
		assert.Equal(t, "state", got)
	})

	t.Run("DocumentHeaderAndFooter", func(t *testing.T) {
		t.Parallel()
		renderer := &Renderer{
			DocumentHeader: func(out *bytes.Buffer, _ interface{}) {
				out.WriteString("[head]")
			},
			DocumentFooter: func(out *bytes.Buffer, _ interface{}) {
				out.WriteString("[foot]")
			},
			Paragraph: func(out *bytes.Buffer, text []byte, _ interface{}) {
				out.Write(text)
			},
		}
		out := Markdown([]byte("body\n"), renderer, NoExtensions)
		assert.Equal(t, "[head]body[foot]", string(out))
	})
}

func TestConvenienceWrappers(t *testing.T) {
	t.Parallel()

	t.Run("MarkdownBasic", func(t *testing.T) {
		t.Parallel()
		out := MarkdownBasic([]byte("# hi\n"))
		assert.Equal(t, "<h1>hi</h1>\n", string(out))
	})

	t.Run("MarkdownCommon", func(t *testing.T) {
		t.Parallel()
		out := MarkdownCommon([]byte("~~gone~~\n"))
		assert.Equal(t, "<p><del>gone</del></p>\n", string(out))
	})
}
