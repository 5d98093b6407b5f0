package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixHeaders(t *testing.T) {
	t.Parallel()

	t.Run("Levels", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<h1>hi</h1>\n", renderCommon("# hi\n"))
		assert.Equal(t, "<h2>hi</h2>\n", renderCommon("## hi\n"))
		assert.Equal(t, "<h6>hi</h6>\n", renderCommon("###### hi\n"))
	})

	t.Run("TrailingHashesAreStripped", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<h2>sub</h2>\n", renderCommon("## sub ##\n"))
	})

	t.Run("SpaceHeadersRequiresSpace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>#hi</p>\n", renderCommon("#hi\n"))
		assert.Equal(t, "<h1>hi</h1>\n", render("#hi\n", CommonExtensions&^SpaceHeaders, UseXHTML))
	})
}

func TestUnderlinedHeaders(t *testing.T) {
	t.Parallel()

	t.Run("Levels", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<h1>Header</h1>\n", renderCommon("Header\n======\n"))
		assert.Equal(t, "<h2>Header</h2>\n", renderCommon("Header\n---\n"))
	})

	t.Run("PrecedingParagraphIsSplitOff", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("para\nHead\n----\n")
		assert.Equal(t, "<p>para</p>\n\n<h2>Head</h2>\n", out)
	})
}

func TestHorizontalRules(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<hr/>\n", renderCommon("---\n"))
	assert.Equal(t, "<hr/>\n", renderCommon("* * *\n"))
	assert.Equal(t, "<hr/>\n", renderCommon("______\n"))
	assert.Equal(t, "<hr>\n", render("***\n", CommonExtensions, HTMLFlagsNone))
}

func TestParagraphs(t *testing.T) {
	t.Parallel()

	t.Run("Single", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>hello world</p>\n", renderCommon("hello world\n"))
	})

	t.Run("BlankLineSeparates", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>a</p>\n\n<p>b</p>\n", renderCommon("a\n\nb\n"))
	})

	t.Run("SoftWrappedLinesJoin", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>a\nb</p>\n", renderCommon("a\nb\n"))
	})

	t.Run("LeadingSpacesAreTrimmed", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>a</p>\n", renderCommon("  a\n"))
	})
}

func TestLaxSpacing(t *testing.T) {
	t.Parallel()

	t.Run("ListInterruptsParagraph", func(t *testing.T) {
		t.Parallel()
		strict := renderCommon("para\n* a\n")
		assert.Equal(t, "<p>para\n* a</p>\n", strict)

		lax := render("para\n* a\n", CommonExtensions|LaxSpacing, UseXHTML)
		assert.Equal(t, "<p>para</p>\n\n<ul>\n<li>a</li>\n</ul>\n", lax)
	})

	t.Run("FenceInterruptsParagraph", func(t *testing.T) {
		t.Parallel()
		lax := render("para\n```\nx\n```\n", CommonExtensions|LaxSpacing, UseXHTML)
		assert.Equal(t, "<p>para</p>\n\n<pre><code>x\n</code></pre>\n", lax)
	})

	t.Run("QuoteInterruptsParagraph", func(t *testing.T) {
		t.Parallel()
		lax := render("para\n> q\n", CommonExtensions|LaxSpacing, UseXHTML)
		assert.Equal(t, "<p>para</p>\n\n<blockquote>\n<p>q</p>\n</blockquote>\n", lax)
	})
}

func TestIndentedCode(t *testing.T) {
	t.Parallel()

	t.Run("Simple", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<pre><code>code\n</code></pre>\n", renderCommon("    code\n"))
	})

	t.Run("TrailingBlankLinesAreTrimmed", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("    a\n\n\n")
		assert.Equal(t, "<pre><code>a\n</code></pre>\n", out)
	})

	t.Run("ContentIsEscaped", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<pre><code>a &lt;b&gt;\n</code></pre>\n", renderCommon("    a <b>\n"))
	})
}

func TestFencedCode(t *testing.T) {
	t.Parallel()

	t.Run("WithLanguage", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("```cpp\nint x=1;\n```\n")
		assert.Equal(t, "<pre><code class=\"cpp\">int x=1;\n</code></pre>\n", out)
	})

	t.Run("BracedLanguageForm", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("~~~ { go }\nx := 1\n~~~\n")
		assert.Equal(t, "<pre><code class=\"go\">x := 1\n</code></pre>\n", out)
	})

	t.Run("CloseRequiresSameCharacter", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("```\ncode\n~~~\n```\n")
		assert.Equal(t, "<pre><code>code\n~~~\n</code></pre>\n", out)
	})

	t.Run("TerminalNewlineIsEnsured", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("```\n```\n")
		assert.Equal(t, "<pre><code>\n</code></pre>\n", out)
	})

	t.Run("DisabledWithoutExtension", func(t *testing.T) {
		t.Parallel()
		out := render("```\ncode\n```\n", CommonExtensions&^FencedCode, UseXHTML)
		assert.NotContains(t, out, "<pre>")
	})
}

func TestBlockquotes(t *testing.T) {
	t.Parallel()

	t.Run("Simple", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("> hi\n")
		assert.Equal(t, "<blockquote>\n<p>hi</p>\n</blockquote>\n", out)
	})

	t.Run("LazyContinuation", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("> a\nb\n\nc\n")
		assert.Equal(t, "<blockquote>\n<p>a\nb</p>\n</blockquote>\n\n<p>c</p>\n", out)
	})

	t.Run("Nested", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("> > deep\n")
		assert.Equal(t, "<blockquote>\n<blockquote>\n<p>deep</p>\n</blockquote>\n</blockquote>\n", out)
	})
}

func TestLists(t *testing.T) {
	t.Parallel()

	t.Run("Unordered", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("* a\n* b\n")
		assert.Equal(t, "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n", out)
	})

	t.Run("AllBulletMarkers", func(t *testing.T) {
		t.Parallel()
		for _, marker := range []string{"*", "+", "-"} {
			out := renderCommon(marker + " a\n")
			assert.Equal(t, "<ul>\n<li>a</li>\n</ul>\n", out, "marker %q", marker)
		}
	})

	t.Run("Ordered", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("1. a\n2. b\n")
		assert.Equal(t, "<ol>\n<li>a</li>\n<li>b</li>\n</ol>\n", out)
	})

	t.Run("MarkerNeedsTrailingSpace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>1.a</p>\n", renderCommon("1.a\n"))
	})

	t.Run("BlockModeAfterBlankLine", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("* a\n\n* b\n")
		assert.Equal(t, "<ul>\n<li><p>a</p></li>\n<li><p>b</p></li>\n</ul>\n", out)
	})

	t.Run("Nested", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("* a\n    * b\n")
		assert.Equal(t, "<ul>\n<li>a\n\n<ul>\n<li>b</li>\n</ul></li>\n</ul>\n", out)
	})

	t.Run("TypeSwitchEndsList", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("* a\n\n1. b\n")
		assert.Equal(t, "<ul>\n<li>a</li>\n</ul>\n\n<ol>\n<li>b</li>\n</ol>\n", out)
	})

	t.Run("FenceSuppressesMarkerRecognition", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("* a\n```\n* not an item\n```\n")
		assert.NotContains(t, out, "<li>not an item</li>")
	})
}

func TestHTMLBlocks(t *testing.T) {
	t.Parallel()

	t.Run("KnownBlockTag", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("<div>foo</div>\n\n")
		assert.Equal(t, "<div>foo</div>\n", out)
	})

	t.Run("Comment", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("<!-- note -->\n\n")
		assert.Equal(t, "<!-- note -->\n", out)
	})

	t.Run("SelfClosingHr", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("<hr>\n\n")
		assert.Equal(t, "<hr>\n", out)
	})

	t.Run("UnknownTagFallsThrough", func(t *testing.T) {
		t.Parallel()
		// <span> is not a block tag, so the line renders as a paragraph
		// with an inline raw tag
		out := renderCommon("<span>x</span>\n")
		assert.Equal(t, "<p><span>x</span></p>\n", out)
	})

	t.Run("SkipHTMLFlag", func(t *testing.T) {
		t.Parallel()
		out := render("<div>foo</div>\n\n", CommonExtensions, UseXHTML|SkipHTML)
		assert.Empty(t, out)
	})
}

func TestTables(t *testing.T) {
	t.Parallel()

	t.Run("Simple", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("| h |\n|---|\n| c |\n")
		expected := "<table><thead>\n<tr>\n<th>h</th>\n</tr>\n</thead><tbody>\n" +
			"<tr>\n<td>c</td>\n</tr>\n</tbody></table>\n"
		assert.Equal(t, expected, out)
	})

	t.Run("Alignment", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("a | b | c\n:--- | ---: | :---:\n1 | 2 | 3\n")
		assert.Contains(t, out, "<th align=\"left\">a</th>")
		assert.Contains(t, out, "<th align=\"right\">b</th>")
		assert.Contains(t, out, "<th align=\"center\">c</th>")
		assert.Contains(t, out, "<td align=\"left\">1</td>")
	})

	t.Run("BodyEndsAtNonTableLine", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("a | b\n--- | ---\n1 | 2\nplain\n")
		assert.Contains(t, out, "</tbody></table>\n")
		assert.Contains(t, out, "<p>plain</p>\n")
	})

	t.Run("ShortRowsArePadded", func(t *testing.T) {
		t.Parallel()
		out := renderCommon("a | b\n--- | ---\nonly |\n")
		assert.Contains(t, out, "<td>only</td>\n<td></td>")
	})

	t.Run("DisabledWithoutExtension", func(t *testing.T) {
		t.Parallel()
		out := render("| h |\n|---|\n| c |\n", CommonExtensions&^Tables, UseXHTML)
		assert.NotContains(t, out, "<table>")
	})
}
