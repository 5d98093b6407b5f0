// HTML rendering backend.

package markdown

import (
	"bytes"
	"fmt"
)

// HTMLFlags control the behavior of the HTML renderer.
type HTMLFlags int

// HTML renderer configuration options.
const (
	HTMLFlagsNone          HTMLFlags = 0
	SkipHTML               HTMLFlags = 1 << iota // Skip preformatted HTML blocks and inline tags
	SkipImages                                   // Skip embedded images
	SkipLinks                                    // Skip all links
	SafeLink                                     // Only link to trusted protocols
	UseXHTML                                     // Generate XHTML output instead of HTML
	CompletePage                                 // Generate a complete HTML page
	Smartypants                                  // Enable smart punctuation substitutions
	SmartypantsFractions                         // Enable smart fractions (with Smartypants)
	SmartypantsDashes                            // Enable smart dashes (with Smartypants)
	SmartypantsLatexDashes                       // Enable LaTeX-style dashes (with Smartypants)
)

// HTMLRendererParameters adjusts the behavior of the HTML renderer beyond
// the flag bits.
type HTMLRendererParameters struct {
	// Flags allow customizing this renderer's behavior.
	Flags HTMLFlags

	// Title and CSS are used when CompletePage is set to fill in the
	// document preamble.
	Title string
	CSS   string
}

type htmlRenderer struct {
	flags    HTMLFlags
	title    string
	css      string
	closeTag string // how to end singleton tags: ">" or "/>"

	smartypants *smartypantsRenderer
}

const (
	htmlClose  = ">"
	xhtmlClose = "/>"
)

// NewHTMLRenderer fills in a callback table that renders the standard HTML
// output format.
func NewHTMLRenderer(params HTMLRendererParameters) *Renderer {
	r := &htmlRenderer{
		flags:    params.Flags,
		title:    params.Title,
		css:      params.CSS,
		closeTag: htmlClose,
	}
	if params.Flags&UseXHTML != 0 {
		r.closeTag = xhtmlClose
	}
	if params.Flags&Smartypants != 0 {
		r.smartypants = smartypants(params.Flags)
	}

	return &Renderer{
		BlockCode:  r.blockCode,
		BlockQuote: r.blockQuote,
		BlockHTML:  r.blockHTML,
		Header:     r.header,
		HRule:      r.hrule,
		List:       r.list,
		ListItem:   r.listItem,
		Paragraph:  r.paragraph,
		Table:      r.table,
		TableRow:   r.tableRow,
		TableCell:  r.tableCell,

		AutoLink:       r.autoLink,
		CodeSpan:       r.codeSpan,
		DoubleEmphasis: r.doubleEmphasis,
		Emphasis:       r.emphasis,
		Image:          r.image,
		LineBreak:      r.lineBreak,
		Link:           r.link,
		RawHTMLTag:     r.rawHTMLTag,
		TripleEmphasis: r.tripleEmphasis,
		StrikeThrough:  r.strikeThrough,
		Superscript:    r.superscript,

		Entity:     r.entity,
		NormalText: r.normalText,

		DocumentHeader: r.documentHeader,
		DocumentFooter: r.documentFooter,
	}
}

// attrEscape writes text with the HTML-active bytes replaced by entities.
func attrEscape(out *bytes.Buffer, src []byte) {
	org := 0
	for i, ch := range src {
		var entity string
		switch ch {
		case '&':
			entity = "&amp;"
		case '<':
			entity = "&lt;"
		case '>':
			entity = "&gt;"
		case '"':
			entity = "&quot;"
		default:
			continue
		}
		if i > org {
			out.Write(src[org:i])
		}
		org = i + 1
		out.WriteString(entity)
	}
	if org < len(src) {
		out.Write(src[org:])
	}
}

// doubleSpace separates two block-level constructs with a blank line.
func doubleSpace(out *bytes.Buffer) {
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
}

func (r *htmlRenderer) blockCode(out *bytes.Buffer, text []byte, lang string, _ interface{}) {
	doubleSpace(out)
	if lang != "" {
		out.WriteString("<pre><code class=\"")
		attrEscape(out, []byte(lang))
		out.WriteString("\">")
	} else {
		out.WriteString("<pre><code>")
	}
	attrEscape(out, text)
	out.WriteString("</code></pre>\n")
}

func (r *htmlRenderer) blockQuote(out *bytes.Buffer, text []byte, _ interface{}) {
	doubleSpace(out)
	out.WriteString("<blockquote>\n")
	out.Write(text)
	out.WriteString("</blockquote>\n")
}

func (r *htmlRenderer) blockHTML(out *bytes.Buffer, text []byte, _ interface{}) {
	if r.flags&SkipHTML != 0 {
		return
	}
	doubleSpace(out)
	out.Write(text)
	out.WriteByte('\n')
}

func (r *htmlRenderer) header(out *bytes.Buffer, text []byte, level int, _ interface{}) {
	doubleSpace(out)
	fmt.Fprintf(out, "<h%d>", level)
	out.Write(text)
	fmt.Fprintf(out, "</h%d>\n", level)
}

func (r *htmlRenderer) hrule(out *bytes.Buffer, _ interface{}) {
	doubleSpace(out)
	out.WriteString("<hr")
	out.WriteString(r.closeTag)
	out.WriteByte('\n')
}

func (r *htmlRenderer) list(out *bytes.Buffer, text []byte, flags ListType, _ interface{}) {
	doubleSpace(out)
	if flags&ListTypeOrdered != 0 {
		out.WriteString("<ol>\n")
	} else {
		out.WriteString("<ul>\n")
	}
	out.Write(text)
	if flags&ListTypeOrdered != 0 {
		out.WriteString("</ol>\n")
	} else {
		out.WriteString("</ul>\n")
	}
}

func (r *htmlRenderer) listItem(out *bytes.Buffer, text []byte, flags ListType, _ interface{}) {
	out.WriteString("<li>")
	size := len(text)
	for size > 0 && text[size-1] == '\n' {
		size--
	}
	out.Write(text[:size])
	out.WriteString("</li>\n")
}

func (r *htmlRenderer) paragraph(out *bytes.Buffer, text []byte, _ interface{}) {
	doubleSpace(out)
	out.WriteString("<p>")
	out.Write(text)
	out.WriteString("</p>\n")
}

func (r *htmlRenderer) table(out *bytes.Buffer, header []byte, body []byte, _ interface{}) {
	doubleSpace(out)
	out.WriteString("<table><thead>\n")
	out.Write(header)
	out.WriteString("</thead><tbody>\n")
	out.Write(body)
	out.WriteString("</tbody></table>\n")
}

func (r *htmlRenderer) tableRow(out *bytes.Buffer, text []byte, _ interface{}) {
	out.WriteString("<tr>\n")
	out.Write(text)
	out.WriteString("</tr>\n")
}

func (r *htmlRenderer) tableCell(out *bytes.Buffer, text []byte, flags CellAlignFlags, _ interface{}) {
	tag := "td"
	if flags&TableHeaderCell != 0 {
		tag = "th"
	}
	out.WriteByte('<')
	out.WriteString(tag)
	switch flags & TableAlignmentCenter {
	case TableAlignmentLeft:
		out.WriteString(" align=\"left\"")
	case TableAlignmentRight:
		out.WriteString(" align=\"right\"")
	case TableAlignmentCenter:
		out.WriteString(" align=\"center\"")
	}
	out.WriteByte('>')
	out.Write(text)
	out.WriteString("</" + tag + ">\n")
}

func (r *htmlRenderer) autoLink(out *bytes.Buffer, link []byte, kind LinkType, _ interface{}) int {
	if r.flags&SafeLink != 0 && !isSafeLink(link) && kind != LinkTypeEmail {
		// mark it but don't link it: the URL is not trusted
		out.WriteString("<tt>")
		attrEscape(out, link)
		out.WriteString("</tt>")
		return 1
	}

	out.WriteString("<a href=\"")
	if kind == LinkTypeEmail {
		out.WriteString("mailto:")
	}
	attrEscape(out, link)
	out.WriteString("\">")

	// Pretty print: if the URL carries a mailto: scheme, don't show it
	// in the link text.
	if bytes.HasPrefix(link, []byte("mailto:")) {
		attrEscape(out, link[len("mailto:"):])
	} else {
		attrEscape(out, link)
	}
	out.WriteString("</a>")
	return 1
}

func (r *htmlRenderer) codeSpan(out *bytes.Buffer, text []byte, _ interface{}) int {
	out.WriteString("<code>")
	attrEscape(out, text)
	out.WriteString("</code>")
	return 1
}

func (r *htmlRenderer) doubleEmphasis(out *bytes.Buffer, text []byte, _ interface{}) int {
	if len(text) == 0 {
		return 0
	}
	out.WriteString("<strong>")
	out.Write(text)
	out.WriteString("</strong>")
	return 1
}

func (r *htmlRenderer) emphasis(out *bytes.Buffer, text []byte, _ interface{}) int {
	if len(text) == 0 {
		return 0
	}
	out.WriteString("<em>")
	out.Write(text)
	out.WriteString("</em>")
	return 1
}

func (r *htmlRenderer) image(out *bytes.Buffer, link []byte, title []byte, alt []byte, _ interface{}) int {
	if r.flags&SkipImages != 0 {
		return 1
	}

	out.WriteString("<img src=\"")
	attrEscape(out, link)
	out.WriteString("\" alt=\"")
	attrEscape(out, alt)
	if len(title) > 0 {
		out.WriteString("\" title=\"")
		attrEscape(out, title)
	}
	out.WriteString("\"")
	out.WriteString(r.closeTag)
	return 1
}

func (r *htmlRenderer) lineBreak(out *bytes.Buffer, _ interface{}) int {
	out.WriteString("<br")
	out.WriteString(r.closeTag)
	out.WriteByte('\n')
	return 1
}

func (r *htmlRenderer) link(out *bytes.Buffer, link []byte, title []byte, content []byte, _ interface{}) int {
	if r.flags&SkipLinks != 0 {
		// write the link text out but don't link it
		out.Write(content)
		return 1
	}
	if r.flags&SafeLink != 0 && !isSafeLink(link) {
		out.WriteString("<tt>")
		out.Write(content)
		out.WriteString("</tt>")
		return 1
	}

	out.WriteString("<a href=\"")
	attrEscape(out, link)
	if len(title) > 0 {
		out.WriteString("\" title=\"")
		attrEscape(out, title)
	}
	out.WriteString("\">")
	out.Write(content)
	out.WriteString("</a>")
	return 1
}

func (r *htmlRenderer) rawHTMLTag(out *bytes.Buffer, tag []byte, _ interface{}) int {
	if r.flags&SkipHTML != 0 {
		return 1
	}
	out.Write(tag)
	return 1
}

func (r *htmlRenderer) tripleEmphasis(out *bytes.Buffer, text []byte, _ interface{}) int {
	if len(text) == 0 {
		return 0
	}
	out.WriteString("<strong><em>")
	out.Write(text)
	out.WriteString("</em></strong>")
	return 1
}

func (r *htmlRenderer) strikeThrough(out *bytes.Buffer, text []byte, _ interface{}) int {
	if len(text) == 0 {
		return 0
	}
	out.WriteString("<del>")
	out.Write(text)
	out.WriteString("</del>")
	return 1
}

func (r *htmlRenderer) superscript(out *bytes.Buffer, text []byte, _ interface{}) int {
	if len(text) == 0 {
		return 0
	}
	out.WriteString("<sup>")
	out.Write(text)
	out.WriteString("</sup>")
	return 1
}

func (r *htmlRenderer) entity(out *bytes.Buffer, entity []byte, _ interface{}) {
	out.Write(entity)
}

func (r *htmlRenderer) normalText(out *bytes.Buffer, text []byte, _ interface{}) {
	if r.smartypants != nil {
		r.smartypants.process(out, text)
		return
	}
	attrEscape(out, text)
}

func (r *htmlRenderer) documentHeader(out *bytes.Buffer, _ interface{}) {
	if r.flags&CompletePage == 0 {
		return
	}

	ending := ""
	if r.flags&UseXHTML != 0 {
		out.WriteString("<!DOCTYPE html PUBLIC \"-//W3C//DTD XHTML 1.0 Transitional//EN\" ")
		out.WriteString("\"http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd\">\n")
		out.WriteString("<html xmlns=\"http://www.w3.org/1999/xhtml\">\n")
		ending = " /"
	} else {
		out.WriteString("<!DOCTYPE html>\n")
		out.WriteString("<html>\n")
	}
	out.WriteString("<head>\n")
	out.WriteString("  <title>")
	attrEscape(out, []byte(r.title))
	out.WriteString("</title>\n")
	fmt.Fprintf(out, "  <meta name=\"GENERATOR\" content=\"press markdown processor v%s\"%s>\n", Version, ending)
	fmt.Fprintf(out, "  <meta charset=\"utf-8\"%s>\n", ending)
	if r.css != "" {
		out.WriteString("  <link rel=\"stylesheet\" type=\"text/css\" href=\"")
		attrEscape(out, []byte(r.css))
		fmt.Fprintf(out, "\"%s>\n", ending)
	}
	out.WriteString("</head>\n")
	out.WriteString("<body>\n")
}

func (r *htmlRenderer) documentFooter(out *bytes.Buffer, _ interface{}) {
	if r.flags&CompletePage == 0 {
		return
	}
	out.WriteString("\n</body>\n</html>\n")
}
