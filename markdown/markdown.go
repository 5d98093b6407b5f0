// Package markdown implements a Markdown processor in the Sundown dialect.
//
// Parsing happens in two passes: the first pass collects link reference
// definitions and normalizes the input (tab expansion, line endings), the
// second pass walks the normalized text with a block-level recognizer that
// hands leaf content to a byte-dispatched inline recognizer. Rendering is
// driven entirely through the Renderer callback table, so any output format
// can be produced; an HTML renderer is provided in this package.
package markdown

import (
	"bytes"
	"unicode/utf8"
)

// Version is the package version. It appears in the generator meta tag when
// the HTML renderer is configured to emit complete pages.
const Version = "1.1.0"

// VersionInfo returns the major, minor and revision components of Version.
func VersionInfo() (major, minor, revision int) {
	return 1, 1, 0
}

// Extensions is a bitwise or'ed collection of enabled parser extensions.
type Extensions int

// These are the supported markdown parsing extensions.
// OR these values together to select multiple extensions.
const (
	NoExtensions    Extensions = 0
	NoIntraEmphasis Extensions = 1 << iota // Ignore emphasis markers inside words
	Tables                                 // Parse tables
	FencedCode                             // Parse fenced code blocks
	Autolink                               // Detect embedded URLs that are not explicitly marked
	Strikethrough                          // Strikethrough text using ~~test~~
	SpaceHeaders                           // Require a space between the # and the header text
	Superscript                            // Superscript text using ^caret
	LaxSpacing                             // Allow blocks to interrupt paragraphs without a blank line

	// CommonExtensions is the set most renderers want enabled.
	CommonExtensions = NoIntraEmphasis | Tables | FencedCode | Autolink |
		Strikethrough | SpaceHeaders
)

// LinkType classifies an autolink for the AutoLink callback.
type LinkType int

// Only a single one of these values is passed to the AutoLink callback.
const (
	LinkTypeNotAutolink LinkType = iota
	LinkTypeNormal
	LinkTypeEmail
)

// ListType contains bitwise or'ed flags for the List and ListItem callbacks.
type ListType int

// Possible flag values for the List and ListItem callbacks.
const (
	ListTypeOrdered       ListType = 1 << 0
	ListItemContainsBlock ListType = 1 << 1
	ListItemEndOfList     ListType = 1 << 3
)

// CellAlignFlags holds the alignment and header flags of a table cell.
type CellAlignFlags int

// The two low bits form the alignment; the header bit marks cells that
// belong to the table header row.
const (
	TableAlignmentLeft   CellAlignFlags = 1 << 0
	TableAlignmentRight  CellAlignFlags = 1 << 1
	TableAlignmentCenter                = TableAlignmentLeft | TableAlignmentRight
	TableHeaderCell      CellAlignFlags = 1 << 2
)

// The size of a tab stop.
const tabSize = 4

// These are the tags that are recognized as HTML block tags.
// Any of these can be included in markdown text without special escaping.
var blockTags = map[string]bool{
	"p":          true,
	"dl":         true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"ol":         true,
	"ul":         true,
	"del":        true,
	"div":        true,
	"ins":        true,
	"pre":        true,
	"form":       true,
	"math":       true,
	"table":      true,
	"iframe":     true,
	"script":     true,
	"fieldset":   true,
	"noscript":   true,
	"blockquote": true,
}

// Renderer defines the rendering interface.
// A series of callback functions are registered to form a complete renderer.
// A single Opaque value field is provided, and that value is handed back to
// each callback. Leaving a field nil suppresses rendering that type of
// output except where noted.
//
// This is mostly of interest if you are implementing a new rendering format.
// Most users will use NewHTMLRenderer to fill in this structure.
type Renderer struct {
	// Block-level callbacks---nil skips the block.
	BlockCode  func(out *bytes.Buffer, text []byte, lang string, opaque interface{})
	BlockQuote func(out *bytes.Buffer, text []byte, opaque interface{})
	BlockHTML  func(out *bytes.Buffer, text []byte, opaque interface{})
	Header     func(out *bytes.Buffer, text []byte, level int, opaque interface{})
	HRule      func(out *bytes.Buffer, opaque interface{})
	List       func(out *bytes.Buffer, text []byte, flags ListType, opaque interface{})
	ListItem   func(out *bytes.Buffer, text []byte, flags ListType, opaque interface{})
	Paragraph  func(out *bytes.Buffer, text []byte, opaque interface{})
	Table      func(out *bytes.Buffer, header []byte, body []byte, opaque interface{})
	TableRow   func(out *bytes.Buffer, text []byte, opaque interface{})
	TableCell  func(out *bytes.Buffer, text []byte, flags CellAlignFlags, opaque interface{})

	// Span-level callbacks---nil or a 0 return prints the span verbatim.
	AutoLink       func(out *bytes.Buffer, link []byte, kind LinkType, opaque interface{}) int
	CodeSpan       func(out *bytes.Buffer, text []byte, opaque interface{}) int
	DoubleEmphasis func(out *bytes.Buffer, text []byte, opaque interface{}) int
	Emphasis       func(out *bytes.Buffer, text []byte, opaque interface{}) int
	Image          func(out *bytes.Buffer, link []byte, title []byte, alt []byte, opaque interface{}) int
	LineBreak      func(out *bytes.Buffer, opaque interface{}) int
	Link           func(out *bytes.Buffer, link []byte, title []byte, content []byte, opaque interface{}) int
	RawHTMLTag     func(out *bytes.Buffer, tag []byte, opaque interface{}) int
	TripleEmphasis func(out *bytes.Buffer, text []byte, opaque interface{}) int
	StrikeThrough  func(out *bytes.Buffer, text []byte, opaque interface{}) int
	Superscript    func(out *bytes.Buffer, text []byte, opaque interface{}) int

	// Low-level callbacks---nil copies input directly into the output.
	Entity     func(out *bytes.Buffer, entity []byte, opaque interface{})
	NormalText func(out *bytes.Buffer, text []byte, opaque interface{})

	// Header and footer.
	DocumentHeader func(out *bytes.Buffer, opaque interface{})
	DocumentFooter func(out *bytes.Buffer, opaque interface{})

	// User data---passed back to every callback.
	Opaque interface{}
}

// Callback functions for inline parsing. One such function is registered
// for each byte that triggers a response when parsing inline data.
type inlineParser func(out *bytes.Buffer, p *Parser, data []byte, offset int) int

// The default initial sizes of scratch buffers, by scope.
const (
	blockBufUnit = 256
	spanBufUnit  = 64
)

// workPool caches scratch buffers with stack discipline: an acquire either
// reuses the buffer just above the active mark or allocates a fresh one, and
// releases must mirror acquires exactly. Buffers are kept for the lifetime
// of the parser and reused across documents.
type workPool struct {
	bufs   []*bytes.Buffer
	active int
	unit   int
}

func (wp *workPool) acquire() *bytes.Buffer {
	if wp.active < len(wp.bufs) {
		b := wp.bufs[wp.active]
		wp.active++
		b.Reset()
		return b
	}
	b := new(bytes.Buffer)
	b.Grow(wp.unit)
	wp.bufs = append(wp.bufs, b)
	wp.active++
	return b
}

func (wp *workPool) release() {
	wp.active--
}

// Parser holds the configured callback table, the reference table and the
// scratch-buffer pools. A Parser may be reused for any number of documents,
// but never concurrently: it owns mutable state that is reset at the start
// of each Render call.
type Parser struct {
	mk         *Renderer
	refs       [refTableSize]*reference
	inline     [256]inlineParser
	ext        Extensions
	maxNesting int
	insideLink bool

	blockBufs workPool
	spanBufs  workPool
}

// NewParser constructs a reusable parser for the given extension set and
// renderer. A maxNesting of 0 selects the default depth of 16. A nil
// renderer yields a parser whose Render always returns nil.
func NewParser(extensions Extensions, maxNesting int, renderer *Renderer) *Parser {
	if maxNesting <= 0 {
		maxNesting = 16
	}
	p := &Parser{
		mk:         renderer,
		ext:        extensions,
		maxNesting: maxNesting,
		blockBufs:  workPool{unit: blockBufUnit},
		spanBufs:   workPool{unit: spanBufUnit},
	}
	if renderer == nil {
		return p
	}

	// Register the inline triggers. Most bytes map to a recognizer only when
	// the renderer has a callback for the result; '<', '\\' and '&' are
	// always registered, and the autolink bytes are gated on Link.
	if renderer.Emphasis != nil || renderer.DoubleEmphasis != nil || renderer.TripleEmphasis != nil {
		p.inline['*'] = inlineEmphasis
		p.inline['_'] = inlineEmphasis
		if extensions&Strikethrough != 0 {
			p.inline['~'] = inlineEmphasis
		}
	}
	if renderer.CodeSpan != nil {
		p.inline['`'] = inlineCodeSpan
	}
	if renderer.LineBreak != nil {
		p.inline['\n'] = inlineLineBreak
	}
	if renderer.Image != nil || renderer.Link != nil {
		p.inline['['] = inlineLink
	}
	p.inline['<'] = inlineLAngle
	p.inline['\\'] = inlineEscape
	p.inline['&'] = inlineEntity
	if extensions&Autolink != 0 && renderer.Link != nil {
		p.inline[':'] = inlineAutoLinkURL
		p.inline['@'] = inlineAutoLinkEmail
		p.inline['w'] = inlineAutoLinkWWW
	}
	if extensions&Superscript != 0 && renderer.Superscript != nil {
		p.inline['^'] = inlineSuperscript
	}
	return p
}

// nestingExceeded reports whether another recognizer may recurse. The bound
// counts live scratch buffers across both pools, which tracks the combined
// block and span recursion depth.
func (p *Parser) nestingExceeded() bool {
	return p.blockBufs.active+p.spanBufs.active > p.maxNesting
}

// Render parses the input and renders it through the parser's callback
// table, returning the rendered bytes. The reference table is cleared at
// the start of every call, so a parser can be reused sequentially.
func (p *Parser) Render(input []byte) []byte {
	if p.mk == nil {
		return nil
	}
	p.refs = [refTableSize]*reference{}
	p.insideLink = false

	// skip a possible UTF-8 BOM
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}

	first := p.firstPass(input)
	out := p.secondPass(first)

	if p.blockBufs.active != 0 || p.spanBufs.active != 0 {
		panic("markdown: scratch buffers not released at end of render")
	}
	return out
}

// first pass:
// - extract references
// - expand tabs
// - normalize newlines
// - copy everything else
func (p *Parser) firstPass(input []byte) []byte {
	var out bytes.Buffer
	beg, end := 0, 0
	for beg < len(input) { // iterate over lines
		if end = p.isReference(input[beg:]); end > 0 {
			beg += end
		} else { // skip to the next line
			end = beg
			for end < len(input) && input[end] != '\n' && input[end] != '\r' {
				end++
			}

			// add the line body if present
			if end > beg {
				expandTabs(&out, input[beg:end])
			}
			out.WriteByte('\n')

			if end < len(input) && input[end] == '\r' {
				end++
			}
			if end < len(input) && input[end] == '\n' {
				end++
			}
			beg = end
		}
	}
	return out.Bytes()
}

// second pass: actual rendering
func (p *Parser) secondPass(input []byte) []byte {
	var out bytes.Buffer
	if p.mk.DocumentHeader != nil {
		p.mk.DocumentHeader(&out, p.mk.Opaque)
	}

	if len(input) > 0 {
		p.parseBlock(&out, input)
	}

	if p.mk.DocumentFooter != nil {
		p.mk.DocumentFooter(&out, p.mk.Opaque)
	}
	return out.Bytes()
}

// Markdown parses and renders a block of markdown-encoded text with the
// given renderer and extension set. It is the one-shot form of
// NewParser + Render.
func Markdown(input []byte, renderer *Renderer, extensions Extensions) []byte {
	return NewParser(extensions, 0, renderer).Render(input)
}

// MarkdownBasic renders standard markdown with no extensions to HTML.
func MarkdownBasic(input []byte) []byte {
	renderer := NewHTMLRenderer(HTMLRendererParameters{Flags: UseXHTML})
	return Markdown(input, renderer, NoExtensions)
}

// MarkdownCommon renders markdown to HTML with the most useful extensions
// and typographic substitution enabled.
func MarkdownCommon(input []byte) []byte {
	renderer := NewHTMLRenderer(HTMLRendererParameters{
		Flags: UseXHTML | Smartypants | SmartypantsFractions | SmartypantsLatexDashes,
	})
	return Markdown(input, renderer, CommonExtensions)
}

//
// Link references
//
// This section implements support for references that (usually) appear
// as footnotes in a document, and can be referenced anywhere in the document.
// The basic format is:
//
//    [1]: http://www.google.com/ "Google"
//    [2]: http://www.github.com/ "Github"
//
// Anywhere in the document, the reference can be linked by referring to its
// label, i.e., 1 and 2 in this example, as in:
//
//    This library is hosted on [Github][2], a git hosting site.

// The reference table is a fixed array of bucket chains. Lookups walk the
// chain comparing fingerprints only; two labels hashing to the same
// fingerprint alias each other. That matches the behavior of the original
// processor and is kept for compatibility.
const refTableSize = 8

// A parsed reference definition. Stored at the head of its bucket chain, so
// the latest definition of a label wins a lookup.
type reference struct {
	fingerprint uint32
	link        []byte
	title       []byte
	next        *reference
}

// hashLabel fingerprints a reference label, case-insensitively.
func hashLabel(label []byte) uint32 {
	var hash uint32
	for _, b := range label {
		hash = (hash << 6) + (hash << 16) - hash + uint32(tolower(b))
	}
	return hash
}

func (p *Parser) addRef(label, link, title []byte) {
	ref := &reference{
		fingerprint: hashLabel(label),
		link:        link,
		title:       title,
	}
	bucket := ref.fingerprint % refTableSize
	ref.next = p.refs[bucket]
	p.refs[bucket] = ref
}

func (p *Parser) lookupRef(label []byte) *reference {
	fingerprint := hashLabel(label)
	for ref := p.refs[fingerprint%refTableSize]; ref != nil; ref = ref.next {
		if ref.fingerprint == fingerprint {
			return ref
		}
	}
	return nil
}

// isReference checks whether data starts with a reference link definition.
// If so, it is parsed and stored in the reference table, and the number of
// bytes to skip past it is returned; zero means the first line is not a
// reference.
func (p *Parser) isReference(data []byte) int {
	// up to 3 optional leading spaces
	if len(data) < 4 {
		return 0
	}
	i := 0
	for i < 3 && data[i] == ' ' {
		i++
	}

	// id part: anything but a newline between brackets
	if data[i] != '[' {
		return 0
	}
	i++
	idOffset := i
	for i < len(data) && data[i] != '\n' && data[i] != '\r' && data[i] != ']' {
		i++
	}
	if i >= len(data) || data[i] != ']' {
		return 0
	}
	idEnd := i

	// spacer: colon (space | tab)* newline? (space | tab)*
	i++
	if i >= len(data) || data[i] != ':' {
		return 0
	}
	i++
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	if i < len(data) && (data[i] == '\n' || data[i] == '\r') {
		i++
		if i < len(data) && data[i] == '\n' && data[i-1] == '\r' {
			i++
		}
	}
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	if i >= len(data) {
		return 0
	}

	// link: whitespace-free sequence, optionally between angle brackets
	if data[i] == '<' {
		i++
	}
	linkOffset := i
	for i < len(data) && data[i] != ' ' && data[i] != '\t' && data[i] != '\n' && data[i] != '\r' {
		i++
	}
	linkEnd := i
	if data[linkEnd-1] == '>' {
		linkEnd--
	}

	// optional spacer: (space | tab)* (newline | '\'' | '"' | '(' )
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	if i < len(data) && data[i] != '\n' && data[i] != '\r' && data[i] != '\'' && data[i] != '"' && data[i] != '(' {
		return 0
	}

	// compute end-of-line
	lineEnd := 0
	if i >= len(data) || data[i] == '\r' || data[i] == '\n' {
		lineEnd = i
	}
	if i+1 < len(data) && data[i] == '\r' && data[i+1] == '\n' {
		lineEnd++
	}

	// optional (space|tab)* spacer after a newline
	if lineEnd > 0 {
		i = lineEnd + 1
		for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
			i++
		}
	}

	// optional title: any non-newline sequence enclosed in '"( alone on its line
	titleOffset, titleEnd := 0, 0
	if i+1 < len(data) && (data[i] == '\'' || data[i] == '"' || data[i] == '(') {
		i++
		titleOffset = i

		// look for EOL
		for i < len(data) && data[i] != '\n' && data[i] != '\r' {
			i++
		}
		if i+1 < len(data) && data[i] == '\n' && data[i+1] == '\r' {
			titleEnd = i + 1
		} else {
			titleEnd = i
		}

		// step back
		i--
		for i > titleOffset && (data[i] == ' ' || data[i] == '\t') {
			i--
		}
		if i > titleOffset && (data[i] == '\'' || data[i] == '"' || data[i] == ')') {
			lineEnd = titleEnd
			titleEnd = i
		}
	}
	if lineEnd == 0 { // garbage after the link
		return 0
	}

	// a valid ref has been found
	p.addRef(data[idOffset:idEnd], data[linkOffset:linkEnd], data[titleOffset:titleEnd])
	return lineEnd
}

//
//
// Miscellaneous helper functions
//
//

// Test if a character is a punctuation symbol.
// Taken from a private function in regexp in the stdlib.
func ispunct(c byte) bool {
	for _, r := range []byte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~") {
		if c == r {
			return true
		}
	}
	return false
}

// Test if a character is a whitespace character.
func isspace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// Test if a character is an ASCII letter.
func isletter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Test if a character is a letter or a digit.
func isalnum(c byte) bool {
	return (c >= '0' && c <= '9') || isletter(c)
}

func tolower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

// expandTabs replaces tab characters with spaces, aligning to the next
// tabSize column. Columns count runes rather than bytes.
func expandTabs(out *bytes.Buffer, line []byte) {
	// first, check for common cases: no tabs, or only tabs at beginning of line
	i, prefix := 0, 0
	slowcase := false
	for i = 0; i < len(line); i++ {
		if line[i] == '\t' {
			if prefix == i {
				prefix++
			} else {
				slowcase = true
				break
			}
		}
	}

	// no need to decode runes if all tabs are at the beginning of the line
	if !slowcase {
		for i = 0; i < prefix*tabSize; i++ {
			out.WriteByte(' ')
		}
		out.Write(line[prefix:])
		return
	}

	// the slow case: we need to count runes to figure out how
	// many spaces to insert for each tab
	column := 0
	i = 0
	for i < len(line) {
		start := i
		for i < len(line) && line[i] != '\t' {
			_, size := utf8.DecodeRune(line[i:])
			i += size
			column++
		}

		if i > start {
			out.Write(line[start:i])
		}

		if i >= len(line) {
			break
		}

		for {
			out.WriteByte(' ')
			column++
			if column%tabSize == 0 {
				break
			}
		}

		i++
	}
}
