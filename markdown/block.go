// Functions to parse block-level elements.

package markdown

import (
	"bytes"
	"strings"
)

// parseBlock parses one run of normalized input. It assumes the input ends
// with a newline. This is called recursively for blockquote and list item
// interiors; the recursion depth is bounded by the scratch-pool counters.
func (p *Parser) parseBlock(out *bytes.Buffer, data []byte) {
	if p.nestingExceeded() {
		return
	}

	// parse out one block-level construct at a time
	for len(data) > 0 {
		// prefixed header:
		//
		// # Header 1
		// ## Header 2
		if p.isPrefixHeader(data) {
			data = data[p.prefixHeader(out, data):]
			continue
		}

		// block of preformatted HTML:
		//
		// <div>
		//     ...
		// </div>
		if data[0] == '<' {
			if i := p.html(out, data, true); i > 0 {
				data = data[i:]
				continue
			}
		}

		// blank lines.  note: returns the # of bytes to skip
		if i := p.isEmpty(data); i > 0 {
			data = data[i:]
			continue
		}

		// horizontal rule:
		//
		// ------
		// or
		// ******
		// or
		// ______
		if p.isHRule(data) {
			if p.mk.HRule != nil {
				p.mk.HRule(out, p.mk.Opaque)
			}
			var i int
			for i = 0; i < len(data) && data[i] != '\n'; i++ {
			}
			data = data[i:]
			continue
		}

		// fenced code block:
		//
		// ``` go
		// func fact(n int) int {
		//     if n <= 1 {
		//         return n
		//     }
		//     return n * fact(n-1)
		// }
		// ```
		if p.ext&FencedCode != 0 {
			if i := p.fencedCode(out, data); i > 0 {
				data = data[i:]
				continue
			}
		}

		// table:
		//
		// Name  | Age | Phone
		// ------|-----|---------
		// Bob   | 31  | 555-1234
		// Alice | 27  | 555-4321
		if p.ext&Tables != 0 {
			if i := p.table(out, data); i > 0 {
				data = data[i:]
				continue
			}
		}

		// block quote:
		//
		// > A big quote I found somewhere
		// > on the web
		if p.quotePrefix(data) > 0 {
			data = data[p.quote(out, data):]
			continue
		}

		// indented code block:
		//
		//     func max(a, b int) int {
		//         if a > b {
		//             return a
		//         }
		//         return b
		//     }
		if p.codePrefix(data) > 0 {
			data = data[p.blockCode(out, data):]
			continue
		}

		// an itemized/unordered list:
		//
		// * Item 1
		// * Item 2
		//
		// also works with + or -
		if p.uliPrefix(data) > 0 {
			data = data[p.list(out, data, 0):]
			continue
		}

		// a numbered/ordered list:
		//
		// 1. Item 1
		// 2. Item 2
		if p.oliPrefix(data) > 0 {
			data = data[p.list(out, data, ListTypeOrdered):]
			continue
		}

		// anything else must look like a normal paragraph
		// note: this finds underlined headers, too
		data = data[p.paragraph(out, data):]
	}
}

func (p *Parser) isPrefixHeader(data []byte) bool {
	if data[0] != '#' {
		return false
	}
	if p.ext&SpaceHeaders != 0 {
		level := 0
		for level < 6 && level < len(data) && data[level] == '#' {
			level++
		}
		if level < len(data) && data[level] != ' ' {
			return false
		}
	}
	return true
}

func (p *Parser) prefixHeader(out *bytes.Buffer, data []byte) int {
	level := 0
	for level < 6 && level < len(data) && data[level] == '#' {
		level++
	}
	i := level
	for i < len(data) && data[i] == ' ' {
		i++
	}
	end := i
	for end < len(data) && data[end] != '\n' {
		end++
	}
	skip := end

	// strip trailing hashes and the spaces before them
	for end > i && data[end-1] == '#' {
		end--
	}
	for end > i && data[end-1] == ' ' {
		end--
	}

	if end > i {
		work := p.spanBufs.acquire()
		p.parseInline(work, data[i:end])
		if p.mk.Header != nil {
			p.mk.Header(out, work.Bytes(), level, p.mk.Opaque)
		}
		p.spanBufs.release()
	}
	return skip
}

func (p *Parser) isEmpty(data []byte) int {
	// it is okay to call isEmpty on an empty buffer
	if len(data) == 0 {
		return 0
	}

	var i int
	for i = 0; i < len(data) && data[i] != '\n'; i++ {
		if data[i] != ' ' && data[i] != '\t' {
			return 0
		}
	}
	if i < len(data) && data[i] == '\n' {
		i++
	}
	return i
}

func (p *Parser) isHRule(data []byte) bool {
	i := 0

	// skip up to three spaces
	for i < 3 && i < len(data) && data[i] == ' ' {
		i++
	}
	if i >= len(data) {
		return false
	}

	// look at the hrule char
	if data[i] != '*' && data[i] != '-' && data[i] != '_' {
		return false
	}
	c := data[i]

	// the whole line must be the char or whitespace
	n := 0
	for i < len(data) && data[i] != '\n' {
		switch {
		case data[i] == c:
			n++
		case data[i] != ' ':
			return false
		}
		i++
	}

	return n >= 3
}

// isCodeFence checks for a code fence line: at least three backticks or
// tildes of the same kind, preceded by up to three spaces and optionally
// followed by a language token (plain or in a { } block). It returns the
// number of bytes to the start of the content, the fence character, and the
// language token if requested.
func (p *Parser) isCodeFence(data []byte, syntax *string) (skip int, marker byte) {
	i := 0
	for i < 3 && i < len(data) && data[i] == ' ' {
		i++
	}
	if i+2 >= len(data) || (data[i] != '`' && data[i] != '~') {
		return 0, 0
	}
	c := data[i]

	n := 0
	for i < len(data) && data[i] == c {
		i++
		n++
	}
	if n < 3 {
		return 0, 0
	}

	if syntax != nil {
		for i < len(data) && data[i] == ' ' {
			i++
		}
		synStart := i
		if i < len(data) && data[i] == '{' {
			i++
			synStart++
			for i < len(data) && data[i] != '}' && data[i] != '\n' {
				i++
			}
			if i >= len(data) || data[i] != '}' {
				return 0, 0
			}
			synEnd := i
			// strip whitespace at the beginning and the end of the {} block
			for synStart < synEnd && isspace(data[synStart]) {
				synStart++
			}
			for synEnd > synStart && isspace(data[synEnd-1]) {
				synEnd--
			}
			*syntax = string(data[synStart:synEnd])
			i++
		} else {
			for i < len(data) && !isspace(data[i]) {
				i++
			}
			*syntax = string(data[synStart:i])
		}
	}

	// the rest of the line must be blank
	for i < len(data) && data[i] != '\n' {
		if !isspace(data[i]) {
			return 0, 0
		}
		i++
	}
	return i + 1, c
}

func (p *Parser) fencedCode(out *bytes.Buffer, data []byte) int {
	var lang string
	beg, marker := p.isCodeFence(data, &lang)
	if beg == 0 {
		return 0
	}

	work := p.blockBufs.acquire()
	for beg < len(data) {
		fenceEnd, closeMarker := p.isCodeFence(data[beg:], nil)
		if fenceEnd != 0 && closeMarker == marker {
			beg += fenceEnd
			break
		}

		end := beg
		for end < len(data) && data[end] != '\n' {
			end++
		}
		if end < len(data) {
			end++
		}
		work.Write(data[beg:end])
		beg = end
	}

	if n := work.Len(); n == 0 || work.Bytes()[n-1] != '\n' {
		work.WriteByte('\n')
	}

	if p.mk.BlockCode != nil {
		p.mk.BlockCode(out, work.Bytes(), lang, p.mk.Opaque)
	}
	p.blockBufs.release()
	return beg
}

func (p *Parser) table(out *bytes.Buffer, data []byte) int {
	header := p.blockBufs.acquire()
	i, columns := p.tableHeader(header, data)
	if i == 0 {
		p.blockBufs.release()
		return 0
	}

	body := p.blockBufs.acquire()
	for i < len(data) {
		pipes, rowStart := 0, i
		for ; i < len(data) && data[i] != '\n'; i++ {
			if data[i] == '|' {
				pipes++
			}
		}
		if pipes == 0 || i == len(data) {
			i = rowStart
			break
		}
		i++
		p.tableRow(body, data[rowStart:i], columns, 0)
	}

	if p.mk.Table != nil {
		p.mk.Table(out, header.Bytes(), body.Bytes(), p.mk.Opaque)
	}
	p.blockBufs.release()
	p.blockBufs.release()
	return i
}

// check if the specified position is preceded by an odd number of backslashes
func isBackslashEscaped(data []byte, i int) bool {
	backslashes := 0
	for i-backslashes-1 >= 0 && data[i-backslashes-1] == '\\' {
		backslashes++
	}
	return backslashes&1 == 1
}

// tableHeader parses the header line and the alignment underline. On a
// match it renders the header row into out and returns the byte count past
// the underline plus the per-column alignment flags.
func (p *Parser) tableHeader(out *bytes.Buffer, data []byte) (size int, columns []CellAlignFlags) {
	i, pipes := 0, 0
	for i = 0; i < len(data) && data[i] != '\n'; i++ {
		if data[i] == '|' && !isBackslashEscaped(data, i) {
			pipes++
		}
	}
	if i == len(data) || pipes == 0 {
		return 0, nil
	}
	headerEnd := i

	// column count ignores pipes at beginning or end of line
	if data[0] == '|' {
		pipes--
	}
	if i > 2 && data[i-1] == '|' && !isBackslashEscaped(data, i-1) {
		pipes--
	}
	columns = make([]CellAlignFlags, pipes+1)

	// parse the header underline
	i++
	if i < len(data) && data[i] == '|' && !isBackslashEscaped(data, i) {
		i++
	}
	underEnd := i
	for underEnd < len(data) && data[underEnd] != '\n' {
		underEnd++
	}

	col := 0
	for ; i < underEnd && col < len(columns); col++ {
		dashes := 0
		for i < underEnd && data[i] == ' ' {
			i++
		}
		if i < underEnd && data[i] == ':' {
			i++
			columns[col] |= TableAlignmentLeft
			dashes++
		}
		for i < underEnd && data[i] == '-' {
			i++
			dashes++
		}
		if i < underEnd && data[i] == ':' {
			i++
			columns[col] |= TableAlignmentRight
			dashes++
		}
		for i < underEnd && data[i] == ' ' {
			i++
		}
		if i < underEnd && data[i] != '|' {
			break
		}
		if dashes < 3 {
			break
		}
		i++
	}
	if col < len(columns) {
		return 0, nil
	}

	p.tableRow(out, data[:headerEnd], columns, TableHeaderCell)
	size = underEnd + 1
	return size, columns
}

func (p *Parser) tableRow(out *bytes.Buffer, data []byte, columns []CellAlignFlags, headerFlag CellAlignFlags) {
	row := p.spanBufs.acquire()
	i, col := 0, 0

	if i < len(data) && data[i] == '|' && !isBackslashEscaped(data, i) {
		i++
	}

	for col = 0; col < len(columns) && i < len(data); col++ {
		for i < len(data) && data[i] == ' ' {
			i++
		}
		cellStart := i
		for i < len(data) && (data[i] != '|' || isBackslashEscaped(data, i)) && data[i] != '\n' {
			i++
		}
		cellEnd := i

		// skip the end-of-cell marker, possibly taking us past end of buffer
		i++

		for cellEnd > cellStart && data[cellEnd-1] == ' ' {
			cellEnd--
		}

		cell := p.spanBufs.acquire()
		p.parseInline(cell, data[cellStart:cellEnd])
		if p.mk.TableCell != nil {
			p.mk.TableCell(row, cell.Bytes(), columns[col]|headerFlag, p.mk.Opaque)
		}
		p.spanBufs.release()
	}

	// pad it out with empty columns to get the right number
	for ; col < len(columns); col++ {
		if p.mk.TableCell != nil {
			p.mk.TableCell(row, nil, columns[col]|headerFlag, p.mk.Opaque)
		}
	}

	// silently ignore rows with too many cells
	if p.mk.TableRow != nil {
		p.mk.TableRow(out, row.Bytes(), p.mk.Opaque)
	}
	p.spanBufs.release()
}

// returns blockquote prefix length
func (p *Parser) quotePrefix(data []byte) int {
	i := 0
	for i < 3 && i < len(data) && data[i] == ' ' {
		i++
	}
	if i < len(data) && data[i] == '>' {
		if i+1 < len(data) && data[i+1] == ' ' {
			return i + 2
		}
		return i + 1
	}
	return 0
}

// blockquote ends with at least one blank line
// followed by something without a blockquote prefix
func (p *Parser) terminateBlockquote(data []byte, beg, end int) bool {
	if p.isEmpty(data[beg:]) <= 0 {
		return false
	}
	if end >= len(data) {
		return true
	}
	return p.quotePrefix(data[end:]) == 0 && p.isEmpty(data[end:]) == 0
}

// parse a blockquote fragment
func (p *Parser) quote(out *bytes.Buffer, data []byte) int {
	work := p.blockBufs.acquire()
	beg, end := 0, 0
	for beg < len(data) {
		end = beg
		// step over whole lines, collecting them
		for end < len(data) && data[end] != '\n' {
			end++
		}
		if end < len(data) && data[end] == '\n' {
			end++
		}
		if pre := p.quotePrefix(data[beg:]); pre > 0 {
			// skip the prefix
			beg += pre
		} else if p.terminateBlockquote(data, beg, end) {
			break
		}
		// this line is part of the blockquote
		work.Write(data[beg:end])
		beg = end
	}

	cooked := p.blockBufs.acquire()
	p.parseBlock(cooked, work.Bytes())
	if p.mk.BlockQuote != nil {
		p.mk.BlockQuote(out, cooked.Bytes(), p.mk.Opaque)
	}
	p.blockBufs.release()
	p.blockBufs.release()
	return end
}

// returns prefix length for block code
func (p *Parser) codePrefix(data []byte) int {
	if len(data) >= 4 && data[0] == ' ' && data[1] == ' ' && data[2] == ' ' && data[3] == ' ' {
		return 4
	}
	return 0
}

func (p *Parser) blockCode(out *bytes.Buffer, data []byte) int {
	work := p.blockBufs.acquire()

	beg, end := 0, 0
	for beg < len(data) {
		end = beg
		for end < len(data) && data[end] != '\n' {
			end++
		}
		if end < len(data) && data[end] == '\n' {
			end++
		}

		if pre := p.codePrefix(data[beg:end]); pre > 0 {
			beg += pre
		} else if p.isEmpty(data[beg:end]) == 0 {
			// non-empty, non-prefixed line breaks the pre
			break
		}

		if beg < end {
			// verbatim copy to the working buffer; escaping is left to
			// the BlockCode callback
			if p.isEmpty(data[beg:end]) > 0 {
				work.WriteByte('\n')
			} else {
				work.Write(data[beg:end])
			}
		}
		beg = end
	}

	// trim all the \n off the end of work
	workBytes := work.Bytes()
	n := len(workBytes)
	for n > 0 && workBytes[n-1] == '\n' {
		n--
	}
	work.Truncate(n)
	work.WriteByte('\n')

	if p.mk.BlockCode != nil {
		p.mk.BlockCode(out, work.Bytes(), "", p.mk.Opaque)
	}
	p.blockBufs.release()
	return beg
}

//
// HTML blocks
//

// html handles a block of raw HTML: an opening block-level tag through its
// matching close tag followed by a blank line, plus the comment and <hr>
// special cases. With doRender false it only measures, which is how the
// paragraph recognizer probes for an interrupting HTML block.
func (p *Parser) html(out *bytes.Buffer, data []byte, doRender bool) int {
	if len(data) < 2 || data[0] != '<' {
		return 0
	}

	curtag, tagfound := p.htmlFindTag(data[1:])

	// handle special cases
	if !tagfound {
		// check for an HTML comment
		if size := p.htmlComment(out, data, doRender); size > 0 {
			return size
		}
		// check for an <hr> tag
		if size := p.htmlHr(out, data, doRender); size > 0 {
			return size
		}
		return 0
	}

	// look for an unindented matching closing tag followed by a blank line
	var i, j int
	i = 1
	found := false
	for i < len(data) {
		i++
		for i < len(data) && !(data[i-1] == '\n' && data[i] == '<') {
			i++
		}
		if i+2+len(curtag) >= len(data) {
			break
		}
		j = p.htmlFindEnd(curtag, data[i:])
		if j > 0 {
			i += j
			found = true
			break
		}
	}

	// if not found, try a second pass looking for indented match,
	// but not if tag is "ins" or "del" (following original Markdown.pl)
	if !found && curtag != "ins" && curtag != "del" {
		i = 1
		for i < len(data) {
			i++
			for i < len(data) && !(data[i-1] == '<' && data[i] == '/') {
				i++
			}
			if i+2+len(curtag) >= len(data) {
				break
			}
			j = p.htmlFindEnd(curtag, data[i-1:])
			if j > 0 {
				i += j - 1
				found = true
				break
			}
		}
	}

	if !found {
		return 0
	}

	// the end of the block has been found
	if doRender && p.mk.BlockHTML != nil {
		// trim trailing newlines
		end := i
		for end > 0 && data[end-1] == '\n' {
			end--
		}
		p.mk.BlockHTML(out, data[:end], p.mk.Opaque)
	}
	return i
}

// HTML comment, lax form
func (p *Parser) htmlComment(out *bytes.Buffer, data []byte, doRender bool) int {
	if len(data) < 5 || data[1] != '!' || data[2] != '-' || data[3] != '-' {
		return 0
	}

	i := 5
	// scan for an end-of-comment marker, across lines if necessary
	for i < len(data) && !(data[i] == '>' && data[i-1] == '-' && data[i-2] == '-') {
		i++
	}
	i++

	// no end-of-comment marker
	if i >= len(data) {
		return 0
	}

	// needs to end with a blank line
	if j := p.isEmpty(data[i:]); j > 0 {
		size := i + j
		if doRender && p.mk.BlockHTML != nil {
			// trim trailing newlines
			end := size
			for end > 0 && data[end-1] == '\n' {
				end--
			}
			p.mk.BlockHTML(out, data[:end], p.mk.Opaque)
		}
		return size
	}
	return 0
}

// HR, which is the only self-closing block tag considered
func (p *Parser) htmlHr(out *bytes.Buffer, data []byte, doRender bool) int {
	if len(data) < 4 {
		return 0
	}
	if data[1] != 'h' && data[1] != 'H' {
		return 0
	}
	if data[2] != 'r' && data[2] != 'R' {
		return 0
	}

	i := 3
	for i < len(data) && data[i] != '>' && data[i] != '\n' {
		i++
	}
	if i < len(data) && data[i] == '>' {
		i++
		if j := p.isEmpty(data[i:]); j > 0 {
			size := i + j
			if doRender && p.mk.BlockHTML != nil {
				// trim trailing newlines
				end := size
				for end > 0 && data[end-1] == '\n' {
					end--
				}
				p.mk.BlockHTML(out, data[:end], p.mk.Opaque)
			}
			return size
		}
	}
	return 0
}

func (p *Parser) htmlFindTag(data []byte) (string, bool) {
	i := 0
	for i < len(data) && isalnum(data[i]) {
		i++
	}
	key := strings.ToLower(string(data[:i]))
	if blockTags[key] {
		return key, true
	}
	return "", false
}

// htmlFindEnd checks for a match against the given closing tag at the start
// of data, with only whitespace to the end of its line and (unless lax
// spacing is enabled) a blank line after it. Returns the length through the
// trailing blank, or 0 on no match.
func (p *Parser) htmlFindEnd(tag string, data []byte) int {
	closetag := []byte("</" + tag + ">")
	if !bytes.HasPrefix(data, closetag) {
		return 0
	}
	i := len(closetag)

	// check that the rest of the line is blank
	skip := p.isEmpty(data[i:])
	if skip == 0 {
		return 0
	}
	i += skip

	if i >= len(data) {
		return i
	}
	if p.ext&LaxSpacing != 0 {
		return i
	}
	if skip = p.isEmpty(data[i:]); skip == 0 {
		// following line must be blank
		return 0
	}
	return i + skip
}

//
// Lists
//

// returns unordered list item prefix
func (p *Parser) uliPrefix(data []byte) int {
	i := 0

	// start with up to 3 spaces
	for i < 3 && i < len(data) && data[i] == ' ' {
		i++
	}
	if i+1 >= len(data) {
		return 0
	}

	// need one of {'*', '+', '-'} followed by a space
	if (data[i] != '*' && data[i] != '+' && data[i] != '-') || data[i+1] != ' ' {
		return 0
	}
	return i + 2
}

// returns ordered list item prefix
func (p *Parser) oliPrefix(data []byte) int {
	i := 0

	// start with up to 3 spaces
	for i < 3 && i < len(data) && data[i] == ' ' {
		i++
	}

	// count the digits
	start := i
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if start == i || i+1 >= len(data) {
		return 0
	}

	// we need >= 1 digits followed by a dot and a space
	if data[i] != '.' || data[i+1] != ' ' {
		return 0
	}
	return i + 2
}

// parse ordered or unordered list block
func (p *Parser) list(out *bytes.Buffer, data []byte, flags ListType) int {
	i := 0
	work := p.blockBufs.acquire()

	for i < len(data) {
		skip := p.listItem(work, data[i:], &flags)
		i += skip
		if skip == 0 || flags&ListItemEndOfList != 0 {
			break
		}
	}

	if p.mk.List != nil {
		p.mk.List(out, work.Bytes(), flags, p.mk.Opaque)
	}
	p.blockBufs.release()
	return i
}

// listItem parses a single list item, assuming the initial prefix is
// already present. It gathers continuation lines, detecting sublists, new
// items and list termination, then renders the contents either inline or as
// a block depending on whether a blank line was seen inside the item.
func (p *Parser) listItem(out *bytes.Buffer, data []byte, flags *ListType) int {
	// keep track of the indentation of the first line
	orgpre := 0
	for orgpre < 3 && orgpre < len(data) && data[orgpre] == ' ' {
		orgpre++
	}

	beg := p.uliPrefix(data)
	if beg == 0 {
		beg = p.oliPrefix(data)
	}
	if beg == 0 || beg >= len(data) {
		return 0
	}

	// skip leading whitespace on first line
	for beg < len(data) && data[beg] == ' ' {
		beg++
	}

	// find the end of the line
	end := beg
	for end < len(data) && data[end-1] != '\n' {
		end++
	}

	work := p.spanBufs.acquire()

	// put the first line into the working buffer
	work.Write(data[beg:end])
	beg = end

	// process the following lines
	inEmpty, hasInsideEmpty, inFence := false, false, false
	sublist := 0

gatherLines:
	for beg < len(data) {
		hasNextULI, hasNextOLI := 0, 0

		end++
		for end < len(data) && data[end-1] != '\n' {
			end++
		}

		// process an empty line
		if p.isEmpty(data[beg:end]) > 0 {
			inEmpty = true
			beg = end
			continue
		}

		// calculate the indentation
		i := 0
		for i < 4 && beg+i < end && data[beg+i] == ' ' {
			i++
		}
		pre := i
		chunk := data[beg+i : end]

		if p.ext&FencedCode != 0 {
			if skip, _ := p.isCodeFence(chunk, nil); skip > 0 {
				inFence = !inFence
			}
		}

		// only check for new list items if we are not inside a fenced code block
		if !inFence {
			hasNextULI = p.uliPrefix(chunk)
			hasNextOLI = p.oliPrefix(chunk)
		}

		// checking for ul/ol switch
		if inEmpty && ((*flags&ListTypeOrdered != 0 && hasNextULI > 0) ||
			(*flags&ListTypeOrdered == 0 && hasNextOLI > 0)) {
			// the following item must have the same list type
			*flags |= ListItemEndOfList
			break
		}

		switch {
		// checking for a new item
		case (hasNextULI > 0 && !p.isHRule(chunk)) || hasNextOLI > 0:
			if inEmpty {
				hasInsideEmpty = true
			}
			if pre == orgpre {
				// the following item must not be indented
				break gatherLines
			}
			if sublist == 0 {
				sublist = work.Len()
			}

		// joining only indented stuff after empty lines
		case inEmpty && pre == 0:
			*flags |= ListItemEndOfList
			break gatherLines

		case inEmpty:
			work.WriteByte('\n')
			hasInsideEmpty = true
		}

		inEmpty = false

		// add the line into the working buffer without prefix
		work.Write(data[beg+i : end])
		beg = end
	}

	// render li contents
	if hasInsideEmpty {
		*flags |= ListItemContainsBlock
	}

	workBytes := work.Bytes()
	inter := p.spanBufs.acquire()
	if *flags&ListItemContainsBlock != 0 {
		// intermediate render of block li
		if sublist > 0 && sublist < len(workBytes) {
			p.parseBlock(inter, workBytes[:sublist])
			p.parseBlock(inter, workBytes[sublist:])
		} else {
			p.parseBlock(inter, workBytes)
		}
	} else {
		// intermediate render of inline li
		if sublist > 0 && sublist < len(workBytes) {
			p.parseInline(inter, workBytes[:sublist])
			p.parseBlock(inter, workBytes[sublist:])
		} else {
			p.parseInline(inter, workBytes)
		}
	}

	// render li itself
	if p.mk.ListItem != nil {
		p.mk.ListItem(out, inter.Bytes(), *flags, p.mk.Opaque)
	}
	p.spanBufs.release()
	p.spanBufs.release()
	return beg
}

//
// Paragraphs and setext headers
//

// isUnderlinedHeader tests whether the current line is a setext underline,
// returning the header level it selects (1 for =, 2 for -) or 0.
func isUnderlinedHeader(data []byte) int {
	// test of level 1 header
	if data[0] == '=' {
		i := 1
		for i < len(data) && data[i] == '=' {
			i++
		}
		for i < len(data) && data[i] == ' ' {
			i++
		}
		if i < len(data) && data[i] == '\n' {
			return 1
		}
		return 0
	}

	// test of level 2 header
	if data[0] == '-' {
		i := 1
		for i < len(data) && data[i] == '-' {
			i++
		}
		for i < len(data) && data[i] == ' ' {
			i++
		}
		if i < len(data) && data[i] == '\n' {
			return 2
		}
	}
	return 0
}

func (p *Parser) paragraph(out *bytes.Buffer, data []byte) int {
	var i, end, level int

	for i < len(data) {
		end = i + 1
		for end < len(data) && data[end-1] != '\n' {
			end++
		}

		// a blank line ends the paragraph
		if p.isEmpty(data[i:]) > 0 {
			break
		}

		// a setext underline promotes the last line to a header
		if level = isUnderlinedHeader(data[i:]); level > 0 {
			break
		}

		// with lax spacing some blocks may interrupt a paragraph
		if p.ext&LaxSpacing != 0 && !isalnum(data[i]) {
			if p.uliPrefix(data[i:]) != 0 || p.oliPrefix(data[i:]) != 0 {
				end = i
				break
			}
			if data[i] == '<' && p.mk.BlockHTML != nil && p.html(out, data[i:], false) > 0 {
				end = i
				break
			}
			if p.ext&FencedCode != 0 {
				if skip, _ := p.isCodeFence(data[i:], nil); skip > 0 {
					end = i
					break
				}
			}
		}

		if p.isPrefixHeader(data[i:]) || p.isHRule(data[i:]) ||
			(p.ext&LaxSpacing != 0 && p.quotePrefix(data[i:]) > 0) {
			end = i
			break
		}

		i = end
	}

	size := i
	for size > 0 && data[size-1] == '\n' {
		size--
	}

	if level == 0 {
		// trim leading spaces
		beg := 0
		for beg < size && data[beg] == ' ' {
			beg++
		}
		tmp := p.blockBufs.acquire()
		p.parseInline(tmp, data[beg:size])
		if p.mk.Paragraph != nil {
			p.mk.Paragraph(out, tmp.Bytes(), p.mk.Opaque)
		}
		p.blockBufs.release()
	} else if size > 0 {
		// the last line is the header; everything before it is a
		// separate paragraph
		eol := size
		beg := size
		for beg > 0 && data[beg-1] != '\n' {
			beg--
		}
		prev := beg
		for prev > 0 && data[prev-1] == '\n' {
			prev--
		}
		if prev > 0 {
			tmp := p.blockBufs.acquire()
			p.parseInline(tmp, data[:prev])
			if p.mk.Paragraph != nil {
				p.mk.Paragraph(out, tmp.Bytes(), p.mk.Opaque)
			}
			p.blockBufs.release()
		}

		hdr := p.spanBufs.acquire()
		p.parseInline(hdr, data[beg:eol])
		if p.mk.Header != nil {
			p.mk.Header(out, hdr.Bytes(), level, p.mk.Opaque)
		}
		p.spanBufs.release()
	}

	return end
}
