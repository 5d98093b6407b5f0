// Smartypants rendering: typographic substitution of quotes, dashes,
// ellipses and fractions inside normal text runs.

package markdown

import "bytes"

type smartypantsData struct {
	inSingleQuote bool
	inDoubleQuote bool
}

// A smartCallback rewrites the active byte at text[0]. previousChar is the
// byte just before it (0 at the start of the run). The return value is the
// number of extra input bytes consumed.
type smartCallback func(out *bytes.Buffer, smrt *smartypantsData, previousChar byte, text []byte) int

type smartypantsRenderer [256]smartCallback

// smartypants builds the substitution table for the given renderer flags.
func smartypants(flags HTMLFlags) *smartypantsRenderer {
	r := new(smartypantsRenderer)
	r['"'] = smartDoubleQuote
	r['\''] = smartSingleQuote
	r['.'] = smartPeriod
	if flags&SmartypantsLatexDashes != 0 {
		r['-'] = smartDashLatex
	} else if flags&SmartypantsDashes != 0 {
		r['-'] = smartDash
	}
	if flags&SmartypantsFractions != 0 {
		r['1'] = smartFraction
		r['3'] = smartFraction
	}
	return r
}

// process runs the substitution table over text, escaping the stretches
// between active bytes the same way plain normal text is escaped.
func (r *smartypantsRenderer) process(out *bytes.Buffer, text []byte) {
	smrt := smartypantsData{}
	mark := 0
	for i := 0; i < len(text); i++ {
		action := r[text[i]]
		if action == nil {
			continue
		}
		if i > mark {
			attrEscape(out, text[mark:i])
		}
		previousChar := byte(0)
		if i > 0 {
			previousChar = text[i-1]
		}
		i += action(out, &smrt, previousChar, text[i:])
		mark = i + 1
	}
	if mark < len(text) {
		attrEscape(out, text[mark:])
	}
}

// wordBoundary treats the ends of the run, whitespace and punctuation as
// boundaries for quote orientation.
func wordBoundary(c byte) bool {
	return c == 0 || isspace(c) || ispunct(c)
}

func smartQuoteHelper(out *bytes.Buffer, previousChar byte, nextChar byte, quote byte, isOpen *bool) {
	switch {
	case wordBoundary(previousChar) && !wordBoundary(nextChar):
		*isOpen = true
	case !wordBoundary(previousChar) && wordBoundary(nextChar):
		*isOpen = false
	default:
		*isOpen = !*isOpen
	}

	switch {
	case quote == 'd' && *isOpen:
		out.WriteString("&ldquo;")
	case quote == 'd':
		out.WriteString("&rdquo;")
	case quote == 's' && *isOpen:
		out.WriteString("&lsquo;")
	default:
		out.WriteString("&rsquo;")
	}
}

func smartDoubleQuote(out *bytes.Buffer, smrt *smartypantsData, previousChar byte, text []byte) int {
	nextChar := byte(0)
	if len(text) > 1 {
		nextChar = text[1]
	}
	smartQuoteHelper(out, previousChar, nextChar, 'd', &smrt.inDoubleQuote)
	return 0
}

func smartSingleQuote(out *bytes.Buffer, smrt *smartypantsData, previousChar byte, text []byte) int {
	// apostrophes inside words always close
	if !wordBoundary(previousChar) && len(text) > 1 && isalnum(text[1]) {
		out.WriteString("&rsquo;")
		return 0
	}

	nextChar := byte(0)
	if len(text) > 1 {
		nextChar = text[1]
	}
	smartQuoteHelper(out, previousChar, nextChar, 's', &smrt.inSingleQuote)
	return 0
}

func smartPeriod(out *bytes.Buffer, smrt *smartypantsData, previousChar byte, text []byte) int {
	if len(text) > 2 && text[1] == '.' && text[2] == '.' {
		out.WriteString("&hellip;")
		return 2
	}
	if len(text) > 4 && text[1] == ' ' && text[2] == '.' && text[3] == ' ' && text[4] == '.' {
		out.WriteString("&hellip;")
		return 4
	}
	out.WriteByte('.')
	return 0
}

func smartDash(out *bytes.Buffer, smrt *smartypantsData, previousChar byte, text []byte) int {
	if len(text) > 1 && text[1] == '-' {
		out.WriteString("&mdash;")
		return 1
	}
	out.WriteByte('-')
	return 0
}

func smartDashLatex(out *bytes.Buffer, smrt *smartypantsData, previousChar byte, text []byte) int {
	if len(text) > 2 && text[1] == '-' && text[2] == '-' {
		out.WriteString("&mdash;")
		return 2
	}
	if len(text) > 1 && text[1] == '-' {
		out.WriteString("&ndash;")
		return 1
	}
	out.WriteByte('-')
	return 0
}

func smartFraction(out *bytes.Buffer, smrt *smartypantsData, previousChar byte, text []byte) int {
	if wordBoundary(previousChar) && len(text) >= 3 {
		nextOK := len(text) < 4 || wordBoundary(text[3])
		if nextOK {
			switch {
			case text[0] == '1' && text[1] == '/' && text[2] == '2':
				out.WriteString("&frac12;")
				return 2
			case text[0] == '1' && text[1] == '/' && text[2] == '4':
				out.WriteString("&frac14;")
				return 2
			case text[0] == '3' && text[1] == '/' && text[2] == '4':
				out.WriteString("&frac34;")
				return 2
			}
		}
	}
	out.WriteByte(text[0])
	return 0
}
