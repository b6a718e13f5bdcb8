package metar

import (
	"strconv"
	"strings"
)

// Parse decodes one METAR or SPECI report.
//
// Groups are read in their fixed order. Each group is a set of alternatives
// tried in order, and the first one that matches wins. Groups end at one or
// more whitespace characters, a "=" or the end of the input.
//
// On failure the returned error is a non-empty Errors holding every failure
// recorded at the furthest offset the parser reached.
func Parse(text string) (Report, error) {
	p := &parser{src: text, errs: newErrorSet(text)}
	r, ok := p.report()
	if !ok {
		if len(p.errs.errs) == 0 {
			p.errs.add(KindUnexpected, p.pos, p.tokenLength(p.pos), "report")
		}
		return Report{}, p.errs.result()
	}
	return r, nil
}

// parser is a byte cursor over one report. Grammar methods either consume a
// group and return true, or leave pos untouched and return false.
type parser struct {
	src  string
	pos  int
	errs *errorSet
	// quiet suppresses error recording while probing alternatives whose
	// failure says nothing useful about the input.
	quiet int
}

// backtrack resets the cursor to start unless the deferring method succeeded.
//
//	defer p.backtrack(p.pos, &ok)
func (p *parser) backtrack(start int, ok *bool) {
	if !*ok {
		p.pos = start
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// lit consumes s if the input continues with it.
func (p *parser) lit(s string) bool {
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

// sep ends a group. Whitespace is consumed; "=" and the end of input are not.
func (p *parser) sep() bool {
	if !p.atGroupEnd() {
		p.expect("whitespace")
		return false
	}
	p.skipSpace()
	return true
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
}

// keyword consumes the literal s followed by a separator. A literal that
// runs into a longer token is reported at the token start.
func (p *parser) keyword(s string) bool {
	start := p.pos
	if !p.lit(s) || !p.atGroupEnd() {
		p.pos = start
		p.expect(s)
		return false
	}
	return p.sep()
}

// atGroupEnd reports whether a group may end at the cursor.
func (p *parser) atGroupEnd() bool {
	return p.eof() || p.peek() == '=' || isSpace(p.peek())
}

// number reads between minDigits and maxDigits decimal digits.
//
// Content that starts like a number but is not one is reported as
// KindInvalidNumber over the width of the slot.
func (p *parser) number(minDigits, maxDigits int, label string) (int, bool) {
	n := 0
	for n < maxDigits && p.pos+n < len(p.src) && isDigit(p.src[p.pos+n]) {
		n++
	}
	if n < minDigits {
		if n > 0 || p.peek() == '/' {
			width := max(min(maxDigits, p.tokenLength(p.pos)), 1)
			p.invalid(KindInvalidNumber, p.pos, width, label)
		} else {
			p.expect(label)
		}
		return 0, false
	}
	v, err := strconv.Atoi(p.src[p.pos : p.pos+n])
	if err != nil {
		p.invalid(KindInvalidNumber, p.pos, n, label)
		return 0, false
	}
	p.pos += n
	return v, true
}

// masked reads a value with parse, or the placeholder of exactly width slashes.
func masked[T any](p *parser, width int, parse func() (T, bool)) (Data[T], bool) {
	if p.lit(placeholder(width)) {
		return Unknown[T](), true
	}
	v, ok := parse()
	if !ok {
		return Unknown[T](), false
	}
	return Known(v), true
}

func (p *parser) expect(label string) {
	if p.quiet > 0 {
		return
	}
	p.errs.add(KindUnexpected, p.pos, p.tokenLength(p.pos), label)
}

func (p *parser) invalid(kind ErrorKind, at, length int, label string) {
	if p.quiet > 0 {
		return
	}
	p.errs.add(kind, at, length, label)
}

// tokenLength is the length of the whitespace-delimited token starting at offset.
func (p *parser) tokenLength(offset int) int {
	n := 0
	for offset+n < len(p.src) {
		c := p.src[offset+n]
		if isSpace(c) || c == '=' {
			break
		}
		n++
	}
	return n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
