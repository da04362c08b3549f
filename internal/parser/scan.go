package parser

import (
	"strings"

	"relviz/internal/diag"
)

// The grammar is whitespace-sensitive: a line break is not equivalent to
// linear whitespace. Every scanner below therefore skips only spaces and
// tabs before matching, never newlines.

func isLWS(b byte) bool {
	return b == ' ' || b == '\t'
}

func (p *Parser) skipLWS() {
	for isLWS(p.cursor.Peek()) {
		p.cursor.Bump()
	}
}

// scanNewline matches the end of a header or attribute line: optional linear
// whitespace, optional #-comment, optional \r, then a required \n.
func (p *Parser) scanNewline() bool {
	p.skipLWS()
	if p.cursor.Peek() == '#' {
		for !p.cursor.EOF() && p.cursor.Peek() != '\n' {
			p.cursor.Bump()
		}
	}
	p.cursor.Eat('\r')
	if p.cursor.Eat('\n') {
		return true
	}
	p.fail(diag.SynExpectNewline, "expected end of line")
	return false
}

// tryBlankLine consumes one blank or comment-only line, resetting on failure.
func (p *Parser) tryBlankLine() bool {
	m := p.cursor.Mark()
	if p.scanNewline() {
		return true
	}
	p.cursor.Reset(m)
	return false
}

// scanIndent matches the one-or-more spaces/tabs that introduce an attribute
// line. The cursor must be at the start of a line.
func (p *Parser) scanIndent() bool {
	if !isLWS(p.cursor.Peek()) {
		return false
	}
	p.skipLWS()
	return true
}

const (
	nameStop     = " \t\r\n#\","
	attrNameStop = " \t\r\n#\",:"
)

// scanBare matches a maximal non-empty run of bytes outside stop.
func (p *Parser) scanBare(stop string) (string, bool) {
	m := p.cursor.Mark()
	for !p.cursor.EOF() && !strings.ContainsRune(stop, rune(p.cursor.Peek())) {
		p.cursor.Bump()
	}
	sp := p.cursor.SpanFrom(m)
	if sp.Empty() {
		return "", false
	}
	return string(p.cursor.File.Content[sp.Start:sp.End]), true
}

// scanName matches a name: a bare token, a triple-quoted string, or a quoted
// string. Plain names may contain ':' so the colon can separate attribute
// names from values without forcing quotes elsewhere.
func (p *Parser) scanName() (string, bool) {
	return p.scanNameWithStop(nameStop)
}

// scanAttrName is scanName with ':' excluded from bare tokens.
func (p *Parser) scanAttrName() (string, bool) {
	return p.scanNameWithStop(attrNameStop)
}

func (p *Parser) scanNameWithStop(stop string) (string, bool) {
	p.skipLWS()
	if p.cursor.Peek() == '"' {
		if p.atTripleQuote() {
			return p.scanTripleString()
		}
		return p.scanQuotedString()
	}
	s, ok := p.scanBare(stop)
	if !ok {
		p.fail(diag.SynExpectName, "expected a name")
	}
	return s, ok
}

func (p *Parser) atTripleQuote() bool {
	return p.cursor.Peek() == '"' && p.cursor.PeekAt(1) == '"' && p.cursor.PeekAt(2) == '"'
}

// scanQuotedString matches "..." with backslash escapes. A literal newline
// inside is an error: multi-line content needs the triple-quoted form.
func (p *Parser) scanQuotedString() (string, bool) {
	m := p.cursor.Mark()
	p.cursor.Bump() // opening '"'
	var sb strings.Builder
	for !p.cursor.EOF() {
		b := p.cursor.Peek()
		switch b {
		case '"':
			p.cursor.Bump()
			return sb.String(), true
		case '\\':
			p.cursor.Bump()
			if p.cursor.EOF() {
				p.fail(diag.SynUnterminatedString, "unterminated quoted string")
				p.cursor.Reset(m)
				return "", false
			}
			sb.WriteByte(p.cursor.Bump())
		case '\n':
			p.fail(diag.SynUnterminatedString, "newline in quoted string")
			p.cursor.Reset(m)
			return "", false
		default:
			sb.WriteByte(p.cursor.Bump())
		}
	}
	p.fail(diag.SynUnterminatedString, "unterminated quoted string")
	p.cursor.Reset(m)
	return "", false
}

// scanTripleString matches """...""", which may span multiple lines.
func (p *Parser) scanTripleString() (string, bool) {
	m := p.cursor.Mark()
	p.cursor.Bump()
	p.cursor.Bump()
	p.cursor.Bump() // opening '"""'
	var sb strings.Builder
	for !p.cursor.EOF() {
		if p.atTripleQuote() {
			p.cursor.Bump()
			p.cursor.Bump()
			p.cursor.Bump()
			return sb.String(), true
		}
		b := p.cursor.Peek()
		if b == '\\' {
			p.cursor.Bump()
			if p.cursor.EOF() {
				break
			}
			sb.WriteByte(p.cursor.Bump())
			continue
		}
		sb.WriteByte(p.cursor.Bump())
	}
	p.fail(diag.SynUnterminatedString, "unterminated triple-quoted string")
	p.cursor.Reset(m)
	return "", false
}

// scanOptLabel matches an optional (...) relation-end label. Labels may span
// multiple lines and escape parentheses with a backslash. A label that is
// started but never closed does not fail the alternative: the cursor resets
// and the '(' is left for the following name to claim as a bare byte.
func (p *Parser) scanOptLabel() (text string, set bool) {
	p.skipLWS()
	if p.cursor.Peek() != '(' {
		return "", false
	}
	m := p.cursor.Mark()
	p.cursor.Bump() // '('
	var sb strings.Builder
	for !p.cursor.EOF() {
		switch p.cursor.Peek() {
		case ')':
			p.cursor.Bump()
			return sb.String(), true
		case '\\':
			p.cursor.Bump()
			if !p.cursor.EOF() {
				sb.WriteByte(p.cursor.Bump())
			}
		default:
			sb.WriteByte(p.cursor.Bump())
		}
	}
	p.fail(diag.SynUnterminatedLabel, "unterminated parenthetical label")
	p.cursor.Reset(m)
	return "", false
}

// scanAttrValue matches the value part of an attribute line: a quoted or
// triple-quoted string, or the rest of the line up to a comment marker with
// trailing whitespace trimmed.
func (p *Parser) scanAttrValue() (string, bool) {
	p.skipLWS()
	if p.cursor.Peek() == '"' {
		if p.atTripleQuote() {
			return p.scanTripleString()
		}
		return p.scanQuotedString()
	}
	m := p.cursor.Mark()
	for !p.cursor.EOF() {
		b := p.cursor.Peek()
		if b == '\n' || b == '#' || b == '"' {
			break
		}
		p.cursor.Bump()
	}
	sp := p.cursor.SpanFrom(m)
	val := strings.TrimRight(string(p.cursor.File.Content[sp.Start:sp.End]), " \t\r")
	if val == "" {
		p.fail(diag.SynExpectAttrValue, "expected an attribute value")
		p.cursor.Reset(m)
		return "", false
	}
	return val, true
}
