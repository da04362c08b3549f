// Package parser turns fact-language source text into an ordered fact
// sequence. The three fact forms (object, relation, combined) share a
// "name-list ... name-list" shape, so the parser resolves them by ordered
// choice with explicit save/restore of the cursor position instead of
// committing on the first name.
package parser

import (
	"relviz/internal/diag"
	"relviz/internal/fact"
	"relviz/internal/source"
)

type Options struct {
	// Reporter receives the failure diagnostic on a syntax error.
	// May be nil.
	Reporter diag.Reporter
}

// Parser is the parse state for one file.
type Parser struct {
	cursor Cursor
	opts   Options

	// furthest failure across ordered-choice alternatives; this is what gets
	// reported when no alternative succeeds.
	failSpan source.Span
	failCode diag.Code
	failMsg  string
	failed   bool
}

// ParseFacts parses a whole file into its fact sequence. Parsing is
// all-or-nothing: on any mismatch the furthest failure is reported through
// the options reporter and returned as a *SyntaxError.
func ParseFacts(file *source.File, opts Options) ([]fact.Fact, error) {
	p := Parser{
		cursor: NewCursor(file),
		opts:   opts,
	}
	return p.parseSource()
}

// fail records a candidate failure. Only the furthest one survives; on ties
// the earliest record wins, so the first alternative's expectation is what
// the user sees.
func (p *Parser) fail(code diag.Code, msg string) {
	if p.failed && p.cursor.Off <= p.failSpan.Start {
		return
	}
	p.failed = true
	p.failSpan = p.cursor.Here()
	p.failCode = code
	p.failMsg = msg
}

func (p *Parser) syntaxError() error {
	code, msg, sp := p.failCode, p.failMsg, p.failSpan
	if !p.failed {
		code, msg = diag.SynExpectFact, "expected a fact declaration"
		sp = p.cursor.Here()
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
	return &SyntaxError{Span: sp, Code: code, Msg: msg}
}

func (p *Parser) parseSource() ([]fact.Fact, error) {
	facts := make([]fact.Fact, 0, 16)
	for {
		for p.tryBlankLine() {
		}
		p.skipLWS()
		if p.cursor.EOF() {
			return facts, nil
		}
		expanded, ok := p.parseFact()
		if !ok {
			return nil, p.syntaxError()
		}
		facts = append(facts, expanded...)
	}
}

// parseFact tries the three fact forms in order, committing to the first one
// that parses through its header line and attribute block.
func (p *Parser) parseFact() ([]fact.Fact, bool) {
	m := p.cursor.Mark()
	if facts, ok := p.tryObjects(m); ok {
		return facts, true
	}
	p.cursor.Reset(m)
	if facts, ok := p.tryRelations(m); ok {
		return facts, true
	}
	p.cursor.Reset(m)
	if facts, ok := p.tryCombined(m); ok {
		return facts, true
	}
	p.cursor.Reset(m)
	return nil, false
}

// scanNameList matches NAME (, NAME)*. Once a comma is seen the next name is
// mandatory: the list cannot continue on the next line.
func (p *Parser) scanNameList() ([]string, bool) {
	first, ok := p.scanName()
	if !ok {
		return nil, false
	}
	names := []string{first}
	for {
		m := p.cursor.Mark()
		p.skipLWS()
		if !p.cursor.Eat(',') {
			p.cursor.Reset(m)
			return names, true
		}
		next, ok := p.scanName()
		if !ok {
			return nil, false
		}
		names = append(names, next)
	}
}

// parseAttrBlock matches zero or more attribute or blank lines. It cannot
// fail: the block simply ends at the first line that is neither.
func (p *Parser) parseAttrBlock() fact.Attrs {
	var attrs fact.Attrs
	for {
		if p.tryAttrLine(&attrs) {
			continue
		}
		if p.tryBlankLine() {
			continue
		}
		return attrs
	}
}

func (p *Parser) tryAttrLine(attrs *fact.Attrs) bool {
	m := p.cursor.Mark()
	if !p.scanIndent() {
		p.cursor.Reset(m)
		return false
	}
	name, ok := p.scanAttrName()
	if !ok {
		p.cursor.Reset(m)
		return false
	}
	p.skipLWS()
	if !p.cursor.Eat(':') {
		p.fail(diag.SynExpectColon, "expected ':' after attribute name")
		p.cursor.Reset(m)
		return false
	}
	value, ok := p.scanAttrValue()
	if !ok {
		p.cursor.Reset(m)
		return false
	}
	if !p.scanNewline() {
		p.cursor.Reset(m)
		return false
	}
	attrs.Set(name, value)
	return true
}

// tryObjects matches `TYPE NAME (, NAME)*` and fans out one object fact per
// name, all sharing the type and the attribute block.
func (p *Parser) tryObjects(start Mark) ([]fact.Fact, bool) {
	typ, ok := p.scanName()
	if !ok {
		return nil, false
	}
	names, ok := p.scanNameList()
	if !ok {
		return nil, false
	}
	if !p.scanNewline() {
		return nil, false
	}
	attrs := p.parseAttrBlock()
	span := p.cursor.SpanFrom(start)

	out := make([]fact.Fact, 0, len(names))
	for _, name := range names {
		out = append(out, fact.Object{
			Type:  typ,
			Name:  name,
			Attrs: attrs.Clone(),
			Span:  span,
		})
	}
	return out, true
}

// tryRelations matches `NAME-list [label] REL [label] NAME-list` and expands
// the cross product of the endpoint lists. Labels and the attribute block are
// shared across the expansion.
func (p *Parser) tryRelations(start Mark) ([]fact.Fact, bool) {
	lhss, ok := p.scanNameList()
	if !ok {
		return nil, false
	}
	lhsText, lhsSet := p.scanOptLabel()
	rel, ok := p.scanName()
	if !ok {
		return nil, false
	}
	rhsText, rhsSet := p.scanOptLabel()
	rhss, ok := p.scanNameList()
	if !ok {
		return nil, false
	}
	if !p.scanNewline() {
		return nil, false
	}
	attrs := p.parseAttrBlock()
	span := p.cursor.SpanFrom(start)

	out := make([]fact.Fact, 0, len(lhss)*len(rhss))
	for _, lhs := range lhss {
		for _, rhs := range rhss {
			out = append(out, fact.Relation{
				LHS:      lhs,
				LHSLabel: fact.Label{Text: lhsText, Set: lhsSet},
				Rel:      rel,
				RHSLabel: fact.Label{Text: rhsText, Set: rhsSet},
				RHS:      rhs,
				Attrs:    attrs.Clone(),
				Span:     span,
			})
		}
	}
	return out, true
}

// tryCombined matches `TYPE NAME-list [label] REL [label] NAME-list`:
// one object fact per lhs name carrying the attribute block, then the lhs ×
// rhs cross product as relation facts with empty attributes (the block
// belongs to the objects, not to the implied relations).
func (p *Parser) tryCombined(start Mark) ([]fact.Fact, bool) {
	typ, ok := p.scanName()
	if !ok {
		return nil, false
	}
	names, ok := p.scanNameList()
	if !ok {
		return nil, false
	}
	lhsText, lhsSet := p.scanOptLabel()
	rel, ok := p.scanName()
	if !ok {
		return nil, false
	}
	rhsText, rhsSet := p.scanOptLabel()
	rhss, ok := p.scanNameList()
	if !ok {
		return nil, false
	}
	if !p.scanNewline() {
		return nil, false
	}
	attrs := p.parseAttrBlock()
	span := p.cursor.SpanFrom(start)

	out := make([]fact.Fact, 0, len(names)+len(names)*len(rhss))
	for _, name := range names {
		out = append(out, fact.Object{
			Type:  typ,
			Name:  name,
			Attrs: attrs.Clone(),
			Span:  span,
		})
	}
	for _, name := range names {
		for _, rhs := range rhss {
			out = append(out, fact.Relation{
				LHS:      name,
				LHSLabel: fact.Label{Text: lhsText, Set: lhsSet},
				Rel:      rel,
				RHSLabel: fact.Label{Text: rhsText, Set: rhsSet},
				RHS:      rhs,
				Attrs:    fact.Attrs{},
				Span:     span,
			})
		}
	}
	return out, true
}
