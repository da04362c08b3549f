package diag

import "relviz/internal/source"

// Reporter is the minimal sink contract the parser, fact model, and cluster
// builder report through. Keeping the sink explicit keeps those phases pure
// functions of their inputs.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	d := New(sev, code, primary, msg)
	for _, n := range notes {
		d = d.WithNote(n.Span, n.Msg)
	}
	r.Bag.Add(d)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}
