package diag

import (
	"testing"

	"relviz/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(SynExpectFact, source.Span{}, "one")) {
		t.Error("first Add should succeed")
	}
	if !b.Add(NewError(SynExpectFact, source.Span{}, "two")) {
		t.Error("second Add should succeed")
	}
	if b.Add(NewError(SynExpectFact, source.Span{}, "three")) {
		t.Error("Add past the limit should be dropped")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevInfo, SynExpectFact, source.Span{}, "note"))
	if b.HasErrors() {
		t.Error("info-only bag must not report errors")
	}
	if b.HasWarnings() {
		t.Error("info-only bag must not report warnings")
	}
	b.Add(New(SevWarning, SynExpectFact, source.Span{}, "warn"))
	if !b.HasWarnings() || b.HasErrors() {
		t.Error("warning bag state wrong")
	}
	b.Add(NewError(SynExpectFact, source.Span{}, "boom"))
	if !b.HasErrors() {
		t.Error("expected HasErrors after adding an error")
	}
}

func TestBagSortDeterminism(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SynExpectNewline, source.Span{Start: 5, End: 6}, "later"))
	b.Add(NewError(SynExpectFact, source.Span{Start: 0, End: 1}, "earlier"))
	b.Sort()
	items := b.Items()
	if items[0].Message != "earlier" || items[1].Message != "later" {
		t.Errorf("sort order wrong: %q, %q", items[0].Message, items[1].Message)
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{SynUnterminatedString, "SYN1006"},
		{ModelCyclicInheritance, "MDL2001"},
		{GraphCyclicContainment, "GPH3001"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("ID(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}
