package model_test

import (
	"errors"
	"testing"

	"relviz/internal/model"
	"relviz/internal/parser"
	"relviz/internal/source"
)

func buildModel(t *testing.T, input string) *model.Model {
	t.Helper()
	m, err := buildModelErr(t, input)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return m
}

func buildModelErr(t *testing.T, input string) (*model.Model, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rv", []byte(input))
	facts, err := parser.ParseFacts(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return model.Build(facts, model.Options{})
}

func TestGeneralizationClosure(t *testing.T) {
	m := buildModel(t, "is-a is-a generalization\nDerived is-a Base\n")
	for _, name := range []string{"generalization", "is-a"} {
		if _, ok := m.Generalizations[name]; !ok {
			t.Errorf("generalization set missing %q", name)
		}
	}
	e, ok := m.Entity("Derived")
	if !ok {
		t.Fatal("no entity for Derived")
	}
	if len(e.Bases) != 1 || e.Bases[0] != "Base" {
		t.Errorf("bases = %v, want [Base]", e.Bases)
	}
}

func TestClosureOrderIndependent(t *testing.T) {
	// The closure is a fixpoint, so a use before the declaration
	// that makes the relation a generalization still counts.
	m := buildModel(t, "Derived is-a Base\nis-a is-a generalization\n")
	e, ok := m.Entity("Derived")
	if !ok || len(e.Bases) != 1 {
		t.Fatalf("entity Derived = %+v, %v", e, ok)
	}
}

func TestNonGeneralizationIgnored(t *testing.T) {
	m := buildModel(t, "John works-at Acme\n")
	if _, ok := m.Entity("John"); ok {
		t.Error("plain relation endpoints must not become entities")
	}
}

func TestRootEntities(t *testing.T) {
	m := buildModel(t, "Derived generalization Base\n")
	e, ok := m.Entity("Base")
	if !ok {
		t.Fatal("rhs-only name must be an entity")
	}
	if len(e.Bases) != 0 {
		t.Errorf("root bases = %v", e.Bases)
	}
}

func TestDirectAttrsLastWriteWins(t *testing.T) {
	m := buildModel(t, "t n\n  a: 1\n  b: 2\nt n\n  a: 3\n")
	e, _ := m.Entity("n")
	if v, _ := e.DirectAttrs.Get("a"); v != "3" {
		t.Errorf("a = %q, want 3", v)
	}
	if v, _ := e.DirectAttrs.Get("b"); v != "2" {
		t.Errorf("b = %q, want 2", v)
	}
}

func TestDiamondInheritance(t *testing.T) {
	input := "type A\n  x: 1\n" +
		"type B1 generalization A\n  x: 2\n" +
		"type B2 generalization A\n" +
		"type D generalization B1, B2\n"
	m := buildModel(t, input)
	if v, _ := m.Attrs("D").Get("x"); v != "2" {
		t.Errorf("D.x = %q, want 2 (nearer ancestor wins)", v)
	}
	e, _ := m.Entity("D")
	want := []string{"D", "B1", "B2", "A"}
	if len(e.Linearized) != len(want) {
		t.Fatalf("linearization = %v, want %v", e.Linearized, want)
	}
	for i := range want {
		if e.Linearized[i] != want[i] {
			t.Fatalf("linearization = %v, want %v", e.Linearized, want)
		}
	}
}

func TestEffectiveAttrsOverride(t *testing.T) {
	input := "type Base\n  color: red\n  shape: box\n" +
		"type Derived generalization Base\n  color: blue\n"
	m := buildModel(t, input)
	attrs := m.Attrs("Derived")
	if v, _ := attrs.Get("color"); v != "blue" {
		t.Errorf("color = %q, want blue", v)
	}
	if v, _ := attrs.Get("shape"); v != "box" {
		t.Errorf("shape = %q, want box", v)
	}
}

func TestSiblingBasesLeftToRight(t *testing.T) {
	input := "type B1\n  x: left\n" +
		"type B2\n  x: right\n" +
		"type D generalization B1, B2\n"
	m := buildModel(t, input)
	if v, _ := m.Attrs("D").Get("x"); v != "left" {
		t.Errorf("x = %q, want left (first declared base wins)", v)
	}
}

func TestUnknownNameEmptyAttrs(t *testing.T) {
	m := buildModel(t, "type A\n  x: 1\n")
	if !m.Attrs("nobody").Empty() {
		t.Error("unknown name must resolve to empty attrs")
	}
}

func TestCyclicInheritance(t *testing.T) {
	_, err := buildModelErr(t, "A generalization B\nB generalization A\n")
	var cycErr *model.CyclicInheritanceError
	if !errors.As(err, &cycErr) {
		t.Fatalf("expected CyclicInheritanceError, got %v", err)
	}
	if len(cycErr.Names) != 2 {
		t.Errorf("cycle names = %v", cycErr.Names)
	}
}

func TestInconsistentLinearization(t *testing.T) {
	// C and D disagree on the relative order of A and B.
	input := "C generalization A, B\n" +
		"D generalization B, A\n" +
		"E generalization C, D\n"
	_, err := buildModelErr(t, input)
	var linErr *model.InconsistentLinearizationError
	if !errors.As(err, &linErr) {
		t.Fatalf("expected InconsistentLinearizationError, got %v", err)
	}
	if linErr.Entity != "E" {
		t.Errorf("entity = %q, want E", linErr.Entity)
	}
}

func TestPartitionExposed(t *testing.T) {
	m := buildModel(t, "type A\nA rel B\n")
	if len(m.Objects) != 1 || len(m.Relations) != 1 {
		t.Errorf("objects=%d relations=%d", len(m.Objects), len(m.Relations))
	}
	if m.Objects[0].Name != "A" {
		t.Errorf("object = %+v", m.Objects[0])
	}
}
