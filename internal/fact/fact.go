// Package fact defines the parsed representation of the fact language:
// object facts ("TYPE has an object called NAME") and relation facts
// ("LHS stands in relation REL to RHS"), both carrying ordered attribute
// mappings. Names are used interchangeably for objects, types, and relation
// names; relation names are first-class data.
package fact

import (
	"relviz/internal/source"
)

// Label is an optional relation-end label.
type Label struct {
	Text string
	Set  bool
}

// Object is a single object fact. Declarations naming several objects at once
// fan out into one Object per name.
type Object struct {
	Type  string
	Name  string
	Attrs Attrs
	Span  source.Span
}

// Relation is a single relation fact. Declarations with comma-separated
// endpoint lists expand into the cross product of (lhs, rhs) pairs; labels
// and attributes are shared across the expansion.
type Relation struct {
	LHS      string
	LHSLabel Label
	Rel      string
	RHSLabel Label
	RHS      string
	Attrs    Attrs
	Span     source.Span
}

// Fact is either an Object or a Relation.
type Fact interface {
	FactSpan() source.Span
}

func (o Object) FactSpan() source.Span   { return o.Span }
func (r Relation) FactSpan() source.Span { return r.Span }

// Partition splits a fact sequence into object and relation facts,
// preserving order.
func Partition(facts []Fact) (objects []Object, relations []Relation) {
	for _, f := range facts {
		switch t := f.(type) {
		case Object:
			objects = append(objects, t)
		case Relation:
			relations = append(relations, t)
		}
	}
	return objects, relations
}
