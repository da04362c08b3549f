// Package model builds the semantic fact model: generalization
// discovery, the inheritance graph and per-entity effective
// attributes resolved through C3-style linearization.
package model

import (
	"relviz/internal/diag"
	"relviz/internal/fact"
	"relviz/internal/source"
)

// Entity is one name's inheritance and attribute closure.
type Entity struct {
	Name string
	// Bases lists direct generalization targets in declaration order.
	Bases []string
	// Linearized is the C3 order: the entity first, then its
	// ancestors from nearest to farthest.
	Linearized []string

	DirectAttrs    fact.Attrs
	EffectiveAttrs fact.Attrs
}

type Options struct {
	Reporter diag.Reporter
}

// Model is the semantic view over a parsed fact sequence.
type Model struct {
	Objects         []fact.Object
	Relations       []fact.Relation
	Generalizations map[string]struct{}

	entities map[string]*Entity
	order    []string
}

// Build constructs the model. It fails when the inheritance graph
// contains a cycle or an entity's base orderings contradict each
// other.
func Build(facts []fact.Fact, opts Options) (*Model, error) {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	m := &Model{entities: map[string]*Entity{}}
	m.Objects, m.Relations = fact.Partition(facts)
	m.Generalizations = findGeneralizations(m.Relations)

	// Inheritance edges, grouped by lhs in declaration order. The rhs
	// of an edge becomes a root entity when nothing declares bases
	// for it.
	spans := map[string]source.Span{}
	for _, r := range m.Relations {
		if _, ok := m.Generalizations[r.Rel]; !ok {
			continue
		}
		derived := m.entity(r.LHS)
		derived.Bases = append(derived.Bases, r.RHS)
		m.entity(r.RHS)
		if sp, ok := spans[r.LHS]; ok {
			spans[r.LHS] = sp.Cover(r.Span)
		} else {
			spans[r.LHS] = r.Span
		}
	}
	for _, o := range m.Objects {
		e := m.entity(o.Name)
		e.DirectAttrs.Merge(o.Attrs)
	}

	sorted, cycle := m.basesFirst()
	if len(cycle) > 0 {
		err := &CyclicInheritanceError{Names: cycle}
		reporter.Report(diag.ModelCyclicInheritance, diag.SevError,
			spans[cycle[0]], err.Error(), nil)
		return nil, err
	}

	for _, name := range sorted {
		e := m.entities[name]
		lin, ok := linearize(e, m.entities)
		if !ok {
			err := &InconsistentLinearizationError{Entity: name}
			reporter.Report(diag.ModelInconsistentLinearization, diag.SevError,
				spans[name], err.Error(), nil)
			return nil, err
		}
		e.Linearized = lin

		mappings := make([]fact.Attrs, 0, len(lin))
		for i := len(lin) - 1; i >= 0; i-- {
			mappings = append(mappings, m.entities[lin[i]].DirectAttrs)
		}
		e.EffectiveAttrs = fact.Merged(mappings...)
	}
	return m, nil
}

// Entity returns the entity for name, if the model knows it.
func (m *Model) Entity(name string) (*Entity, bool) {
	e, ok := m.entities[name]
	return e, ok
}

// Attrs returns the effective attributes for name, or an empty
// mapping when the name is unknown.
func (m *Model) Attrs(name string) fact.Attrs {
	if e, ok := m.entities[name]; ok {
		return e.EffectiveAttrs
	}
	return fact.Attrs{}
}

// Names returns all entity names in first-appearance order.
func (m *Model) Names() []string {
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

func (m *Model) entity(name string) *Entity {
	if e, ok := m.entities[name]; ok {
		return e
	}
	e := &Entity{Name: name}
	m.entities[name] = e
	m.order = append(m.order, name)
	return e
}

// findGeneralizations computes the fixpoint closure of relation
// names descending from "generalization": lhs joins the set when
// rhs is already a member and rel either is already a member or is
// the lhs itself (the self-declaring form "is-a is-a generalization").
func findGeneralizations(relations []fact.Relation) map[string]struct{} {
	result := map[string]struct{}{"generalization": {}}
	for changed := true; changed; {
		changed = false
		for _, r := range relations {
			if _, ok := result[r.LHS]; ok {
				continue
			}
			if _, ok := result[r.RHS]; !ok {
				continue
			}
			if _, ok := result[r.Rel]; !ok && r.Rel != r.LHS {
				continue
			}
			result[r.LHS] = struct{}{}
			changed = true
		}
	}
	return result
}

// basesFirst returns entity names ordered so every base precedes
// all entities derived from it. When the graph is cyclic it returns
// the names stuck on the cycle instead, in first-appearance order.
func (m *Model) basesFirst() (sorted, cycle []string) {
	pending := map[string]int{}
	dependents := map[string][]string{}
	for _, name := range m.order {
		e := m.entities[name]
		pending[name] = len(e.Bases)
		for _, base := range e.Bases {
			dependents[base] = append(dependents[base], name)
		}
	}

	var queue []string
	for _, name := range m.order {
		if pending[name] == 0 {
			queue = append(queue, name)
		}
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		sorted = append(sorted, name)
		for _, dep := range dependents[name] {
			pending[dep]--
			if pending[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	if len(sorted) < len(m.order) {
		done := map[string]struct{}{}
		for _, name := range sorted {
			done[name] = struct{}{}
		}
		for _, name := range m.order {
			if _, ok := done[name]; !ok {
				cycle = append(cycle, name)
			}
		}
	}
	return sorted, cycle
}

// linearize runs the C3 merge for one entity. All bases must be
// linearized already.
func linearize(e *Entity, entities map[string]*Entity) ([]string, bool) {
	result := []string{e.Name}
	sequences := make([][]string, 0, len(e.Bases)+1)
	for _, base := range e.Bases {
		lin := entities[base].Linearized
		seq := make([]string, len(lin))
		copy(seq, lin)
		sequences = append(sequences, seq)
	}
	sequences = append(sequences, append([]string(nil), e.Bases...))

	for {
		remaining := sequences[:0]
		for _, seq := range sequences {
			if len(seq) > 0 {
				remaining = append(remaining, seq)
			}
		}
		sequences = remaining
		if len(sequences) == 0 {
			return result, true
		}

		// A head is a valid candidate when it appears in no
		// sequence's tail.
		candidate := ""
		for _, seq := range sequences {
			head := seq[0]
			if inAnyTail(head, sequences) {
				continue
			}
			candidate = head
			break
		}
		if candidate == "" {
			return nil, false
		}
		result = append(result, candidate)
		for i, seq := range sequences {
			if seq[0] == candidate {
				sequences[i] = seq[1:]
			}
		}
	}
}

func inAnyTail(name string, sequences [][]string) bool {
	for _, seq := range sequences {
		for _, other := range seq[1:] {
			if other == name {
				return true
			}
		}
	}
	return false
}
