package cluster

import (
	"relviz/internal/diag"
	"relviz/internal/dot"
	"relviz/internal/fact"
	"relviz/internal/source"
)

// Build composes content facts into a diagram graph using the style
// classification. Cluster objects become nested subgraph containers,
// node objects become styled nodes, and classified relations become
// edges.
func Build(facts []fact.Fact, class *Classification, opts Options) (*dot.Graph, error) {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	objects, relations := fact.Partition(facts)

	clusters := newContainmentGraph(objects, relations, class)
	if cycle := clusters.findCycle(); cycle != nil {
		err := &CyclicContainmentError{Path: cycle}
		var notes []diag.Note
		for _, name := range cycle[1:] {
			notes = append(notes, diag.Note{
				Span: spanOf(relations, class, name),
				Msg:  "cycle passes through " + name,
			})
		}
		reporter.Report(diag.GraphCyclicContainment, diag.SevError,
			spanOf(relations, class, cycle[0]), err.Error(), notes)
		return nil, err
	}
	clusters.transitiveReduce()
	if name, parents, ok := clusters.multiParent(); ok {
		err := &MultipleParentError{Cluster: name, Parents: parents}
		var notes []diag.Note
		for _, parent := range parents {
			notes = append(notes, diag.Note{
				Span: spanOf(relations, class, parent),
				Msg:  "candidate parent " + parent,
			})
		}
		reporter.Report(diag.GraphMultipleParent, diag.SevError,
			spanOf(relations, class, name), err.Error(), notes)
		return nil, err
	}

	g := dot.NewGraph(true)
	nodes := map[string]struct{}{}
	for _, o := range objects {
		if !class.isNodeType(o.Type) {
			continue
		}
		g.AddNode(o.Name, fact.Merged(class.Style(o.Type), o.Attrs))
		nodes[o.Name] = struct{}{}
	}

	inVertices := func(name string) bool {
		if _, ok := nodes[name]; ok {
			return true
		}
		return clusters.contains(name)
	}
	endpoint := func(name string) string {
		if clusters.contains(name) {
			return "cluster" + name
		}
		return name
	}

	for i, r := range relations {
		isEdge := class.isEdgeType(r.Rel) && inVertices(r.LHS) && inVertices(r.RHS)
		isNodeContainment := false
		if class.isContainment(r.Rel) && inVertices(r.LHS) {
			_, isNodeContainment = nodes[r.RHS]
		}
		if !isEdge && !isNodeContainment {
			continue
		}
		attrs := fact.Merged(class.Style(r.Rel), r.Attrs)
		if r.LHSLabel.Set {
			attrs.Set("taillabel", r.LHSLabel.Text)
		}
		if r.RHSLabel.Set {
			attrs.Set("headlabel", r.RHSLabel.Text)
		}
		g.AddEdge(endpoint(r.LHS), endpoint(r.RHS), i, attrs)
	}

	containers := map[string]*dot.Subgraph{}
	for _, name := range clusters.parentsFirst() {
		o := clusters.objects[name]
		var parent *dot.Subgraph
		if ps := clusters.parents[name]; len(ps) > 0 {
			parent = containers[ps[0]]
		}
		sub := g.AddSubgraph(parent, "cluster"+name,
			fact.Merged(class.Style(o.typ), o.attrs))
		containers[name] = sub
		for _, r := range relations {
			if r.RHS != name || !class.isContainment(r.Rel) {
				continue
			}
			if _, ok := nodes[r.LHS]; ok {
				sub.AddMember(r.LHS)
			}
		}
	}
	return g, nil
}

type Options struct {
	Reporter diag.Reporter
}

// spanOf finds the span of the first containment relation naming the
// offending cluster, to anchor the diagnostic somewhere useful.
func spanOf(relations []fact.Relation, class *Classification, name string) source.Span {
	for _, r := range relations {
		if class.isContainment(r.Rel) && (r.LHS == name || r.RHS == name) {
			return r.Span
		}
	}
	return source.Span{}
}
