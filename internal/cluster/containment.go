package cluster

import "relviz/internal/fact"

// containmentGraph is the child-to-parent digraph over cluster
// objects. An edge lhs→rhs means lhs is drawn inside rhs.
type containmentGraph struct {
	order   []string
	objects map[string]clusterObject
	parents map[string][]string
}

type clusterObject struct {
	typ   string
	attrs fact.Attrs
}

func newContainmentGraph(objects []fact.Object, relations []fact.Relation, class *Classification) *containmentGraph {
	g := &containmentGraph{
		objects: map[string]clusterObject{},
		parents: map[string][]string{},
	}
	for _, o := range objects {
		if !class.isClusterType(o.Type) {
			continue
		}
		if _, ok := g.objects[o.Name]; !ok {
			g.order = append(g.order, o.Name)
		}
		// Redeclaration replaces the recorded type and attrs.
		g.objects[o.Name] = clusterObject{typ: o.Type, attrs: o.Attrs}
	}
	for _, r := range relations {
		if !class.isContainment(r.Rel) {
			continue
		}
		if _, ok := g.objects[r.LHS]; !ok {
			continue
		}
		if _, ok := g.objects[r.RHS]; !ok {
			continue
		}
		g.addEdge(r.LHS, r.RHS)
	}
	return g
}

func (g *containmentGraph) contains(name string) bool {
	_, ok := g.objects[name]
	return ok
}

func (g *containmentGraph) addEdge(child, parent string) {
	for _, p := range g.parents[child] {
		if p == parent {
			return
		}
	}
	g.parents[child] = append(g.parents[child], parent)
}

func (g *containmentGraph) removeEdge(child, parent string) {
	ps := g.parents[child]
	for i, p := range ps {
		if p == parent {
			g.parents[child] = append(ps[:i:i], ps[i+1:]...)
			return
		}
	}
}

// findCycle returns a containment cycle as the path of containers
// walked from its first node, or nil when the graph is acyclic.
func (g *containmentGraph) findCycle() []string {
	const (
		unvisited = iota
		onStack
		done
	)
	state := map[string]int{}
	var path []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = onStack
		path = append(path, name)
		for _, parent := range g.parents[name] {
			switch state[parent] {
			case onStack:
				// Cut the path down to the cycle and close it.
				for i, n := range path {
					if n == parent {
						return append(append([]string(nil), path[i:]...), parent)
					}
				}
			case unvisited:
				if cycle := visit(parent); cycle != nil {
					return cycle
				}
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}

	for _, name := range g.order {
		if state[name] == unvisited {
			path = path[:0]
			if cycle := visit(name); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// transitiveReduce drops every edge whose target is reachable
// through another edge of the same source, keeping only direct
// parents.
func (g *containmentGraph) transitiveReduce() {
	var process func(src, via string, done map[string]struct{})
	process = func(src, via string, done map[string]struct{}) {
		if _, ok := done[via]; ok {
			return
		}
		for _, grand := range append([]string(nil), g.parents[via]...) {
			g.removeEdge(src, grand)
			process(src, grand, done)
		}
		done[via] = struct{}{}
	}
	for _, src := range g.order {
		done := map[string]struct{}{}
		for _, parent := range append([]string(nil), g.parents[src]...) {
			process(src, parent, done)
		}
	}
}

// multiParent returns the first cluster left with more than one
// direct parent, in declaration order.
func (g *containmentGraph) multiParent() (string, []string, bool) {
	for _, name := range g.order {
		if ps := g.parents[name]; len(ps) > 1 {
			return name, ps, true
		}
	}
	return "", nil, false
}

// parentsFirst orders clusters so every parent precedes its
// children. Call only on an acyclic, single-parent graph.
func (g *containmentGraph) parentsFirst() []string {
	placed := map[string]struct{}{}
	var sorted []string
	for len(sorted) < len(g.order) {
		for _, name := range g.order {
			if _, ok := placed[name]; ok {
				continue
			}
			ready := true
			for _, parent := range g.parents[name] {
				if _, ok := placed[parent]; !ok {
					ready = false
					break
				}
			}
			if ready {
				placed[name] = struct{}{}
				sorted = append(sorted, name)
			}
		}
	}
	return sorted
}
