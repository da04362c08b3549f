// Package dot holds an in-memory graphviz graph and serializes it
// to DOT text.
package dot

import "relviz/internal/fact"

// Graph is a non-strict graph with optional nested cluster
// subgraphs. Parallel edges between the same endpoints are kept.
type Graph struct {
	Name     string
	Strict   bool
	Directed bool

	Nodes     []*Node
	Edges     []*Edge
	Subgraphs []*Subgraph

	nodeIndex map[string]*Node
	subIndex  map[string]*Subgraph
}

type Node struct {
	Name  string
	Attrs fact.Attrs
}

// Edge connects two node or subgraph names. Key distinguishes
// parallel edges and is not serialized.
type Edge struct {
	Tail  string
	Head  string
	Key   int
	Attrs fact.Attrs
}

// Subgraph is a cluster container. Members name nodes drawn inside
// it; their attributes live on the owning Graph's node records.
type Subgraph struct {
	Name      string
	Attrs     fact.Attrs
	Members   []string
	Subgraphs []*Subgraph
}

func NewGraph(directed bool) *Graph {
	return &Graph{
		Directed:  directed,
		nodeIndex: map[string]*Node{},
		subIndex:  map[string]*Subgraph{},
	}
}

// AddNode records a node. Repeated additions of the same name merge
// attributes, later values winning per key.
func (g *Graph) AddNode(name string, attrs fact.Attrs) *Node {
	if n, ok := g.nodeIndex[name]; ok {
		n.Attrs.Merge(attrs)
		return n
	}
	n := &Node{Name: name, Attrs: attrs.Clone()}
	g.Nodes = append(g.Nodes, n)
	g.nodeIndex[name] = n
	return n
}

func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodeIndex[name]
	return n, ok
}

func (g *Graph) AddEdge(tail, head string, key int, attrs fact.Attrs) *Edge {
	e := &Edge{Tail: tail, Head: head, Key: key, Attrs: attrs.Clone()}
	g.Edges = append(g.Edges, e)
	return e
}

// AddSubgraph creates a cluster container nested under parent, or at
// the top level when parent is nil.
func (g *Graph) AddSubgraph(parent *Subgraph, name string, attrs fact.Attrs) *Subgraph {
	s := &Subgraph{Name: name, Attrs: attrs.Clone()}
	if parent != nil {
		parent.Subgraphs = append(parent.Subgraphs, s)
	} else {
		g.Subgraphs = append(g.Subgraphs, s)
	}
	g.subIndex[name] = s
	return s
}

func (g *Graph) Subgraph(name string) (*Subgraph, bool) {
	s, ok := g.subIndex[name]
	return s, ok
}

func (s *Subgraph) AddMember(name string) {
	for _, m := range s.Members {
		if m == name {
			return
		}
	}
	s.Members = append(s.Members, name)
}

// claimed returns the set of node names owned by some subgraph.
func (g *Graph) claimed() map[string]struct{} {
	owned := map[string]struct{}{}
	var walk func(s *Subgraph)
	walk = func(s *Subgraph) {
		for _, m := range s.Members {
			owned[m] = struct{}{}
		}
		for _, child := range s.Subgraphs {
			walk(child)
		}
	}
	for _, s := range g.Subgraphs {
		walk(s)
	}
	return owned
}
