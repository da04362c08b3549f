package dot

import (
	"fmt"
	"io"
	"strings"

	"relviz/internal/fact"
)

// Write serializes the graph as DOT. Output is deterministic:
// statements follow insertion order and attributes keep their
// declared order.
func (g *Graph) Write(w io.Writer) error {
	var b strings.Builder
	if g.Strict {
		b.WriteString("strict ")
	}
	if g.Directed {
		b.WriteString("digraph ")
	} else {
		b.WriteString("graph ")
	}
	if g.Name != "" {
		b.WriteString(quote(g.Name))
		b.WriteByte(' ')
	}
	b.WriteString("{\n")

	owned := g.claimed()
	for _, n := range g.Nodes {
		if _, ok := owned[n.Name]; ok {
			continue
		}
		g.writeNode(&b, 1, n)
	}
	for _, s := range g.Subgraphs {
		g.writeSubgraph(&b, 1, s)
	}
	arrow := " -- "
	if g.Directed {
		arrow = " -> "
	}
	for _, e := range g.Edges {
		indent(&b, 1)
		b.WriteString(quote(e.Tail))
		b.WriteString(arrow)
		b.WriteString(quote(e.Head))
		writeAttrList(&b, e.Attrs)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (g *Graph) String() string {
	var b strings.Builder
	g.Write(&b)
	return b.String()
}

func (g *Graph) writeSubgraph(b *strings.Builder, depth int, s *Subgraph) {
	indent(b, depth)
	fmt.Fprintf(b, "subgraph %s {\n", quote(s.Name))
	for _, pair := range s.Attrs.Pairs() {
		indent(b, depth+1)
		fmt.Fprintf(b, "%s=%s;\n", quote(pair.Key), quote(pair.Value))
	}
	for _, name := range s.Members {
		if n, ok := g.Node(name); ok {
			g.writeNode(b, depth+1, n)
		} else {
			indent(b, depth+1)
			b.WriteString(quote(name))
			b.WriteString(";\n")
		}
	}
	for _, child := range s.Subgraphs {
		g.writeSubgraph(b, depth+1, child)
	}
	indent(b, depth)
	b.WriteString("}\n")
}

func (g *Graph) writeNode(b *strings.Builder, depth int, n *Node) {
	indent(b, depth)
	b.WriteString(quote(n.Name))
	writeAttrList(b, n.Attrs)
	b.WriteString(";\n")
}

func writeAttrList(b *strings.Builder, attrs fact.Attrs) {
	pairs := attrs.Pairs()
	if len(pairs) == 0 {
		return
	}
	b.WriteString(" [")
	for i, pair := range pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s=%s", quote(pair.Key), quote(pair.Value))
	}
	b.WriteByte(']')
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// quote renders a DOT ID, quoting unless it is a safe bare
// identifier. Double quotes are escaped and newlines become the \n
// escape; other backslashes pass through so escape sequences like
// \l survive.
func quote(id string) string {
	if isBareID(id) {
		return id
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range id {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBareID(id string) bool {
	if id == "" {
		return false
	}
	for i, r := range id {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
