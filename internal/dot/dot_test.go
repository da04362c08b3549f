package dot_test

import (
	"strings"
	"testing"

	"relviz/internal/dot"
	"relviz/internal/fact"
)

func TestWriteBasic(t *testing.T) {
	g := dot.NewGraph(true)
	g.AddNode("a", fact.NewAttrs(fact.Attr{Key: "shape", Value: "box"}))
	g.AddNode("b", fact.Attrs{})
	g.AddEdge("a", "b", 0, fact.NewAttrs(fact.Attr{Key: "label", Value: "x"}))

	want := "digraph {\n" +
		"  a [shape=box];\n" +
		"  b;\n" +
		"  a -> b [label=x];\n" +
		"}\n"
	if got := g.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestQuoting(t *testing.T) {
	g := dot.NewGraph(true)
	g.AddNode("Acme Corporation", fact.NewAttrs(fact.Attr{Key: "label", Value: "he said \"hi\"\nbye"}))

	out := g.String()
	if !strings.Contains(out, `"Acme Corporation" [label="he said \"hi\"\nbye"];`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestParallelEdgesKept(t *testing.T) {
	g := dot.NewGraph(true)
	g.AddEdge("a", "b", 0, fact.Attrs{})
	g.AddEdge("a", "b", 1, fact.Attrs{})
	if got := strings.Count(g.String(), "a -> b"); got != 2 {
		t.Errorf("got %d edge statements, want 2", got)
	}
}

func TestNodeMerge(t *testing.T) {
	g := dot.NewGraph(true)
	g.AddNode("a", fact.NewAttrs(fact.Attr{Key: "shape", Value: "box"}, fact.Attr{Key: "color", Value: "red"}))
	g.AddNode("a", fact.NewAttrs(fact.Attr{Key: "color", Value: "blue"}))
	if len(g.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(g.Nodes))
	}
	if !strings.Contains(g.String(), "a [shape=box, color=blue];") {
		t.Errorf("unexpected output:\n%s", g.String())
	}
}

func TestNestedSubgraphs(t *testing.T) {
	g := dot.NewGraph(true)
	g.AddNode("n1", fact.Attrs{})
	g.AddNode("n2", fact.Attrs{})
	outer := g.AddSubgraph(nil, "clusterOuter", fact.NewAttrs(fact.Attr{Key: "label", Value: "Outer"}))
	inner := g.AddSubgraph(outer, "clusterInner", fact.Attrs{})
	inner.AddMember("n1")

	want := "digraph {\n" +
		"  n2;\n" +
		"  subgraph clusterOuter {\n" +
		"    label=Outer;\n" +
		"    subgraph clusterInner {\n" +
		"      n1;\n" +
		"    }\n" +
		"  }\n" +
		"}\n"
	if got := g.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUndirected(t *testing.T) {
	g := dot.NewGraph(false)
	g.AddEdge("a", "b", 0, fact.Attrs{})
	out := g.String()
	if !strings.HasPrefix(out, "graph {") || !strings.Contains(out, "a -- b;") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
