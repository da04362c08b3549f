package cluster_test

import (
	"errors"
	"strings"
	"testing"

	"relviz/internal/cluster"
	"relviz/internal/diag"
	"relviz/internal/dot"
	"relviz/internal/fact"
	"relviz/internal/model"
	"relviz/internal/parser"
	"relviz/internal/source"
)

func parseFacts(t *testing.T, name, input string) []fact.Fact {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(input))
	facts, err := parser.ParseFacts(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return facts
}

func buildGraph(t *testing.T, style, content string) (*dot.Graph, error) {
	t.Helper()
	class, err := cluster.Classify(parseFacts(t, "style.rv", style), model.Options{})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	return cluster.Build(parseFacts(t, "content.rv", content), class, cluster.Options{})
}

func mustBuild(t *testing.T, style, content string) *dot.Graph {
	t.Helper()
	g, err := buildGraph(t, style, content)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return g
}

const basicStyle = "node-type service\n  shape: box\n" +
	"cluster-type group\n  style: rounded\n" +
	"edge-type calls\n  style: dashed\n" +
	"containment in\n"

func TestStyledNode(t *testing.T) {
	g := mustBuild(t, basicStyle, "service api\n  color: red\n")
	n, ok := g.Node("api")
	if !ok {
		t.Fatal("no node api")
	}
	if v, _ := n.Attrs.Get("shape"); v != "box" {
		t.Errorf("shape = %q, want box (from type style)", v)
	}
	if v, _ := n.Attrs.Get("color"); v != "red" {
		t.Errorf("color = %q", v)
	}
}

func TestObjectAttrsOverrideTypeStyle(t *testing.T) {
	g := mustBuild(t, basicStyle, "service api\n  shape: circle\n")
	n, _ := g.Node("api")
	if v, _ := n.Attrs.Get("shape"); v != "circle" {
		t.Errorf("shape = %q, want circle", v)
	}
}

func TestUnclassifiedObjectSkipped(t *testing.T) {
	g := mustBuild(t, basicStyle, "widget w\n")
	if _, ok := g.Node("w"); ok {
		t.Error("object of unclassified type must not become a node")
	}
}

func TestStyledEdgeWithLabels(t *testing.T) {
	g := mustBuild(t, basicStyle,
		"service api, db\napi (src) calls (dst) db\n  weight: 2\n")
	if len(g.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(g.Edges))
	}
	e := g.Edges[0]
	if e.Tail != "api" || e.Head != "db" {
		t.Errorf("edge = %s -> %s", e.Tail, e.Head)
	}
	for key, want := range map[string]string{
		"style": "dashed", "weight": "2", "taillabel": "src", "headlabel": "dst",
	} {
		if v, _ := e.Attrs.Get(key); v != want {
			t.Errorf("%s = %q, want %q", key, v, want)
		}
	}
}

func TestEdgeNeedsKnownEndpoints(t *testing.T) {
	g := mustBuild(t, basicStyle, "service api\napi calls ghost\n")
	if len(g.Edges) != 0 {
		t.Errorf("got %d edges, want 0 (ghost is not a vertex)", len(g.Edges))
	}
}

func TestParallelEdges(t *testing.T) {
	g := mustBuild(t, basicStyle,
		"service api, db\napi calls db\napi calls db\n")
	if len(g.Edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(g.Edges))
	}
	if g.Edges[0].Key == g.Edges[1].Key {
		t.Error("parallel edges must carry distinct keys")
	}
}

func TestClusterMembership(t *testing.T) {
	g := mustBuild(t, basicStyle, "group G\nservice api\napi in G\n")
	sub, ok := g.Subgraph("clusterG")
	if !ok {
		t.Fatal("no subgraph clusterG")
	}
	if len(sub.Members) != 1 || sub.Members[0] != "api" {
		t.Errorf("members = %v, want [api]", sub.Members)
	}
	if v, _ := sub.Attrs.Get("style"); v != "rounded" {
		t.Errorf("cluster style = %q", v)
	}
	// Containment of a node inside a cluster is membership, not an edge.
	if len(g.Edges) != 0 {
		t.Errorf("got %d edges, want 0", len(g.Edges))
	}
}

func TestContainmentEdgeToPlainNode(t *testing.T) {
	g := mustBuild(t, basicStyle, "service api, db\napi in db\n")
	if len(g.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(g.Edges))
	}
}

func TestClusterEndpointPrefixed(t *testing.T) {
	g := mustBuild(t, basicStyle, "group G\nservice api\napi calls G\n")
	if len(g.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(g.Edges))
	}
	if g.Edges[0].Head != "clusterG" {
		t.Errorf("head = %q, want clusterG", g.Edges[0].Head)
	}
}

func TestNestedClusters(t *testing.T) {
	g := mustBuild(t, basicStyle,
		"group Inner, Outer\nservice api\nInner in Outer\napi in Inner\n")
	outer, ok := g.Subgraph("clusterOuter")
	if !ok {
		t.Fatal("no subgraph clusterOuter")
	}
	if len(g.Subgraphs) != 1 || g.Subgraphs[0] != outer {
		t.Errorf("top-level subgraphs = %v", g.Subgraphs)
	}
	if len(outer.Subgraphs) != 1 || outer.Subgraphs[0].Name != "clusterInner" {
		t.Fatalf("outer children = %v", outer.Subgraphs)
	}
	if members := outer.Subgraphs[0].Members; len(members) != 1 || members[0] != "api" {
		t.Errorf("inner members = %v", members)
	}
}

func TestTransitiveReduction(t *testing.T) {
	// The direct X-in-B edge is redundant given X in A in B.
	g := mustBuild(t, basicStyle,
		"group X, A, B\nX in A\nA in B\nX in B\n")
	b, ok := g.Subgraph("clusterB")
	if !ok {
		t.Fatal("no subgraph clusterB")
	}
	if len(b.Subgraphs) != 1 || b.Subgraphs[0].Name != "clusterA" {
		t.Fatalf("B children = %v, want [clusterA]", b.Subgraphs)
	}
	if len(b.Subgraphs[0].Subgraphs) != 1 || b.Subgraphs[0].Subgraphs[0].Name != "clusterX" {
		t.Errorf("A children = %v, want [clusterX]", b.Subgraphs[0].Subgraphs)
	}
}

func TestCyclicContainment(t *testing.T) {
	_, err := buildGraph(t, basicStyle, "group A, B\nA in B\nB in A\n")
	var cycErr *cluster.CyclicContainmentError
	if !errors.As(err, &cycErr) {
		t.Fatalf("expected CyclicContainmentError, got %v", err)
	}
	if len(cycErr.Path) != 3 || cycErr.Path[0] != cycErr.Path[2] {
		t.Errorf("cycle path = %v", cycErr.Path)
	}
	if !strings.Contains(err.Error(), " in ") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCycleDiagnosticCarriesNotes(t *testing.T) {
	class, err := cluster.Classify(parseFacts(t, "style.rv", basicStyle), model.Options{})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	bag := diag.NewBag(0)
	_, err = cluster.Build(parseFacts(t, "content.rv", "group A, B\nA in B\nB in A\n"),
		class, cluster.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatal("expected cycle error")
	}
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(items))
	}
	if len(items[0].Notes) == 0 {
		t.Fatal("cycle diagnostic must note the other cycle members")
	}
	if !strings.Contains(items[0].Notes[0].Msg, "cycle passes through") {
		t.Errorf("note = %q", items[0].Notes[0].Msg)
	}
}

func TestMultipleParents(t *testing.T) {
	_, err := buildGraph(t, basicStyle, "group X, A, B\nX in A\nX in B\n")
	var mpErr *cluster.MultipleParentError
	if !errors.As(err, &mpErr) {
		t.Fatalf("expected MultipleParentError, got %v", err)
	}
	if mpErr.Cluster != "X" {
		t.Errorf("cluster = %q, want X", mpErr.Cluster)
	}
	if len(mpErr.Parents) != 2 {
		t.Errorf("parents = %v", mpErr.Parents)
	}
}

func TestStyleInheritance(t *testing.T) {
	style := "node-type base\n  shape: box\n" +
		"node-type special generalization base\n  color: red\n"
	g := mustBuild(t, style, "special thing\n")
	n, ok := g.Node("thing")
	if !ok {
		t.Fatal("no node thing")
	}
	if v, _ := n.Attrs.Get("shape"); v != "box" {
		t.Errorf("shape = %q, want box (inherited)", v)
	}
	if v, _ := n.Attrs.Get("color"); v != "red" {
		t.Errorf("color = %q, want red", v)
	}
}

func TestDeterministicOutput(t *testing.T) {
	content := "group G\nservice api, db\napi in G\napi calls db\n"
	first := mustBuild(t, basicStyle, content).String()
	for i := 0; i < 10; i++ {
		if got := mustBuild(t, basicStyle, content).String(); got != first {
			t.Fatalf("output differs between runs:\n%s\nvs:\n%s", first, got)
		}
	}
}
