package graph

import (
	"fmt"
	"io"

	"github.com/nakamasato/xot/internal/thought"
	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph is a directed reasoning graph. Node attributes are kept next to the gonum graph
// which only knows integer ids.
type Graph struct {
	g     *simple.DirectedGraph
	ids   map[string]int64
	nodes []thought.Node
	edges []thought.Edge
}

// NewGraph creates a new graph
func NewGraph() *Graph {
	return &Graph{
		g:   simple.NewDirectedGraph(),
		ids: make(map[string]int64),
	}
}

// AddNode adds a node to the graph. Adding an existing id replaces its attributes.
func (g *Graph) AddNode(n thought.Node) {
	if id, ok := g.ids[n.ID]; ok {
		g.nodes[id] = n
		return
	}
	id := int64(len(g.nodes))
	g.ids[n.ID] = id
	g.nodes = append(g.nodes, n)
	g.g.AddNode(simple.Node(id))
}

// AddEdge adds an edge between two nodes. Unknown endpoints are added without
// attributes. Self loops and repeated edges are ignored and reported as false.
func (g *Graph) AddEdge(from, to string) bool {
	if from == to {
		return false
	}
	for _, id := range []string{from, to} {
		if _, ok := g.ids[id]; !ok {
			g.AddNode(thought.Node{ID: id, Sentiment: thought.Neutral})
		}
	}
	f, t := g.ids[from], g.ids[to]
	if g.g.HasEdgeFromTo(f, t) {
		return false
	}
	g.g.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
	g.edges = append(g.edges, thought.Edge{From: from, To: to})
	return true
}

// Assemble builds the graph of a parse result, keeping description and sentiment of every node.
func Assemble(r thought.ParseResult) *Graph {
	g := NewGraph()
	for _, n := range r.Nodes {
		g.AddNode(n)
	}
	for _, e := range r.Edges {
		g.AddEdge(e.From, e.To)
	}
	return g
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []thought.Node {
	return append([]thought.Node(nil), g.nodes...)
}

// Edges returns the distinct edges in insertion order.
func (g *Graph) Edges() []thought.Edge {
	return append([]thought.Edge(nil), g.edges...)
}

func (g *Graph) Node(id string) (thought.Node, bool) {
	i, ok := g.ids[id]
	if !ok {
		return thought.Node{}, false
	}
	return g.nodes[i], true
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// Successors returns the ids reachable through one outgoing edge of id.
func (g *Graph) Successors(id string) []string {
	i, ok := g.ids[id]
	if !ok {
		return nil
	}
	var out []string
	for _, e := range g.edges {
		if g.ids[e.From] == i {
			out = append(out, e.To)
		}
	}
	return out
}

func (g *Graph) directed() gonumgraph.Directed {
	return g.g
}

// Display writes the graph as text
func (g *Graph) Display(w io.Writer) {
	for _, n := range g.nodes {
		if n.IsTerminal() {
			fmt.Fprintf(w, "%s\n", n.ID)
		} else {
			fmt.Fprintf(w, "%s: %s (%s)\n", n.ID, n.Description, n.Sentiment)
		}
		for _, to := range g.Successors(n.ID) {
			fmt.Fprintf(w, "  -> %s\n", to)
		}
	}
}
