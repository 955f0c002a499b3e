package graph

import (
	"bytes"
	"math"
	"testing"

	"github.com/nakamasato/xot/internal/thought"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cotResult() thought.ParseResult {
	return thought.ParseCoT("Step 1: a (Positive)\nStep 2: b (Negative)\nFinal Answer: c")
}

func TestAssemble(t *testing.T) {
	g := Assemble(cotResult())

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, []thought.Edge{
		{From: "Input", To: "Step 1"},
		{From: "Step 1", To: "Step 2"},
		{From: "Step 2", To: "Output"},
	}, g.Edges())

	n, ok := g.Node("Step 2")
	require.True(t, ok)
	assert.Equal(t, "b", n.Description)
	assert.Equal(t, thought.Negative, n.Sentiment)

	assert.Equal(t, []string{"Step 1"}, g.Successors("Input"))
	assert.Nil(t, g.Successors("missing"))
}

func TestAddEdgeSkipsSelfLoopsAndDuplicates(t *testing.T) {
	g := NewGraph()
	g.AddNode(thought.Node{ID: "Node 1"})
	g.AddNode(thought.Node{ID: "Node 2"})

	assert.True(t, g.AddEdge("Node 1", "Node 2"))
	assert.False(t, g.AddEdge("Node 1", "Node 2"))
	assert.False(t, g.AddEdge("Node 1", "Node 1"))
	assert.Len(t, g.Edges(), 1)
}

func TestAddEdgeAddsUnknownNodes(t *testing.T) {
	g := NewGraph()
	g.AddEdge("Node 1", "Node 2")

	assert.Equal(t, 2, g.Len())
	n, ok := g.Node("Node 2")
	require.True(t, ok)
	assert.Equal(t, thought.Neutral, n.Sentiment)
}

func TestAddNodeReplacesAttributes(t *testing.T) {
	g := NewGraph()
	g.AddNode(thought.Node{ID: "Node 1", Description: "old"})
	g.AddNode(thought.Node{ID: "Node 1", Description: "new"})

	assert.Equal(t, 1, g.Len())
	n, _ := g.Node("Node 1")
	assert.Equal(t, "new", n.Description)
}

func TestDisplay(t *testing.T) {
	var buf bytes.Buffer
	Assemble(cotResult()).Display(&buf)

	assert.Equal(t, `Input
  -> Step 1
Step 1: a (Positive)
  -> Step 2
Step 2: b (Negative)
  -> Output
Output
`, buf.String())
}

func TestLayout(t *testing.T) {
	g := Assemble(thought.ParseGoT(`Node 1: a (Positive)
Node 2: b (Neutral)
Node 3: c (Negative)
Edge: Node 1 -> Node 2
Edge: Node 1 -> Node 3
Edge: Node 2 -> Node 3`))

	pos := Layout(g, DefaultLayoutOptions())

	require.Len(t, pos, g.Len())
	var maxAbs float64
	for _, n := range g.Nodes() {
		p, ok := pos[n.ID]
		require.True(t, ok, n.ID)
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), n.ID)
		assert.LessOrEqual(t, math.Abs(p.X), 1+1e-9)
		assert.LessOrEqual(t, math.Abs(p.Y), 1+1e-9)
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	assert.InDelta(t, 1, maxAbs, 1e-9)
}

func TestLayoutSmallGraphs(t *testing.T) {
	assert.Empty(t, Layout(NewGraph(), DefaultLayoutOptions()))

	g := NewGraph()
	g.AddNode(thought.Node{ID: "Input"})
	assert.Equal(t, Positions{"Input": {}}, Layout(g, LayoutOptions{}))
}

func TestCircle(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(thought.Node{ID: id})
	}
	pos := circle(g)

	assert.InDelta(t, 1, pos["a"].X, 1e-9)
	assert.InDelta(t, 0, pos["a"].Y, 1e-9)
	assert.InDelta(t, 1, pos["b"].Y, 1e-9)
	assert.InDelta(t, -1, pos["c"].X, 1e-9)
}

func TestRescale(t *testing.T) {
	pos := rescale(Positions{"a": {X: 2, Y: 2}, "b": {X: 4, Y: 2}})

	assert.InDelta(t, -1, pos["a"].X, 1e-9)
	assert.InDelta(t, 1, pos["b"].X, 1e-9)
	assert.InDelta(t, 0, pos["a"].Y, 1e-9)

	same := rescale(Positions{"a": {X: 3, Y: 3}, "b": {X: 3, Y: 3}})
	assert.Equal(t, Point{}, same["a"])
}
