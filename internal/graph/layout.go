package graph

import (
	"math"

	"gonum.org/v1/gonum/graph/layout"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps a node id to its 2D coordinate.
type Positions map[string]Point

// LayoutOptions tunes the Eades spring embedder.
type LayoutOptions struct {
	Updates   int     // number of iterations
	Repulsion float64 // strength of the node repulsion
	Rate      float64 // gradient descent rate
	Theta     float64 // Barnes-Hut approximation threshold
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Updates:   100,
		Repulsion: 1,
		Rate:      0.05,
		Theta:     0.2,
	}
}

// Layout computes a force-directed layout of g normalised to [-1, 1].
// No seed is used, so positions differ between runs.
func Layout(g *Graph, opts LayoutOptions) Positions {
	pos := make(Positions, g.Len())
	switch g.Len() {
	case 0:
		return pos
	case 1:
		pos[g.nodes[0].ID] = Point{}
		return pos
	}

	if opts.Updates <= 0 {
		opts.Updates = DefaultLayoutOptions().Updates
	}
	eades := layout.EadesR2{
		Updates:   opts.Updates,
		Repulsion: opts.Repulsion,
		Rate:      opts.Rate,
		Theta:     opts.Theta,
	}
	optimizer := layout.NewOptimizerR2(g.directed(), eades.Update)
	for optimizer.Update() {
	}

	for id, n := range g.nodes {
		v := optimizer.Coord2(int64(id))
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return circle(g)
		}
		pos[n.ID] = Point{X: v.X, Y: v.Y}
	}
	return rescale(pos)
}

// circle places the nodes evenly on the unit circle in insertion order.
func circle(g *Graph) Positions {
	pos := make(Positions, g.Len())
	step := 2 * math.Pi / float64(g.Len())
	for i, n := range g.nodes {
		angle := float64(i) * step
		pos[n.ID] = Point{X: math.Cos(angle), Y: math.Sin(angle)}
	}
	return pos
}

// rescale centers pos on the origin and scales it so the largest coordinate is 1.
func rescale(pos Positions) Positions {
	var cx, cy float64
	for _, p := range pos {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pos))
	cy /= float64(len(pos))

	var limit float64
	for id, p := range pos {
		p = Point{X: p.X - cx, Y: p.Y - cy}
		pos[id] = p
		limit = math.Max(limit, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if limit == 0 {
		return pos
	}
	for id, p := range pos {
		pos[id] = Point{X: p.X / limit, Y: p.Y / limit}
	}
	return pos
}
