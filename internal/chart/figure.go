package chart

import (
	"fmt"

	"github.com/nakamasato/xot/internal/graph"
	"github.com/nakamasato/xot/internal/thought"
)

const (
	ColorTerminal = "lightblue"
	ColorPositive = "green"
	ColorNegative = "red"
	ColorNeutral  = "lightgreen"
	ColorEdge     = "#888"

	SizeTerminal = 40
	SizeNode     = 30
)

// Figure is a plotly figure description: an edge trace followed by a node trace.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type         string     `json:"type"`
	X            []*float64 `json:"x"` // nil separates line segments
	Y            []*float64 `json:"y"`
	Mode         string     `json:"mode"`
	HoverInfo    string     `json:"hoverinfo"`
	Line         *Line      `json:"line,omitempty"`
	Marker       *Marker    `json:"marker,omitempty"`
	Text         []string   `json:"text,omitempty"`
	TextPosition string     `json:"textposition,omitempty"`
	HoverText    []string   `json:"hovertext,omitempty"`
	CustomData   []string   `json:"customdata,omitempty"` // node ids, used by click handlers
}

type Line struct {
	Width int    `json:"width"`
	Color string `json:"color,omitempty"`
}

type Marker struct {
	ShowScale bool     `json:"showscale"`
	Color     []string `json:"color"`
	Size      []int    `json:"size"`
	Line      Line     `json:"line"`
}

type Layout struct {
	ShowLegend  bool   `json:"showlegend"`
	HoverMode   string `json:"hovermode"`
	Margin      Margin `json:"margin"`
	XAxis       Axis   `json:"xaxis"`
	YAxis       Axis   `json:"yaxis"`
	PlotBgColor string `json:"plot_bgcolor"`
}

type Margin struct {
	B int `json:"b"`
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
}

type Axis struct {
	ShowGrid       bool `json:"showgrid"`
	ZeroLine       bool `json:"zeroline"`
	ShowTickLabels bool `json:"showticklabels"`
}

// NodeColor maps a node to its marker color. Input and Output keep a fixed color.
func NodeColor(n thought.Node) string {
	if n.IsTerminal() {
		return ColorTerminal
	}
	switch n.Sentiment {
	case thought.Positive:
		return ColorPositive
	case thought.Negative:
		return ColorNegative
	default:
		return ColorNeutral
	}
}

func NodeSize(n thought.Node) int {
	if n.IsTerminal() {
		return SizeTerminal
	}
	return SizeNode
}

// NewFigure draws the edges of g as line segments and its nodes as labelled markers at pos.
func NewFigure(g *graph.Graph, pos graph.Positions) Figure {
	edges := Trace{
		Type:      "scatter",
		Mode:      "lines",
		HoverInfo: "none",
		Line:      &Line{Width: 2, Color: ColorEdge},
		X:         []*float64{},
		Y:         []*float64{},
	}
	for _, e := range g.Edges() {
		from, to := pos[e.From], pos[e.To]
		edges.X = append(edges.X, ptr(from.X), ptr(to.X), nil)
		edges.Y = append(edges.Y, ptr(from.Y), ptr(to.Y), nil)
	}

	nodes := g.Nodes()
	points := Trace{
		Type:         "scatter",
		Mode:         "markers+text",
		HoverInfo:    "text",
		TextPosition: "top center",
		Marker: &Marker{
			Color: make([]string, 0, len(nodes)),
			Size:  make([]int, 0, len(nodes)),
			Line:  Line{Width: 2},
		},
	}
	for _, n := range nodes {
		p := pos[n.ID]
		points.X = append(points.X, ptr(p.X))
		points.Y = append(points.Y, ptr(p.Y))
		points.Marker.Color = append(points.Marker.Color, NodeColor(n))
		points.Marker.Size = append(points.Marker.Size, NodeSize(n))
		points.Text = append(points.Text, n.ID)
		points.HoverText = append(points.HoverText, fmt.Sprintf("%s: %s", n.ID, n.Description))
		points.CustomData = append(points.CustomData, n.ID)
	}

	return Figure{
		Data: []Trace{edges, points},
		Layout: Layout{
			ShowLegend:  false,
			HoverMode:   "closest",
			Margin:      Margin{B: 20, L: 5, R: 5, T: 40},
			PlotBgColor: "rgba(0,0,0,0)",
		},
	}
}

func ptr(f float64) *float64 {
	return &f
}
