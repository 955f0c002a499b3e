package reasoner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nakamasato/xot/internal/chart"
	"github.com/nakamasato/xot/internal/graph"
	"github.com/nakamasato/xot/internal/llm"
	"github.com/nakamasato/xot/internal/logging"
	"github.com/nakamasato/xot/internal/prompt"
	"github.com/nakamasato/xot/internal/thought"
	"github.com/sirupsen/logrus"
)

var ErrEmptyQuestion = errors.New("question is empty")

// Result is everything shown for one question: the parsed graph, its layout and the chart.
type Result struct {
	ID        string              `json:"id" jsonschema_description:"Unique id of the result"`
	Question  string              `json:"question"`
	Mode      thought.Mode        `json:"mode" jsonschema:"enum=basic,enum=cot,enum=got"`
	Response  string              `json:"response" jsonschema_description:"Raw model response"`
	Parsed    thought.ParseResult `json:"parsed"`
	Positions graph.Positions     `json:"positions" jsonschema_description:"Layout coordinates keyed by node id"`
	Figure    chart.Figure        `json:"figure" jsonschema_description:"Plotly figure description"`
	CreatedAt time.Time           `json:"created_at"`
}

// NodeDetail returns the node with the given id.
func (r *Result) NodeDetail(id string) (thought.Node, bool) {
	return r.Parsed.Node(id)
}

// Page returns the standalone chart page of the result.
func (r *Result) Page() chart.Page {
	return chart.Page{
		Question:    r.Question,
		Mode:        r.Mode,
		FinalAnswer: r.Parsed.FinalAnswer,
		Figure:      r.Figure,
		Nodes:       r.Parsed.Nodes,
	}
}

type Reasoner struct {
	llmClient  llm.Client
	layoutOpts graph.LayoutOptions
}

type Option func(*Reasoner)

func WithLayoutOptions(opts graph.LayoutOptions) Option {
	return func(r *Reasoner) {
		r.layoutOpts = opts
	}
}

func NewReasoner(llmClient llm.Client, opts ...Option) *Reasoner {
	r := &Reasoner{
		llmClient:  llmClient,
		layoutOpts: graph.DefaultLayoutOptions(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run asks the model to answer question with the strategy of mode and builds the result.
func (r *Reasoner) Run(ctx context.Context, mode thought.Mode, question string) (*Result, error) {
	response, err := r.Generate(ctx, mode, question)
	if err != nil {
		return nil, err
	}
	return r.Build(mode, question, response)
}

// Generate fills the prompt of mode and returns the raw model response.
func (r *Reasoner) Generate(ctx context.Context, mode thought.Mode, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	p, err := prompt.Render(mode, question)
	if err != nil {
		return "", err
	}

	start := time.Now()
	response, err := r.llmClient.GenerateCompletionSimple(ctx, llm.UserMessages(p))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	logging.Logger.WithFields(logrus.Fields{
		"mode":     mode,
		"duration": time.Since(start).Round(time.Millisecond),
		"length":   len(response),
	}).Info("generated response")
	return response, nil
}

// Build parses response and lays out its graph. It does not call the model.
func (r *Reasoner) Build(mode thought.Mode, question, response string) (*Result, error) {
	parsed, err := thought.Parse(mode, response)
	if err != nil {
		return nil, err
	}
	if len(parsed.Dropped) > 0 {
		logging.Logger.Warnf("dropped %d edge(s) referencing unknown nodes: %v", len(parsed.Dropped), parsed.Dropped)
	}
	if len(parsed.Deleted) > 0 {
		logging.Logger.Debugf("deleted nodes: %v", parsed.Deleted)
	}

	g := graph.Assemble(parsed)
	positions := graph.Layout(g, r.layoutOpts)

	return &Result{
		ID:        uuid.NewString(),
		Question:  strings.TrimSpace(question),
		Mode:      mode,
		Response:  response,
		Parsed:    parsed,
		Positions: positions,
		Figure:    chart.NewFigure(g, positions),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ResultSchema describes the JSON form of Result.
var ResultSchema = llm.GenerateSchema[Result]("result", "Reasoning graph built from a model response")
