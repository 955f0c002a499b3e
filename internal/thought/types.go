package thought

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the reasoning strategy used to prompt the model and parse its answer.
type Mode string

const (
	ModeBasic Mode = "basic"
	ModeCoT   Mode = "cot"
	ModeGoT   Mode = "got"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeBasic, ModeCoT, ModeGoT}

var ErrUnknownMode = errors.New("unknown reasoning mode")

func (m Mode) DisplayName() string {
	switch m {
	case ModeBasic:
		return "Basic Input-Output"
	case ModeCoT:
		return "Chain of Thought"
	case ModeGoT:
		return "Graph of Thoughts"
	}
	return string(m)
}

// ParseMode accepts a short name ("cot") or a display name ("Chain of Thought").
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for _, m := range Modes {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, m.DisplayName()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Sentiment is a coarse tag attached to a reasoning node. It only drives display colors.
type Sentiment string

const (
	Positive Sentiment = "Positive"
	Negative Sentiment = "Negative"
	Neutral  Sentiment = "Neutral"
)

// ParseSentiment normalizes the text the model wrote between parentheses.
// Anything that is not recognisably positive or negative is Neutral.
func ParseSentiment(s string) Sentiment {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "pos"):
		return Positive
	case strings.HasPrefix(s, "neg"):
		return Negative
	default:
		return Neutral
	}
}

const (
	InputID  = "Input"
	OutputID = "Output"

	// NoFinalAnswer is used when the response has no "Final Answer:" section.
	NoFinalAnswer = "No final answer provided."
)

type Node struct {
	ID          string    `json:"id" jsonschema_description:"Node identifier, e.g. Input, Step 2, Node 3"`
	Description string    `json:"description" jsonschema_description:"Reasoning text of the node"`
	Sentiment   Sentiment `json:"sentiment" jsonschema:"enum=Positive,enum=Negative,enum=Neutral"`
}

// IsTerminal reports whether n is the Input or Output node.
func (n Node) IsTerminal() bool {
	return n.ID == InputID || n.ID == OutputID
}

func terminal(id string) Node {
	return Node{ID: id, Description: id, Sentiment: Neutral}
}

type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.From, e.To)
}

// ParseResult is the graph extracted from one model response.
type ParseResult struct {
	Mode        Mode     `json:"mode"`
	Nodes       []Node   `json:"nodes"`
	Edges       []Edge   `json:"edges"`
	FinalAnswer string   `json:"final_answer"`
	Dropped     []Edge   `json:"dropped,omitempty" jsonschema_description:"Edges removed because an endpoint is not a known node"`
	Deleted     []string `json:"deleted,omitempty" jsonschema_description:"Node labels removed by Deleted Node lines"`
}

// Node returns the node with the given id.
func (r ParseResult) Node(id string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
