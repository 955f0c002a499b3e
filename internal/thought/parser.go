package thought

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	stepPattern        = regexp.MustCompile(`(?s)Step (\d+):\s*(.+?)\s*\((.+?)\)`)
	nodePattern        = regexp.MustCompile(`(?s)Node (\d+):\s*(.+?)\s*\((.+?)\)`)
	edgePattern        = regexp.MustCompile(`Edge:\s*Node (\d+) -> Node (\d+)`)
	deletionPattern    = regexp.MustCompile(`(?m)Deleted Node:[ \t]*(.*)$`)
	nodeRefPattern     = regexp.MustCompile(`\bNode (\d+)`)
	bareNumberPattern  = regexp.MustCompile(`^(\d+)\b`)
	finalAnswerPattern = regexp.MustCompile(`(?s)Final Answer:\s*(.+?)$`)
)

// Parse dispatches to the parser for mode.
func Parse(mode Mode, response string) (ParseResult, error) {
	switch mode {
	case ModeBasic:
		return ParseBasic(response), nil
	case ModeCoT:
		return ParseCoT(response), nil
	case ModeGoT:
		return ParseGoT(response), nil
	}
	return ParseResult{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// ParseBasic returns the fixed Input -> Output graph. The whole response is the final answer.
func ParseBasic(response string) ParseResult {
	return ParseResult{
		Mode:        ModeBasic,
		Nodes:       []Node{terminal(InputID), terminal(OutputID)},
		Edges:       []Edge{{From: InputID, To: OutputID}},
		FinalAnswer: response,
	}
}

// ParseCoT extracts "Step n: description (Sentiment)" entries and chains them
// Input -> first step -> ... -> last step -> Output in order of appearance.
// Without any step the graph is Input -> Output.
func ParseCoT(response string) ParseResult {
	body, answer := splitFinalAnswer(response)
	steps := extractNodes(stepPattern, "Step", body)

	nodes := wrap(steps)
	edges := make([]Edge, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		edges = append(edges, Edge{From: nodes[i-1].ID, To: nodes[i].ID})
	}

	return ParseResult{
		Mode:        ModeCoT,
		Nodes:       nodes,
		Edges:       edges,
		FinalAnswer: answer,
	}
}

// ParseGoT extracts nodes, edges and deletions of a graph of thoughts.
// A node is deleted when its label is referenced by any "Deleted Node:" line;
// edges touching a deleted node are discarded. Input is linked to the first
// surviving node and the last surviving node is linked to Output.
func ParseGoT(response string) ParseResult {
	body, answer := splitFinalAnswer(response)

	deleted, deletedOrder := deletedNodes(body)
	defined := extractNodes(nodePattern, "Node", deletionPattern.ReplaceAllString(body, ""))

	var survivors []Node
	for _, n := range defined {
		if !deleted[n.ID] {
			survivors = append(survivors, n)
		}
	}

	var edges []Edge
	if len(survivors) == 0 {
		edges = []Edge{{From: InputID, To: OutputID}}
	} else {
		edges = append(edges, Edge{From: InputID, To: survivors[0].ID})
		for _, m := range edgePattern.FindAllStringSubmatch(body, -1) {
			e := Edge{From: "Node " + m[1], To: "Node " + m[2]}
			if deleted[e.From] || deleted[e.To] {
				continue
			}
			edges = append(edges, e)
		}
		edges = append(edges, Edge{From: survivors[len(survivors)-1].ID, To: OutputID})
	}

	nodes := wrap(survivors)
	kept, dropped := validateEdges(nodes, edges)
	return ParseResult{
		Mode:        ModeGoT,
		Nodes:       nodes,
		Edges:       kept,
		FinalAnswer: answer,
		Dropped:     dropped,
		Deleted:     deletedOrder,
	}
}

// splitFinalAnswer separates the reasoning body from the text after "Final Answer:".
func splitFinalAnswer(response string) (string, string) {
	loc := finalAnswerPattern.FindStringSubmatchIndex(response)
	if loc == nil {
		return response, NoFinalAnswer
	}
	answer := strings.TrimSpace(response[loc[2]:loc[3]])
	if answer == "" {
		answer = NoFinalAnswer
	}
	return response[:loc[0]], answer
}

// extractNodes returns the labelled nodes in order of appearance. A repeated label keeps its first definition.
func extractNodes(pattern *regexp.Regexp, prefix, text string) []Node {
	seen := make(map[string]bool)
	var nodes []Node
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		id := prefix + " " + m[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		nodes = append(nodes, Node{
			ID:          id,
			Description: strings.TrimSpace(m[2]),
			Sentiment:   ParseSentiment(m[3]),
		})
	}
	return nodes
}

// deletedNodes collects every node label referenced by a deletion line.
// "Deleted Node: 2 - reason" refers to Node 2 as well.
func deletedNodes(text string) (map[string]bool, []string) {
	deleted := make(map[string]bool)
	var order []string
	add := func(id string) {
		if !deleted[id] {
			deleted[id] = true
			order = append(order, id)
		}
	}
	for _, m := range deletionPattern.FindAllStringSubmatch(text, -1) {
		capture := strings.TrimSpace(m[1])
		if n := bareNumberPattern.FindStringSubmatch(capture); n != nil {
			add("Node " + n[1])
		}
		for _, ref := range nodeRefPattern.FindAllStringSubmatch(capture, -1) {
			add("Node " + ref[1])
		}
	}
	return deleted, order
}

func wrap(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes)+2)
	out = append(out, terminal(InputID))
	out = append(out, nodes...)
	return append(out, terminal(OutputID))
}

// validateEdges splits edges into those whose endpoints are both known nodes and the rest.
func validateEdges(nodes []Node, edges []Edge) (kept, dropped []Edge) {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	kept = make([]Edge, 0, len(edges))
	for _, e := range edges {
		if known[e.From] && known[e.To] {
			kept = append(kept, e)
		} else {
			dropped = append(dropped, e)
		}
	}
	return kept, dropped
}
