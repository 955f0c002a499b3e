package prompt

import (
	"fmt"
	"strings"

	"github.com/nakamasato/xot/internal/thought"
)

const (
	BASIC_PROMPT = "Question: %s\n\nAnswer:"

	COT_PROMPT = `
Provide a detailed chain of thought to answer the following question:

Question: %s

Respond with steps in this format only, exactly as shown:
Step 1: [Brief description] (Positive/Negative/Neutral)
Step 2: [Brief description] (Positive/Negative/Neutral)
...
Final Answer: [Concise answer based on the steps within 150 words. Do not refer the graph.]

You may include branching thoughts or remove steps that seem irrelevant as you progress.
`

	GOT_PROMPT = `
Create a detailed graph of thought to answer the following question.
Question: %s

Respond in this format, exactly as shown:
Node 1: [Brief description] (Positive/Negative/Neutral)
Node 2: [Brief description] (Positive/Negative/Neutral)
...
Edge: Node X -> Node Y
Edge: Node A -> Node B
...
Deleted Node: [Node number and brief reason for deletion]
...
Final Answer: [Concise answer based on the steps within 150 words. Do not refer the graph.]

Create a complex graph with multiple connections and potential branches. You may delete nodes that become irrelevant as the graph develops.
`
)

// Template returns the prompt template of mode. It has a single %s placeholder for the question.
func Template(mode thought.Mode) (string, error) {
	switch mode {
	case thought.ModeBasic:
		return BASIC_PROMPT, nil
	case thought.ModeCoT:
		return COT_PROMPT, nil
	case thought.ModeGoT:
		return GOT_PROMPT, nil
	}
	return "", fmt.Errorf("%w: %q", thought.ErrUnknownMode, mode)
}

// Render fills the template of mode with question.
func Render(mode thought.Mode, question string) (string, error) {
	tmpl, err := Template(mode)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(tmpl, strings.TrimSpace(question)), nil
}
