package prompt

import (
	"strings"
	"testing"

	"github.com/nakamasato/xot/internal/thought"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		mode     thought.Mode
		contains []string
	}{
		{thought.ModeBasic, []string{"Question: Why is the sky blue?\n\nAnswer:"}},
		{thought.ModeCoT, []string{"Question: Why is the sky blue?", "Step 1: [Brief description] (Positive/Negative/Neutral)", "Final Answer:"}},
		{thought.ModeGoT, []string{"Question: Why is the sky blue?", "Edge: Node X -> Node Y", "Deleted Node:", "Final Answer:"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got, err := Render(tt.mode, "  Why is the sky blue?\n")
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			assert.NotContains(t, got, "%!")
		})
	}
}

func TestRenderKeepsPercentSigns(t *testing.T) {
	got, err := Render(thought.ModeBasic, "Is 50% of 10 equal to 5?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "Question: Is 50% of 10 equal to 5?"))
}

func TestRenderUnknownMode(t *testing.T) {
	_, err := Render(thought.Mode("tot"), "q")
	assert.ErrorIs(t, err, thought.ErrUnknownMode)
}
