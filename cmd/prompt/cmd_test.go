package prompt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptCommand(t *testing.T) {
	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--mode", "got", "Why", "is", "the", "sky", "blue?"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Why is the sky blue?")
	assert.Contains(t, out.String(), "Deleted Node")
}

func TestPromptCommandBasic(t *testing.T) {
	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-m", "basic", "2+2?"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "2+2?")
	assert.NotContains(t, out.String(), "Step 1")
}
