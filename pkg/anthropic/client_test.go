package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageResponse_Text(t *testing.T) {
	resp := &MessageResponse{Content: []ContentBlock{
		{Type: "text", Text: "first "},
		{Type: "tool_use", Text: "ignored"},
		{Type: "text", Text: "second"},
	}}
	assert.Equal(t, "first second", resp.Text())
}

func TestMessageResponse_Text_Empty(t *testing.T) {
	resp := &MessageResponse{}
	assert.Equal(t, "", resp.Text())
}

func TestPricingCoversScorerModels(t *testing.T) {
	for _, model := range []string{
		"claude-haiku-4-5-20251001",
		"claude-sonnet-4-5-20250929",
	} {
		p, ok := perMTok[model]
		assert.True(t, ok, model)
		assert.Greater(t, p[1], p[0], "output rate should exceed input rate for %s", model)
	}
}
