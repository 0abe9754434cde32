package persona

import (
	"strings"
	"testing"

	"lutherbot/pkg/generation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticWindow map[string]string

func (w staticWindow) Render(channelID string) string {
	return w[channelID]
}

func newTestComposer() *Composer {
	brief, detailed := DefaultModeSettings()
	return NewComposer(Profile{
		Name:        "馬丁路德",
		Description: "以馬丁路德的身份回應。",
		Language:    "繁體中文",
	}, brief, detailed)
}

func TestComposer_BriefRequest(t *testing.T) {
	c := newTestComposer()
	window := staticWindow{"c1": "alice: 什麼是恩典？"}

	req := c.Build(Turn{
		ChannelID:    "c1",
		ChannelLabel: "general",
		AuthorLabel:  "bob",
		Content:      "信心是什麼？",
	}, window, generation.ModeBrief)

	assert.Equal(t, generation.ModeBrief, req.Mode)
	assert.EqualValues(t, 90, req.MaxOutputTokens)
	assert.InDelta(t, 0.6, req.Temperature, 1e-9)
	assert.Equal(t, "alice: 什麼是恩典？", req.ContextText)
	assert.Equal(t, "general", req.ChannelLabel)

	order := []string{
		"Recent conversation:\nalice: 什麼是恩典？",
		"Message: 信心是什麼？",
		"Channel: general",
		"Author: bob (human)",
		"Response mode: brief.",
	}
	last := -1
	for _, part := range order {
		idx := strings.Index(req.Input, part)
		require.GreaterOrEqual(t, idx, 0, "missing %q", part)
		assert.Greater(t, idx, last, "%q out of order", part)
		last = idx
	}
	assert.Contains(t, req.Input, "30 繁體中文 characters")
}

func TestComposer_DetailedRequest(t *testing.T) {
	c := newTestComposer()

	req := c.Build(Turn{
		ChannelID:   "dm",
		AuthorLabel: "sibling",
		AuthorIsBot: true,
		Content:     "請解釋因信稱義",
	}, staticWindow{}, generation.ModeDetailed)

	assert.EqualValues(t, 1000, req.MaxOutputTokens)
	assert.InDelta(t, 0.4, req.Temperature, 1e-9)
	assert.Equal(t, DirectMessageTag, req.ChannelLabel)
	assert.True(t, req.AuthorIsBot)
	assert.Contains(t, req.Input, "(no earlier messages)")
	assert.Contains(t, req.Input, "Author: sibling (bot)")
	assert.Contains(t, req.Input, "Response mode: detailed. "+detailedDirective)
	assert.Contains(t, req.SystemPrompt, req.Instructions)
	assert.Contains(t, req.SystemPrompt, "Response mode: detailed.")
}

func TestComposer_InstructionsForbidLetterStyle(t *testing.T) {
	c := newTestComposer()

	ins := c.Instructions()
	assert.Contains(t, ins, "You are 馬丁路德.")
	assert.Contains(t, ins, "Answer in 繁體中文")
	assert.Contains(t, ins, "never sign your name")
	assert.Contains(t, ins, "never close with a blessing")
}
