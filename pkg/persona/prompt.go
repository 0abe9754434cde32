package persona

import (
	"fmt"
	"strings"

	"lutherbot/pkg/generation"
)

// Turn is the inbound message as the composer sees it.
type Turn struct {
	ChannelID    string
	ChannelLabel string
	AuthorLabel  string
	AuthorIsBot  bool
	Content      string
}

type ContextRenderer interface {
	Render(channelID string) string
}

type Profile struct {
	Name        string
	Description string
	Language    string
}

type ModeSettings struct {
	MaxOutputTokens int64
	Temperature     float64
}

func DefaultModeSettings() (brief, detailed ModeSettings) {
	return ModeSettings{MaxOutputTokens: 90, Temperature: 0.6},
		ModeSettings{MaxOutputTokens: 1000, Temperature: 0.4}
}

type Composer struct {
	profile  Profile
	brief    ModeSettings
	detailed ModeSettings
}

func NewComposer(profile Profile, brief, detailed ModeSettings) *Composer {
	return &Composer{profile: profile, brief: brief, detailed: detailed}
}

func (c *Composer) Instructions() string {
	return fmt.Sprintf(instructionsTemplate, c.profile.Name, c.profile.Description, c.profile.Language)
}

func (c *Composer) StyleDirective(mode generation.Mode) string {
	if mode == generation.ModeDetailed {
		return detailedDirective
	}
	return fmt.Sprintf(briefDirectiveTemplate, c.profile.Language)
}

// Build assembles the request: context, message, channel, author, mode, in that order.
func (c *Composer) Build(turn Turn, window ContextRenderer, mode generation.Mode) generation.Request {
	settings := c.brief
	if mode == generation.ModeDetailed {
		settings = c.detailed
	}

	contextText := window.Render(turn.ChannelID)

	channel := turn.ChannelLabel
	if channel == "" {
		channel = DirectMessageTag
	}

	authorTag := humanAuthorTag
	if turn.AuthorIsBot {
		authorTag = botAuthorTag
	}

	directive := c.StyleDirective(mode)

	var b strings.Builder
	b.WriteString(contextHeading + "\n")
	if contextText == "" {
		b.WriteString(emptyContext)
	} else {
		b.WriteString(contextText)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s: %s\n", messageLabel, turn.Content)
	fmt.Fprintf(&b, "%s: %s\n", channelLabel, channel)
	fmt.Fprintf(&b, "%s: %s (%s)\n", authorLabel, turn.AuthorLabel, authorTag)
	fmt.Fprintf(&b, "%s: %s. %s", modeLabel, mode.String(), directive)

	instructions := c.Instructions()

	return generation.Request{
		Mode:            mode,
		ContextText:     contextText,
		UserMessage:     turn.Content,
		ChannelLabel:    channel,
		AuthorLabel:     turn.AuthorLabel,
		AuthorIsBot:     turn.AuthorIsBot,
		MaxOutputTokens: settings.MaxOutputTokens,
		Temperature:     settings.Temperature,
		Instructions:    instructions,
		SystemPrompt:    fmt.Sprintf(fallbackSystemTemplate, instructions, mode.String(), directive),
		Input:           b.String(),
	}
}
