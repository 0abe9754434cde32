package bot

import (
	"strings"
	"sync"

	"lutherbot/pkg/generation"

	"github.com/elliotchance/pie/v2"
)

const (
	StopCommand  = "!stop"
	StartCommand = "!start"
)

// Replies of the control commands start with these, so the bot never answers them.
var controlGlyphs = []string{"⏸", "▶"}

type DropReason int

const (
	DropNone DropReason = iota
	DropSelf
	DropSibling
	DropCommandPrefix
	DropControlGlyph
	DropControlCommand
	DropInactive
	DropBlacklisted
)

func (r DropReason) String() string {
	switch r {
	case DropSelf:
		return "self"
	case DropSibling:
		return "sibling"
	case DropCommandPrefix:
		return "command_prefix"
	case DropControlGlyph:
		return "control_glyph"
	case DropControlCommand:
		return "control_command"
	case DropInactive:
		return "inactive"
	case DropBlacklisted:
		return "blacklisted"
	default:
		return "none"
	}
}

type Decision struct {
	Reply  bool
	Mode   generation.Mode
	Reason DropReason
}

// ResponseGate decides whether a message gets a reply and in which mode.
type ResponseGate struct {
	mu        sync.RWMutex
	botID     string
	siblingID string
	blacklist []string
}

func NewResponseGate(botID, siblingID string, blacklist []string) *ResponseGate {
	return &ResponseGate{botID: botID, siblingID: siblingID, blacklist: blacklist}
}

// SetBotID is called once the gateway reports who we are.
func (g *ResponseGate) SetBotID(id string) {
	g.mu.Lock()
	g.botID = id
	g.mu.Unlock()
}

func (g *ResponseGate) BotID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.botID
}

// Evaluate applies the drop rules in order; the first match wins.
func (g *ResponseGate) Evaluate(msg Inbound, active bool) Decision {
	botID := g.BotID()

	switch {
	case botID != "" && msg.AuthorID == botID:
		return drop(DropSelf)
	case g.siblingID != "" && Mentions(msg, g.siblingID):
		return drop(DropSibling)
	case strings.HasPrefix(msg.Content, "/"):
		return drop(DropCommandPrefix)
	case hasControlGlyph(msg.Content):
		return drop(DropControlGlyph)
	case IsControlCommand(msg.Content):
		return drop(DropControlCommand)
	case !active:
		return drop(DropInactive)
	case pie.Contains(g.blacklist, msg.ChannelID):
		return drop(DropBlacklisted)
	}

	if botID != "" && Mentions(msg, botID) {
		return Decision{Reply: true, Mode: generation.ModeDetailed}
	}
	return Decision{Reply: true, Mode: generation.ModeBrief}
}

func drop(reason DropReason) Decision {
	return Decision{Reason: reason}
}

// Mentions reports whether msg mentions userID, either through the mention
// list or as a raw <@id> / <@!id> token.
func Mentions(msg Inbound, userID string) bool {
	if pie.Contains(msg.MentionIDs, userID) {
		return true
	}
	return strings.Contains(msg.Content, "<@"+userID+">") ||
		strings.Contains(msg.Content, "<@!"+userID+">")
}

func IsControlCommand(content string) bool {
	trimmed := strings.TrimSpace(content)
	return trimmed == StopCommand || trimmed == StartCommand
}

func hasControlGlyph(content string) bool {
	return pie.Any(controlGlyphs, func(glyph string) bool {
		return strings.HasPrefix(content, glyph)
	})
}
