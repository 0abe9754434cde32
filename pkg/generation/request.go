package generation

// Mode selects the length and style tier of a reply.
type Mode int

const (
	ModeBrief Mode = iota
	ModeDetailed
)

func (m Mode) String() string {
	switch m {
	case ModeDetailed:
		return "detailed"
	default:
		return "brief"
	}
}

// Request is built once per inbound message.
type Request struct {
	Mode Mode

	ContextText  string
	UserMessage  string
	ChannelLabel string
	AuthorLabel  string
	AuthorIsBot  bool

	MaxOutputTokens int64
	Temperature     float64

	// Instructions accompanies the primary call shape.
	Instructions string
	// SystemPrompt is the expanded persona and style block for the fallback call shape.
	SystemPrompt string
	// Input is the composed instruction block sent as the user turn.
	Input string
}
