package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Inbound is the transport-neutral view of a received message.
type Inbound struct {
	MessageID       string
	AuthorID        string
	AuthorTag       string
	AuthorName      string
	AuthorAvatarURL string
	AuthorIsBot     bool
	Content         string
	ChannelID       string
	// Empty for direct messages
	GuildID string
	// Empty for direct messages; filled by ResolveChannel
	ChannelLabel string
	MentionIDs   []string
	CreatedAt    time.Time
}

// Reference points back at the message for reply delivery.
func (in Inbound) Reference() *discordgo.MessageReference {
	return &discordgo.MessageReference{MessageID: in.MessageID, ChannelID: in.ChannelID}
}

// NewInbound converts a gateway event without touching the API.
func NewInbound(m *discordgo.MessageCreate) Inbound {
	in := Inbound{
		MessageID: m.ID,
		Content:   m.Content,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		CreatedAt: m.Timestamp,
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}

	if m.Author != nil {
		in.AuthorID = m.Author.ID
		in.AuthorTag = m.Author.String()
		in.AuthorIsBot = m.Author.Bot
		in.AuthorName = m.Author.Username
		if m.Author.GlobalName != "" {
			in.AuthorName = m.Author.GlobalName
		}
		in.AuthorAvatarURL = m.Author.AvatarURL("")
	}
	if m.Member != nil && m.Member.Nick != "" {
		in.AuthorName = m.Member.Nick
	}

	for _, u := range m.Mentions {
		if u != nil {
			in.MentionIDs = append(in.MentionIDs, u.ID)
		}
	}

	return in
}

// ResolveChannel looks up the channel name of a guild message. Direct
// messages need no lookup, and a failed lookup leaves the label empty.
func (in *Inbound) ResolveChannel(s Session) {
	if in.GuildID == "" {
		return
	}
	if ch, err := s.Channel(in.ChannelID); err == nil && ch != nil && ch.Type != discordgo.ChannelTypeDM {
		in.ChannelLabel = ch.Name
	}
}
