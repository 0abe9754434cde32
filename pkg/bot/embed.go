package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// CardStyle is the persona's look for rich replies.
type CardStyle struct {
	Color      int
	AuthorName string
	AuthorIcon string
	// Optional
	Title        string
	FooterSuffix string
	NoteName     string
	NoteValue    string
}

// NewCard renders text as an embed addressed to the message author.
func (c CardStyle) NewCard(text string, to Inbound, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color: c.Color,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    c.AuthorName,
			IconURL: c.AuthorIcon,
		},
		Title:       c.Title,
		Description: text,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("回應給 %s • %s", to.AuthorName, c.FooterSuffix),
			IconURL: to.AuthorAvatarURL,
		},
		Timestamp: now.Format(time.RFC3339),
	}

	if c.NoteName != "" && c.NoteValue != "" {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: c.NoteName, Value: c.NoteValue, Inline: false},
		}
	}
	return embed
}
