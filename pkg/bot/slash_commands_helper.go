package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/samber/oops"
)

// getUserFromInteraction extracts the user ID and name from an interaction.
// It handles both guild (Member) and DM (User) contexts.
func getUserFromInteraction(i *discordgo.InteractionCreate) (string, string, error) {
	var user *discordgo.User
	switch {
	case i.Member != nil && i.Member.User != nil:
		user = i.Member.User
	case i.User != nil:
		user = i.User
	default:
		return "", "", oops.In("slash_commands").Errorf("could not determine user from interaction")
	}

	userName := user.Username
	if user.GlobalName != "" {
		userName = user.GlobalName
	}
	return user.ID, userName, nil
}

func respondEphemeral(s Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral, // Only visible to the user who ran the command
		},
	})
}
