package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// SlashCommands defines all available slash commands
var SlashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "reset",
		Description: "清除此頻道的對話紀錄",
	},
	{
		Name:        "status",
		Description: "查看機器人目前的狀態",
	},
}

// SlashCommandHandlers maps command names to their handler functions
var SlashCommandHandlers = map[string]func(h *Handler, s Session, i *discordgo.InteractionCreate){
	"reset":  handleResetCommand,
	"status": handleStatusCommand,
}

func handleResetCommand(h *Handler, s Session, i *discordgo.InteractionCreate) {
	userID, userName, err := getUserFromInteraction(i)
	if err != nil {
		slog.Warn("Ignoring reset command", "error", err)
		return
	}

	content := "🧹 已清除此頻道的對話紀錄。"
	if h.ResetChannel(userID, i.ChannelID) == ControlUnauthorized {
		content = "🔒 只有授權用戶可以清除對話紀錄。"
	} else {
		slog.Info("Channel context reset", "channel", i.ChannelID, "by", userName)
	}

	if err := respondEphemeral(s, i, content); err != nil {
		slog.Error("Error responding to reset command", "error", err)
	}
}

func handleStatusCommand(h *Handler, s Session, i *discordgo.InteractionCreate) {
	st := h.Status(i.ChannelID)

	state := "▶️ 運行中"
	if !st.Active {
		state = "⏸️ 已暫停"
	}

	content := fmt.Sprintf("**%s**\n狀態：%s\n此頻道對話紀錄：%d/%d 則\n追蹤中的頻道：%d",
		h.botName, state, st.ContextSize, st.ContextCapacity, st.Channels)
	if err := respondEphemeral(s, i, content); err != nil {
		slog.Error("Error responding to status command", "error", err)
	}
}

// InteractionCreate handles all slash command interactions
func (h *Handler) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.HandleInteraction(&DiscordSession{s}, i)
}

func (h *Handler) HandleInteraction(s Session, i *discordgo.InteractionCreate) {
	// Only handle application commands (slash commands)
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	commandName := i.ApplicationCommandData().Name

	if handler, ok := SlashCommandHandlers[commandName]; ok {
		handler(h, s, i)
	} else {
		slog.Warn("Unknown slash command", "name", commandName)
	}
}

// RegisterSlashCommands registers all slash commands with Discord
func RegisterSlashCommands(s *discordgo.Session, guildID string) ([]*discordgo.ApplicationCommand, error) {
	slog.Info("Registering slash commands", "guild", guildID)

	registeredCommands := make([]*discordgo.ApplicationCommand, len(SlashCommands))

	for i, cmd := range SlashCommands {
		// Register globally (guildID = "") or for a specific guild
		registeredCmd, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			return nil, err
		}
		registeredCommands[i] = registeredCmd
		slog.Info("Registered command", "name", cmd.Name)
	}

	return registeredCommands, nil
}

// UnregisterSlashCommands removes all registered slash commands
func UnregisterSlashCommands(s *discordgo.Session, guildID string, commands []*discordgo.ApplicationCommand) error {
	slog.Info("Unregistering slash commands")

	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID)
		if err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
			return err
		}
		slog.Info("Unregistered command", "name", cmd.Name)
	}

	return nil
}
