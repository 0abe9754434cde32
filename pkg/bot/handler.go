package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"lutherbot/pkg/config"
	"lutherbot/pkg/generation"
	"lutherbot/pkg/persona"

	"github.com/bwmarrin/discordgo"
)

// Handler owns the whole reply pipeline and every piece of runtime state.
type Handler struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	generator Generator
	gate      *ResponseGate
	state     *RunState
	window    *ConversationWindow
	control   *RunControl
	presence  *Presence
	composer  *persona.Composer
	sanitizer *persona.Sanitizer
	delivery  *Delivery

	botName       string
	responseDelay time.Duration
}

func NewHandler(cfg *config.Config, generator Generator) *Handler {
	ctx, cancel := context.WithCancel(context.Background())

	state := NewRunState(cfg.Discord.AdminUserIDs)
	window := NewConversationWindow(cfg.Discord.HistoryLength, cfg.Discord.MaxChannels)
	presence := NewPresence(cfg.Persona.PresenceActive, cfg.Persona.PresencePaused)

	p := cfg.Persona
	m := cfg.ModelSettings

	return &Handler{
		ctx:       ctx,
		cancel:    cancel,
		generator: generator,
		gate:      NewResponseGate("", cfg.Discord.SiblingBotID, cfg.Discord.BlacklistedChannels),
		state:     state,
		window:    window,
		control:   NewRunControl(state, window, presence),
		presence:  presence,
		composer: persona.NewComposer(
			persona.Profile{Name: p.Name, Description: p.Description, Language: p.Language},
			persona.ModeSettings{MaxOutputTokens: int64(m.BriefMaxTokens), Temperature: m.BriefTemperature},
			persona.ModeSettings{MaxOutputTokens: int64(m.DetailedMaxTokens), Temperature: m.DetailedTemperature},
		),
		sanitizer: persona.NewSanitizer(
			persona.BuildRules(p.Salutations, p.Closings, p.Signatures),
			persona.DefaultBudget(),
		),
		delivery: NewDelivery(CardStyle{
			Color:        p.Card.Color,
			AuthorName:   p.Name,
			AuthorIcon:   p.AvatarURL,
			FooterSuffix: p.Card.FooterSuffix,
			NoteName:     p.Card.NoteName,
			NoteValue:    p.Card.NoteValue,
		}, DeliveryOptions{
			MaxLength:     cfg.Discord.MaxResponseLength,
			CardThreshold: cfg.Discord.CardThreshold,
			ChunkPause:    seconds(cfg.Delays.ChunkPause),
		}),
		botName:       p.BotName,
		responseDelay: seconds(cfg.Delays.Response),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (h *Handler) SetBotID(id string) {
	h.gate.SetBotID(id)
}

// SetSession gives the presence updater a session to talk through.
func (h *Handler) SetSession(s Session) {
	h.presence.Attach(s)
}

// Ready publishes the current run state as presence.
func (h *Handler) Ready(s *discordgo.Session, r *discordgo.Ready) {
	h.SetBotID(r.User.ID)
	h.SetSession(&DiscordSession{s})
	h.presence.SetPresence(h.state.Active())
	slog.Info("Logged in", "user", r.User.String(), "guilds", len(r.Guilds))
}

func (h *Handler) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.HandleMessage(&DiscordSession{s}, m)
}

func (h *Handler) HandleMessage(s Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil {
		return
	}
	h.handle(s, NewInbound(m))
}

func (h *Handler) handle(s Session, in Inbound) {
	active, epoch := h.state.Snapshot()

	decision := h.gate.Evaluate(in, active)
	if decision.Reason == DropControlCommand {
		h.handleControl(s, in)
		return
	}
	if !decision.Reply {
		slog.Debug("Ignoring message", "channel", in.ChannelID, "author", in.AuthorTag, "reason", decision.Reason)
		return
	}

	slog.Info("Received message",
		"channel", in.ChannelID,
		"author", in.AuthorTag,
		"mode", decision.Mode,
		"content", persona.Truncate(in.Content, 100),
	)

	h.window.Update(in.ChannelID, Record{
		AuthorTag:   in.AuthorTag,
		Content:     in.Content,
		TimestampMs: in.CreatedAt.UnixMilli(),
		IsBot:       in.AuthorIsBot,
	})

	h.wg.Add(1)
	go h.reply(s, in, decision.Mode, epoch)
}

// reply runs after the pacing delay. Stopping the bot in the meantime makes
// the epoch stale and the reply is dropped.
func (h *Handler) reply(s Session, in Inbound, mode generation.Mode, epoch uint64) {
	defer h.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic while replying", "channel", in.ChannelID, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if err := SimulateTyping(h.ctx, s, in.ChannelID, h.responseDelay); err != nil {
		slog.Debug("Reply cancelled before generation", "channel", in.ChannelID, "error", err)
		return
	}
	if !h.state.Current(epoch) {
		slog.Debug("Dropping stale reply", "channel", in.ChannelID)
		return
	}

	// In-flight work finishes even when the handler is closing.
	ctx := context.WithoutCancel(h.ctx)

	in.ResolveChannel(s)

	req := h.composer.Build(persona.Turn{
		ChannelID:    in.ChannelID,
		ChannelLabel: in.ChannelLabel,
		AuthorLabel:  in.AuthorName,
		AuthorIsBot:  in.AuthorIsBot,
		Content:      in.Content,
	}, h.window, mode)

	result, err := h.generator.Invoke(ctx, req)
	if err != nil {
		h.apologize(s, in, mode, err)
		return
	}

	text, ok := result.Text()
	if !ok {
		slog.Warn("Backend returned no text", "channel", in.ChannelID, "source", result.Source())
		return
	}

	text = h.sanitizer.Clean(text, mode)
	if text == "" {
		slog.Warn("Reply was empty after cleanup", "channel", in.ChannelID)
		return
	}

	if !h.state.Current(epoch) {
		slog.Debug("Dropping stale reply", "channel", in.ChannelID)
		return
	}

	if err := h.delivery.Send(ctx, s, in, text, mode == generation.ModeDetailed); err != nil {
		slog.Error("Error delivering reply", "channel", in.ChannelID, "error", err)
		return
	}

	slog.Info("Replied to message", "channel", in.ChannelID, "author", in.AuthorTag, "source", result.Source())
}

// apologize tells the user about a backend failure, but only when they
// addressed the bot directly.
func (h *Handler) apologize(s Session, in Inbound, mode generation.Mode, err error) {
	apology := ClassifyError(err)
	slog.Error("Error generating reply", "channel", in.ChannelID, "kind", apology.Kind, "error", err)

	if mode != generation.ModeDetailed {
		return
	}
	if _, sendErr := s.ChannelMessageSend(in.ChannelID, apology.Text); sendErr != nil {
		slog.Error("Error sending apology", "channel", in.ChannelID, "error", sendErr)
	}
}

func (h *Handler) handleControl(s Session, in Inbound) {
	var reply string

	switch strings.TrimSpace(in.Content) {
	case StopCommand:
		switch h.control.TryStop(in.AuthorID) {
		case ControlUnauthorized:
			reply = "🔒 只有授權用戶可以停止機器人。"
		default:
			slog.Info("Bot stopped", "by", in.AuthorTag)
			reply = fmt.Sprintf("⏸️ %s已停止回應。使用 `%s` 重新啟動。", h.botName, StartCommand)
		}
	case StartCommand:
		switch h.control.TryStart(in.AuthorID) {
		case ControlUnauthorized:
			reply = "🔒 只有授權用戶可以啟動機器人。"
		case ControlAlreadyActive:
			reply = "✅ 機器人已經在運行中。"
		default:
			slog.Info("Bot started", "by", in.AuthorTag)
			reply = fmt.Sprintf("▶️ %s已重新啟動，將繼續回應訊息。", h.botName)
		}
	default:
		return
	}

	if _, err := s.ChannelMessageSendReply(in.ChannelID, reply, in.Reference()); err != nil {
		slog.Error("Error replying to control command", "channel", in.ChannelID, "error", err)
	}
}

type Status struct {
	Active bool
	// Records kept for the asking channel
	ContextSize     int
	ContextCapacity int
	Channels        int
}

func (h *Handler) Status(channelID string) Status {
	return Status{
		Active:          h.state.Active(),
		ContextSize:     h.window.Len(channelID),
		ContextCapacity: h.window.capacity,
		Channels:        h.window.Channels(),
	}
}

// ResetChannel forgets the context of one channel.
func (h *Handler) ResetChannel(userID, channelID string) ControlResult {
	if !h.state.Authorized(userID) {
		return ControlUnauthorized
	}
	h.window.ClearChannel(channelID)
	return ControlOK
}

func (h *Handler) WaitForReady() {
	h.wg.Wait()
}

// Shutdown drains pending replies and sets the bot invisible. It must run
// while the gateway is still connected.
func (h *Handler) Shutdown() error {
	h.Close()
	h.presence.Hide()
	return nil
}

// Close cancels replies that are still waiting out their delay and waits for
// the ones already generating.
func (h *Handler) Close() {
	h.cancel()
	h.wg.Wait()
}
