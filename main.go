package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"lutherbot/pkg/bot"
	"lutherbot/pkg/config"
	"lutherbot/pkg/generation"
	"lutherbot/pkg/logging"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/samber/oops"
)

func main() {
	logging.Preinit()

	// Load .env for secrets
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load("config.yml")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.Log)

	di := do.New()
	defer func() {
		if err := di.Shutdown(); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	appCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	do.ProvideValue(di, cfg)
	do.Provide(di, newGenerator)
	do.Provide(di, newHandler)
	do.Provide(di, newSession)

	if err := run(appCtx, di); err != nil {
		slog.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, di *do.Injector) error {
	cfg := do.MustInvoke[*config.Config](di)
	dg, err := do.Invoke[*discordgo.Session](di)
	if err != nil {
		return err
	}

	if err := dg.Open(); err != nil {
		return oops.In("discord").Wrapf(err, "error opening connection")
	}
	defer func() {
		if err := dg.Close(); err != nil {
			slog.Error("Error closing Discord session", "error", err)
		}
	}()

	registeredCommands, err := bot.RegisterSlashCommands(dg, cfg.GuildID)
	if err != nil {
		return oops.In("discord").Wrapf(err, "error registering slash commands")
	}
	defer func() {
		if err := bot.UnregisterSlashCommands(dg, cfg.GuildID, registeredCommands); err != nil {
			slog.Error("Error unregistering slash commands", "error", err)
		}
	}()

	slog.Info("Bot is now running. Press CTRL-C to exit.", "persona", cfg.Persona.BotName, "model", cfg.ModelSettings.Model)

	<-ctx.Done()
	slog.Info("Shutting down...")
	if err := do.Shutdown[*bot.Handler](di); err != nil {
		slog.Error("Error shutting down handler", "error", err)
	}
	return nil
}

func newGenerator(di *do.Injector) (bot.Generator, error) {
	cfg := do.MustInvoke[*config.Config](di)
	m := cfg.ModelSettings

	return generation.NewClient(generation.Settings{
		APIKey:        cfg.OpenAIKey,
		BaseURL:       m.BaseURL,
		Model:         m.Model,
		FallbackModel: m.FallbackModel,
		PromptID:      m.PromptID,
		PromptVersion: m.PromptVersion,
		MaxRetries:    m.MaxRetries,
	}), nil
}

func newHandler(di *do.Injector) (*bot.Handler, error) {
	cfg := do.MustInvoke[*config.Config](di)
	gen := do.MustInvoke[bot.Generator](di)
	return bot.NewHandler(cfg, gen), nil
}

func newSession(di *do.Injector) (*discordgo.Session, error) {
	cfg := do.MustInvoke[*config.Config](di)
	handler := do.MustInvoke[*bot.Handler](di)

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, oops.In("discord").Wrapf(err, "error creating Discord session")
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	dg.AddHandler(handler.Ready)
	dg.AddHandler(handler.MessageCreate)
	dg.AddHandler(handler.InteractionCreate)

	return dg, nil
}
