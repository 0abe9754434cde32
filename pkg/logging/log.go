package logging

import (
	"log/slog"
	"os"
	"strings"

	"lutherbot/pkg/config"

	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
)

// Preinit installs a console logger so startup errors are readable before the config exists.
func Preinit() {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})))
}

func Init(cfg config.Log) {
	level := ParseLevel(cfg.Level)

	handlers := []slog.Handler{
		console.NewHandler(os.Stderr, &console.HandlerOptions{
			AddSource: true,
			Level:     level,
		}),
	}

	if cfg.JSON {
		handlers = append(handlers, slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		}))
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
