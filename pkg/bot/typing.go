package bot

import (
	"context"
	"log/slog"
	"time"
)

// Discord shows the typing indicator for about ten seconds
const typingRefreshInterval = 8 * time.Second

// SimulateTyping shows the typing indicator for d, refreshing it as needed.
// It returns ctx.Err() if ctx is cancelled first.
func SimulateTyping(ctx context.Context, s Session, channelID string, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	if err := s.ChannelTyping(channelID); err != nil {
		slog.Debug("Error sending typing indicator", "channel", channelID, "error", err)
	}

	deadline := time.NewTimer(d)
	defer deadline.Stop()
	refresh := time.NewTicker(typingRefreshInterval)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return nil
		case <-refresh.C:
			if err := s.ChannelTyping(channelID); err != nil {
				slog.Debug("Error refreshing typing indicator", "channel", channelID, "error", err)
			}
		}
	}
}

// sleep waits for d unless ctx ends first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
