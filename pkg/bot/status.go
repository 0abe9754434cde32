package bot

import (
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Presence mirrors the run state in the bot's Discord status.
type Presence struct {
	mu         sync.RWMutex
	session    Session
	activeText string
	pausedText string
}

func NewPresence(activeText, pausedText string) *Presence {
	return &Presence{activeText: activeText, pausedText: pausedText}
}

// Attach sets the session used for updates; until then updates are skipped.
func (p *Presence) Attach(s Session) {
	p.mu.Lock()
	p.session = s
	p.mu.Unlock()
}

func (p *Presence) SetPresence(active bool) {
	p.mu.RLock()
	s := p.session
	p.mu.RUnlock()
	if s == nil {
		return
	}

	text, status := p.activeText, string(discordgo.StatusOnline)
	if !active {
		text, status = p.pausedText, string(discordgo.StatusIdle)
	}

	err := s.UpdateStatusComplex(discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{
			{
				Name: text,
				Type: discordgo.ActivityTypeWatching,
			},
		},
		Status: status,
		AFK:    false,
	})
	if err != nil {
		slog.Error("Error updating status", "active", active, "error", err)
	}
}

// Hide sets the bot invisible, used right before disconnecting.
func (p *Presence) Hide() {
	p.mu.RLock()
	s := p.session
	p.mu.RUnlock()
	if s == nil {
		return
	}

	if err := s.UpdateStatusComplex(discordgo.UpdateStatusData{Status: string(discordgo.StatusInvisible)}); err != nil {
		slog.Error("Error hiding status", "error", err)
	}
}
