package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"lutherbot/pkg/persona"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultWindowCapacity = 5
	DefaultMaxChannels    = 1000

	// Runes of each record that make it into the rendered context
	renderedContentLength = 200
)

type Record struct {
	AuthorTag   string
	Content     string
	TimestampMs int64
	IsBot       bool
}

// ConversationWindow keeps the last few messages of every channel, oldest
// first. The set of channels is an LRU so idle channels are eventually forgotten.
type ConversationWindow struct {
	mu       sync.Mutex
	channels *lru.Cache[string, []Record]
	capacity int
}

func NewConversationWindow(capacity, maxChannels int) *ConversationWindow {
	if capacity <= 0 {
		capacity = DefaultWindowCapacity
	}
	channels, err := lru.New[string, []Record](maxChannels)
	if err != nil {
		// Only happens if maxChannels <= 0
		slog.Warn("Invalid channel cache size, using default", "size", maxChannels, "error", err)
		channels, _ = lru.New[string, []Record](DefaultMaxChannels)
	}

	return &ConversationWindow{
		channels: channels,
		capacity: capacity,
	}
}

// Update appends rec and evicts the oldest records beyond capacity.
func (w *ConversationWindow) Update(channelID string, rec Record) {
	w.mu.Lock()
	defer w.mu.Unlock()

	records, _ := w.channels.Get(channelID)
	next := make([]Record, 0, len(records)+1)
	next = append(next, records...)
	next = append(next, rec)
	if len(next) > w.capacity {
		next = next[len(next)-w.capacity:]
	}
	w.channels.Add(channelID, next)
}

// Render formats the channel's records as "author: content" lines.
func (w *ConversationWindow) Render(channelID string) string {
	records := w.Records(channelID)
	if len(records) == 0 {
		return ""
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("%s: %s", rec.AuthorTag, persona.Truncate(rec.Content, renderedContentLength)))
	}
	return strings.Join(lines, "\n")
}

// Records returns a copy of the channel's records.
func (w *ConversationWindow) Records(channelID string) []Record {
	w.mu.Lock()
	defer w.mu.Unlock()

	records, ok := w.channels.Peek(channelID)
	if !ok {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

func (w *ConversationWindow) Len(channelID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	records, _ := w.channels.Peek(channelID)
	return len(records)
}

// Channels is the number of channels with a tracked window.
func (w *ConversationWindow) Channels() int {
	return w.channels.Len()
}

func (w *ConversationWindow) ClearChannel(channelID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.channels.Remove(channelID)
}

// Clear forgets every channel.
func (w *ConversationWindow) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.channels.Purge()
}
