package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulateTyping_WaitsOutDuration(t *testing.T) {
	session := &MockSession{}

	start := time.Now()
	err := SimulateTyping(context.Background(), session, testChannelID, 50*time.Millisecond)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, 1, session.TypingCalls)
}

func TestSimulateTyping_Cancelled(t *testing.T) {
	session := &MockSession{}
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := SimulateTyping(ctx, session, testChannelID, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulateTyping_ZeroDuration(t *testing.T) {
	session := &MockSession{}

	assert.NoError(t, SimulateTyping(context.Background(), session, testChannelID, 0))
	assert.Equal(t, 0, session.TypingCalls)
}
