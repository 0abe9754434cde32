package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// reassemble joins chunks after dropping the truncation markers.
func reassemble(chunks []string) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(strings.TrimSuffix(c, TruncationMarker))
	}
	return b.String()
}

func assertChunkBounds(t *testing.T, chunks []string, maxLength int) {
	t.Helper()
	for i, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), maxLength, "chunk %d", i)
	}
}

func TestSplitMessage_EmptyInput(t *testing.T) {
	assert.Equal(t, []string{""}, SplitMessage("", 2000))
}

func TestSplitMessage_FitsInOneChunk(t *testing.T) {
	text := "唯獨信心。唯獨恩典。"
	assert.Equal(t, []string{text}, SplitMessage(text, 2000))
}

func TestSplitMessage_BreaksBetweenSentences(t *testing.T) {
	text := strings.Repeat("因信稱義是福音的核心。", 210)

	chunks := SplitMessage(text, 2000)

	assert.GreaterOrEqual(t, len(chunks), 2)
	assertChunkBounds(t, chunks, 2000)
	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.True(t, strings.HasSuffix(c, "。"), "chunks end on a sentence boundary")
	}
}

func TestSplitMessage_SlicesOversizedSentence(t *testing.T) {
	text := strings.Repeat("恩", 25)

	chunks := SplitMessage(text, 10)

	assert.Equal(t, []string{
		strings.Repeat("恩", 7) + "...",
		strings.Repeat("恩", 7) + "...",
		strings.Repeat("恩", 7) + "...",
		strings.Repeat("恩", 4),
	}, chunks)
	assertChunkBounds(t, chunks, 10)
	assert.Equal(t, text, reassemble(chunks))
}

func TestSplitMessage_FlushesBeforeOversizedSentence(t *testing.T) {
	text := "短句。" + strings.Repeat("長", 12)

	chunks := SplitMessage(text, 10)

	assert.Equal(t, []string{"短句。", strings.Repeat("長", 7) + "...", strings.Repeat("長", 5)}, chunks)
	assert.Equal(t, text, reassemble(chunks))
}

func TestSplitMessage_RemainderKeepsAccumulating(t *testing.T) {
	text := strings.Repeat("長", 12) + "。好。"

	chunks := SplitMessage(text, 10)

	assert.Equal(t, []string{strings.Repeat("長", 7) + "...", "長長長長長。好。"}, chunks)
	assert.Equal(t, text, reassemble(chunks))
}

func TestSplitMessage_TinyLimitHasNoMarker(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, SplitMessage("abcdefg", 3))
}

func TestSplitMessage_MixedScripts(t *testing.T) {
	text := "Grace alone saves us. 因信稱義！Faith is a living thing? 是的。"

	for _, limit := range []int{5, 12, 20, 40} {
		chunks := SplitMessage(text, limit)
		assertChunkBounds(t, chunks, limit)
		assert.Equal(t, text, reassemble(chunks), "limit %d", limit)
	}
}
