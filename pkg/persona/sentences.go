package persona

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SentenceTerminators covers both CJK and ASCII sentence endings.
const SentenceTerminators = "。！？.!?"

// SplitSentences cuts text after every terminator run and keeps the whitespace
// that follows it with the sentence, so joining the result gives back text.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	ended := false

	for _, r := range text {
		if ended && !strings.ContainsRune(SentenceTerminators, r) && !unicode.IsSpace(r) {
			sentences = append(sentences, current.String())
			current.Reset()
			ended = false
		}
		current.WriteRune(r)
		if strings.ContainsRune(SentenceTerminators, r) {
			ended = true
		}
	}

	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

// RuneLen is the length measure used for every budget in this module.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if RuneLen(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
