package bot

import "lutherbot/pkg/persona"

// TruncationMarker ends every hard-sliced piece of an oversized sentence.
const TruncationMarker = "..."

// SplitMessage cuts text into chunks of at most maxLength runes, breaking
// between sentences where possible. A sentence longer than maxLength is sliced
// and each slice except the last gets TruncationMarker.
func SplitMessage(text string, maxLength int) []string {
	if maxLength < 1 {
		maxLength = 1
	}
	if text == "" {
		return []string{""}
	}

	step, marker := maxLength-len(TruncationMarker), TruncationMarker
	if maxLength <= len(TruncationMarker) {
		step, marker = maxLength, ""
	}

	var chunks []string
	var current []rune

	for _, sentence := range persona.SplitSentences(text) {
		unit := []rune(sentence)

		if len(current)+len(unit) <= maxLength {
			current = append(current, unit...)
			continue
		}
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = nil
		}

		for len(unit) > maxLength {
			chunks = append(chunks, string(unit[:step])+marker)
			unit = unit[step:]
		}
		current = append(current, unit...)
	}

	if len(current) > 0 {
		chunks = append(chunks, string(current))
	}
	return chunks
}
