package persona

import (
	"strings"

	"lutherbot/pkg/generation"
)

// Budget bounds brief replies. All values count runes.
type Budget struct {
	// Whole sentences are kept while the reply stays within SoftCap.
	SoftCap int
	// Below MinLength the sentence result is replaced by a prefix slice.
	MinLength      int
	FallbackLength int
}

func DefaultBudget() Budget {
	return Budget{SoftCap: 35, MinLength: 10, FallbackLength: 50}
}

// Sanitizer removes letter-style artifacts the persona must not produce.
type Sanitizer struct {
	rules  []Rule
	budget Budget
}

func NewSanitizer(rules []Rule, budget Budget) *Sanitizer {
	return &Sanitizer{rules: rules, budget: budget}
}

func (s *Sanitizer) Rules() []Rule {
	return s.rules
}

// Clean strips the salutation, then trailing sign-offs, then collapses blank
// lines; brief replies are finally cut to the budget. Sign-offs must be gone
// before the cut or a partial signature could survive.
func (s *Sanitizer) Clean(text string, mode generation.Mode) string {
	for _, rule := range s.rules {
		if rule.Strategy == StripLeading {
			text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
		}
	}

	text = s.stripTrailing(text)

	for _, rule := range s.rules {
		if rule.Strategy == Collapse {
			text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
		}
	}
	text = strings.TrimSpace(text)

	if mode == generation.ModeBrief {
		text = s.applyBudget(text)
	}
	return text
}

func (s *Sanitizer) stripTrailing(text string) string {
	for {
		changed := false
		for _, rule := range s.rules {
			if rule.Strategy != StripTrailing {
				continue
			}
			stripped := strings.TrimRight(rule.Pattern.ReplaceAllString(text, rule.Replacement), " \t\r\n")
			if stripped != text {
				text = stripped
				changed = true
			}
		}
		if !changed {
			return text
		}
	}
}

func (s *Sanitizer) applyBudget(text string) string {
	var kept string
	for _, sentence := range SplitSentences(text) {
		candidate := kept + sentence
		if RuneLen(strings.TrimSpace(candidate)) > s.budget.SoftCap {
			break
		}
		kept = candidate
	}

	kept = strings.TrimSpace(kept)
	if RuneLen(kept) < s.budget.MinLength {
		kept = strings.TrimSpace(Truncate(text, s.budget.FallbackLength))
	}
	return kept
}
