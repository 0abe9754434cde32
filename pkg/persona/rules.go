package persona

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type Strategy int

const (
	// StripLeading removes the match from the start of the text, once.
	StripLeading Strategy = iota
	// StripTrailing keeps capture group 1 and drops the rest; trailing rules
	// are re-applied as a group until none of them matches.
	StripTrailing
	// Collapse normalizes whitespace runs.
	Collapse
)

type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Strategy    Strategy
	Replacement string
}

const (
	clauseTerminators = "，,：:！!"
	signatureDashes   = `-—–~－─`

	// Runes that turn a closing phrase into a statement about it, as in
	// "阿們是「誠然」的意思".
	closingStatementRunes = "是指意"
	closingTailLength     = 10
	maxAddressTerms       = 3
)

// addressTerms may follow a salutation opener before its terminator.
var addressTerms = []string{
	"弟兄姊妹", "弟兄姐妹", "兄弟姊妹", "朋友", "弟兄", "兄弟", "姊妹", "姐妹",
	"們", "各位", "信徒", "會眾", "眾人", "歸與你們", "歸與你",
	"friends", "friend", "brothers", "brother", "sisters", "sister", "children", "all",
}

var blankLinesPattern = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

// BuildRules turns the phrase lists into the ordered rule set used by the
// sanitizer. Empty lists produce no rule.
func BuildRules(salutations, closings, signatures []string) []Rule {
	var rules []Rule

	if alt := alternation(salutations); alt != "" {
		rules = append(rules, Rule{
			Name: "leading-salutation",
			Pattern: regexp.MustCompile(`(?i)^\s*(?:` + alt + `)(?:[ \t]*(?:` + alternation(addressTerms) + `)){0,` +
				strconv.Itoa(maxAddressTerms) + `}[ \t]*[` + clauseTerminators + `]\s*`),
			Strategy: StripLeading,
		})
	}

	if alt := alternation(closings); alt != "" {
		rules = append(rules, Rule{
			Name: "trailing-blessing",
			Pattern: regexp.MustCompile(`(?is)^(.*[` + SentenceTerminators + `\n]|)\s*(?:` + alt + `)[^` +
				SentenceTerminators + closingStatementRunes + `\n]{0,` + strconv.Itoa(closingTailLength) + `}[` +
				SentenceTerminators + `～~]*\s*$`),
			Strategy:    StripTrailing,
			Replacement: "${1}",
		})
	}

	if alt := alternation(signatures); alt != "" {
		suffix := `[ \t]*(?:敬上|謹上|謹啟|筆)?[ \t]*$`
		rules = append(rules,
			Rule{
				Name:        "signature-line",
				Pattern:     regexp.MustCompile(`(?is)^(.*\n|)[ \t]*[` + signatureDashes + `]*[ \t]*(?:` + alt + `)` + suffix),
				Strategy:    StripTrailing,
				Replacement: "${1}",
			},
			Rule{
				Name:        "dashed-signature",
				Pattern:     regexp.MustCompile(`(?is)^(.*?)[ \t]*[` + signatureDashes + `]+[ \t]*(?:` + alt + `)` + suffix),
				Strategy:    StripTrailing,
				Replacement: "${1}",
			},
		)
	}

	rules = append(rules, Rule{
		Name:        "blank-lines",
		Pattern:     blankLinesPattern,
		Strategy:    Collapse,
		Replacement: "\n\n",
	})

	return rules
}

// alternation quotes the phrases and orders them longest first. Phrases
// ending in an ASCII word character must end on a word boundary.
func alternation(phrases []string) string {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		q := regexp.QuoteMeta(p)
		if isASCIIWord(p[len(p)-1]) {
			q += `\b`
		}
		quoted = append(quoted, q)
	}
	sort.SliceStable(quoted, func(i, j int) bool {
		return len(quoted[i]) > len(quoted[j])
	})
	return strings.Join(quoted, "|")
}

func isASCIIWord(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
