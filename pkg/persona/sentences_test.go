package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"no terminator", "因信稱義", []string{"因信稱義"}},
		{"mixed scripts", "你好。How are you? Fine", []string{"你好。", "How are you? ", "Fine"}},
		{"terminator runs", "Wait... what?!", []string{"Wait... ", "what?!"}},
		{"cjk", "一。二！三？", []string{"一。", "二！", "三？"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, strings.Join(got, ""))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "馬丁", Truncate("馬丁路德", 2))
	assert.Equal(t, "馬丁路德", Truncate("馬丁路德", 10))
	assert.Equal(t, "", Truncate("馬丁路德", 0))
	assert.Equal(t, 4, RuneLen("馬丁路德"))
}
