package generation

import "strings"

type Source int

const (
	SourcePrimary Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "primary"
}

// Result is either a PrimaryShapeResult or a FallbackShapeResult.
type Result interface {
	Source() Source
	// Text returns the generated text and false when the backend produced none.
	Text() (string, bool)

	isResult()
}

// PrimaryShapeResult carries the output_text of a Responses API call.
type PrimaryShapeResult struct {
	OutputText string
}

func (PrimaryShapeResult) Source() Source { return SourcePrimary }

func (r PrimaryShapeResult) Text() (string, bool) {
	return present(r.OutputText)
}

func (PrimaryShapeResult) isResult() {}

// FallbackShapeResult carries choices[0].message.content of a chat completion.
type FallbackShapeResult struct {
	ChoiceContent string
}

func (FallbackShapeResult) Source() Source { return SourceFallback }

func (r FallbackShapeResult) Text() (string, bool) {
	return present(r.ChoiceContent)
}

func (FallbackShapeResult) isResult() {}

func present(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
