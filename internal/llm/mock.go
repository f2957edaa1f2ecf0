package llm

import (
	"context"
	"strings"
)

// Mock answers prompts deterministically. Default provider for local
// development and tests.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Complete(_ context.Context, prompt string) (string, error) {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "summary"):
		return "This is an engaging book that offers valuable insights and a compelling narrative. Readers will find it both informative and enjoyable.", nil
	case strings.Contains(p, "sentiment"):
		return "positive", nil
	case strings.Contains(p, "recommend"):
		return "Based on reading history and preferences, these titles offer similar themes, writing styles, and subject matter.", nil
	default:
		return "Mock LLM response.", nil
	}
}
