package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/libraryhub/library-service/internal/domain"
)

// Client produces free text for a prompt. Callers treat failures as
// missing enrichment, not request errors.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options selects and configures the provider.
type Options struct {
	Provider      string // mock | ollama | openai
	OllamaBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
}

// New builds the configured provider. Unknown providers get the mock so a
// bare environment still serves deterministic responses.
func New(opts Options) Client {
	switch opts.Provider {
	case "ollama":
		return NewOllama(opts.OllamaBaseURL)
	case "openai":
		return NewOpenAI(opts.OpenAIAPIKey, opts.OpenAIModel)
	default:
		return NewMock()
	}
}

// GenerateBookSummary writes a short summary for a newly added book.
func GenerateBookSummary(ctx context.Context, c Client, title, author, description string) (string, error) {
	if description == "" {
		return fmt.Sprintf("'%s' by %s is a notable work in its genre.", title, author), nil
	}
	prompt := fmt.Sprintf(`Write a concise 2-3 sentence summary of this book:
Title: %s
Author: %s
Description: %s

Summary:`, title, author, description)
	return c.Complete(ctx, prompt)
}

// AnalyzeReviewSentiment labels a review positive, negative or neutral.
func AnalyzeReviewSentiment(ctx context.Context, c Client, reviewText string) (string, error) {
	if reviewText == "" {
		return "neutral", nil
	}
	prompt := fmt.Sprintf(`Analyze the sentiment of this book review. Respond with only one word: positive, negative, or neutral.

Review: %s

Sentiment:`, reviewText)

	raw, err := c.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	label := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(label, "positive"):
		return "positive", nil
	case strings.Contains(label, "negative"):
		return "negative", nil
	default:
		return "neutral", nil
	}
}

// GenerateReviewConsensus summarizes reader consensus from recent reviews.
func GenerateReviewConsensus(ctx context.Context, c Client, reviews []domain.Review) (string, error) {
	if len(reviews) == 0 {
		return "No reviews yet.", nil
	}
	if len(reviews) > 10 {
		reviews = reviews[:10]
	}

	var lines []string
	for _, r := range reviews {
		lines = append(lines, fmt.Sprintf("Rating: %d/5 - %s", r.Rating, r.Text))
	}
	prompt := fmt.Sprintf(`Summarize the overall reader consensus for a book based on these reviews in 2 sentences:

%s

Consensus:`, strings.Join(lines, "\n"))
	return c.Complete(ctx, prompt)
}
