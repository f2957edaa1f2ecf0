package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/libraryhub/library-service/internal/domain"
)

type fixedClient struct {
	reply  string
	err    error
	prompt string
}

func (c *fixedClient) Complete(_ context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.reply, c.err
}

func TestNewProviderSelection(t *testing.T) {
	if _, ok := New(Options{Provider: "mock"}).(*Mock); !ok {
		t.Error("expected mock provider")
	}
	if _, ok := New(Options{Provider: "ollama"}).(*Ollama); !ok {
		t.Error("expected ollama provider")
	}
	if _, ok := New(Options{Provider: "openai", OpenAIAPIKey: "k"}).(*OpenAI); !ok {
		t.Error("expected openai provider")
	}
	if _, ok := New(Options{Provider: "unknown"}).(*Mock); !ok {
		t.Error("expected mock fallback for unknown provider")
	}
}

func TestMockResponses(t *testing.T) {
	m := NewMock()
	cases := []struct {
		prompt string
		want   string
	}{
		{"Write a concise summary of this book", "engaging book"},
		{"Analyze the sentiment of this review", "positive"},
		{"Pick the top books to recommend", "reading history"},
		{"anything else", "Mock LLM response."},
	}
	for _, tc := range cases {
		got, err := m.Complete(context.Background(), tc.prompt)
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if !strings.Contains(got, tc.want) {
			t.Errorf("prompt %q: expected reply containing %q, got %q", tc.prompt, tc.want, got)
		}
	}
}

func TestGenerateBookSummary(t *testing.T) {
	c := &fixedClient{reply: "A sweeping tale."}
	got, err := GenerateBookSummary(context.Background(), c, "Dune", "Frank Herbert", "Desert planet politics.")
	if err != nil {
		t.Fatalf("GenerateBookSummary failed: %v", err)
	}
	if got != "A sweeping tale." {
		t.Errorf("unexpected summary: %q", got)
	}
	if !strings.Contains(c.prompt, "Title: Dune") || !strings.Contains(c.prompt, "Desert planet politics.") {
		t.Errorf("prompt missing book details: %q", c.prompt)
	}
}

func TestGenerateBookSummaryEmptyDescription(t *testing.T) {
	c := &fixedClient{reply: "should not be used"}
	got, err := GenerateBookSummary(context.Background(), c, "Dune", "Frank Herbert", "")
	if err != nil {
		t.Fatalf("GenerateBookSummary failed: %v", err)
	}
	if got != "'Dune' by Frank Herbert is a notable work in its genre." {
		t.Errorf("unexpected canned summary: %q", got)
	}
	if c.prompt != "" {
		t.Error("client should not be called without a description")
	}
}

func TestAnalyzeReviewSentiment(t *testing.T) {
	cases := []struct {
		reply string
		want  string
	}{
		{"positive", "positive"},
		{" Positive.\n", "positive"},
		{"The sentiment is negative overall", "negative"},
		{"neutral", "neutral"},
		{"I cannot tell", "neutral"},
	}
	for _, tc := range cases {
		c := &fixedClient{reply: tc.reply}
		got, err := AnalyzeReviewSentiment(context.Background(), c, "Loved it!")
		if err != nil {
			t.Fatalf("AnalyzeReviewSentiment failed: %v", err)
		}
		if got != tc.want {
			t.Errorf("reply %q: expected %q, got %q", tc.reply, tc.want, got)
		}
	}
}

func TestAnalyzeReviewSentimentEmptyText(t *testing.T) {
	c := &fixedClient{reply: "positive"}
	got, err := AnalyzeReviewSentiment(context.Background(), c, "")
	if err != nil {
		t.Fatalf("AnalyzeReviewSentiment failed: %v", err)
	}
	if got != "neutral" {
		t.Errorf("expected neutral for empty review, got %q", got)
	}
	if c.prompt != "" {
		t.Error("client should not be called for empty review text")
	}
}

func TestAnalyzeReviewSentimentError(t *testing.T) {
	c := &fixedClient{err: errors.New("service down")}
	if _, err := AnalyzeReviewSentiment(context.Background(), c, "Great book"); err == nil {
		t.Error("expected error to propagate")
	}
}

func TestGenerateReviewConsensus(t *testing.T) {
	c := &fixedClient{reply: "Readers broadly enjoyed it."}
	reviews := []domain.Review{
		{Rating: 5, Text: "Loved it"},
		{Rating: 2, Text: "Too slow"},
	}
	got, err := GenerateReviewConsensus(context.Background(), c, reviews)
	if err != nil {
		t.Fatalf("GenerateReviewConsensus failed: %v", err)
	}
	if got != "Readers broadly enjoyed it." {
		t.Errorf("unexpected consensus: %q", got)
	}
	if !strings.Contains(c.prompt, "Rating: 5/5 - Loved it") || !strings.Contains(c.prompt, "Rating: 2/5 - Too slow") {
		t.Errorf("prompt missing review lines: %q", c.prompt)
	}
}

func TestGenerateReviewConsensusNoReviews(t *testing.T) {
	c := &fixedClient{reply: "should not be used"}
	got, err := GenerateReviewConsensus(context.Background(), c, nil)
	if err != nil {
		t.Fatalf("GenerateReviewConsensus failed: %v", err)
	}
	if got != "No reviews yet." {
		t.Errorf("unexpected consensus: %q", got)
	}
}

func TestGenerateReviewConsensusCapsReviews(t *testing.T) {
	c := &fixedClient{reply: "ok"}
	reviews := make([]domain.Review, 15)
	for i := range reviews {
		reviews[i] = domain.Review{Rating: 3, Text: "fine"}
	}
	if _, err := GenerateReviewConsensus(context.Background(), c, reviews); err != nil {
		t.Fatalf("GenerateReviewConsensus failed: %v", err)
	}
	if n := strings.Count(c.prompt, "Rating:"); n != 10 {
		t.Errorf("expected 10 review lines in prompt, got %d", n)
	}
}
