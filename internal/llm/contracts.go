package llm

import "context"

// Message is one chat turn sent to or received from the model.
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// Summary is the normalized shape we want back from the model.
type Summary struct {
	Text   string   `json:"summary"`
	Points []string `json:"points,omitempty"`
}

// Summarizer produces a point-wise summary of a text window.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (Summary, error)
}

// Answerer answers a free-form question over a text window, optionally
// carrying prior conversation turns.
type Answerer interface {
	Answer(ctx context.Context, question, contextText string, history []Message) (string, error)
}
