package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyi-adel/docintake/internal/llm"
)

// chatServer fakes a chat/completions endpoint returning the given content
// as the first choice, recording each decoded request body.
func chatServer(t *testing.T, content string) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var seen []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		seen = append(seen, body)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: baseURL, Model: "gpt-4o-mini"}, nil)
}

func TestSummarizeParsesStructuredOutput(t *testing.T) {
	srv, seen := chatServer(t, `{"summary":"A short report.","points":["one","two"]}`)
	c := newTestClient(srv.URL)

	got, err := c.Summarize(context.Background(), "long document text")
	require.NoError(t, err)
	assert.Equal(t, "A short report.", got.Text)
	assert.Equal(t, []string{"one", "two"}, got.Points)

	require.Len(t, *seen, 1)
	body := (*seen)[0]
	assert.Equal(t, "gpt-4o-mini", body["model"])
	rf, ok := body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", rf["type"])
}

func TestSummarizeSchemaMismatchFallsBackToPlainText(t *testing.T) {
	srv, _ := chatServer(t, `{"verdict":"not the shape we asked for"}`)
	c := newTestClient(srv.URL)

	got, err := c.Summarize(context.Background(), "text")
	require.NoError(t, err, "a mismatched completion is kept, not rejected")
	assert.Equal(t, `{"verdict":"not the shape we asked for"}`, got.Text)
	assert.Empty(t, got.Points)
}

func TestAnswerEmbedsDocumentAndHistory(t *testing.T) {
	srv, seen := chatServer(t, "The total is 42.")
	c := newTestClient(srv.URL)

	history := []llm.Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}
	got, err := c.Answer(context.Background(), "What is the total?", "invoice body", history)
	require.NoError(t, err)
	assert.Equal(t, "The total is 42.", got)

	body := (*seen)[0]
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 4)
	last := msgs[3].(map[string]any)
	assert.Equal(t, "user", last["role"])
	content := last["content"].(string)
	assert.Contains(t, content, "Document text:\ninvoice body")
	assert.Contains(t, content, "Question: What is the total?")
	prev := msgs[2].(map[string]any)
	assert.Equal(t, "assistant", prev["role"])
}

func TestTranscribeImageSendsDataURL(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "scan.png")
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 2, 2))))
	require.NoError(t, f.Close())

	srv, seen := chatServer(t, "READ ME")
	c := newTestClient(srv.URL)

	got, err := c.TranscribeImage(context.Background(), imgPath)
	require.NoError(t, err)
	assert.Equal(t, "READ ME", got)

	body := (*seen)[0]
	msgs := body["messages"].([]any)
	parts := msgs[0].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	imgPart := parts[1].(map[string]any)
	url := imgPart["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestChatErrorStatusSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(srv.URL)

	_, err := c.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("status %d", http.StatusTooManyRequests))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(srv.URL)

	_, err := c.Answer(context.Background(), "q", "doc", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
