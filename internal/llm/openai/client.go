package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seyi-adel/docintake/constants"
	"github.com/seyi-adel/docintake/internal/llm"
)

// Summarize implements llm.Summarizer. The model is asked for a point-wise
// summary as JSON; the completion is validated against the summary schema
// before use. A completion that fails validation is kept as a plain-text
// summary instead of being rejected.
func (c *Client) Summarize(ctx context.Context, text string) (llm.Summary, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.summarize.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(text),
	)

	schema := llm.BuildSummaryJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"n":               1,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": "You are a helpful assistant."},
			{"role": "user", "content": "Summarize this text point wise:\n" + text},
			{"role": "system", "content": "Return ONLY JSON that matches this JSON Schema:\n" + mustJSON(schema)},
		},
	}

	content, err := c.chat(ctx, rid, body)
	if err != nil {
		c.log.Error("llm.summarize.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Summary{}, err
	}

	raw := []byte(content)
	if vErr := llm.ValidateJSONAgainstSchema(schema, raw); vErr != nil {
		c.log.Warn("llm.summarize.schema_mismatch",
			"req_id", rid, "error", vErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Summary{Text: content}, nil
	}

	var out llm.Summary
	if err := json.Unmarshal(raw, &out); err != nil {
		return llm.Summary{Text: content}, nil
	}
	c.log.Info("llm.summarize.ok",
		"req_id", rid,
		"summary_len", len(out.Text),
		"points", len(out.Points),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Answer implements llm.Answerer. History carries prior conversation turns;
// the document window is embedded in the final user message.
func (c *Client) Answer(ctx context.Context, question, contextText string, history []llm.Message) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.answer.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"question_len", len(question),
		"context_len", len(contextText),
		"history_turns", len(history),
	)

	messages := []map[string]any{
		{"role": "system", "content": "You are a helpful assistant. Answer questions using only the provided document text. If the document does not contain the answer, say so."},
	}
	for _, m := range history {
		messages = append(messages, map[string]any{"role": m.Role, "content": m.Content})
	}
	messages = append(messages, map[string]any{
		"role":    "user",
		"content": "Document text:\n" + contextText + "\n\nQuestion: " + question,
	})

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"n":           1,
		"messages":    messages,
	}

	content, err := c.chat(ctx, rid, body)
	if err != nil {
		c.log.Error("llm.answer.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}
	c.log.Info("llm.answer.ok",
		"req_id", rid,
		"answer_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

// TranscribeImage asks a vision-capable model for the readable text in an
// image, sent inline as a data URL.
func (c *Client) TranscribeImage(ctx context.Context, imagePath string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	b, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime := "image/png"
	if ext := constants.NormalizeExt(filepath.Ext(imagePath)); ext == "jpg" || ext == "jpeg" {
		mime = "image/jpeg"
	}
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)

	c.log.Info("llm.transcribe.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"image_bytes", len(b),
	)

	body := map[string]any{
		"model": c.cfg.Model,
		"n":     1,
		"messages": []map[string]any{
			{"role": "user", "content": []map[string]any{
				{"type": "text", "text": "Extract all readable text from this image. Return the text only, no commentary."},
				{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
			}},
		},
	}

	content, err := c.chat(ctx, rid, body)
	if err != nil {
		c.log.Error("llm.transcribe.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}
	c.log.Info("llm.transcribe.ok",
		"req_id", rid,
		"text_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

// chat posts a chat/completions body and returns the first choice's content.
func (c *Client) chat(ctx context.Context, rid string, body map[string]any) (string, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		return "", err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.chat.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.chat.no_choices", "req_id", rid, "raw", string(raw))
		return "", fmt.Errorf("no choices in chat response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.log.Warn("chat response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chat status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
