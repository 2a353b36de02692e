package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PromptSource yields the operator-tuned prompt template. The store
// implementation reads config/bot_prompt_active.
type PromptSource interface {
	ActivePromptTemplate(ctx context.Context) (string, bool, error)
}

type Gemini struct {
	apiKey  string
	model   string
	client  *http.Client
	prompts PromptSource
	logger  *zap.Logger
}

func NewGemini(apiKey, model string, prompts PromptSource, logger *zap.Logger) *Gemini {
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
		prompts: prompts,
		logger:  logger,
	}
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Interpret(ctx context.Context, req Request) (*Result, error) {
	if g.apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if req.Catalog == nil {
		return nil, errors.New("catalog required")
	}

	template := DefaultTemplate
	if g.prompts != nil {
		active, found, err := g.prompts.ActivePromptTemplate(ctx)
		if err != nil {
			return nil, fmt.Errorf("load prompt template: %w", err)
		}
		if found {
			template = active
		}
	}

	prompt := BuildPrompt(template, req)

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		g.model, g.apiKey,
	)

	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":      0.2,
			"responseMimeType": "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("gemini api error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))
		return nil, fmt.Errorf("gemini api status %d", resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode gemini envelope: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty gemini response")
	}

	text := stripCodeFence(decoded.Candidates[0].Content.Parts[0].Text)
	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("decode gemini result: %w", err)
	}
	return &result, nil
}

// Models occasionally wrap JSON in markdown fences even in JSON mode.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
