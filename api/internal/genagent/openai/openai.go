package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lottie-studio/api/internal/genagent"
	"lottie-studio/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey: key,
		Model:  model,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string { return "openai" }

func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Generate(ctx context.Context, prompt string) (genagent.Generation, error) {
	if e.APIKey == "" {
		return genagent.Generation{}, fmt.Errorf("OPENAI_API_KEY not set")
	}

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": genagent.SystemInstruction},
			map[string]any{"role": "user", "content": prompt},
		},
		"temperature":       1,
		"max_tokens":        2048,
		"top_p":             1,
		"frequency_penalty": 0,
		"presence_penalty":  0,
		"response_format":   map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return genagent.Generation{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		x, _ := io.ReadAll(resp.Body)
		return genagent.Generation{}, fmt.Errorf("openai generate %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return genagent.Generation{}, err
	}
	if len(out.Choices) == 0 {
		return genagent.Generation{}, fmt.Errorf("openai generate: empty choices")
	}

	var gen genagent.Generation
	raw := util.StripCodeFences(out.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return genagent.Generation{}, fmt.Errorf("%w: %v", genagent.ErrBadGenerationOutput, err)
	}
	if err := gen.Validate(); err != nil {
		return genagent.Generation{}, err
	}
	return gen, nil
}
