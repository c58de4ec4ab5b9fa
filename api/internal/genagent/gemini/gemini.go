package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"lottie-studio/api/internal/genagent"
	"lottie-studio/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string { return "gemini" }

func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Generate(ctx context.Context, prompt string) (genagent.Generation, error) {
	if e.APIKey == "" {
		return genagent.Generation{}, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return genagent.Generation{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(1),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(genagent.SystemInstruction)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return genagent.Generation{}, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return genagent.Generation{}, fmt.Errorf("gemini generate: empty candidates")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return genagent.Generation{}, fmt.Errorf("gemini generate: first part is not text")
	}

	var gen genagent.Generation
	raw := util.StripCodeFences(string(text))
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return genagent.Generation{}, fmt.Errorf("%w: %v", genagent.ErrBadGenerationOutput, err)
	}
	if err := gen.Validate(); err != nil {
		return genagent.Generation{}, err
	}
	return gen, nil
}

func ptrFloat32(v float32) *float32 { return &v }
