package genagent

import (
	"context"
	"errors"
	"fmt"
)

// ErrBadGenerationOutput means the generation service answered, but not with
// the JSON shape we asked for. Propagated, never retried.
var ErrBadGenerationOutput = errors.New("generation output missing required fields")

type Question struct {
	Sentence string `json:"sentence"`
	Answer   string `json:"answer"`
}

type Media struct {
	Style string `json:"style"`
}

// Generation is the structured activity payload the text engine returns:
// one reading paragraph, exactly three numbered questions and an image style
// description.
type Generation struct {
	Sentence  string              `json:"sentence"`
	Questions map[string]Question `json:"questions"`
	Media     Media               `json:"media"`
}

func (g *Generation) Validate() error {
	if g.Sentence == "" {
		return fmt.Errorf("%w: sentence", ErrBadGenerationOutput)
	}
	if len(g.Questions) != 3 {
		return fmt.Errorf("%w: got %d questions, want 3", ErrBadGenerationOutput, len(g.Questions))
	}
	if g.Media.Style == "" {
		return fmt.Errorf("%w: media.style", ErrBadGenerationOutput)
	}
	return nil
}

// SystemInstruction is the fixed role prompt sent with every generation
// request.
const SystemInstruction = "You are a helpful reading activity generator for language instructors. " +
	"Based on the prompt output a structured reading activity in a JSON format which contains a short " +
	"reading paragraph (100 seconds reading time). Base the sentence topic on the 'target_vocabulary'. " +
	"Adhere to the language level in the attribute 'cefr_level'. Your json response should return keys " +
	"such as 'sentence', 'questions', 'media' : { 'style' : <best style description goes here> }:"

type Generator interface {
	Name() string
	GetModel() string
	Generate(ctx context.Context, prompt string) (Generation, error)
}

// ImageGenerator renders an image from a recorded media style description and
// returns a hosted URL for it.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, style string) (string, error)
}

type Engines struct {
	Default string
	OpenAI  Generator
	Gemini  Generator
	Image   ImageGenerator
}

func (e *Engines) Get(name string) (Generator, error) {
	if name == "" {
		name = e.Default
	}
	switch name {
	case "openai", "gpt":
		if e.OpenAI == nil {
			return nil, errors.New("openai engine not configured")
		}
		return e.OpenAI, nil
	case "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini engine not configured")
		}
		return e.Gemini, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}
