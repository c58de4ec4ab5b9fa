package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lottie-studio/api/internal/genagent"
	"lottie-studio/api/internal/roster"
)

type fakeImages struct {
	url   string
	err   error
	style string
}

func (f *fakeImages) GenerateImage(_ context.Context, style string) (string, error) {
	f.style = style
	return f.url, f.err
}

func stagedBlueprint() *Activity {
	return &Activity{
		ID:       "11111111-2222-3333-4444-555555555555",
		Sentence: "Ana crossed the bridge.",
		Questions: map[string]genagent.Question{
			"1": {Sentence: "Who?", Answer: "Ana"},
			"2": {Sentence: "What?", Answer: "Crossed"},
			"3": {Sentence: "Where?", Answer: "The bridge"},
		},
		GroupAlias:       "group1",
		CefrLevel:        "b2",
		TargetVocabulary: []string{"river", "bridge", "star"},
		TargetGrammar:    GrammarTarget{Resolved: false, Items: []string{}},
		ITokens:          map[string]any{"st1": map[string]any{"hobbies": []any{"chess"}}},
		Media:            Media{Style: "warm watercolor night scene"},
		Metadata: Metadata{
			Analyst:     "M-Maker25",
			ModelAlias:  "gpt-4o",
			SandboxSlot: &roster.Slot{Assignee: "teacher1", AssignedGroup: roster.Group{Alias: "group1"}},
			TargetMaterial: []Material{
				{Week: 35, BookTitle: "Monday Edge", Title: "Monday Edge", MaterialType: "book", URL: "https://m/1"},
			},
		},
	}
}

func TestFinalize_CarriesBlueprintVerbatim(t *testing.T) {
	images := &fakeImages{url: "https://img.example/final.jpg"}
	b := NewBuilder(images, zap.NewNop())
	blueprint := stagedBlueprint()

	final, err := b.Finalize(context.Background(), blueprint)
	require.NoError(t, err)

	// Only the image reference may differ from the staged record.
	assert.Equal(t, "https://img.example/final.jpg", final.Media.ImageSrc)
	assert.Equal(t, "warm watercolor night scene", images.style)
	assert.False(t, final.Submitted)

	final.Media.ImageSrc = ""
	assert.Equal(t, blueprint, final)
}

func TestFinalize_IDNeverRegenerated(t *testing.T) {
	b := NewBuilder(&fakeImages{url: "https://img.example/x.jpg"}, zap.NewNop())
	blueprint := stagedBlueprint()

	final, err := b.Finalize(context.Background(), blueprint)
	require.NoError(t, err)
	assert.Equal(t, blueprint.ID, final.ID)
}

func TestFinalize_RejectsEmptyBlueprint(t *testing.T) {
	b := NewBuilder(&fakeImages{}, zap.NewNop())
	_, err := b.Finalize(context.Background(), &Activity{})
	require.ErrorContains(t, err, "no id")
}

func TestFinalize_ImageFailureAborts(t *testing.T) {
	boom := errors.New("openai image 502: bad gateway")
	b := NewBuilder(&fakeImages{err: boom}, zap.NewNop())

	_, err := b.Finalize(context.Background(), stagedBlueprint())
	require.ErrorIs(t, err, boom)
}
