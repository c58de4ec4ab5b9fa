package activity

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lottie-studio/api/internal/config"
	"lottie-studio/api/internal/course"
	"lottie-studio/api/internal/genagent"
	"lottie-studio/api/internal/itoken"
	"lottie-studio/api/internal/roster"
)

type fakeRosters struct {
	current *roster.Slot
	byDate  []roster.Slot
	err     error
}

func (f *fakeRosters) CurrentSlot(context.Context, string) (*roster.Slot, error) {
	return f.current, f.err
}

func (f *fakeRosters) SlotsForDate(context.Context, string, string) ([]roster.Slot, error) {
	return f.byDate, f.err
}

type fakeCourses struct {
	level    string
	vocab    []course.VocabularySet
	material []course.Coursework
	err      error
}

func (f *fakeCourses) CourseRecord(_ context.Context, id string) (*course.CourseRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &course.CourseRecord{ID: id, Course: "FCE"}, nil
}

func (f *fakeCourses) CefrLevel(*course.CourseRecord) string { return f.level }

func (f *fakeCourses) TargetMaterial(*course.CourseRecord, string, int) ([]course.Coursework, error) {
	return f.material, nil
}

func (f *fakeCourses) TargetVocabulary(*course.CourseRecord, string, int) ([]course.VocabularySet, error) {
	return f.vocab, nil
}

type fakeTokens struct {
	trees map[string]any
}

func (f *fakeTokens) GetToken(alias string) (any, error) {
	tree, ok := f.trees[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %s", itoken.ErrTokenNotFound, alias)
	}
	return tree, nil
}

type fakeGenerator struct {
	gen   genagent.Generation
	err   error
	calls int
	last  string
}

func (f *fakeGenerator) Name() string     { return "fake" }
func (f *fakeGenerator) GetModel() string { return "fake-1" }

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (genagent.Generation, error) {
	f.calls++
	f.last = prompt
	return f.gen, f.err
}

func goodGeneration() genagent.Generation {
	return genagent.Generation{
		Sentence: "Ana and Ben crossed the old bridge over the river to watch the stars.",
		Questions: map[string]genagent.Question{
			"1": {Sentence: "Who crossed the bridge?", Answer: "Ana and Ben"},
			"2": {Sentence: "What did they cross?", Answer: "A bridge"},
			"3": {Sentence: "What did they watch?", Answer: "The stars"},
		},
		Media: genagent.Media{Style: "warm watercolor night scene"},
	}
}

func testSlot() *roster.Slot {
	return &roster.Slot{
		StartTime:     "2026-08-31 10:00:00",
		EndTime:       "2026-08-31 11:00:00",
		DueDate:       "2026-09-02",
		Assignee:      "teacher1",
		AssignedGroup: roster.Group{Alias: "group1"},
		Students: []roster.Student{
			{Alias: "st1", FirstName: "Ana", LastName: "Kovac"},
			{Alias: "st2", FirstName: "Ben", LastName: "Novak"},
		},
	}
}

func blueprintConfig() *config.BlueprintConfig {
	return &config.BlueprintConfig{
		Metadata: config.MetadataConfig{
			Analyst:      "M-Maker25",
			ModelAlias:   "gpt-4o",
			ModelVersion: "2024-08-06",
		},
		Slot:        config.SlotSelector{Current: true},
		Personalize: config.PersonalizeConf{Active: true, TargetStudent: "st1"},
	}
}

func newTestBuilder(cfg *config.BlueprintConfig, rosters RosterResolver, courses CourseResolver, tokens TokenStore, gen genagent.Generator) *BlueprintBuilder {
	return NewBlueprintBuilder(cfg, rosters, courses, tokens, gen, rand.New(rand.NewSource(1)), zap.NewNop())
}

// End-to-end over fakes: one current slot, one resolvable interest token out
// of two students, three vocabulary words.
func TestBlueprintBuild_EndToEnd(t *testing.T) {
	gen := &fakeGenerator{gen: goodGeneration()}
	builder := newTestBuilder(
		blueprintConfig(),
		&fakeRosters{current: testSlot()},
		&fakeCourses{
			level: "b2",
			vocab: []course.VocabularySet{{Words: []string{"river", "bridge", "star"}}},
			material: []course.Coursework{
				{StartDate: "2026-08-31", Week: 35, MaterialType: "book", Title: "Monday Edge", URL: "https://m/1", MaterialID: "m-monday"},
			},
		},
		&fakeTokens{trees: map[string]any{"st1": map[string]any{"hobbies": []any{"chess"}}}},
		gen,
	)

	act, err := builder.Build(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, act.ID)
	assert.Equal(t, "b2", act.CefrLevel)
	assert.Equal(t, "group1", act.GroupAlias)
	assert.Equal(t, []string{"river", "bridge", "star"}, act.TargetVocabulary)
	assert.Len(t, act.Questions, 3)
	assert.False(t, act.Submitted)
	assert.Equal(t, act.Sentence, goodGeneration().Sentence)
	assert.Equal(t, "warm watercolor night scene", act.Media.Style)
	assert.Empty(t, act.Media.ImageSrc, "image is attached at finalize, not at blueprint time")

	// Only the student with a token document made it in.
	require.Len(t, act.ITokens, 1)
	assert.Contains(t, act.ITokens, "st1")

	require.Len(t, act.Metadata.TargetMaterial, 1)
	assert.Equal(t, "Monday Edge", act.Metadata.TargetMaterial[0].Title)
	assert.Equal(t, "Monday Edge", act.Metadata.TargetMaterial[0].BookTitle)

	require.NotNil(t, act.Metadata.SandboxSlot)
	assert.Equal(t, "teacher1", act.Metadata.SandboxSlot.Assignee)

	require.NotNil(t, act.Metadata.InterestTokenLogs)
	assert.Equal(t, "st1", act.Metadata.InterestTokenLogs.TargetStudent)
	assert.Equal(t, "chess", act.Metadata.InterestTokenLogs.DataPoint)

	assert.False(t, act.TargetGrammar.Resolved)
	assert.Empty(t, act.TargetGrammar.Items)

	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.last, "chess")
}

func TestBlueprintBuild_UnknownAnalyst(t *testing.T) {
	cfg := blueprintConfig()
	cfg.Metadata.Analyst = "Stranger"
	builder := newTestBuilder(cfg, &fakeRosters{}, &fakeCourses{}, &fakeTokens{}, &fakeGenerator{})

	_, err := builder.Build(context.Background())
	require.ErrorContains(t, err, "unknown analyst")
}

func TestBlueprintBuild_NoCurrentSlot(t *testing.T) {
	builder := newTestBuilder(blueprintConfig(), &fakeRosters{current: nil}, &fakeCourses{}, &fakeTokens{}, &fakeGenerator{})

	_, err := builder.Build(context.Background())
	require.ErrorContains(t, err, "no slot covers the current time")
}

func TestBlueprintBuild_SlotByDateAndGroup(t *testing.T) {
	other := *testSlot()
	other.AssignedGroup = roster.Group{Alias: "group2"}
	cfg := blueprintConfig()
	cfg.Slot = config.SlotSelector{Date: "2.9.2026", GroupAlias: "group1"}
	cfg.Personalize = config.PersonalizeConf{}

	builder := newTestBuilder(cfg,
		&fakeRosters{byDate: []roster.Slot{other, *testSlot()}},
		&fakeCourses{level: "b2", vocab: []course.VocabularySet{{Words: []string{"one"}}}},
		&fakeTokens{trees: map[string]any{"st1": "x", "st2": "y"}},
		&fakeGenerator{gen: goodGeneration()},
	)

	act, err := builder.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "group1", act.Metadata.SandboxSlot.AssignedGroup.Alias)
	assert.Len(t, act.ITokens, 2)
}

func TestBlueprintBuild_GenerationFailureAborts(t *testing.T) {
	builder := newTestBuilder(blueprintConfig(),
		&fakeRosters{current: testSlot()},
		&fakeCourses{level: "b2", vocab: []course.VocabularySet{{Words: []string{"one"}}}},
		&fakeTokens{trees: map[string]any{"st1": "x"}},
		&fakeGenerator{err: genagent.ErrBadGenerationOutput},
	)

	_, err := builder.Build(context.Background())
	require.ErrorIs(t, err, genagent.ErrBadGenerationOutput)
}

func TestBlueprintBuild_RosterErrorAborts(t *testing.T) {
	boom := errors.New("roster 503: downstream unavailable")
	builder := newTestBuilder(blueprintConfig(), &fakeRosters{err: boom}, &fakeCourses{}, &fakeTokens{}, &fakeGenerator{})

	_, err := builder.Build(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestBlueprintBuild_RandomTargetStudent(t *testing.T) {
	cfg := blueprintConfig()
	cfg.Personalize = config.PersonalizeConf{Active: true, TargetStudent: "random"}
	builder := newTestBuilder(cfg,
		&fakeRosters{current: testSlot()},
		&fakeCourses{level: "b2", vocab: []course.VocabularySet{{Words: []string{"one"}}}},
		&fakeTokens{trees: map[string]any{"st1": []any{"chess"}, "st2": []any{"lego"}}},
		&fakeGenerator{gen: goodGeneration()},
	)

	act, err := builder.Build(context.Background())
	require.NoError(t, err)
	require.NotNil(t, act.Metadata.InterestTokenLogs)
	assert.Equal(t, "random", act.Metadata.InterestTokenLogs.TargetStudent)
	assert.Contains(t, []any{"chess", "lego"}, act.Metadata.InterestTokenLogs.DataPoint)
}
