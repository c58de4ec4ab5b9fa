package activity

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lottie-studio/api/internal/config"
	"lottie-studio/api/internal/course"
	"lottie-studio/api/internal/genagent"
	"lottie-studio/api/internal/itoken"
	"lottie-studio/api/internal/prompt"
	"lottie-studio/api/internal/roster"
)

// analystAssignee is the closed mapping from analyst identity to the roster
// assignee whose slots are resolved.
var analystAssignee = map[string]string{
	"M-Maker25":  "teacher1",
	"CPTFreedom": "teacher2",
}

type RosterResolver interface {
	CurrentSlot(ctx context.Context, assignee string) (*roster.Slot, error)
	SlotsForDate(ctx context.Context, assignee, date string) ([]roster.Slot, error)
}

type CourseResolver interface {
	CourseRecord(ctx context.Context, courseID string) (*course.CourseRecord, error)
	CefrLevel(rec *course.CourseRecord) string
	TargetMaterial(rec *course.CourseRecord, assignee string, weekday int) ([]course.Coursework, error)
	TargetVocabulary(rec *course.CourseRecord, assignee string, weekday int) ([]course.VocabularySet, error)
}

type TokenStore interface {
	GetToken(alias string) (any, error)
}

// BlueprintBuilder assembles a draft Activity through a strict linear step
// sequence. Any step error aborts the whole build; a partial blueprint is
// never returned, let alone exported.
type BlueprintBuilder struct {
	cfg     *config.BlueprintConfig
	rosters RosterResolver
	courses CourseResolver
	tokens  TokenStore
	gen     genagent.Generator
	rng     *rand.Rand
	log     *zap.Logger

	assignee string
	record   *course.CourseRecord
	act      *Activity
}

func NewBlueprintBuilder(cfg *config.BlueprintConfig, rosters RosterResolver, courses CourseResolver, tokens TokenStore, gen genagent.Generator, rng *rand.Rand, log *zap.Logger) *BlueprintBuilder {
	return &BlueprintBuilder{
		cfg:     cfg,
		rosters: rosters,
		courses: courses,
		tokens:  tokens,
		gen:     gen,
		rng:     rng,
		log:     log,
		act:     &Activity{},
	}
}

// Build runs every step in its fixed order and returns the finished draft.
func (b *BlueprintBuilder) Build(ctx context.Context) (*Activity, error) {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"set_id", b.setID},
		{"set_metadata", b.setMetadata},
		{"resolve_sandbox_slot", b.resolveSandboxSlot},
		{"resolve_itokens", b.resolveITokens},
		{"resolve_cefr_level", b.resolveCefrLevel},
		{"set_group_alias", b.setGroupAlias},
		{"resolve_targets", b.resolveTargets},
		{"resolve_target_grammar", b.resolveTargetGrammar},
		{"init_media", b.initMedia},
		{"generate", b.generate},
		{"mark_submitted", b.markSubmitted},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return nil, fmt.Errorf("blueprint step %s: %w", step.name, err)
		}
	}
	return b.act, nil
}

func (b *BlueprintBuilder) setID(context.Context) error {
	b.act.ID = uuid.NewString()
	b.log.Info("activity id assigned", zap.String("id", b.act.ID))
	return nil
}

func (b *BlueprintBuilder) setMetadata(context.Context) error {
	meta := b.cfg.Metadata
	assignee, ok := analystAssignee[meta.Analyst]
	if !ok {
		return fmt.Errorf("unknown analyst %q", meta.Analyst)
	}
	b.assignee = assignee
	b.act.Metadata = Metadata{
		Analyst:        meta.Analyst,
		ModelAlias:     meta.ModelAlias,
		ModelVersion:   meta.ModelVersion,
		TargetMaterial: []Material{},
	}
	b.log.Info("metadata set",
		zap.String("analyst", meta.Analyst),
		zap.String("assignee", assignee),
		zap.String("model", meta.ModelAlias))
	return nil
}

func (b *BlueprintBuilder) resolveSandboxSlot(ctx context.Context) error {
	if b.cfg.Slot.Current {
		slot, err := b.rosters.CurrentSlot(ctx, b.assignee)
		if err != nil {
			return err
		}
		if slot == nil {
			return fmt.Errorf("no slot covers the current time for assignee %q", b.assignee)
		}
		b.act.Metadata.SandboxSlot = slot
	} else {
		slots, err := b.rosters.SlotsForDate(ctx, b.assignee, b.cfg.Slot.Date)
		if err != nil {
			return err
		}
		for i := range slots {
			if slots[i].AssignedGroup.Alias == b.cfg.Slot.GroupAlias {
				b.act.Metadata.SandboxSlot = &slots[i]
				break
			}
		}
		if b.act.Metadata.SandboxSlot == nil {
			return fmt.Errorf("no slot on %s for group %q", b.cfg.Slot.Date, b.cfg.Slot.GroupAlias)
		}
	}
	b.log.Info("sandbox slot resolved",
		zap.String("group", b.act.Metadata.SandboxSlot.AssignedGroup.Alias),
		zap.String("start", b.act.Metadata.SandboxSlot.StartTime))
	return nil
}

// resolveITokens is partial-failure tolerant: a student without a token
// document is skipped, the rest of the roster still loads.
func (b *BlueprintBuilder) resolveITokens(context.Context) error {
	b.act.ITokens = map[string]any{}
	for _, student := range b.act.Metadata.SandboxSlot.Students {
		token, err := b.tokens.GetToken(student.Alias)
		if err != nil {
			b.log.Warn("interest token skipped", zap.String("alias", student.Alias), zap.Error(err))
			continue
		}
		b.act.ITokens[student.Alias] = token
	}
	b.log.Info("interest tokens loaded", zap.Int("count", len(b.act.ITokens)))
	return nil
}

func (b *BlueprintBuilder) resolveCefrLevel(ctx context.Context) error {
	rec, err := b.courses.CourseRecord(ctx, b.act.Metadata.SandboxSlot.AssignedGroup.Alias)
	if err != nil {
		return err
	}
	b.record = rec
	b.act.CefrLevel = b.courses.CefrLevel(rec)
	b.log.Info("cefr level resolved", zap.String("level", b.act.CefrLevel))
	return nil
}

func (b *BlueprintBuilder) setGroupAlias(context.Context) error {
	b.act.GroupAlias = b.act.Metadata.SandboxSlot.AssignedGroup.Alias
	return nil
}

func (b *BlueprintBuilder) resolveTargets(context.Context) error {
	weekday, err := b.act.Metadata.SandboxSlot.Weekday()
	if err != nil {
		return err
	}

	sets, err := b.courses.TargetVocabulary(b.record, b.assignee, weekday)
	if err != nil {
		return err
	}
	b.act.TargetVocabulary = []string{}
	for _, set := range sets {
		b.act.TargetVocabulary = append(b.act.TargetVocabulary, set.Words...)
	}

	materials, err := b.courses.TargetMaterial(b.record, b.assignee, weekday)
	if err != nil {
		return err
	}
	for _, cw := range materials {
		b.act.Metadata.TargetMaterial = append(b.act.Metadata.TargetMaterial, Material{
			Week:         cw.Week,
			BookTitle:    cw.Title,
			Title:        cw.Title,
			MaterialType: cw.MaterialType,
			URL:          cw.URL,
		})
	}
	b.log.Info("targets resolved",
		zap.Int("vocabulary", len(b.act.TargetVocabulary)),
		zap.Int("materials", len(materials)),
		zap.Int("weekday", weekday))
	return nil
}

// resolveTargetGrammar is a placeholder until grammar targets exist in the
// course data. The marker stays unresolved so consumers can tell the
// difference from an empty target list.
func (b *BlueprintBuilder) resolveTargetGrammar(context.Context) error {
	b.act.TargetGrammar = GrammarTarget{Resolved: false, Items: []string{}}
	return nil
}

func (b *BlueprintBuilder) initMedia(context.Context) error {
	b.act.Media = Media{}
	return nil
}

func (b *BlueprintBuilder) generate(ctx context.Context) error {
	var datum any
	if b.cfg.Personalize.Active {
		target := b.cfg.Personalize.TargetStudent
		if target == "random" {
			students := b.act.Metadata.SandboxSlot.Students
			if len(students) == 0 {
				return errors.New("slot has no students to personalize for")
			}
			target = students[b.rng.Intn(len(students))].Alias
		}
		datum = itoken.PickRandomDatum(target, b.act.ITokens, b.rng)
		b.act.Metadata.InterestTokenLogs = &TokenSelectionLog{
			DataPoint:     datum,
			TargetStudent: b.cfg.Personalize.TargetStudent,
		}
	}

	text := prompt.Compose(b.cfg.Prompt, b.act.TargetVocabulary, datum, b.cfg.Personalize, b.act.Metadata.SandboxSlot.Students, b.rng)
	gen, err := b.gen.Generate(ctx, text)
	if err != nil {
		return err
	}
	b.act.Sentence = gen.Sentence
	b.act.Questions = gen.Questions
	b.act.Media.Style = gen.Media.Style
	b.log.Info("activity generated",
		zap.String("model", b.gen.GetModel()),
		zap.Int("questions", len(gen.Questions)))
	return nil
}

func (b *BlueprintBuilder) markSubmitted(context.Context) error {
	b.act.Submitted = false
	return nil
}
