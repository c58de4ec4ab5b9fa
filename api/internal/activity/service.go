package activity

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"lottie-studio/api/internal/config"
	"lottie-studio/api/internal/genagent"
)

// Store is the persistence surface the services need. The file store always
// implements it; a history recorder can be layered on top.
type Store interface {
	SaveBlueprint(a *Activity) error
	LoadBlueprint() (*Activity, error)
	SaveActivity(a *Activity) error
	AppendHistory(a *Activity) error
}

// HistoryRecorder mirrors finalized activities into longer-term storage.
// Optional; a nil recorder disables it.
type HistoryRecorder interface {
	Record(ctx context.Context, a *Activity) error
}

// BlueprintService builds a draft activity and stages it for human review.
// Export happens only after every build step has succeeded.
type BlueprintService struct {
	ConfigPath string
	Rosters    RosterResolver
	Courses    CourseResolver
	Tokens     TokenStore
	Gen        genagent.Generator
	Store      Store
	Rand       *rand.Rand
	Log        *zap.Logger
}

func (s *BlueprintService) BuildBlueprint(ctx context.Context) (*Activity, error) {
	cfg, err := config.LoadBlueprintConfig(s.ConfigPath)
	if err != nil {
		return nil, err
	}
	builder := NewBlueprintBuilder(cfg, s.Rosters, s.Courses, s.Tokens, s.Gen, s.Rand, s.Log)
	act, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Store.SaveBlueprint(act); err != nil {
		return nil, fmt.Errorf("export blueprint: %w", err)
	}
	s.Log.Info("blueprint staged for review", zap.String("id", act.ID))
	return act, nil
}

// Service finalizes the reviewed blueprint: loads it, attaches the generated
// image, exports the activity and appends it to history.
type Service struct {
	Builder *Builder
	Store   Store
	History HistoryRecorder
	Log     *zap.Logger
}

func (s *Service) BuildActivity(ctx context.Context) (*Activity, error) {
	blueprint, err := s.Store.LoadBlueprint()
	if err != nil {
		return nil, fmt.Errorf("load blueprint: %w", err)
	}
	act, err := s.Builder.Finalize(ctx, blueprint)
	if err != nil {
		return nil, err
	}
	if err := s.Store.SaveActivity(act); err != nil {
		return nil, fmt.Errorf("export activity: %w", err)
	}
	if err := s.Store.AppendHistory(act); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}
	if s.History != nil {
		// Best effort; the files remain the source of truth.
		if err := s.History.Record(ctx, act); err != nil {
			s.Log.Warn("history mirror failed", zap.String("id", act.ID), zap.Error(err))
		}
	}
	s.Log.Info("activity built", zap.String("id", act.ID))
	return act, nil
}
