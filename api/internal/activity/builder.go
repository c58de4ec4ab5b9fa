package activity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lottie-studio/api/internal/genagent"
)

// Builder finalizes a reviewed blueprint into a publishable activity. It
// trusts the staged record as source of truth: every field is carried over
// verbatim and the roster/course services are never re-contacted. The only
// additions are the generated image reference and a fresh submitted=false.
type Builder struct {
	images genagent.ImageGenerator
	log    *zap.Logger
}

func NewBuilder(images genagent.ImageGenerator, log *zap.Logger) *Builder {
	return &Builder{images: images, log: log}
}

func (b *Builder) Finalize(ctx context.Context, blueprint *Activity) (*Activity, error) {
	if blueprint.ID == "" {
		return nil, fmt.Errorf("blueprint has no id")
	}
	final := *blueprint

	url, err := b.images.GenerateImage(ctx, final.Media.Style)
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}
	final.Media.ImageSrc = url
	final.Submitted = false

	b.log.Info("activity finalized",
		zap.String("id", final.ID),
		zap.String("image_src", url))
	return &final, nil
}
