package course

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type courseSource interface {
	CourseRecord(ctx context.Context, courseID string) (*CourseRecord, error)
}

type Resolver struct {
	src   courseSource
	vocab *VocabStore
	log   *zap.Logger
	now   func() time.Time
}

func NewResolver(src courseSource, vocab *VocabStore, log *zap.Logger) *Resolver {
	return &Resolver{src: src, vocab: vocab, log: log, now: time.Now}
}

// WithNow overrides the resolver clock.
func (r *Resolver) WithNow(now func() time.Time) *Resolver {
	r.now = now
	return r
}

func (r *Resolver) CourseRecord(ctx context.Context, courseID string) (*CourseRecord, error) {
	return r.src.CourseRecord(ctx, courseID)
}

// CefrLevel maps the record's exam name through the closed CEFR table. Unknown
// exams yield the empty level.
func (r *Resolver) CefrLevel(rec *CourseRecord) string {
	level := CourseToCEFR(rec.Course)
	if level == "" {
		r.log.Warn("unknown exam name, cefr level left empty",
			zap.String("course_id", rec.ID), zap.String("exam", rec.Course))
	}
	return level
}

// TargetMaterial returns the courseworks whose material id is assigned to the
// assignee for the given weekday (Monday=0) and whose start date falls inside
// the current Monday-Sunday week, UTC. Output order follows the configured
// coursework sequence.
func (r *Resolver) TargetMaterial(rec *CourseRecord, assignee string, weekday int) ([]Coursework, error) {
	byAssignee, ok := rec.AssignedMaterials[assignee]
	if !ok {
		return nil, fmt.Errorf("course %s: no assigned materials for assignee %q", rec.ID, assignee)
	}
	byWeekday, ok := byAssignee[strconv.Itoa(weekday)]
	if !ok || len(byWeekday) == 0 {
		return nil, fmt.Errorf("course %s: no assigned materials for assignee %q on weekday %d", rec.ID, assignee, weekday)
	}
	assigned := make(map[string]bool, len(byWeekday[0]))
	for _, id := range byWeekday[0] {
		assigned[id] = true
	}

	var out []Coursework
	for _, cw := range rec.Courseworks {
		if !assigned[cw.MaterialID] {
			continue
		}
		within, err := r.withinCurrentWeek(cw.StartDate)
		if err != nil {
			return nil, err
		}
		if within {
			out = append(out, cw)
		}
	}
	return out, nil
}

// TargetVocabulary returns one vocabulary set per target material. A material
// without a matching vocabulary file is skipped with a warning instead of
// aborting the build.
func (r *Resolver) TargetVocabulary(rec *CourseRecord, assignee string, weekday int) ([]VocabularySet, error) {
	materials, err := r.TargetMaterial(rec, assignee, weekday)
	if err != nil {
		return nil, err
	}
	var out []VocabularySet
	for _, cw := range materials {
		set, err := r.vocab.Lookup(cw.Title)
		if errors.Is(err, ErrVocabNotFound) {
			r.log.Warn("vocabulary file missing, material skipped", zap.String("title", cw.Title))
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *set)
	}
	return out, nil
}

func (r *Resolver) withinCurrentWeek(startDate string) (bool, error) {
	start, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
	if err != nil {
		return false, fmt.Errorf("coursework start date %q: %w", startDate, err)
	}
	now := r.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	sunday := monday.AddDate(0, 0, 6)
	return !start.Before(monday) && !start.After(sunday), nil
}
