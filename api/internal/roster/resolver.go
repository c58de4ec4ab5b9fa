package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrAmbiguousSlot means the roster holds two or more slots covering the same
// instant for the same assignee. That is a scheduling data integrity problem
// upstream; we refuse to pick one.
var ErrAmbiguousSlot = errors.New("multiple slots match the current date and time")

const queryDateLayout = "2.1.2006"

type slotSource interface {
	Slots(ctx context.Context) (map[string]Slot, error)
}

type Resolver struct {
	src slotSource
	log *zap.Logger
	now func() time.Time
}

func NewResolver(src slotSource, log *zap.Logger) *Resolver {
	return &Resolver{src: src, log: log, now: time.Now}
}

// WithNow overrides the resolver clock.
func (r *Resolver) WithNow(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// CurrentSlot returns the slot whose start/end window covers "now" for the
// given assignee. Zero matches is a nil slot, not an error; more than one is
// ErrAmbiguousSlot.
func (r *Resolver) CurrentSlot(ctx context.Context, assignee string) (*Slot, error) {
	slots, err := r.src.Slots(ctx)
	if err != nil {
		return nil, err
	}
	now := r.now().UTC()

	var matches []Slot
	for _, slot := range slots {
		if slot.Assignee != assignee {
			continue
		}
		start, err := slot.Start()
		if err != nil {
			return nil, err
		}
		end, err := slot.End()
		if err != nil {
			return nil, err
		}
		if !now.Before(start) && !now.After(end) {
			matches = append(matches, slot)
		}
	}
	switch len(matches) {
	case 0:
		r.log.Info("no current slot", zap.String("assignee", assignee), zap.Time("now", now))
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: assignee %s has %d overlapping slots", ErrAmbiguousSlot, assignee, len(matches))
	}
}

// SlotsForDate returns every slot starting on the given calendar date
// ("day.month.year") for the assignee. Zero matches is an empty result.
func (r *Resolver) SlotsForDate(ctx context.Context, assignee, date string) ([]Slot, error) {
	want, err := time.ParseInLocation(queryDateLayout, date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("slot date %q: %w", date, err)
	}
	slots, err := r.src.Slots(ctx)
	if err != nil {
		return nil, err
	}

	var out []Slot
	for _, slot := range slots {
		if slot.Assignee != assignee {
			continue
		}
		start, err := slot.Start()
		if err != nil {
			return nil, err
		}
		y1, m1, d1 := start.Date()
		y2, m2, d2 := want.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, slot)
		}
	}
	return out, nil
}
