package roster

import (
	"fmt"
	"time"
)

const (
	slotTimeLayout = "2006-01-02 15:04:05"
	dueDateLayout  = "2006-01-02"
)

// Student is the minimized roster entry. The wire records carry more personal
// fields; decoding into this struct strips everything but the four we are
// allowed to keep, so nothing else leaves this package.
type Student struct {
	Alias       string `json:"alias"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

type Group struct {
	Alias string `json:"alias"`
}

// Slot is one scheduled class session. Timestamps stay in their wire form so
// the record round-trips unchanged through blueprint files; use Start/End/
// Weekday for the parsed views.
type Slot struct {
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	DueDate       string    `json:"due_date"`
	Assignee      string    `json:"assignee"`
	AssignedGroup Group     `json:"assigned_group"`
	Students      []Student `json:"students"`
}

func (s *Slot) Start() (time.Time, error) {
	t, err := time.ParseInLocation(slotTimeLayout, s.StartTime, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("slot start_time %q: %w", s.StartTime, err)
	}
	return t, nil
}

func (s *Slot) End() (time.Time, error) {
	t, err := time.ParseInLocation(slotTimeLayout, s.EndTime, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("slot end_time %q: %w", s.EndTime, err)
	}
	return t, nil
}

// Weekday returns the slot's weekday derived from due_date, Monday=0 through
// Sunday=6, matching the course service's assigned-materials keying.
func (s *Slot) Weekday() (int, error) {
	d, err := time.ParseInLocation(dueDateLayout, s.DueDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("slot due_date %q: %w", s.DueDate, err)
	}
	return (int(d.Weekday()) + 6) % 7, nil
}
