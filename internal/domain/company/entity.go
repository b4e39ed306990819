package company

import (
	"fmt"
	"time"
)

// WorkRules is the company-wide attendance configuration. It is loaded once
// and passed explicitly into the attendance resolver instead of being fetched
// from ambient state.
type WorkRules struct {
	ID               string
	WorkStart        string // "HH:MM", 24h clock
	LateAfterMinutes int
	UpdatedAt        time.Time
}

const (
	DefaultWorkStart        = "09:00"
	DefaultLateAfterMinutes = 15
)

// DefaultWorkRules is materialized the first time rules are requested and no
// row exists yet.
func DefaultWorkRules() WorkRules {
	return WorkRules{
		WorkStart:        DefaultWorkStart,
		LateAfterMinutes: DefaultLateAfterMinutes,
	}
}

// StartMinutes returns the work-start time as minutes since midnight.
func (r WorkRules) StartMinutes() (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(r.WorkStart, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid work_start %q: %w", r.WorkStart, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid work_start %q", r.WorkStart)
	}
	return h*60 + m, nil
}

// Holiday marks a calendar date as a company or public non-working day.
type Holiday struct {
	ID       string
	Date     time.Time
	Name     string
	IsPublic bool
}

// DateSet is a lookup of calendar dates keyed by "YYYY-MM-DD".
type DateSet map[string]struct{}

func NewDateSet(dates []time.Time) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s DateSet) Add(d time.Time) {
	s[d.Format("2006-01-02")] = struct{}{}
}

func (s DateSet) Has(d time.Time) bool {
	_, ok := s[d.Format("2006-01-02")]
	return ok
}
