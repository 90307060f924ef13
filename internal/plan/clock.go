package plan

import "time"

// Clock supplies wall-clock time. Every cutoff and reminder decision goes
// through it so tests can pin the hour.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewClock returns the system clock.
func NewClock() Clock { return realClock{} }

// DateKey formats a time as the YYYY-MM-DD key used for all per-day state.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }

// TargetDay returns the day a daily selection targets: the next calendar day.
func TargetDay(now time.Time) time.Time { return now.AddDate(0, 0, 1) }

// WeekStart returns the Monday of the week containing now. A Sunday maps to
// the Monday six days earlier, matching how the portal has always grouped
// weeks.
func WeekStart(now time.Time) time.Time {
	diff := 1 - int(now.Weekday())
	if now.Weekday() == time.Sunday {
		diff = -6
	}
	return now.AddDate(0, 0, diff)
}

// IsWeekend reports whether now falls on Saturday or Sunday.
func IsWeekend(now time.Time) bool {
	return now.Weekday() == time.Saturday || now.Weekday() == time.Sunday
}

// CutoffPolicy holds the evening thresholds for next-day selections. At
// WarnHour the portal starts warning, at LockHour edits are refused.
type CutoffPolicy struct {
	WarnHour int
	LockHour int
}

// DefaultCutoff matches the canteen's posted rules: warnings from 21:00,
// locked from 22:00.
var DefaultCutoff = CutoffPolicy{WarnHour: 21, LockHour: 22}

// Locked reports whether next-day selections may no longer be edited.
func (p CutoffPolicy) Locked(now time.Time) bool { return now.Hour() >= p.LockHour }

// Warning reports whether the closing-soon warning should be shown. This is
// informational only and never blocks an edit.
func (p CutoffPolicy) Warning(now time.Time) bool { return now.Hour() >= p.WarnHour }
