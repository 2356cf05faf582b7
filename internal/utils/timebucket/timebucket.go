// Package timebucket produces the ordered, gap-free bucket sequences that
// time-series reports are folded into. Buckets are pure calendar windows;
// the caller seeds and fills the aggregate fields.
package timebucket

import (
	"fmt"
	"strings"
	"time"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
)

// Mode selects the bucket granularity of a time-series report.
type Mode string

const (
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// ParseMode validates a mode path parameter.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeWeek:
		return ModeWeek, nil
	case ModeMonth:
		return ModeMonth, nil
	case ModeYear:
		return ModeYear, nil
	}
	return "", fmt.Errorf("%w: unsupported mode %q", apperrors.ErrValidation, s)
}

// Bucket is one calendar slot. Number is the stable join key used when
// merging computed results back in: weekday index 0-6 (Sunday first),
// 0-based day-of-month index, or month index 0-11.
type Bucket struct {
	Number int
	Label  string
	Start  time.Time
	End    time.Time
}

// Contains reports whether t falls inside the bucket window [Start, End).
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// Generate produces the full bucket sequence for a mode anchored to the
// given instant: 7 weekday buckets from the start of the anchor's week,
// one bucket per day of the anchor's month, or 12 month buckets from
// January of the anchor's year. Every slot is always present; empty
// windows are a normal condition.
func Generate(mode Mode, anchor time.Time) ([]Bucket, error) {
	switch mode {
	case ModeWeek:
		return weekBuckets(anchor), nil
	case ModeMonth:
		return monthBuckets(anchor), nil
	case ModeYear:
		return yearBuckets(anchor), nil
	}
	return nil, fmt.Errorf("%w: unsupported mode %q", apperrors.ErrValidation, mode)
}

// LastDays produces n day buckets ending with the anchor's day, oldest
// first, numbered 0..n-1.
func LastDays(n int, anchor time.Time) []Bucket {
	day := startOfDay(anchor)
	buckets := make([]Bucket, 0, n)
	for i := 0; i < n; i++ {
		start := day.AddDate(0, 0, i-n+1)
		buckets = append(buckets, Bucket{
			Number: i,
			Label:  start.Weekday().String(),
			Start:  start,
			End:    start.AddDate(0, 0, 1),
		})
	}
	return buckets
}

func weekBuckets(anchor time.Time) []Bucket {
	weekStart := startOfDay(anchor).AddDate(0, 0, -int(anchor.Weekday()))
	buckets := make([]Bucket, 0, 7)
	for i := 0; i < 7; i++ {
		start := weekStart.AddDate(0, 0, i)
		buckets = append(buckets, Bucket{
			Number: i,
			Label:  start.Weekday().String(),
			Start:  start,
			End:    start.AddDate(0, 0, 1),
		})
	}
	return buckets
}

func monthBuckets(anchor time.Time) []Bucket {
	monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	days := daysInMonth(anchor)
	buckets := make([]Bucket, 0, days)
	for i := 0; i < days; i++ {
		start := monthStart.AddDate(0, 0, i)
		buckets = append(buckets, Bucket{
			Number: i,
			Label:  start.Format("2006-01-02"),
			Start:  start,
			End:    start.AddDate(0, 0, 1),
		})
	}
	return buckets
}

func yearBuckets(anchor time.Time) []Bucket {
	yearStart := time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
	buckets := make([]Bucket, 0, 12)
	for i := 0; i < 12; i++ {
		start := yearStart.AddDate(0, i, 0)
		buckets = append(buckets, Bucket{
			Number: i,
			Label:  start.Month().String(),
			Start:  start,
			End:    start.AddDate(0, 1, 0),
		})
	}
	return buckets
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysInMonth(t time.Time) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
