// Package dateparse converts natural-language date phrases into absolute
// UTC timestamps.
//
// All arithmetic mutates UTC calendar fields (AddDate on a UTC time), never
// elapsed durations, so day and month steps cannot drift across DST changes.
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseError indicates a phrase that matched no recognized form.
type ParseError struct {
	Phrase string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("I couldn't understand the date %q. Try something like tomorrow, next Friday, or a specific date.", e.Phrase)
}

// PastError indicates a phrase that resolved to an instant before the
// reference instant.
type PastError struct {
	Phrase   string
	Resolved time.Time
}

func (e *PastError) Error() string {
	return fmt.Sprintf("The date %q is in the past. Please pick a future date.", e.Phrase)
}

const (
	// defaultHour is the assumed hour for day-level phrases.
	defaultHour = 12

	// tonightHour is the assumed hour for "tonight".
	tonightHour = 20
)

var (
	inRelativeRe = regexp.MustCompile(`^in (\d+) (day|week|month)s?$`)
	relWeekdayRe = regexp.MustCompile(`^(this|next) ([a-z]+)$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse resolves phrase relative to ref and returns an absolute UTC instant.
// It returns *ParseError for unrecognized phrases and *PastError when the
// resolved instant is strictly earlier than ref.
func Parse(phrase string, ref time.Time) (time.Time, error) {
	ref = ref.UTC()
	trimmed := strings.TrimSpace(phrase)

	resolved, ok := resolve(trimmed, ref)
	if !ok {
		return time.Time{}, &ParseError{Phrase: trimmed}
	}
	if resolved.Before(ref) {
		return time.Time{}, &PastError{Phrase: trimmed, Resolved: resolved}
	}
	return resolved, nil
}

func resolve(trimmed string, ref time.Time) (time.Time, bool) {
	// ISO-8601 date or date-time passes through. Parsed before lowering
	// because the layouts carry literal T and Z.
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), true
		}
	}

	norm := strings.ToLower(trimmed)

	switch norm {
	case "today":
		return atHour(ref, defaultHour), true
	case "tonight":
		return atHour(ref, tonightHour), true
	case "tomorrow":
		return atHour(ref.AddDate(0, 0, 1), defaultHour), true
	case "next week":
		return atHour(ref.AddDate(0, 0, 7), defaultHour), true
	case "next month":
		return atHour(ref.AddDate(0, 1, 0), defaultHour), true
	}

	if m := inRelativeRe.FindStringSubmatch(norm); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		switch m[2] {
		case "day":
			return atHour(ref.AddDate(0, 0, n), defaultHour), true
		case "week":
			return atHour(ref.AddDate(0, 0, 7*n), defaultHour), true
		case "month":
			return atHour(ref.AddDate(0, n, 0), defaultHour), true
		}
		return time.Time{}, false
	}

	// Bare weekday: next future occurrence, never today.
	if wd, ok := weekdays[norm]; ok {
		return atHour(ref.AddDate(0, 0, daysUntil(ref, wd)), defaultHour), true
	}

	// "this <weekday>" resolves like the bare form; "next <weekday>" skips
	// the nearest occurrence.
	if m := relWeekdayRe.FindStringSubmatch(norm); m != nil {
		wd, ok := weekdays[m[2]]
		if !ok {
			return time.Time{}, false
		}
		days := daysUntil(ref, wd)
		if m[1] == "next" {
			days = (days % 7) + 7
		}
		return atHour(ref.AddDate(0, 0, days), defaultHour), true
	}

	return time.Time{}, false
}

// daysUntil returns the day count from ref to the next future occurrence of
// wd, strictly after ref's date: 1..7, never 0.
func daysUntil(ref time.Time, wd time.Weekday) int {
	days := (int(wd) - int(ref.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return days
}

// atHour returns t's UTC calendar date with the time fixed at the given hour.
func atHour(t time.Time, hour int) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, time.UTC)
}

// FormatForSpeech renders an instant for a short spoken confirmation:
// "today" or "tomorrow" when the calendar date matches relative to ref,
// otherwise a long weekday-month-day form such as "Monday, January 22".
func FormatForSpeech(t, ref time.Time) string {
	t = t.UTC()
	ref = ref.UTC()
	switch {
	case sameDate(t, ref):
		return "today"
	case sameDate(t, ref.AddDate(0, 0, 1)):
		return "tomorrow"
	default:
		return t.Format("Monday, January 2")
	}
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
