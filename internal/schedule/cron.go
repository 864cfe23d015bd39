// Package schedule parses the five-field cron expressions backup plans use
// and computes their next run time. Worker-side scheduling follows the
// classic vixie rule: when both day-of-month and day-of-week are restricted,
// a timestamp matching either one runs.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/glare-project/glare/pkg/errclass"
)

// Schedule is a parsed cron expression.
type Schedule struct {
	minute     map[int]bool
	hour       map[int]bool
	dayOfMonth map[int]bool
	month      map[int]bool
	dayOfWeek  map[int]bool

	domWildcard bool
	dowWildcard bool
}

// Parse parses "m h dom mon dow" with lists, ranges, steps, and wildcards.
func Parse(expr string) (*Schedule, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return nil, errclass.ErrScheduleInvalid.WithMessagef("want 5 fields, got %d in %q", len(fields), expr)
	}

	minute, err := parseField(fields[0], 0, 59)
	if err != nil {
		return nil, errclass.ErrScheduleInvalid.WithMessagef("minute field %q: %v", fields[0], err)
	}
	hour, err := parseField(fields[1], 0, 23)
	if err != nil {
		return nil, errclass.ErrScheduleInvalid.WithMessagef("hour field %q: %v", fields[1], err)
	}
	dom, err := parseField(fields[2], 1, 31)
	if err != nil {
		return nil, errclass.ErrScheduleInvalid.WithMessagef("day-of-month field %q: %v", fields[2], err)
	}
	month, err := parseField(fields[3], 1, 12)
	if err != nil {
		return nil, errclass.ErrScheduleInvalid.WithMessagef("month field %q: %v", fields[3], err)
	}
	dow, err := parseField(fields[4], 0, 6)
	if err != nil {
		return nil, errclass.ErrScheduleInvalid.WithMessagef("day-of-week field %q: %v", fields[4], err)
	}

	return &Schedule{
		minute:      minute,
		hour:        hour,
		dayOfMonth:  dom,
		month:       month,
		dayOfWeek:   dow,
		domWildcard: fields[2] == "*",
		dowWildcard: fields[4] == "*",
	}, nil
}

// Matches reports whether t's calendar minute satisfies the schedule.
func (s *Schedule) Matches(t time.Time) bool {
	if !s.minute[t.Minute()] || !s.hour[t.Hour()] || !s.month[int(t.Month())] {
		return false
	}

	domMatch := s.dayOfMonth[t.Day()]
	dowMatch := s.dayOfWeek[int(t.Weekday())]
	switch {
	case s.domWildcard && s.dowWildcard:
		return true
	case s.domWildcard:
		return dowMatch
	case s.dowWildcard:
		return domMatch
	default:
		return domMatch || dowMatch
	}
}

// nextScanLimit bounds the minute scan to a leap year plus a day.
const nextScanLimit = 60 * 24 * 366

// Next returns the first matching minute strictly after from, or the zero
// time when no minute within 366 days matches.
func (s *Schedule) Next(from time.Time) time.Time {
	cursor := from.Truncate(time.Minute).Add(time.Minute)
	for i := 0; i < nextScanLimit; i++ {
		if s.Matches(cursor) {
			return cursor
		}
		cursor = cursor.Add(time.Minute)
	}
	return time.Time{}
}

func parseField(raw string, min, max int) (map[int]bool, error) {
	values := make(map[int]bool)

	for _, chunkRaw := range strings.Split(raw, ",") {
		chunk := strings.TrimSpace(chunkRaw)
		if chunk == "" {
			return nil, errFieldf("empty list element")
		}

		base := chunk
		step := 1
		if baseRaw, stepRaw, found := strings.Cut(chunk, "/"); found {
			parsed, err := strconv.Atoi(stepRaw)
			if err != nil || parsed <= 0 {
				return nil, errFieldf("bad step %q", stepRaw)
			}
			base = baseRaw
			step = parsed
		}

		lo, hi := min, max
		if base != "*" {
			if startRaw, endRaw, found := strings.Cut(base, "-"); found {
				start, err1 := strconv.Atoi(startRaw)
				end, err2 := strconv.Atoi(endRaw)
				if err1 != nil || err2 != nil {
					return nil, errFieldf("bad range %q", base)
				}
				lo, hi = start, end
			} else {
				single, err := strconv.Atoi(base)
				if err != nil {
					return nil, errFieldf("bad value %q", base)
				}
				lo, hi = single, single
			}
		}

		if lo < min || hi > max || lo > hi {
			return nil, errFieldf("range %d-%d outside %d-%d", lo, hi, min, max)
		}
		for v := lo; v <= hi; v += step {
			values[v] = true
		}
	}

	return values, nil
}

func errFieldf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
