package streak

import (
	"sort"
	"time"
)

// DayDiff counts calendar days from a to b as seen in loc.
func DayDiff(a, b time.Time, loc *time.Location) int {
	return int(civilDay(b, loc).Sub(civilDay(a, loc)).Hours() / 24)
}

// Advance returns the streak after a trip at `at`, given the streak and
// last trip time stored on the profile. This is the authoritative rule for
// persisted state.
func Advance(prev int, last *time.Time, at time.Time, loc *time.Location) int {
	if last == nil || last.IsZero() {
		return 1
	}
	switch diff := DayDiff(*last, at, loc); {
	case diff == 1:
		return prev + 1
	case diff > 1:
		return 1
	default:
		return prev
	}
}

// Scan recomputes a streak from trip dates alone: the newest trip day
// counts as one, then each earlier consecutive day with at least one trip
// adds one until the first gap. Read-only verification only.
func Scan(dates []time.Time, loc *time.Location) int {
	if len(dates) == 0 {
		return 0
	}
	days := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		days[civilDay(d, loc)] = struct{}{}
	}
	ordered := make([]time.Time, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].After(ordered[j]) })

	count := 1
	for day := ordered[0].AddDate(0, 0, -1); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			break
		}
		count++
	}
	return count
}

func civilDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
