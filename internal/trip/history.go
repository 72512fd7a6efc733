package trip

import "time"

// Prepend puts rec at the head of a newest-first history and evicts the
// oldest entries beyond limit. The input slice is not modified.
func Prepend(history []TravelRecord, rec TravelRecord, limit int) []TravelRecord {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	n := len(history) + 1
	if n > limit {
		n = limit
	}
	out := make([]TravelRecord, 0, n)
	out = append(out, rec)
	for _, r := range history {
		if len(out) == n {
			break
		}
		out = append(out, r)
	}
	return out
}

// Dates extracts the timestamps of a history in its stored order.
func Dates(history []TravelRecord) []time.Time {
	dates := make([]time.Time, 0, len(history))
	for _, r := range history {
		dates = append(dates, r.Date)
	}
	return dates
}
