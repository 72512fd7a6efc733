package trip

import "backend-greentransit/internal/emission"

// MinRecordsForShare is the smallest history that yields a mode share.
const MinRecordsForShare = 5

// ModeShare returns the percentage of trips per known mode, rounded so the
// values sum to exactly 100. ok is false when the history is too short.
func ModeShare(history []TravelRecord) (map[emission.Mode]int, bool) {
	if len(history) < MinRecordsForShare {
		return nil, false
	}
	counts := make(map[emission.Mode]int, len(emission.Modes))
	total := 0
	for _, r := range history {
		if !r.Mode.Known() {
			continue
		}
		counts[r.Mode]++
		total++
	}
	if total == 0 {
		return nil, false
	}

	share := make(map[emission.Mode]int, len(emission.Modes))
	sum := 0
	var largest emission.Mode
	for _, m := range emission.Modes {
		pct := int(float64(counts[m])/float64(total)*100 + 0.5)
		share[m] = pct
		sum += pct
		if largest == "" || pct > share[largest] {
			largest = m
		}
	}
	share[largest] += 100 - sum
	return share, true
}
