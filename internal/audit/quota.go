package audit

// QuotaTracker counts partnership actions per manager for the target day.
// Counters are created fresh at run start and discarded at run end.
//
// Not safe for concurrent use; the runner feeds it target-day records
// sequentially, in timestamp order.
type QuotaTracker struct {
	threshold int
	counts    map[string]int
}

// NewQuotaTracker creates a tracker with the given daily threshold.
func NewQuotaTracker(threshold int) *QuotaTracker {
	return &QuotaTracker{
		threshold: threshold,
		counts:    make(map[string]int),
	}
}

// Record increments the counter of every manager attributed to one record
// and returns the managers whose counter this increment pushed strictly
// above the threshold. Exactly threshold occurrences are clean; the
// (threshold+1)-th is the first one reported.
func (q *QuotaTracker) Record(managers []string) []string {
	var over []string
	for _, m := range managers {
		q.counts[m]++
		if q.counts[m] > q.threshold {
			over = append(over, m)
		}
	}
	return over
}

// Count returns the current counter for one manager.
func (q *QuotaTracker) Count(manager string) int {
	return q.counts[manager]
}
