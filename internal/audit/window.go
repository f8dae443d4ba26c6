package audit

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/communityops/partnerbot/internal/domain"
)

type occurrence struct {
	at       time.Time
	recordID uuid.UUID
}

// WindowIndex maps invite code to the ordered occurrences of that code in
// the [targetDay-1, targetDay] window. It is a scratch structure: built at
// run start from the fetched records, discarded at run end.
//
// Not safe for concurrent mutation.
type WindowIndex struct {
	byCode map[domain.InviteCode][]occurrence
	sorted bool
}

// NewWindowIndex creates an empty index.
func NewWindowIndex() *WindowIndex {
	return &WindowIndex{byCode: make(map[domain.InviteCode][]occurrence)}
}

// Add records one occurrence of a code.
func (w *WindowIndex) Add(code domain.InviteCode, at time.Time, recordID uuid.UUID) {
	w.byCode[code] = append(w.byCode[code], occurrence{at: at, recordID: recordID})
	w.sorted = false
}

// LatestBefore returns the timestamp of the occurrence of code with the
// latest timestamp strictly less than t, excluding the record itself.
// The second return value reports whether such an occurrence exists.
func (w *WindowIndex) LatestBefore(code domain.InviteCode, t time.Time, exclude uuid.UUID) (time.Time, bool) {
	w.ensureSorted()

	// Occurrences are sorted ascending, so the first acceptable entry from
	// the end is the latest one before t.
	occs := w.byCode[code]
	for i := len(occs) - 1; i >= 0; i-- {
		o := occs[i]
		if o.recordID == exclude || !o.at.Before(t) {
			continue
		}
		return o.at, true
	}
	return time.Time{}, false
}

func (w *WindowIndex) ensureSorted() {
	if w.sorted {
		return
	}
	for code := range w.byCode {
		occs := w.byCode[code]
		sort.Slice(occs, func(i, j int) bool { return occs[i].at.Before(occs[j].at) })
	}
	w.sorted = true
}
