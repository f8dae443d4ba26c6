package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuotaTracker_BoundaryIsStrictlyAbove(t *testing.T) {
	t.Parallel()

	q := NewQuotaTracker(5)

	// Exactly threshold occurrences are never flagged.
	for i := 0; i < 5; i++ {
		assert.Empty(t, q.Record([]string{"m1"}), "occurrence %d must be clean", i+1)
	}

	// The sixth is the first flagged one.
	assert.Equal(t, []string{"m1"}, q.Record([]string{"m1"}))
	assert.Equal(t, 6, q.Count("m1"))
}

func TestQuotaTracker_MultiManagerRecordIncrementsEach(t *testing.T) {
	t.Parallel()

	q := NewQuotaTracker(2)

	q.Record([]string{"a", "b"})
	q.Record([]string{"a", "b"})
	assert.Equal(t, 2, q.Count("a"))
	assert.Equal(t, 2, q.Count("b"))

	over := q.Record([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b"}, over)
	assert.Equal(t, 1, q.Count("c"))
}

func TestQuotaTracker_IndependentManagers(t *testing.T) {
	t.Parallel()

	q := NewQuotaTracker(1)
	assert.Empty(t, q.Record([]string{"x"}))
	assert.Empty(t, q.Record([]string{"y"}))
	assert.Equal(t, []string{"x"}, q.Record([]string{"x"}))
}
