package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowIndex_LatestBefore(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	id1, id2, id3 := uuid.New(), uuid.New(), uuid.New()

	w := NewWindowIndex()
	// Inserted out of order on purpose.
	w.Add("abc", base.Add(10*time.Hour), id2)
	w.Add("abc", base.Add(2*time.Hour), id1)
	w.Add("abc", base.Add(20*time.Hour), id3)

	at, ok := w.LatestBefore("abc", base.Add(20*time.Hour), id3)
	require.True(t, ok)
	assert.Equal(t, base.Add(10*time.Hour), at)

	// The record itself is excluded from the search.
	at, ok = w.LatestBefore("abc", base.Add(10*time.Hour).Add(time.Nanosecond), id2)
	require.True(t, ok)
	assert.Equal(t, base.Add(2*time.Hour), at)

	// Strictly-less-than: an occurrence at exactly t does not count.
	_, ok = w.LatestBefore("abc", base.Add(2*time.Hour), id3)
	assert.False(t, ok)

	// Unknown code.
	_, ok = w.LatestBefore("nope", base.Add(24*time.Hour), uuid.Nil)
	assert.False(t, ok)
}

func TestCooldownBoundary_HalfOpen(t *testing.T) {
	t.Parallel()

	cooldown := 12 * time.Hour
	first := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		gap     time.Duration
		violate bool
	}{
		{"11h59m apart is a violation", 11*time.Hour + 59*time.Minute, true},
		{"exactly 12h apart is clean", 12 * time.Hour, false},
		{"12h00m01s apart is clean", 12*time.Hour + time.Second, false},
		{"one second apart is a violation", time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := NewWindowIndex()
			earlier, later := uuid.New(), uuid.New()
			w.Add("code", first, earlier)
			w.Add("code", first.Add(tt.gap), later)

			prev, ok := w.LatestBefore("code", first.Add(tt.gap), later)
			require.True(t, ok)
			assert.Equal(t, tt.violate, first.Add(tt.gap).Sub(prev) < cooldown)
		})
	}
}
