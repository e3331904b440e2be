package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRange(t *testing.T) {
	start := time.Date(2026, 6, 1, 6, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	r, err := NewTimeRange(start, end)
	require.NoError(t, err)
	assert.Equal(t, start, r.StartDate)
	assert.Equal(t, end, r.EndDate)

	_, err = NewTimeRange(end, start)
	assert.Error(t, err, "reversed range must be rejected")

	_, err = NewTimeRange(start, start)
	assert.Error(t, err, "empty range must be rejected")

	_, err = NewTimeRange(time.Time{}, end)
	assert.Error(t, err)
}

func TestTimeRangeContains(t *testing.T) {
	start := time.Date(2026, 6, 1, 6, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	r, err := NewTimeRange(start, end)
	require.NoError(t, err)

	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(start.Add(time.Hour)))
	assert.False(t, r.Contains(end))
	assert.False(t, r.Contains(start.Add(-time.Second)))
}

func TestNewLength(t *testing.T) {
	l, err := NewLength(52.5)
	require.NoError(t, err)
	assert.Equal(t, 52.5, l.Cm())

	_, err = NewLength(-1)
	assert.Error(t, err)

	zero, err := NewLength(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero.Cm())
}

func TestNewWeight(t *testing.T) {
	w, err := NewWeight(3.25)
	require.NoError(t, err)
	assert.Equal(t, 3.25, w.Kg())

	_, err = NewWeight(-0.01)
	assert.Error(t, err)
}
