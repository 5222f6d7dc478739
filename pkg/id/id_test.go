package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAtIsSortable(t *testing.T) {
	t.Parallel()

	at := time.Now()
	a := NewAt(at)
	b := NewAt(at)
	assert.Len(t, a, 26)
	assert.Less(t, a, b)
}

func TestNewAtEncodesTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	s := NewAt(at)

	got, err := Time(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(at))

	earlier := NewAt(at.Add(-time.Hour))
	assert.Less(t, earlier, s)

	before, err := Time(NewAt(time.Time{}))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), before, time.Minute)
}

func TestTimeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}
