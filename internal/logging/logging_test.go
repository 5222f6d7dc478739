package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		l, err := New(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, l.GetLevel(), tt.in)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New("chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestNewWithOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := NewWithOutput("info", &buf)
	require.NoError(t, err)

	l.WithField("pair", "USDJPY").Info("rate fetched")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "rate fetched")
	assert.Contains(t, out, "pair=USDJPY")
	assert.NotContains(t, out, "hidden")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	l := Discard()
	assert.NotPanics(t, func() { l.Error("dropped") })
}
