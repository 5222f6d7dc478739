package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateSource struct {
	rate           float64
	err            error
	called         int
	lastInstrument string
}

func (f *fakeRateSource) Rate(ctx context.Context, instrumentID string) (float64, error) {
	f.called++
	f.lastInstrument = instrumentID
	return f.rate, f.err
}

func TestQuoteToAccountRate_JPYQuoted(t *testing.T) {
	t.Parallel()

	rs := &fakeRateSource{}
	rate, err := QuoteToAccountRate(context.Background(), Instruments["USDJPY"], 0, rs)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Equal(t, 0, rs.called)
}

func TestQuoteToAccountRate_NonForex(t *testing.T) {
	t.Parallel()

	rs := &fakeRateSource{}
	for _, id := range []string{"XAUUSD", "BTCUSD", "NIKKEI225"} {
		rate, err := QuoteToAccountRate(context.Background(), Instruments[id], 0, rs)
		require.NoError(t, err, id)
		assert.Equal(t, 1.0, rate, id)
	}
	assert.Equal(t, 0, rs.called)
}

func TestQuoteToAccountRate_ManualWins(t *testing.T) {
	t.Parallel()

	rs := &fakeRateSource{rate: 140}
	rate, err := QuoteToAccountRate(context.Background(), Instruments["EURUSD"], 155.5, rs)
	require.NoError(t, err)
	assert.Equal(t, 155.5, rate)
	assert.Equal(t, 0, rs.called)
}

func TestQuoteToAccountRate_FromSource(t *testing.T) {
	t.Parallel()

	rs := &fakeRateSource{rate: 149.25}
	rate, err := QuoteToAccountRate(context.Background(), Instruments["EURUSD"], 0, rs)
	require.NoError(t, err)
	assert.InDelta(t, 149.25, rate, 1e-9)
	assert.Equal(t, 1, rs.called)
	assert.Equal(t, "USDJPY", rs.lastInstrument)
}

func TestQuoteToAccountRate_Unavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  RateSource
	}{
		{"no source", nil},
		{"source error", &fakeRateSource{err: errors.New("boom")}},
		{"zero rate", &fakeRateSource{rate: 0}},
		{"wrapped unavailable", &fakeRateSource{err: ErrRateUnavailable}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rate, err := QuoteToAccountRate(context.Background(), Instruments["GBPUSD"], 0, tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRateUnavailable)
			assert.Equal(t, 0.0, rate)
		})
	}
}
