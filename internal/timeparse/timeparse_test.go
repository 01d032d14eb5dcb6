package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AcceptedFormats(t *testing.T) {
	cases := []string{
		"2025-01-15",
		"2025-01-15T10:30:00",
		"2025-01-15T10:30:00.123",
		"2025-01-15T10:30:00Z",
		"2025-01-15T10:30:00.123Z",
		"2025-01-15T10:30:00+02:00",
		"2025-01-15T10:30:00.123-05:00",
	}
	for _, ts := range cases {
		t.Run(ts, func(t *testing.T) {
			_, err := Parse(ts)
			assert.NoError(t, err)
		})
	}
}

func TestParse_ZonelessIsUTC(t *testing.T) {
	got, err := Parse("2025-01-15T10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC), got)
}

func TestParse_OffsetRespected(t *testing.T) {
	plain, err := Parse("2025-01-15T12:00:00Z")
	require.NoError(t, err)
	offset, err := Parse("2025-01-15T14:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, plain.Equal(offset))
}

func TestParse_Rejects(t *testing.T) {
	cases := []string{
		"",
		"not-a-date",
		"15/01/2025",
		"2025-13-40",
		"2025-01-15 10:30:00",
	}
	for _, ts := range cases {
		t.Run(ts, func(t *testing.T) {
			_, err := Parse(ts)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParse_DateOrdering(t *testing.T) {
	a, err := Parse("2024-06-01")
	require.NoError(t, err)
	b, err := Parse("2024-06-02T00:00:00Z")
	require.NoError(t, err)
	assert.True(t, a.Before(b))
}
