package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow_SpansAroundTarget(t *testing.T) {
	w, err := NewWindow("2026-08-29", 2, 7)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-27", w.Start)
	assert.Equal(t, "2026-09-05", w.End)
}

func TestNewWindow_ZeroSpanIsSingleDay(t *testing.T) {
	w, err := NewWindow("2026-08-29", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", w.Start)
	assert.Equal(t, "2026-08-29", w.End)
}

func TestNewWindow_RejectsBadInput(t *testing.T) {
	_, err := NewWindow("29/08/2026", 0, 7)
	assert.Error(t, err)

	_, err = NewWindow("2026-08-29", -1, 7)
	assert.Error(t, err)
}

func TestWindowContains_OverlapNotContainment(t *testing.T) {
	w := Window{Start: "2026-08-27", End: "2026-09-05"}

	cases := []struct {
		name     string
		in, out  string
		expected bool
	}{
		{"fully inside", "2026-08-28", "2026-08-30", true},
		{"checkout on window start", "2026-08-20", "2026-08-27", true},
		{"checkin on window end", "2026-09-05", "2026-09-10", true},
		{"straddles whole window", "2026-08-01", "2026-09-30", true},
		{"ends before window", "2026-08-20", "2026-08-26", false},
		{"starts after window", "2026-09-06", "2026-09-08", false},
		{"unparseable checkin", "soon", "2026-08-30", false},
		{"unparseable checkout", "2026-08-28", "later", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, w.Contains(tc.in, tc.out))
		})
	}
}

func TestNightsRange_HalfOpen(t *testing.T) {
	nights := NightsRange("2026-08-29", "2026-09-01")
	assert.Equal(t, []string{"2026-08-29", "2026-08-30", "2026-08-31"}, nights)
}

func TestNightsRange_DegenerateIntervals(t *testing.T) {
	assert.Nil(t, NightsRange("2026-08-29", "2026-08-29"))
	assert.Nil(t, NightsRange("2026-09-01", "2026-08-29"))
	assert.Nil(t, NightsRange("", "2026-08-29"))
	assert.Nil(t, NightsRange("2026-08-29", "nope"))
}

func TestIsNightOf_ExcludesCheckoutDay(t *testing.T) {
	assert.True(t, IsNightOf("2026-08-29", "2026-08-29", "2026-09-01"))
	assert.True(t, IsNightOf("2026-08-31", "2026-08-29", "2026-09-01"))
	assert.False(t, IsNightOf("2026-09-01", "2026-08-29", "2026-09-01"))
}
