package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeasure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{name: "plain integer", raw: "300", want: fp(300)},
		{name: "decimal", raw: "56666.67", want: fp(56666.67)},
		{name: "thousands separators", raw: "1,234,500", want: fp(1234500)},
		{name: "dollar prefix", raw: "$52.30", want: fp(52.3)},
		{name: "surrounding whitespace", raw: "  410 ", want: fp(410)},
		{name: "empty", raw: "", want: nil},
		{name: "suppressed marker", raw: "*", want: nil},
		{name: "double star marker", raw: "**", want: nil},
		{name: "above range marker", raw: "#", want: nil},
		{name: "not available", raw: "n/a", want: nil},
		{name: "na uppercase", raw: "NA", want: nil},
		{name: "stray text", raw: "confidential", want: nil},
		{name: "mixed text and digits", raw: "12abc", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMeasure(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestTruthySet(t *testing.T) {
	set := DefaultTruthySet()

	assert.True(t, set.Truthy("true"))
	assert.True(t, set.Truthy("TRUE"))
	assert.True(t, set.Truthy(" t "))
	assert.True(t, set.Truthy("1"))
	assert.False(t, set.Truthy("false"))
	assert.False(t, set.Truthy(""))
	assert.False(t, set.Truthy("2"))

	custom := NewTruthySet("Si", "oui")
	assert.True(t, custom.Truthy("si"))
	assert.True(t, custom.Truthy("OUI"))
	assert.False(t, custom.Truthy("true"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 56666.67, Round2(56666.666666666664))
	assert.Equal(t, 2.68, Round2(2.675000001))
	assert.Equal(t, -2.35, Round2(-2.345000000001))
	assert.Equal(t, 0.0, Round2(0))

	assert.Nil(t, round2p(nil))
	got := round2p(fp(1.005000001))
	require.NotNil(t, got)
	assert.Equal(t, 1.01, *got)
}

// fp returns a pointer to v for building nullable test fixtures.
func fp(v float64) *float64 {
	return &v
}
