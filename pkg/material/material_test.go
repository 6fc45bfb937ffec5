package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gobend/pkg/bend"
)

func straights(lengths ...float64) []bend.StraightRecord {
	out := make([]bend.StraightRecord, len(lengths))
	for i, l := range lengths {
		out[i] = bend.StraightRecord{Index: i + 1, Length: l}
	}
	return out
}

func bends(arcLengths ...float64) []bend.BendRecord {
	out := make([]bend.BendRecord, len(arcLengths))
	for i, l := range arcLengths {
		out[i] = bend.BendRecord{Index: i + 1, Angle: 90, ArcLength: l}
	}
	return out
}

func TestShortFirstStraightGetsSyntheticGrip(t *testing.T) {
	c := Calculate(Inputs{Straights: straights(4, 20), Bends: bends(5), MinGrip: 15.24})

	assert.True(t, c.Grip.HasSynthetic)
	assert.InDelta(t, 11.24, c.Grip.SyntheticMaterial, 1e-9)
	assert.Zero(t, c.Grip.ExtraMaterial)
	require.NotNil(t, c.Grip.CutPosition)
	assert.InDelta(t, 11.24, *c.Grip.CutPosition, 1e-9)
}

func TestLongFirstStraightNeedsNoExtension(t *testing.T) {
	c := Calculate(Inputs{Straights: straights(20, 20), Bends: bends(5), MinGrip: 15.24})

	assert.False(t, c.Grip.HasSynthetic)
	assert.Zero(t, c.Grip.SyntheticMaterial)
	assert.Zero(t, c.Grip.ExtraMaterial)
	assert.Nil(t, c.Grip.CutPosition)
	assert.Empty(t, c.Grip.Violations)
}

func TestDisabledMinimums(t *testing.T) {
	c := Calculate(Inputs{Straights: straights(1, 1), Bends: bends(5), StartsWithArc: false})
	assert.False(t, c.Grip.Extended())
	assert.False(t, c.Tail.Extended())
	assert.Empty(t, c.Grip.Violations)
	assert.False(t, c.Tail.Violation)
}

func TestZeroStraights(t *testing.T) {
	c := Calculate(Inputs{MinGrip: 15, MinTail: 10, StartAllowance: 1, EndAllowance: 2})

	assert.Zero(t, c.Grip.Material())
	assert.Zero(t, c.Tail.Material())
	assert.Empty(t, c.Grip.Violations)
	assert.False(t, c.Tail.Violation)
	assert.Equal(t, 1.0, c.Grip.EffectiveAllowance)
	assert.Equal(t, 2.0, c.Tail.EffectiveAllowance)
}

func TestDieOffsetAddsExtraGrip(t *testing.T) {
	c := Calculate(Inputs{Straights: straights(20, 20), Bends: bends(5), MinGrip: 15.24, DieOffset: 6})
	assert.False(t, c.Grip.HasSynthetic)
	assert.InDelta(t, 1.24, c.Grip.ExtraMaterial, 1e-9)
	require.NotNil(t, c.Grip.CutPosition)
	assert.InDelta(t, 1.24, *c.Grip.CutPosition, 1e-9)

	// a topped-up grip still loses the die offset
	c = Calculate(Inputs{Straights: straights(4, 20), Bends: bends(5), MinGrip: 15.24, DieOffset: 2})
	assert.InDelta(t, 11.24, c.Grip.SyntheticMaterial, 1e-9)
	assert.InDelta(t, 2, c.Grip.ExtraMaterial, 1e-9)
	assert.InDelta(t, 13.24, *c.Grip.CutPosition, 1e-9)
}

func TestTerminalArcs(t *testing.T) {
	c := Calculate(Inputs{
		Straights:      straights(30),
		Bends:          bends(5, 5),
		StartsWithArc:  true,
		EndsWithArc:    true,
		MinGrip:        15,
		MinTail:        10,
		DieOffset:      3,
		StartAllowance: 1,
		EndAllowance:   1,
	})

	assert.True(t, c.Grip.HasSynthetic)
	assert.Equal(t, 15.0, c.Grip.SyntheticMaterial)
	assert.Zero(t, c.Grip.ExtraMaterial)
	assert.True(t, c.Tail.HasSynthetic)
	assert.False(t, c.Tail.HasExtension)
	assert.Equal(t, 10.0, c.Tail.SyntheticMaterial)

	// start material plus the 40 long centerline; allowances dropped
	require.NotNil(t, c.Tail.CutPosition)
	assert.InDelta(t, 55, *c.Tail.CutPosition, 1e-9)
	assert.Zero(t, c.Grip.EffectiveAllowance)
	assert.Zero(t, c.Tail.EffectiveAllowance)
	assert.False(t, c.SpringBackWarning)
}

func TestTailExtension(t *testing.T) {
	c := Calculate(Inputs{Straights: straights(20, 5), Bends: bends(7), MinTail: 10, EndAllowance: 2})

	assert.True(t, c.Tail.HasExtension)
	assert.InDelta(t, 5, c.Tail.ExtraMaterial, 1e-9)
	require.NotNil(t, c.Tail.CutPosition)
	assert.Equal(t, 25.0, *c.Tail.CutPosition, "arc lengths are not part of the tail cut")
	assert.Zero(t, c.Tail.EffectiveAllowance)
	assert.True(t, c.SpringBackWarning)
	assert.True(t, c.Tail.Violation)

	c = Calculate(Inputs{Straights: straights(20, 5), Bends: bends(7), MinTail: 10, EndAllowance: 2, AddAllowanceWithTailExtension: true})
	assert.Equal(t, 2.0, c.Tail.EffectiveAllowance)
	assert.False(t, c.SpringBackWarning)
}

func TestEffectiveAllowances(t *testing.T) {
	tests := []struct {
		name        string
		first       float64
		addWithGrip bool
		wantStart   float64
		wantEnd     float64
	}{
		{"extended grip drops allowance", 4, false, 0, 2},
		{"extended grip keeps allowance on request", 4, true, 3, 2},
		{"no extension keeps allowance", 20, false, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Calculate(Inputs{
				Straights:                     straights(tt.first, 20),
				Bends:                         bends(5),
				MinGrip:                       15.24,
				StartAllowance:                3,
				EndAllowance:                  2,
				AddAllowanceWithGripExtension: tt.addWithGrip,
			})
			assert.Equal(t, tt.wantStart, c.Grip.EffectiveAllowance)
			assert.Equal(t, tt.wantEnd, c.Tail.EffectiveAllowance)
		})
	}
}

func TestViolations(t *testing.T) {
	c := Calculate(Inputs{Straights: straights(4, 20), Bends: bends(5), MinGrip: 15.24, MinTail: 25})
	assert.Equal(t, []int{1}, c.Grip.Violations)
	assert.True(t, c.Tail.Violation)

	c = Calculate(Inputs{Straights: straights(4, 20), Bends: bends(5), MinGrip: 3, MinTail: 10})
	assert.Empty(t, c.Grip.Violations)
	assert.False(t, c.Tail.Violation)

	c = Calculate(Inputs{Straights: straights(10, 2, 20), Bends: bends(5, 5), MinGrip: 18})
	assert.Equal(t, []int{1, 2}, c.Grip.Violations)
}

func TestTerminalArcsAreNotViolations(t *testing.T) {
	c := Calculate(Inputs{
		Straights:     straights(30),
		Bends:         bends(5, 5),
		StartsWithArc: true,
		EndsWithArc:   true,
		MinGrip:       15,
		MinTail:       10,
	})
	assert.Equal(t, 15.0, c.Grip.SyntheticMaterial)
	assert.Equal(t, 10.0, c.Tail.SyntheticMaterial)
	assert.Empty(t, c.Grip.Violations)
	assert.False(t, c.Tail.Violation)

	// the bend after a short first straight is still too close to the grip
	c = Calculate(Inputs{Straights: straights(8), Bends: bends(5, 5), StartsWithArc: true, EndsWithArc: true, MinGrip: 15})
	assert.Equal(t, []int{2}, c.Grip.Violations)
}

func TestShortStraights(t *testing.T) {
	a := ShortStraights(straights(30, 30, 30), 10, "Left")
	assert.True(t, a.CurrentValid)
	assert.True(t, a.CanFabricate)
	assert.Empty(t, a.Violations)
	assert.Empty(t, a.Message)

	a = ShortStraights(straights(30, 5, 30, 30), 10, "Left")
	assert.Equal(t, []int{2}, a.Violations)
	assert.False(t, a.CurrentValid)
	assert.False(t, a.ReversedValid)
	assert.False(t, a.CanFabricate)
	assert.Contains(t, a.Message, "Straight 2")
	assert.NotEmpty(t, a.Suggestion)

	a = ShortStraights(straights(5, 30), 10, "Left")
	assert.True(t, a.CurrentValid, "end straights are exempt")
}
