package bend

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gobend/pkg/geometry"
	"github.com/philipparndt/gobend/pkg/path"
)

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

func line(id string, a, b geometry.Vector3) *path.Element {
	return &path.Element{ID: id, Kind: path.Line, Start: a, End: b, Length: a.Distance(b)}
}

// corner is a quarter arc of radius 2. Center and normal only matter when the
// arc sits at a free end of the path.
func corner(id string, a, b, center, normal geometry.Vector3) *path.Element {
	return &path.Element{
		ID: id, Kind: path.Arc, Start: a, End: b,
		Length: math.Pi, Radius: 2, Center: center, Normal: normal, Sweep: 90,
	}
}

func order(t *testing.T, els ...*path.Element) path.OrderedPath {
	t.Helper()
	p, err := path.Order(els, geometry.ConnectivityTolerance)
	require.NoError(t, err)
	return p
}

func TestValidateRadii(t *testing.T) {
	tests := []struct {
		name     string
		radii    []float64
		clr      float64
		mismatch bool
	}{
		{"within ratio", []float64{10.000, 10.015}, 10, false},
		{"beyond ratio", []float64{10.000, 10.030}, 10, true},
		{"no arcs", nil, 0, false},
		{"floor protects small radii", []float64{0.1, 0.1008}, 0.1, false},
		{"invalid first radius", []float64{0, 10}, 0, true},
		{"nan first radius", []float64{math.NaN(), 10}, 0, true},
		{"nan later radius", []float64{10, math.NaN()}, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRadii(tt.radii, geometry.CLRToleranceRatio, geometry.CLRMinTolerance)
			assert.Equal(t, tt.clr, got.CLR)
			assert.Equal(t, tt.mismatch, got.Mismatch)
			assert.Len(t, got.Values, len(tt.radii))
		})
	}
}

func TestCheckCLR(t *testing.T) {
	assert.NoError(t, CheckCLR(0, 0))
	assert.NoError(t, CheckCLR(5, 2))
	var ie *InvalidCLRError
	assert.True(t, errors.As(CheckCLR(0, 1), &ie))
	assert.True(t, errors.As(CheckCLR(math.Inf(1), 1), &ie))
}

func TestCalculateSingleBend(t *testing.T) {
	p := order(t,
		line("L1", v(0, 0, 0), v(10, 0, 0)),
		corner("A1", v(10, 0, 0), v(12, 2, 0), v(10, 2, 0), v(0, 0, 1)),
		line("L2", v(12, 2, 0), v(12, 12, 0)),
	)
	r, err := Calculate(p, 2)
	require.NoError(t, err)

	require.Len(t, r.Straights, 2)
	assert.Equal(t, 10.0, r.Straights[0].Length)
	assert.Equal(t, "L2", r.Straights[1].ElementID)
	assert.Equal(t, 2, r.Straights[1].Index)

	require.Len(t, r.Bends, 1)
	b := r.Bends[0]
	assert.Equal(t, 1, b.Index)
	assert.InDelta(t, 90, b.Angle, 1e-9)
	assert.InDelta(t, math.Pi, b.ArcLength, 1e-9)
	assert.Nil(t, b.Rotation, "first bend has no rotation")
}

func TestCalculateRotations(t *testing.T) {
	base := func(t *testing.T, a2, l3 *path.Element) path.OrderedPath {
		return order(t,
			line("L1", v(0, 0, 0), v(10, 0, 0)),
			corner("A1", v(10, 0, 0), v(12, 2, 0), v(10, 2, 0), v(0, 0, 1)),
			line("L2", v(12, 2, 0), v(12, 12, 0)),
			a2, l3,
		)
	}

	tests := []struct {
		name     string
		a2, l3   *path.Element
		rotation float64
	}{
		{
			"out of plane up",
			corner("A2", v(12, 12, 0), v(12, 14, 2), v(12, 12, 2), v(1, 0, 0)),
			line("L3", v(12, 14, 2), v(12, 14, 12)),
			90,
		},
		{
			"out of plane down",
			corner("A2", v(12, 12, 0), v(12, 14, -2), v(12, 12, -2), v(-1, 0, 0)),
			line("L3", v(12, 14, -2), v(12, 14, -12)),
			270,
		},
		{
			"same plane same side",
			corner("A2", v(12, 12, 0), v(10, 14, 0), v(10, 12, 0), v(0, 0, 1)),
			line("L3", v(10, 14, 0), v(0, 14, 0)),
			0,
		},
		{
			"same plane opposite side",
			corner("A2", v(12, 12, 0), v(14, 14, 0), v(14, 12, 0), v(0, 0, -1)),
			line("L3", v(14, 14, 0), v(24, 14, 0)),
			180,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Calculate(base(t, tt.a2, tt.l3), 2)
			require.NoError(t, err)
			require.Len(t, r.Bends, 2)
			assert.Nil(t, r.Bends[0].Rotation)
			require.NotNil(t, r.Bends[1].Rotation)
			assert.InDelta(t, tt.rotation, *r.Bends[1].Rotation, 1e-9)
			assert.InDelta(t, 90, r.Bends[1].Angle, 1e-9)
			assert.GreaterOrEqual(t, *r.Bends[1].Rotation, 0.0)
			assert.Less(t, *r.Bends[1].Rotation, 360.0)
		})
	}
}

func TestCalculateUndefinedPlaneUsesLastDefined(t *testing.T) {
	p := order(t,
		line("L1", v(0, 0, 0), v(10, 0, 0)),
		corner("A1", v(10, 0, 0), v(12, 0, 0), v(11, 0, 0), v(0, 0, 1)),
		line("L2", v(12, 0, 0), v(22, 0, 0)),
		corner("A2", v(22, 0, 0), v(24, 2, 0), v(22, 2, 0), v(0, 0, 1)),
		line("L3", v(24, 2, 0), v(24, 12, 0)),
		corner("A3", v(24, 12, 0), v(24, 14, 2), v(24, 12, 2), v(1, 0, 0)),
		line("L4", v(24, 14, 2), v(24, 14, 12)),
	)
	r, err := Calculate(p, 2)
	require.NoError(t, err)
	require.Len(t, r.Bends, 3)

	assert.InDelta(t, 0, r.Bends[0].Angle, 1e-9)
	assert.InDelta(t, 0, r.Bends[0].ArcLength, 1e-9)
	require.NotNil(t, r.Bends[1].Rotation)
	assert.Equal(t, 0.0, *r.Bends[1].Rotation)
	require.NotNil(t, r.Bends[2].Rotation)
	assert.InDelta(t, 90, *r.Bends[2].Rotation, 1e-9)
}

func TestCalculateTerminalArcs(t *testing.T) {
	startArc := order(t,
		corner("A1", v(10, 0, 0), v(12, 2, 0), v(10, 2, 0), v(0, 0, 1)),
		line("L1", v(12, 2, 0), v(12, 12, 0)),
	)
	r, err := Calculate(startArc, 2)
	require.NoError(t, err)
	require.Len(t, r.Bends, 1)
	assert.InDelta(t, 90, r.Bends[0].Angle, 1e-9)
	assert.Len(t, r.Straights, 1)

	single := order(t, corner("A1", v(10, 0, 0), v(12, 2, 0), v(10, 2, 0), v(0, 0, 1)))
	r, err = Calculate(single, 2)
	require.NoError(t, err)
	require.Len(t, r.Bends, 1)
	assert.InDelta(t, 90, r.Bends[0].Angle, 1e-9)
	assert.Empty(t, r.Straights)
}

func TestCalculateZeroLengthLine(t *testing.T) {
	l1 := line("L1", v(0, 0, 0), v(10, 0, 0))
	a1 := corner("A1", v(10, 0, 0), v(12, 2, 0), v(10, 2, 0), v(0, 0, 1))
	z := line("Z", v(12, 2, 0), v(12, 2, 0))
	p, err := path.NewOrderedPath([]path.Step{{Element: l1}, {Element: a1}, {Element: z}}, 0.1)
	require.NoError(t, err)

	_, err = Calculate(p, 2)
	require.ErrorIs(t, err, geometry.ErrZeroVector)
	var ze *geometry.ZeroVectorError
	require.True(t, errors.As(err, &ze))
	assert.Equal(t, "Z", ze.Element)
}

func TestCalculateInsufficientVectors(t *testing.T) {
	a1 := corner("A1", v(10, 0, 0), v(12, 2, 0), v(10, 2, 0), v(0, 0, 1))
	a2 := corner("A2", v(12, 2, 0), v(10, 4, 0), v(10, 2, 0), v(0, 0, 1))
	p, err := path.NewOrderedPath([]path.Step{{Element: a1}, {Element: a2}}, 0.1)
	require.NoError(t, err)

	_, err = Calculate(p, 2)
	var ie *InsufficientVectorsError
	require.True(t, errors.As(err, &ie), "got %v", err)
	assert.Equal(t, 2, ie.Vectors)
	assert.Equal(t, 2, ie.Arcs)
}

func TestCalculateRejectsInvalidCLR(t *testing.T) {
	p := order(t,
		line("L1", v(0, 0, 0), v(10, 0, 0)),
		corner("A1", v(10, 0, 0), v(12, 2, 0), v(10, 2, 0), v(0, 0, 1)),
		line("L2", v(12, 2, 0), v(12, 12, 0)),
	)
	_, err := Calculate(p, 0)
	var ie *InvalidCLRError
	assert.True(t, errors.As(err, &ie))

	straight := order(t, line("L1", v(0, 0, 0), v(10, 0, 0)))
	r, err := Calculate(straight, 0)
	require.NoError(t, err)
	assert.Len(t, r.Straights, 1)
	assert.Empty(t, r.Bends)
}

func TestLayout(t *testing.T) {
	straights := []StraightRecord{{Index: 1, Length: 4}, {Index: 2, Length: 20}}
	bends := []BendRecord{{Index: 1, ArcLength: 5}}

	pieces := Layout(straights, bends, false, 1)
	require.Len(t, pieces, 3)
	assert.Equal(t, Piece{Kind: path.Line, Index: 1, Length: 4, StartAt: 1, EndAt: 5}, pieces[0])
	assert.Equal(t, Piece{Kind: path.Arc, Index: 1, Length: 5, StartAt: 5, EndAt: 10}, pieces[1])
	assert.Equal(t, 30.0, pieces[2].EndAt)

	pieces = Layout(straights[:1], bends, true, 0)
	require.Len(t, pieces, 2)
	assert.Equal(t, path.Arc, pieces[0].Kind)
	assert.Equal(t, 5.0, pieces[1].StartAt)

	assert.Equal(t, 29.0, CenterlineLength(straights, bends))
}
