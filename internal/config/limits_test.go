package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/foamcut/internal/model"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestResolve_Defaults(t *testing.T) {
	params, err := Default().Limits.Resolve(Options{})
	require.NoError(t, err)

	assert.Equal(t, model.CuttingParameters{
		Tool:              model.Tool1,
		Speed:             550,
		Depth:             0.10,
		AngleTolerance:    5,
		DistanceTolerance: 0.01,
	}, params)
}

func TestResolve_Overrides(t *testing.T) {
	params, err := Default().Limits.Resolve(Options{
		Tool:              "pen",
		Speed:             intPtr(900),
		Depth:             floatPtr(40),
		AngleTolerance:    floatPtr(0.01),
		DistanceTolerance: floatPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, model.Pen, params.Tool)
	assert.Equal(t, 900, params.Speed)
	assert.Equal(t, 40.0, params.Depth)
	assert.Equal(t, 0.01, params.AngleTolerance)
	assert.Equal(t, 1.0, params.DistanceTolerance)
}

// TestResolve_OutOfRange checks that the option boundary rejects values
// outside the configured limits.
func TestResolve_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		msg  string
	}{
		{"speed too high", Options{Speed: intPtr(901)}, "speed 901 out of range (1-900)"},
		{"speed zero", Options{Speed: intPtr(0)}, "speed 0 out of range"},
		{"depth too deep", Options{Depth: floatPtr(40.5)}, "depth 40.5 out of range"},
		{"angle tolerance", Options{AngleTolerance: floatPtr(101)}, "angle tolerance 101 out of range"},
		{"distance tolerance", Options{DistanceTolerance: floatPtr(0)}, "distance tolerance 0 out of range"},
		{"unknown tool", Options{Tool: "laser"}, "invalid tool"},
	}

	limits := Default().Limits
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := limits.Resolve(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRanges_Contains(t *testing.T) {
	r := IntRange{Min: 1, Max: 10}
	assert.True(t, r.Contains(1))
	assert.True(t, r.Contains(10))
	assert.False(t, r.Contains(11))

	f := FloatRange{Min: 0.5, Max: 1.5}
	assert.True(t, f.Contains(0.5))
	assert.False(t, f.Contains(0.49))
}
