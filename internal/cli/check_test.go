// check_test.go tests the check report.

package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/foamcut/internal/boundary"
	"github.com/shinji-kodama/foamcut/internal/model"
)

func TestBuildCheckReport(t *testing.T) {
	v := boundary.NewValidator(model.WorkspaceBounds{MinX: -1, MinY: -1, MaxX: 1300, MaxY: 700})

	t.Run("inside", func(t *testing.T) {
		toolpaths := []model.Toolpath{
			{Name: "outline", Points: []model.Point{model.Pt(0, 0), model.Pt(0, 10), model.Pt(10, 10)}},
			{Points: []model.Point{model.Pt(0, 0), model.Pt(10, 0), model.Pt(10, 10)}},
		}
		report, err := buildCheckReport("job.jsonc", toolpaths, v)
		require.NoError(t, err)

		assert.True(t, report.Fits)
		assert.Empty(t, report.Violation)
		assert.Equal(t, 6, report.PointCount)
		require.NotNil(t, report.Box)
		assert.Equal(t, 10.0, report.Box.Width())
		require.Len(t, report.Toolpaths, 2)
		assert.Equal(t, checkToolpath{Name: "outline", Points: 3, Clockwise: true}, report.Toolpaths[0])
		assert.Equal(t, checkToolpath{Name: "#1", Points: 3, Clockwise: false}, report.Toolpaths[1])
	})

	t.Run("outside", func(t *testing.T) {
		toolpaths := []model.Toolpath{{Points: []model.Point{model.Pt(0, 0), model.Pt(1350, 650)}}}
		report, err := buildCheckReport("job.jsonc", toolpaths, v)
		require.Error(t, err)

		var violation *model.BoundaryViolation
		require.True(t, errors.As(err, &violation))
		assert.Equal(t, model.AxisX, violation.Axis)
		assert.False(t, report.Fits)
		assert.Equal(t, err.Error(), report.Violation)
	})

	t.Run("no points", func(t *testing.T) {
		report, err := buildCheckReport("job.jsonc", nil, v)
		require.NoError(t, err)
		assert.Nil(t, report.Box)
		assert.True(t, report.Fits)
	})
}
