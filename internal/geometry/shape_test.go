package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/foamcut/internal/model"
)

func path(pts ...model.Point) model.Toolpath {
	return model.Toolpath{Points: pts}
}

func TestBoundingBox(t *testing.T) {
	box, ok := BoundingBox([]model.Toolpath{
		path(model.Pt(0, 0), model.Pt(1350, 10)),
		path(model.Pt(20, 650), model.Pt3(-0.5, 5, 99)),
	})
	require.True(t, ok)
	assert.Equal(t, Box{MinX: -0.5, MinY: 0, MaxX: 1350, MaxY: 650}, box)
}

func TestBoundingBox_NoPoints(t *testing.T) {
	_, ok := BoundingBox(nil)
	assert.False(t, ok)

	_, ok = BoundingBox([]model.Toolpath{path()})
	assert.False(t, ok)
}

// TestSignedArea checks the winding sign convention: counter-clockwise
// is positive with the Y axis pointing up.
func TestSignedArea(t *testing.T) {
	ccw := path(model.Pt(0, 0), model.Pt(10, 0), model.Pt(10, 10), model.Pt(0, 10))
	cw := path(model.Pt(0, 0), model.Pt(0, 10), model.Pt(10, 10), model.Pt(10, 0))

	assert.Equal(t, 100.0, SignedArea(ccw))
	assert.Equal(t, -100.0, SignedArea(cw))
	assert.False(t, IsClockwise(ccw))
	assert.True(t, IsClockwise(cw))

	// Too few points to have a direction.
	assert.Zero(t, SignedArea(path(model.Pt(0, 0), model.Pt(5, 5))))
	assert.True(t, IsClockwise(path(model.Pt(0, 0))))
}

func TestClockwise(t *testing.T) {
	ccw := path(model.Pt(0, 0), model.Pt(10, 0), model.Pt(10, 10))
	cw := path(model.Pt(0, 0), model.Pt(10, 10), model.Pt(10, 0))
	input := []model.Toolpath{cw, ccw}

	out, reversed := Clockwise(input)

	assert.Equal(t, []int{1}, reversed)
	assert.Equal(t, cw, out[0])
	assert.Equal(t, []model.Point{model.Pt(10, 10), model.Pt(10, 0), model.Pt(0, 0)}, out[1].Points)
	// Input order is untouched.
	assert.Equal(t, model.Pt(0, 0), input[1].Points[0])
}
