package geometry

import (
	"fmt"
	"math"

	"github.com/shinji-kodama/foamcut/internal/model"
)

// Box is an axis-aligned bounding box in the XY plane.
type Box struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func (b Box) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Width returns the extent along X.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the extent along Y.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// BoundingBox computes the box enclosing every point of every toolpath.
// ok is false when there are no points at all.
func BoundingBox(toolpaths []model.Toolpath) (box Box, ok bool) {
	box = Box{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, tp := range toolpaths {
		for _, p := range tp.Points {
			box.MinX = math.Min(box.MinX, p.X)
			box.MinY = math.Min(box.MinY, p.Y)
			box.MaxX = math.Max(box.MaxX, p.X)
			box.MaxY = math.Max(box.MaxY, p.Y)
			ok = true
		}
	}
	if !ok {
		return Box{}, false
	}
	return box, true
}

// SignedArea returns the shoelace area of the polyline in the XY plane,
// treating it as closed. Positive means counter-clockwise with the Y axis
// pointing up.
func SignedArea(tp model.Toolpath) float64 {
	n := len(tp.Points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := tp.Points[i]
		b := tp.Points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// IsClockwise reports whether tp winds clockwise. Degenerate polylines
// (fewer than three points or zero area) count as clockwise, since they
// have no direction to correct.
func IsClockwise(tp model.Toolpath) bool {
	return SignedArea(tp) <= 0
}

// Clockwise returns toolpaths with every counter-clockwise path reversed,
// and the indexes of the paths it reversed. The input slice is not
// modified.
func Clockwise(toolpaths []model.Toolpath) ([]model.Toolpath, []int) {
	out := make([]model.Toolpath, len(toolpaths))
	var reversed []int
	for i, tp := range toolpaths {
		if IsClockwise(tp) {
			out[i] = tp
			continue
		}
		out[i] = tp.Reversed()
		reversed = append(reversed, i)
	}
	return out, reversed
}
