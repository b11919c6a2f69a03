// Package boundary checks that toolpaths stay inside the machine's
// reachable workspace.
//
// The check runs once over the whole job before anything is encoded. It
// must be repeated whenever the toolpath set changes (for example after
// re-tessellating with different tolerances), because the bounding box
// depends on the tessellation.
package boundary

import (
	"github.com/shinji-kodama/foamcut/internal/geometry"
	"github.com/shinji-kodama/foamcut/internal/model"
)

// Validator checks toolpaths against a fixed workspace rectangle.
type Validator struct {
	bounds model.WorkspaceBounds
}

// NewValidator creates a Validator for the given workspace.
func NewValidator(bounds model.WorkspaceBounds) *Validator {
	return &Validator{bounds: bounds}
}

// Bounds returns the workspace the validator checks against.
func (v *Validator) Bounds() model.WorkspaceBounds {
	return v.bounds
}

// Validate computes the bounding box of all points of all toolpaths and
// returns a *model.BoundaryViolation for the first crossed bound, checked
// in the order min X, min Y, max X, max Y. A coordinate equal to a bound
// is inside. A set without points has no bounding box and passes.
func (v *Validator) Validate(toolpaths []model.Toolpath) error {
	box, ok := geometry.BoundingBox(toolpaths)
	if !ok {
		return nil
	}

	b := v.bounds
	switch {
	case box.MinX < b.MinX:
		return &model.BoundaryViolation{Axis: model.AxisX, Side: "min", Value: box.MinX, Limit: b.MinX}
	case box.MinY < b.MinY:
		return &model.BoundaryViolation{Axis: model.AxisY, Side: "min", Value: box.MinY, Limit: b.MinY}
	case box.MaxX > b.MaxX:
		return &model.BoundaryViolation{Axis: model.AxisX, Side: "max", Value: box.MaxX, Limit: b.MaxX}
	case box.MaxY > b.MaxY:
		return &model.BoundaryViolation{Axis: model.AxisY, Side: "max", Value: box.MaxY, Limit: b.MaxY}
	}
	return nil
}

// Fits reports whether every point lies inside the workspace.
func (v *Validator) Fits(toolpaths []model.Toolpath) bool {
	return v.Validate(toolpaths) == nil
}
