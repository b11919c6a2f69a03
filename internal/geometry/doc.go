// Package geometry reads tessellated toolpaths and answers the simple
// geometric questions the cutting pipeline needs.
//
// Toolpath files are JSON with comments (JSONC), handled via
// github.com/tidwall/jsonc, so exported geometry can be annotated by hand.
// Curve tessellation itself happens upstream in the CAD tool; this package
// only consumes the resulting polylines.
//
// Besides loading, the package provides:
//   - BoundingBox: axis-aligned box across all points of all toolpaths
//   - SignedArea / IsClockwise: winding of a polyline in the XY plane
//   - Clockwise: normalizes the cut direction of a set of toolpaths
package geometry
