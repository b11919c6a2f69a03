package geometry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/foamcut/internal/model"
)

// RawFile represents the on-disk structure of a toolpath file.
//
//	{
//	  // tessellation settings used by the exporter
//	  "tolerance": {"angle": 5, "distance": 0.01},
//	  "toolpaths": [
//	    {"name": "outline", "points": [[0, 0], [10, 0, 0], [10, 10]]},
//	  ],
//	}
type RawFile struct {
	// Tolerance records how the curves were tessellated. Optional.
	Tolerance *RawTolerance `json:"tolerance,omitempty"`

	// Toolpaths lists the polylines in the order they should be cut.
	Toolpaths []RawToolpath `json:"toolpaths"`
}

// RawTolerance holds the tessellation tolerances reported by the exporter.
type RawTolerance struct {
	Angle    float64 `json:"angle"`
	Distance float64 `json:"distance"`
}

// RawToolpath is one polyline. Each point is an array of two or three
// numbers: [x, y] or [x, y, z].
type RawToolpath struct {
	Name   string      `json:"name,omitempty"`
	Points [][]float64 `json:"points"`
}

// Input is a parsed toolpath file.
type Input struct {
	// Path is the file the input was read from.
	Path string

	// Toolpaths holds the polylines in file order.
	Toolpaths []model.Toolpath

	// AngleTolerance and DistanceTolerance are zero when the file does
	// not record them.
	AngleTolerance    float64
	DistanceTolerance float64
}

// LoadFile reads a toolpath file, strips JSONC comments and trailing
// commas, and converts it into model toolpaths.
//
// A missing or unreadable file is returned as-is so callers can map it to
// an exit code; malformed content is returned as a GeometryError.
func LoadFile(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read toolpath file: %w", err)
	}

	in, err := Parse(data)
	if err != nil {
		return nil, err
	}
	in.Path = path
	return in, nil
}

// Parse decodes toolpath file contents.
func Parse(data []byte) (*Input, error) {
	// Strip JSONC comments (// and /* */) and trailing commas before
	// handing the bytes to encoding/json.
	cleanJSON := jsonc.ToJSON(data)

	var raw RawFile
	if err := json.Unmarshal(cleanJSON, &raw); err != nil {
		return nil, &model.GeometryError{Toolpath: "*", Reason: fmt.Sprintf("malformed toolpath file: %v", err)}
	}

	in := &Input{Toolpaths: make([]model.Toolpath, 0, len(raw.Toolpaths))}
	if raw.Tolerance != nil {
		in.AngleTolerance = raw.Tolerance.Angle
		in.DistanceTolerance = raw.Tolerance.Distance
	}

	for i, rt := range raw.Toolpaths {
		tp, err := convertToolpath(i, rt)
		if err != nil {
			return nil, err
		}
		in.Toolpaths = append(in.Toolpaths, tp)
	}
	return in, nil
}

// convertToolpath maps a raw polyline to a model.Toolpath. Empty
// toolpaths are kept; rejecting them is the orchestrator's job so that
// the error surfaces at the validation stage.
func convertToolpath(index int, rt RawToolpath) (model.Toolpath, error) {
	tp := model.Toolpath{Name: rt.Name, Points: make([]model.Point, 0, len(rt.Points))}

	for j, coords := range rt.Points {
		switch len(coords) {
		case 2:
			tp.Points = append(tp.Points, model.Pt(coords[0], coords[1]))
		case 3:
			tp.Points = append(tp.Points, model.Pt3(coords[0], coords[1], coords[2]))
		default:
			return model.Toolpath{}, &model.GeometryError{
				Toolpath: tp.Label(index),
				Reason:   fmt.Sprintf("point %d has %d coordinates (want 2 or 3)", j, len(coords)),
			}
		}
	}
	return tp, nil
}

// CheckToolpaths returns a GeometryError for the first toolpath without
// points. Encoders call it before producing any command, so a failing job
// never yields a partial stream.
func CheckToolpaths(toolpaths []model.Toolpath) error {
	for i, tp := range toolpaths {
		if tp.Len() == 0 {
			return &model.GeometryError{Toolpath: tp.Label(i), Reason: "toolpath has no points"}
		}
	}
	return nil
}
