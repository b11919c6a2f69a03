// Package encoder turns toolpaths into machine instruction streams.
//
// Two dialects are supported behind the Encoder interface:
//
//   - Plotter: HPGL-style commands for the cutter's plotter interface.
//     Coordinates are sent in hundredths of a millimeter and each path
//     starts with a pen-up move followed by pen-down moves.
//   - Motion: G-code for job files. Coordinates are whole millimeters
//     and every point uses the same G01 template on two axis pairs.
//
// All coordinate conversions truncate toward zero, matching the machine's
// integer-only motion protocol. Encoding is deterministic: the same input
// always produces the same stream.
package encoder

import (
	"fmt"

	"github.com/shinji-kodama/foamcut/internal/model"
)

// Encoder converts a set of toolpaths sharing one set of cutting
// parameters into an instruction stream.
type Encoder interface {
	// Dialect returns the dialect the encoder produces.
	Dialect() model.Dialect

	// Encode builds the full stream. It returns a *model.GeometryError
	// if any toolpath is empty.
	Encode(toolpaths []model.Toolpath, params model.CuttingParameters) (model.InstructionStream, error)
}

// ForDialect returns the encoder for d.
func ForDialect(d model.Dialect, opts PlotterOptions) (Encoder, error) {
	switch d {
	case model.DialectPlotter:
		return NewPlotter(opts), nil
	case model.DialectMotion:
		return NewMotion(), nil
	default:
		return nil, fmt.Errorf("encoder: unsupported dialect %q", d)
	}
}

// truncate converts v to an integer, dropping the fractional part
// (toward zero).
func truncate(v float64) int {
	return int(v)
}
