package encoder

import (
	"fmt"

	"github.com/shinji-kodama/foamcut/internal/geometry"
	"github.com/shinji-kodama/foamcut/internal/model"
)

// Motion encodes toolpaths as G-code for the four-axis hot-wire cutter.
// The secondary axis pair (A, B) mirrors the primary pair (X, Y), so both
// wire ends travel the same path.
type Motion struct{}

// NewMotion creates a motion encoder.
func NewMotion() *Motion {
	return &Motion{}
}

// Dialect returns model.DialectMotion.
func (m *Motion) Dialect() model.Dialect {
	return model.DialectMotion
}

// Encode emits the feed-rate line as the header and one G01 move per
// point. The first point of a path uses the same template as the others.
func (m *Motion) Encode(toolpaths []model.Toolpath, params model.CuttingParameters) (model.InstructionStream, error) {
	if err := geometry.CheckToolpaths(toolpaths); err != nil {
		return model.InstructionStream{}, err
	}

	var commands []string
	for _, tp := range toolpaths {
		for _, pt := range tp.Points {
			x, y := truncate(pt.X), truncate(pt.Y)
			commands = append(commands, fmt.Sprintf("G01 X%d Y%d A%d B%d", x, y, x, y))
		}
	}

	return model.InstructionStream{
		Dialect:  model.DialectMotion,
		Header:   fmt.Sprintf("G01 F%d", params.Speed),
		Commands: commands,
	}, nil
}
