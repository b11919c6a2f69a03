package encoder

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/foamcut/internal/geometry"
	"github.com/shinji-kodama/foamcut/internal/model"
)

const (
	// plotterScale converts millimeters to the device's fixed-point units.
	plotterScale = 100

	// DefaultJobName is written into the UR directive when none is
	// configured.
	DefaultJobName = "ZuendTest"

	// DefaultParkX is the X coordinate (device units) the head parks at
	// after the job.
	DefaultParkX = 160000

	// penVelocityDown is the second VS argument sent with every job.
	penVelocityDown = 40

	// zPositionUp is the first ZP argument sent with every job.
	zPositionUp = 1000
)

// PlotterOptions configures the framing of plotter jobs.
type PlotterOptions struct {
	// JobName is sent with the UR directive. Defaults to DefaultJobName.
	JobName string

	// ParkX is where the head parks in the footer. Defaults to DefaultParkX.
	ParkX int
}

// Plotter encodes toolpaths in the plotter-control dialect.
type Plotter struct {
	opts PlotterOptions
}

// NewPlotter creates a plotter encoder, filling unset options with
// their defaults.
func NewPlotter(opts PlotterOptions) *Plotter {
	if opts.JobName == "" {
		opts.JobName = DefaultJobName
	}
	if opts.ParkX == 0 {
		opts.ParkX = DefaultParkX
	}
	return &Plotter{opts: opts}
}

// Dialect returns model.DialectPlotter.
func (p *Plotter) Dialect() model.Dialect {
	return model.DialectPlotter
}

// Encode produces the header, one PU command for the first point of each
// toolpath, PD commands for the remaining points, and the parking footer.
func (p *Plotter) Encode(toolpaths []model.Toolpath, params model.CuttingParameters) (model.InstructionStream, error) {
	if err := geometry.CheckToolpaths(toolpaths); err != nil {
		return model.InstructionStream{}, err
	}

	var commands []string
	for _, tp := range toolpaths {
		for i, pt := range tp.Points {
			op := "PD"
			if i == 0 {
				op = "PU"
			}
			commands = append(commands, fmt.Sprintf("%s %d, %d;", op,
				truncate(pt.X*plotterScale), truncate(pt.Y*plotterScale)))
		}
	}

	return model.InstructionStream{
		Dialect:  model.DialectPlotter,
		Header:   p.header(params),
		Commands: commands,
		Footer:   p.footer(),
	}, nil
}

// header selects the tool, lifts it, sets the cutting depth and the
// pen velocity.
func (p *Plotter) header(params model.CuttingParameters) string {
	tool := params.Tool.Code()

	var b strings.Builder
	b.WriteString("PS 1,1;PB 2,1;\n")
	b.WriteString("DT 59;\n")
	fmt.Fprintf(&b, "UR %s;\n", p.opts.JobName)
	fmt.Fprintf(&b, "SP %d; TR 1;PU;PA;\n", tool)
	fmt.Fprintf(&b, "SP %d;\n", tool)
	fmt.Fprintf(&b, "ZP %d, %d;\n", zPositionUp, truncate(params.Depth))
	fmt.Fprintf(&b, "SP %d;\n", tool)
	fmt.Fprintf(&b, "VS %d, %d;", params.Speed, penVelocityDown)
	return b.String()
}

// footer parks the tool and resets the device state flags.
func (p *Plotter) footer() string {
	return fmt.Sprintf("PU;\nPU;\nPU;PA %d,0;BP;PS 1,0;PB 2,0;NR;", p.opts.ParkX)
}
