// check.go implements the "foamcut check" command.
//
// The check command runs the same geometry and workspace checks as cut,
// without encoding or emitting anything. It reports the bounding box of
// the job and the winding of every toolpath.

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/foamcut/internal/boundary"
	"github.com/shinji-kodama/foamcut/internal/geometry"
	"github.com/shinji-kodama/foamcut/internal/model"
)

// NewCheckCommand creates the "check" cobra command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <toolpaths.jsonc>",
		Short: "Check toolpaths against the workspace without cutting",
		Long: `Check that every point of every toolpath lies inside the configured
workspace, and report the job's bounding box and path directions.

The exit status is non-zero when a toolpath is empty or leaves the
workspace, so the command can gate scripted jobs.

Examples:
  foamcut check wing.jsonc
  foamcut check wing.jsonc --json`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

// checkReport is the outcome of a check, also used as its JSON output.
type checkReport struct {
	File       string                `json:"file"`
	Workspace  model.WorkspaceBounds `json:"workspace"`
	Box        *geometry.Box         `json:"boundingBox"`
	Toolpaths  []checkToolpath       `json:"toolpaths"`
	Fits       bool                  `json:"fits"`
	Violation  string                `json:"violation,omitempty"`
	PointCount int                   `json:"points"`
}

type checkToolpath struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	Clockwise bool   `json:"clockwise"`
}

func runCheck(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	input, err := geometry.LoadFile(path)
	if err != nil {
		var geomErr *model.GeometryError
		if errors.As(err, &geomErr) {
			return err
		}
		return model.WrapCLIError(model.ExitGeometryError,
			fmt.Sprintf("failed to load toolpaths from %s", path), err)
	}
	if err := geometry.CheckToolpaths(input.Toolpaths); err != nil {
		return err
	}

	report, violation := buildCheckReport(path, input.Toolpaths, boundary.NewValidator(cfg.Workspace.Bounds()))
	printCheckReport(report)
	if violation != nil {
		return violation
	}
	return nil
}

// buildCheckReport validates toolpaths and describes the result. The
// returned error is the boundary violation, if any.
func buildCheckReport(path string, toolpaths []model.Toolpath, v *boundary.Validator) (*checkReport, error) {
	report := &checkReport{
		File:      path,
		Workspace: v.Bounds(),
		Toolpaths: make([]checkToolpath, 0, len(toolpaths)),
	}
	if box, ok := geometry.BoundingBox(toolpaths); ok {
		report.Box = &box
	}
	for i, tp := range toolpaths {
		report.Toolpaths = append(report.Toolpaths, checkToolpath{
			Name:      tp.Label(i),
			Points:    tp.Len(),
			Clockwise: geometry.IsClockwise(tp),
		})
		report.PointCount += tp.Len()
	}

	err := v.Validate(toolpaths)
	report.Fits = err == nil
	if err != nil {
		report.Violation = err.Error()
	}
	return report, err
}

func printCheckReport(r *checkReport) {
	if IsJSONOutput() {
		printJSON(r)
		return
	}

	fmt.Printf("File:       %s\n", r.File)
	fmt.Printf("Workspace:  %s\n", r.Workspace)
	if r.Box != nil {
		fmt.Printf("Job bounds: %s (%g x %g mm)\n", r.Box, r.Box.Width(), r.Box.Height())
	} else {
		fmt.Println("Job bounds: - (no points)")
	}
	fmt.Printf("Toolpaths:  %d (%d points)\n", len(r.Toolpaths), r.PointCount)
	for _, tp := range r.Toolpaths {
		dir := "clockwise"
		if !tp.Clockwise {
			dir = "counter-clockwise"
		}
		fmt.Printf("  %-20s %6d  %s\n", tp.Name, tp.Points, dir)
	}
	if r.Fits {
		fmt.Println("Result:     inside workspace")
	} else {
		fmt.Printf("Result:     %s\n", r.Violation)
	}
}
