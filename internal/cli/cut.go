// cut.go implements the "foamcut cut" command.
//
// The cut command loads a toolpath file, resolves the cutting options
// against the configured limits, and runs the job through the
// orchestrator: workspace check, operator confirmation, encoding and
// emission to the cutter or to a job file.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/foamcut/internal/config"
	"github.com/shinji-kodama/foamcut/internal/emitter"
	"github.com/shinji-kodama/foamcut/internal/geometry"
	"github.com/shinji-kodama/foamcut/internal/job"
	"github.com/shinji-kodama/foamcut/internal/model"
	"github.com/shinji-kodama/foamcut/internal/serial"
)

// cutFlags holds the flag values for the cut command.
type cutFlags struct {
	tool              string
	speed             int
	depth             float64
	angleTolerance    float64
	distanceTolerance float64

	// sink overrides the configured sink ("file" or "device").
	sink string

	// dialect overrides the configured dialect.
	dialect string

	device    string
	baudRate  int
	outputDir string

	// keepDirection disables clockwise enforcement for this job.
	keepDirection bool

	// yes skips the confirmation prompt.
	yes bool
}

// NewCutCommand creates the "cut" cobra command.
func NewCutCommand() *cobra.Command {
	flags := &cutFlags{}

	cmd := &cobra.Command{
		Use:   "cut <toolpaths.jsonc>",
		Short: "Convert toolpaths and send them to the cutter or a job file",
		Long: `Convert the toolpaths in a JSONC file into machine instructions.

Every point is checked against the configured workspace first; nothing is
written if any toolpath leaves it. Unless --yes is given, the job is
summarized and confirmed interactively before encoding.

With the device sink the job is streamed over the serial line as plotter
commands. With the file sink a cut_<timestamp>.plt G-code file is saved
in the output directory.

Examples:
  foamcut cut wing.jsonc
  foamcut cut wing.jsonc --speed 400 --tool pen
  foamcut cut wing.jsonc --sink device --device /dev/ttyUSB0 --yes`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCut(cmd.Context(), cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.tool, "tool", "t", "", "Cutting tool: tool1, tool2, pen (default: tool1)")
	cmd.Flags().IntVarP(&flags.speed, "speed", "s", 0, "Cutting speed (default from config)")
	cmd.Flags().Float64VarP(&flags.depth, "depth", "d", 0, "Cutting depth in mm (default from config)")
	cmd.Flags().Float64Var(&flags.angleTolerance, "angle-tolerance", 0, "Tessellation angle tolerance in degrees")
	cmd.Flags().Float64Var(&flags.distanceTolerance, "distance-tolerance", 0, "Tessellation distance tolerance in mm")
	cmd.Flags().StringVar(&flags.sink, "sink", "", "Output sink: file, device (default from config)")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "Output dialect: auto, plotter, motion (default from config)")
	cmd.Flags().StringVar(&flags.device, "device", "", "Serial device path (default from config)")
	cmd.Flags().IntVar(&flags.baudRate, "baud", 0, "Serial baud rate (default from config)")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory for job files (default from config)")
	cmd.Flags().BoolVar(&flags.keepDirection, "keep-direction", false, "Do not reverse counter-clockwise toolpaths")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Cut without confirmation")

	return cmd
}

// runCut is the main logic function for the cut command.
func runCut(ctx context.Context, cmd *cobra.Command, path string, flags *cutFlags) error {
	// Step 1: Load configuration and apply flag overrides.
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyCutOverrides(cfg, cmd, flags); err != nil {
		return err
	}

	// Step 2: Load the toolpaths.
	input, err := geometry.LoadFile(path)
	if err != nil {
		var geomErr *model.GeometryError
		if errors.As(err, &geomErr) {
			return err
		}
		return model.WrapCLIError(model.ExitGeometryError,
			fmt.Sprintf("failed to load toolpaths from %s", path), err)
	}
	VerboseLog("Loaded %d toolpath(s) from %s", len(input.Toolpaths), path)

	// Step 3: Resolve cutting options against the configured limits.
	params, err := cfg.Limits.Resolve(cutOptions(cmd, flags, input))
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "invalid cutting options", err)
	}

	// Step 4: Build the sink and run the job.
	sink, err := newSink(cfg)
	if err != nil {
		return err
	}

	var confirmer job.Confirmer = job.AutoConfirm
	if !flags.yes {
		confirmer = &promptConfirmer{in: os.Stdin, out: os.Stderr}
	}

	orch := job.New(sink, job.Options{
		Bounds:           cfg.Workspace.Bounds(),
		Dialect:          cfg.DialectFor(sink.Kind()),
		Plotter:          cfg.Plotter.Options(),
		EnforceClockwise: cfg.EnforceClockwise,
		Confirmer:        confirmer,
		Logf:             VerboseLog,
	})

	result, err := orch.Run(ctx, input.Toolpaths, params)
	for _, tr := range orch.History() {
		VerboseLog("State %s -> %s", tr.From, tr.To)
	}
	if err != nil {
		return err
	}

	// Step 5: Output the result.
	printCutResult(result)
	return nil
}

// applyCutOverrides copies explicitly set flags into cfg and validates the
// result.
func applyCutOverrides(cfg *config.Config, cmd *cobra.Command, flags *cutFlags) error {
	changed := cmd.Flags().Changed
	if changed("sink") {
		cfg.Sink = flags.sink
	}
	if changed("dialect") {
		cfg.Dialect = flags.dialect
	}
	if changed("device") {
		cfg.Device.Path = flags.device
	}
	if changed("baud") {
		cfg.Device.BaudRate = flags.baudRate
	}
	if changed("output-dir") {
		cfg.OutputDir = flags.outputDir
	}
	if flags.keepDirection {
		cfg.EnforceClockwise = false
	}

	if err := cfg.Validate(); err != nil {
		return model.WrapCLIError(model.ExitConfigError, "invalid option", err)
	}
	return nil
}

// cutOptions collects the cutting options. Flags take precedence over
// tolerances recorded in the toolpath file; anything left unset falls
// back to the configured default.
func cutOptions(cmd *cobra.Command, flags *cutFlags, input *geometry.Input) config.Options {
	changed := cmd.Flags().Changed
	opts := config.Options{Tool: flags.tool}

	if changed("speed") {
		opts.Speed = &flags.speed
	}
	if changed("depth") {
		opts.Depth = &flags.depth
	}

	switch {
	case changed("angle-tolerance"):
		opts.AngleTolerance = &flags.angleTolerance
	case input.AngleTolerance > 0:
		opts.AngleTolerance = &input.AngleTolerance
	}
	switch {
	case changed("distance-tolerance"):
		opts.DistanceTolerance = &flags.distanceTolerance
	case input.DistanceTolerance > 0:
		opts.DistanceTolerance = &input.DistanceTolerance
	}
	return opts
}

// newSink builds the configured sink. The serial port is only opened when
// the job is delivered.
func newSink(cfg *config.Config) (emitter.Sink, error) {
	switch cfg.SinkKind() {
	case model.SinkDevice:
		if cfg.Device.Path == "" {
			return nil, model.NewCLIError(model.ExitConfigError,
				"no serial device configured: set device.path or pass --device")
		}
		portCfg := serial.Config{Device: cfg.Device.Path, BaudRate: cfg.Device.BaudRate}
		VerboseLog("Using serial device %s at %d baud", portCfg.Device, portCfg.BaudRate)
		return emitter.NewPortSink(portCfg.Device, func() (io.WriteCloser, error) {
			port, err := serial.Open(portCfg)
			if err != nil {
				return nil, err
			}
			return port, nil
		}), nil
	default:
		dir, err := cfg.ResolvedOutputDir()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError, "invalid output directory", err)
		}
		VerboseLog("Writing job files to %s", dir)
		return emitter.NewFileSink(dir), nil
	}
}

// promptConfirmer asks the operator to approve each job.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

// Confirm prints a job summary and reads one answer line. An empty answer
// accepts the job.
func (p *promptConfirmer) Confirm(j *model.Job) (bool, error) {
	fmt.Fprintf(p.out, "Job %s: %d toolpath(s), %d point(s)\n", j.ID, len(j.Toolpaths), j.PointCount())
	fmt.Fprintf(p.out, "  tool %s, speed %d, depth %g\n", j.Parameters.Tool, j.Parameters.Speed, j.Parameters.Depth)
	fmt.Fprintf(p.out, "  %s output via %s\n", j.Dialect, j.Sink)
	fmt.Fprint(p.out, "\nDo you want to write code for this job? [Y/n] ")

	scanner := bufio.NewScanner(p.in)
	if scanner.Scan() {
		return parseAnswer(scanner.Text()), nil
	}
	if err := scanner.Err(); err != nil {
		return false, model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
	}

	// stdin closed without an answer
	return false, nil
}

// parseAnswer interprets a [Y/n] answer.
func parseAnswer(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

// printCutResult outputs the job result in text or JSON format.
func printCutResult(r *job.Result) {
	if IsJSONOutput() {
		printJSON(r)
		return
	}

	fmt.Printf("Job %s done.\n", r.JobID)
	fmt.Printf("  Dialect:   %s\n", r.Dialect)
	fmt.Printf("  Commands:  %d\n", r.Commands)
	fmt.Printf("  Bounds:    %s\n", r.Box)
	if len(r.Reversed) > 0 {
		fmt.Printf("  Reversed:  %s\n", strings.Join(r.Reversed, ", "))
	}
	switch r.Sink {
	case model.SinkFile:
		fmt.Printf("  Saved to:  %s (%d bytes)\n", r.Location, r.Bytes)
	default:
		fmt.Printf("  Sent to:   %s (%d bytes)\n", r.Location, r.Bytes)
	}
}
