// Package model defines the domain types for the foamcut CLI.
//
// All entities in this package are transient: they are built from the
// toolpath input file and the configuration at the start of a run and
// discarded once the instruction stream has been emitted.
package model

import (
	"fmt"
	"strings"
)

// Point is a coordinate in millimeters. Z is optional; HasZ reports
// whether the geometry provider supplied a third axis.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z,omitempty"`
	HasZ bool    `json:"-"`
}

// Pt returns a 2D point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Pt3 returns a 3D point.
func Pt3(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z, HasZ: true}
}

// Toolpath is an ordered sequence of points describing one continuous cut.
// The order is the cut direction.
type Toolpath struct {
	// Name is an optional label used in diagnostics.
	Name string `json:"name,omitempty"`

	// Points holds the polyline vertices in cut order. Must not be empty
	// for the toolpath to be encodable.
	Points []Point `json:"points"`
}

// Len returns the number of points in the toolpath.
func (t Toolpath) Len() int {
	return len(t.Points)
}

// Reversed returns a copy of the toolpath with the point order inverted.
// The receiver is left untouched.
func (t Toolpath) Reversed() Toolpath {
	pts := make([]Point, len(t.Points))
	for i, p := range t.Points {
		pts[len(t.Points)-1-i] = p
	}
	return Toolpath{Name: t.Name, Points: pts}
}

// Label returns the toolpath name, or "#<index>" when it has none.
func (t Toolpath) Label(index int) string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("#%d", index)
}

// WorkspaceBounds is the rectangle the cutting machine can reach,
// in millimeters.
type WorkspaceBounds struct {
	MinX float64 `json:"minX" yaml:"min_x"`
	MinY float64 `json:"minY" yaml:"min_y"`
	MaxX float64 `json:"maxX" yaml:"max_x"`
	MaxY float64 `json:"maxY" yaml:"max_y"`
}

// String returns "(minX,minY)-(maxX,maxY)".
func (b WorkspaceBounds) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Tool selects the cutting head. The zero value is Tool1.
type Tool int

const (
	// Tool1 is the first cutting tool.
	Tool1 Tool = iota

	// Tool2 is the second cutting tool.
	Tool2

	// Pen is the drawing pen used for dry runs.
	Pen
)

var toolNames = [...]string{"tool1", "tool2", "pen"}

// String returns the lowercase tool name.
func (t Tool) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// MarshalText renders the tool by name in JSON output.
func (t Tool) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IsValid reports whether t is one of the defined tools.
func (t Tool) IsValid() bool {
	return t >= Tool1 && t <= Pen
}

// Code returns the machine tool-select code for t.
//
// The raw selector index is incremented by one, and code 3 is skipped
// because the machine reserves it:
//
//	Tool1 → 1, Tool2 → 2, Pen → 4
func (t Tool) Code() int {
	code := int(t) + 1
	if code == 3 {
		code++
	}
	return code
}

// ParseTool converts a tool name to a Tool. Matching is case insensitive.
func ParseTool(s string) (Tool, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return Tool1, fmt.Errorf("invalid tool: %q (valid: tool1, tool2, pen)", s)
}

// CuttingParameters are the per-job options shared by every toolpath of
// the job. Values are range-checked by the option-input boundary before
// they reach the core.
type CuttingParameters struct {
	Tool              Tool    `json:"tool"`
	Speed             int     `json:"speed"`
	Depth             float64 `json:"depth"`
	AngleTolerance    float64 `json:"angleTolerance"`
	DistanceTolerance float64 `json:"distanceTolerance"`
}

// Dialect identifies an instruction-stream format.
type Dialect string

const (
	// DialectPlotter is the HPGL-style plotter-control dialect.
	DialectPlotter Dialect = "plotter"

	// DialectMotion is the G-code motion dialect.
	DialectMotion Dialect = "motion"
)

// String returns the string representation of Dialect.
func (d Dialect) String() string {
	return string(d)
}

// IsValid checks whether d is one of the defined dialects.
func (d Dialect) IsValid() bool {
	return d == DialectPlotter || d == DialectMotion
}

// ParseDialect converts a string to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	d := Dialect(strings.ToLower(s))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid dialect: %q (valid: plotter, motion)", s)
	}
	return d, nil
}

// SinkKind identifies where an instruction stream is delivered.
type SinkKind string

const (
	// SinkDevice streams to a live machine connection.
	SinkDevice SinkKind = "device"

	// SinkFile writes a timestamped job file.
	SinkFile SinkKind = "file"
)

// String returns the string representation of SinkKind.
func (s SinkKind) String() string {
	return string(s)
}

// IsValid checks whether s is one of the defined sinks.
func (s SinkKind) IsValid() bool {
	return s == SinkDevice || s == SinkFile
}

// ParseSinkKind converts a string to a SinkKind.
func ParseSinkKind(s string) (SinkKind, error) {
	k := SinkKind(strings.ToLower(s))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid sink: %q (valid: device, file)", s)
	}
	return k, nil
}

// DefaultDialect returns the dialect a sink expects: the machine speaks the
// plotter dialect, job files carry motion G-code.
func (s SinkKind) DefaultDialect() Dialect {
	if s == SinkDevice {
		return DialectPlotter
	}
	return DialectMotion
}

// InstructionStream is an encoded job: an optional header, the ordered
// point commands and an optional footer.
type InstructionStream struct {
	Dialect  Dialect
	Header   string
	Commands []string
	Footer   string
}

// Empty reports whether the stream carries no point commands.
func (s InstructionStream) Empty() bool {
	return len(s.Commands) == 0
}

// Body returns the point commands joined by newlines.
func (s InstructionStream) Body() string {
	return strings.Join(s.Commands, "\n")
}

// String returns the header followed by the body, newline separated.
// The footer is not included.
func (s InstructionStream) String() string {
	if s.Header == "" {
		return s.Body()
	}
	if s.Empty() {
		return s.Header
	}
	return s.Header + "\n" + s.Body()
}

// Bytes returns the full payload as delivered to a sink:
// header, body, a newline, then the footer.
func (s InstructionStream) Bytes() []byte {
	var b strings.Builder
	b.WriteString(s.String())
	b.WriteString("\n")
	b.WriteString(s.Footer)
	return []byte(b.String())
}

// Job aggregates everything needed for one conversion and emission.
type Job struct {
	ID         string            `json:"id"`
	Toolpaths  []Toolpath        `json:"toolpaths"`
	Parameters CuttingParameters `json:"parameters"`
	Sink       SinkKind          `json:"sink"`
	Dialect    Dialect           `json:"dialect"`
}

// PointCount returns the total number of points across all toolpaths.
func (j *Job) PointCount() int {
	n := 0
	for _, tp := range j.Toolpaths {
		n += tp.Len()
	}
	return n
}

// ExitCode defines standard CLI exit codes. These codes allow scripts to
// programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the configuration file or a flag value
	// was rejected.
	ExitConfigError ExitCode = 2

	// ExitGeometryError indicates the toolpath input could not be read
	// or contains an empty toolpath.
	ExitGeometryError ExitCode = 3

	// ExitBoundaryViolation indicates a toolpath leaves the workspace.
	ExitBoundaryViolation ExitCode = 4

	// ExitSinkUnavailable indicates the device or output file could not
	// be opened or written.
	ExitSinkUnavailable ExitCode = 5

	// ExitEmptyJob indicates there was nothing to emit.
	ExitEmptyJob ExitCode = 6

	// ExitUserCancelled indicates the user declined the confirmation prompt.
	ExitUserCancelled ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the human-readable error message, optionally including
// the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
