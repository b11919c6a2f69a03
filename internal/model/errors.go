package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification with errors.Is.
var (
	ErrEmptyJob        = errors.New("empty job")
	ErrSinkUnavailable = errors.New("sink unavailable")
	ErrDeclined        = errors.New("job declined by user")
)

// GeometryError reports an empty or degenerate toolpath. It is detected
// before any encoding takes place.
type GeometryError struct {
	// Toolpath is the label of the offending toolpath.
	Toolpath string

	// Reason describes what is wrong with it.
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("toolpath %s: %s", e.Toolpath, e.Reason)
}

// Axis names a workspace axis.
type Axis string

const (
	AxisX Axis = "X"
	AxisY Axis = "Y"
)

// BoundaryViolation reports that the bounding box of a job leaves the
// configured workspace along one axis.
type BoundaryViolation struct {
	Axis Axis

	// Side is "min" when the box extends below the lower bound and
	// "max" when it extends past the upper bound.
	Side string

	// Value is the offending bounding-box coordinate.
	Value float64

	// Limit is the workspace bound that was crossed.
	Limit float64
}

func (e *BoundaryViolation) Error() string {
	rel := "below"
	if e.Side == "max" {
		rel = "above"
	}
	return fmt.Sprintf("toolpaths are not inside the workspace: %s-axis %s %g is %s the limit %g",
		e.Axis, e.Side, e.Value, rel, e.Limit)
}

// EmitErrorKind classifies emission failures.
type EmitErrorKind string

const (
	// EmitSinkUnavailable means the device or file could not be opened or
	// written.
	EmitSinkUnavailable EmitErrorKind = "sink_unavailable"

	// EmitEmptyJob means the stream had no point commands.
	EmitEmptyJob EmitErrorKind = "empty_job"
)

// EmitError wraps a failure to deliver an instruction stream.
type EmitError struct {
	Kind EmitErrorKind

	// Sink describes the destination (device path or file path).
	Sink string

	Err error
}

func (e *EmitError) Error() string {
	base := fmt.Sprintf("emit: %s", e.Kind)
	if e.Sink != "" {
		base += fmt.Sprintf(" (sink=%s)", e.Sink)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *EmitError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the ErrEmptyJob and ErrSinkUnavailable sentinels.
func (e *EmitError) Is(target error) bool {
	switch target {
	case ErrEmptyJob:
		return e.Kind == EmitEmptyJob
	case ErrSinkUnavailable:
		return e.Kind == EmitSinkUnavailable
	}
	return false
}

// IsEmitKind reports whether err is an EmitError of the given kind.
func IsEmitKind(err error, kind EmitErrorKind) bool {
	var ee *EmitError
	if errors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}
