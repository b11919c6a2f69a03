package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTool_Code verifies the tool-select mapping, including the skipped
// reserved code 3.
func TestTool_Code(t *testing.T) {
	tests := []struct {
		tool Tool
		want int
	}{
		{Tool1, 1},
		{Tool2, 2},
		{Pen, 4},
	}

	for _, tt := range tests {
		t.Run(tt.tool.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tool.Code())
		})
	}
}

func TestTool_IsValid(t *testing.T) {
	assert.True(t, Tool1.IsValid())
	assert.True(t, Tool2.IsValid())
	assert.True(t, Pen.IsValid())
	assert.False(t, Tool(3).IsValid())
	assert.False(t, Tool(-1).IsValid())
	assert.Equal(t, "tool(7)", Tool(7).String())
}

// TestParseTool verifies string-to-tool conversion, including case
// normalization and error cases.
func TestParseTool(t *testing.T) {
	tests := []struct {
		input    string
		expected Tool
		hasError bool
	}{
		{"tool1", Tool1, false},
		{"tool2", Tool2, false},
		{"pen", Pen, false},
		{"PEN", Pen, false},
		{" Tool2 ", Tool2, false},
		{"tool3", Tool1, true},
		{"", Tool1, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseTool(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("Plotter")
	require.NoError(t, err)
	assert.Equal(t, DialectPlotter, d)

	d, err = ParseDialect("motion")
	require.NoError(t, err)
	assert.Equal(t, DialectMotion, d)

	_, err = ParseDialect("hpgl")
	assert.Error(t, err)
}

func TestParseSinkKind(t *testing.T) {
	k, err := ParseSinkKind("DEVICE")
	require.NoError(t, err)
	assert.Equal(t, SinkDevice, k)

	_, err = ParseSinkKind("printer")
	assert.Error(t, err)
}

// TestSinkKind_DefaultDialect checks that each sink selects the dialect
// its consumer understands.
func TestSinkKind_DefaultDialect(t *testing.T) {
	assert.Equal(t, DialectPlotter, SinkDevice.DefaultDialect())
	assert.Equal(t, DialectMotion, SinkFile.DefaultDialect())
}

func TestToolpath_Reversed(t *testing.T) {
	tp := Toolpath{Name: "a", Points: []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)}}

	rev := tp.Reversed()

	assert.Equal(t, []Point{Pt(1, 1), Pt(1, 0), Pt(0, 0)}, rev.Points)
	assert.Equal(t, "a", rev.Name)
	// The original must not be modified.
	assert.Equal(t, Pt(0, 0), tp.Points[0])
}

func TestToolpath_Label(t *testing.T) {
	assert.Equal(t, "outline", Toolpath{Name: "outline"}.Label(3))
	assert.Equal(t, "#3", Toolpath{}.Label(3))
}

// TestInstructionStream_Framing verifies how header, body and footer are
// joined for display and for delivery.
func TestInstructionStream_Framing(t *testing.T) {
	s := InstructionStream{
		Header:   "H;",
		Commands: []string{"A;", "B;"},
		Footer:   "F;",
	}

	assert.Equal(t, "A;\nB;", s.Body())
	assert.Equal(t, "H;\nA;\nB;", s.String())
	assert.Equal(t, "H;\nA;\nB;\nF;", string(s.Bytes()))
	assert.False(t, s.Empty())

	noHeader := InstructionStream{Commands: []string{"A"}}
	assert.Equal(t, "A", noHeader.String())
	assert.Equal(t, "A\n", string(noHeader.Bytes()))

	empty := InstructionStream{Header: "H"}
	assert.True(t, empty.Empty())
	assert.Equal(t, "H", empty.String())
}

func TestJob_PointCount(t *testing.T) {
	job := &Job{Toolpaths: []Toolpath{
		{Points: []Point{Pt(0, 0), Pt(1, 1)}},
		{Points: []Point{Pt3(0, 0, 1)}},
	}}
	assert.Equal(t, 3, job.PointCount())
}

// TestEmitError_Is verifies that EmitError matches its sentinel via
// errors.Is, even when wrapped.
func TestEmitError_Is(t *testing.T) {
	empty := &EmitError{Kind: EmitEmptyJob}
	wrapped := fmt.Errorf("job failed: %w", empty)

	assert.True(t, errors.Is(wrapped, ErrEmptyJob))
	assert.False(t, errors.Is(wrapped, ErrSinkUnavailable))
	assert.True(t, IsEmitKind(wrapped, EmitEmptyJob))

	cause := errors.New("permission denied")
	unavailable := &EmitError{Kind: EmitSinkUnavailable, Sink: "/tmp/x", Err: cause}
	assert.True(t, errors.Is(unavailable, ErrSinkUnavailable))
	assert.True(t, errors.Is(unavailable, cause))
	assert.Contains(t, unavailable.Error(), "sink=/tmp/x")
	assert.Contains(t, unavailable.Error(), "permission denied")
}

func TestBoundaryViolation_Error(t *testing.T) {
	err := &BoundaryViolation{Axis: AxisX, Side: "max", Value: 1350, Limit: 1300}
	assert.Equal(t, "toolpaths are not inside the workspace: X-axis max 1350 is above the limit 1300", err.Error())

	err = &BoundaryViolation{Axis: AxisY, Side: "min", Value: -2, Limit: -1}
	assert.Contains(t, err.Error(), "Y-axis min -2 is below the limit -1")
}

// TestCLIError verifies the CLIError type's Error() and Unwrap() methods.
func TestCLIError(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := NewCLIError(ExitEmptyJob, "nothing to cut")
		assert.Equal(t, "nothing to cut", err.Error())
		assert.Equal(t, ExitEmptyJob, err.Code)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with underlying error", func(t *testing.T) {
		underlying := &GeometryError{Toolpath: "#0", Reason: "no points"}
		err := WrapCLIError(ExitGeometryError, "invalid toolpath", underlying)
		assert.Equal(t, "invalid toolpath: toolpath #0: no points", err.Error())

		var ge *GeometryError
		require.True(t, errors.As(err, &ge))
		assert.Equal(t, "no points", ge.Reason)
	})
}
