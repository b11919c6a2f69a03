package job

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shinji-kodama/foamcut/internal/boundary"
	"github.com/shinji-kodama/foamcut/internal/emitter"
	"github.com/shinji-kodama/foamcut/internal/encoder"
	"github.com/shinji-kodama/foamcut/internal/geometry"
	"github.com/shinji-kodama/foamcut/internal/model"
)

// ErrAlreadyRun is returned when Run is called a second time on the same
// Orchestrator.
var ErrAlreadyRun = errors.New("job: orchestrator already ran")

// Options configures an Orchestrator.
type Options struct {
	// Bounds is the reachable workspace.
	Bounds model.WorkspaceBounds

	// Dialect selects the encoder. Empty means the sink's default.
	Dialect model.Dialect

	// Plotter configures plotter-dialect framing.
	Plotter encoder.PlotterOptions

	// EnforceClockwise reverses counter-clockwise toolpaths before
	// encoding.
	EnforceClockwise bool

	// Confirmer gates encoding. Nil approves every job.
	Confirmer Confirmer

	// Logf receives progress messages. Nil discards them.
	Logf func(format string, args ...interface{})

	// NewID generates job IDs. Nil uses random UUIDs.
	NewID func() string
}

// Result summarizes a completed job.
type Result struct {
	JobID      string                  `json:"jobId"`
	Dialect    model.Dialect           `json:"dialect"`
	Sink       model.SinkKind          `json:"sink"`
	Commands   int                     `json:"commands"`
	Location   string                  `json:"location"`
	Bytes      int                     `json:"bytes"`
	Reversed   []string                `json:"reversed,omitempty"`
	Box        geometry.Box            `json:"boundingBox"`
	Parameters model.CuttingParameters `json:"parameters"`
}

// Orchestrator runs a single job through validation, encoding and
// emission. It is not safe for concurrent use.
type Orchestrator struct {
	opts      Options
	validator *boundary.Validator
	sink      emitter.Sink
	state     State
	history   []Transition
}

// New returns an Orchestrator that emits to sink.
func New(sink emitter.Sink, opts Options) *Orchestrator {
	if opts.Confirmer == nil {
		opts.Confirmer = AutoConfirm
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...interface{}) {}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Dialect == "" {
		opts.Dialect = sink.Kind().DefaultDialect()
	}
	return &Orchestrator{
		opts:      opts,
		validator: boundary.NewValidator(opts.Bounds),
		sink:      sink,
		state:     StateIdle,
	}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	return o.state
}

// History returns the transitions taken so far.
func (o *Orchestrator) History() []Transition {
	out := make([]Transition, len(o.history))
	copy(out, o.history)
	return out
}

// Run validates, encodes and emits toolpaths with params. On failure the
// orchestrator ends in StateRejected and the returned error is one of
// *model.GeometryError, *model.BoundaryViolation, model.ErrDeclined or
// *model.EmitError, or the context error.
func (o *Orchestrator) Run(ctx context.Context, toolpaths []model.Toolpath, params model.CuttingParameters) (*Result, error) {
	if o.state != StateIdle {
		return nil, ErrAlreadyRun
	}

	job := &model.Job{
		ID:         o.opts.NewID(),
		Toolpaths:  toolpaths,
		Parameters: params,
		Sink:       o.sink.Kind(),
		Dialect:    o.opts.Dialect,
	}
	o.opts.Logf("Job %s: %d toolpath(s), %d point(s)", job.ID, len(job.Toolpaths), job.PointCount())

	// Idle → Validated
	if err := ctx.Err(); err != nil {
		return nil, o.reject(err)
	}
	if err := geometry.CheckToolpaths(job.Toolpaths); err != nil {
		return nil, o.reject(err)
	}
	if err := o.validator.Validate(job.Toolpaths); err != nil {
		return nil, o.reject(err)
	}
	o.transition(StateValidated)
	box, _ := geometry.BoundingBox(job.Toolpaths)
	o.opts.Logf("Bounding box %s fits workspace %s", box, o.validator.Bounds())

	var reversed []string
	if o.opts.EnforceClockwise {
		var idx []int
		job.Toolpaths, idx = geometry.Clockwise(job.Toolpaths)
		for _, i := range idx {
			reversed = append(reversed, job.Toolpaths[i].Label(i))
		}
		if len(reversed) > 0 {
			o.opts.Logf("Reversed %d counter-clockwise toolpath(s): %v", len(reversed), reversed)
		}
	}

	// Validated → Encoded
	if err := ctx.Err(); err != nil {
		return nil, o.reject(err)
	}
	// A job without points never reaches the operator; the emitter
	// rejects it as empty below.
	if job.PointCount() > 0 {
		ok, err := o.opts.Confirmer.Confirm(job)
		if err != nil {
			return nil, o.reject(err)
		}
		if !ok {
			return nil, o.reject(model.ErrDeclined)
		}
	}
	// Last point a job can be cancelled. Once encoding starts the stream
	// is built in full and handed to the sink.
	if err := ctx.Err(); err != nil {
		return nil, o.reject(err)
	}

	enc, err := encoder.ForDialect(job.Dialect, o.opts.Plotter)
	if err != nil {
		return nil, o.reject(err)
	}
	stream, err := enc.Encode(job.Toolpaths, job.Parameters)
	if err != nil {
		return nil, o.reject(err)
	}
	o.transition(StateEncoded)
	o.opts.Logf("Encoded %d %s command(s)", len(stream.Commands), stream.Dialect)

	// Encoded → Emitted → Done
	o.transition(StateEmitted)
	receipt, err := emitter.Emit(stream, o.sink)
	if err != nil {
		return nil, o.reject(err)
	}
	o.opts.Logf("Delivered %d byte(s) to %s", receipt.Bytes, receipt.Location)
	o.transition(StateDone)

	return &Result{
		JobID:      job.ID,
		Dialect:    job.Dialect,
		Sink:       receipt.Sink,
		Commands:   len(stream.Commands),
		Location:   receipt.Location,
		Bytes:      receipt.Bytes,
		Reversed:   reversed,
		Box:        box,
		Parameters: job.Parameters,
	}, nil
}

func (o *Orchestrator) transition(to State) {
	o.history = append(o.history, Transition{From: o.state, To: to})
	o.state = to
}

func (o *Orchestrator) reject(err error) error {
	o.history = append(o.history, Transition{From: o.state, To: StateRejected, Reason: err.Error()})
	o.state = StateRejected
	o.opts.Logf("Job rejected: %v", err)
	return err
}
