// Package emitter delivers encoded instruction streams to a live device
// connection or to a timestamped job file.
//
// Each emission is a single scoped operation: the payload is written in
// full or the job fails. Nothing is retried, and a failed file write never
// leaves a truncated job file behind; file output goes through
// github.com/moby/sys/atomicwriter, which writes to a temporary file and
// renames it into place only after a successful write.
package emitter

import (
	"github.com/shinji-kodama/foamcut/internal/model"
)

// Receipt describes a successful emission.
type Receipt struct {
	// Sink is the kind of sink that received the stream.
	Sink model.SinkKind `json:"sink"`

	// Location is the device path or the file path written.
	Location string `json:"location"`

	// Bytes is the payload size.
	Bytes int `json:"bytes"`
}

// Sink is a destination for an instruction stream.
type Sink interface {
	// Kind returns the sink kind.
	Kind() model.SinkKind

	// Deliver writes the full stream. Implementations return a
	// *model.EmitError with kind EmitSinkUnavailable on failure.
	Deliver(stream model.InstructionStream) (Receipt, error)
}

// Emit validates that stream carries at least one point command and
// hands it to sink. An empty stream is reported as an EmitEmptyJob error
// and nothing is written.
func Emit(stream model.InstructionStream, sink Sink) (Receipt, error) {
	if stream.Empty() {
		return Receipt{}, &model.EmitError{Kind: model.EmitEmptyJob, Err: model.ErrEmptyJob}
	}
	return sink.Deliver(stream)
}

func unavailable(location string, err error) error {
	return &model.EmitError{Kind: model.EmitSinkUnavailable, Sink: location, Err: err}
}
