package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/moby/sys/atomicwriter"

	"github.com/shinji-kodama/foamcut/internal/model"
)

// FileSink writes each job to a new file named after the capture time
// under Dir.
type FileSink struct {
	// Dir is the output directory. It is created if missing.
	Dir string

	// Now returns the capture time. Defaults to time.Now.
	Now func() time.Time
}

// NewFileSink creates a FileSink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir, Now: time.Now}
}

// Kind returns model.SinkFile.
func (s *FileSink) Kind() model.SinkKind {
	return model.SinkFile
}

// Timestamp formats t for job file names.
//
// The components are year, minute, day, underscore, hour, minute,
// second. Minute appears in the month position; existing job archives
// are named this way, so the layout must not change.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%04d%02d%02d_%02d%02d%02d",
		t.Year(), t.Minute(), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// FileName returns the job file name for capture time t.
func FileName(t time.Time) string {
	return "cut_" + Timestamp(t) + ".plt"
}

// Deliver writes header, body, a newline and the footer to a new file.
// The name is reserved with an empty file first; the content replaces it
// only once every byte was written, and the reservation is removed if the
// write fails.
func (s *FileSink) Deliver(stream model.InstructionStream) (Receipt, error) {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	path := filepath.Join(s.Dir, FileName(now()))

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Receipt{}, unavailable(path, fmt.Errorf("failed to create output directory: %w", err))
	}

	// Job files are never overwritten.
	if err := reserve(path); err != nil {
		return Receipt{}, unavailable(path, err)
	}

	payload := stream.Bytes()
	if err := writeAtomic(path, payload); err != nil {
		_ = os.Remove(path)
		return Receipt{}, unavailable(path, err)
	}

	return Receipt{Sink: model.SinkFile, Location: path, Bytes: len(payload)}, nil
}

// reserve creates an empty file at path. It fails with an error matching
// fs.ErrExist if the path is already taken.
func reserve(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// writeAtomic writes payload through an atomic writer. The writer is
// closed on every path; on a write error Close discards the temporary
// file instead of renaming it.
func writeAtomic(path string, payload []byte) (err error) {
	w, err := atomicwriter.New(path, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = w.Write(payload)
	return err
}
