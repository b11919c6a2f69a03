package emitter

import (
	"io"

	"github.com/shinji-kodama/foamcut/internal/model"
)

// DeviceSink streams jobs over an already-open machine connection. Opening
// and configuring the channel (port, baud rate) is the caller's job; the
// sink only supplies the payload bytes.
type DeviceSink struct {
	// Name identifies the channel in receipts and errors, typically the
	// device path.
	Name string

	// W is the open channel.
	W io.Writer
}

// NewDeviceSink creates a DeviceSink writing to w.
func NewDeviceSink(name string, w io.Writer) *DeviceSink {
	return &DeviceSink{Name: name, W: w}
}

// Kind returns model.SinkDevice.
func (s *DeviceSink) Kind() model.SinkKind {
	return model.SinkDevice
}

// Deliver sends the full concatenated stream as one transmission.
// A short write is a failure; there is no partial-write recovery.
func (s *DeviceSink) Deliver(stream model.InstructionStream) (Receipt, error) {
	if s.W == nil {
		return Receipt{}, unavailable(s.Name, io.ErrClosedPipe)
	}

	payload := stream.Bytes()
	n, err := s.W.Write(payload)
	if err != nil {
		return Receipt{}, unavailable(s.Name, err)
	}
	if n != len(payload) {
		return Receipt{}, unavailable(s.Name, io.ErrShortWrite)
	}

	return Receipt{Sink: model.SinkDevice, Location: s.Name, Bytes: n}, nil
}

// Opener opens a machine connection.
type Opener func() (io.WriteCloser, error)

// PortSink opens the machine connection for each delivery and closes it
// when the transmission is over, so a rejected job never touches the
// device.
type PortSink struct {
	// Name identifies the device in receipts and errors.
	Name string

	// Open opens the connection.
	Open Opener
}

// NewPortSink creates a PortSink for the device called name.
func NewPortSink(name string, open Opener) *PortSink {
	return &PortSink{Name: name, Open: open}
}

// Kind returns model.SinkDevice.
func (s *PortSink) Kind() model.SinkKind {
	return model.SinkDevice
}

// Deliver opens the device, sends the stream in one write and closes the
// device. A failure to close, which includes failing to drain queued
// output, fails the delivery.
func (s *PortSink) Deliver(stream model.InstructionStream) (receipt Receipt, err error) {
	conn, err := s.Open()
	if err != nil {
		return Receipt{}, unavailable(s.Name, err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			receipt, err = Receipt{}, unavailable(s.Name, closeErr)
		}
	}()

	return NewDeviceSink(s.Name, conn).Deliver(stream)
}
