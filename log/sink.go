package log

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/ardnew/debuglog/pkg"
)

// Sink is a destination for log output.
//
// Writes are synchronous; a sink that blocks blocks the logging call.
// Flush pushes any buffered bytes to the underlying device.
type Sink interface {
	io.Writer
	Flush() error
}

// FileMode is the permission mode used for files created by [OpenFile].
const FileMode os.FileMode = 0o644

type writerSink struct {
	io.Writer
}

// Flush forwards to the writer's own flush or sync method, if any.
func (s writerSink) Flush() error {
	switch w := s.Writer.(type) {
	case interface{ Flush() error }:
		return w.Flush()

	case interface{ Flush() }:
		w.Flush()

		return nil

	case interface{ Sync() error }:
		return w.Sync()

	default:
		return nil
	}
}

// WriterSink adapts w into a [Sink]. If w is already a Sink it is returned
// as is, and a nil writer discards output.
func WriterSink(w io.Writer) Sink {
	switch w := w.(type) {
	case nil:
		return Discard()
	case Sink:
		return w
	default:
		return writerSink{w}
	}
}

// Console returns a sink writing to standard output.
func Console() Sink {
	return writerSink{os.Stdout}
}

// Discard returns a sink that drops everything written to it.
func Discard() Sink {
	return writerSink{io.Discard}
}

// FileSink is a buffered, append-only file sink.
type FileSink struct {
	file *os.File
	buf  *bufio.Writer
}

// OpenFile opens or creates the file at path for appending.
func OpenFile(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, FileMode)
	if err != nil {
		return nil, pkg.ErrOpenSink.Wrap(err)
	}

	return &FileSink{file: f, buf: bufio.NewWriter(f)}, nil
}

// Name returns the path of the underlying file.
func (s *FileSink) Name() string {
	return s.file.Name()
}

func (s *FileSink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// Flush writes buffered data to the file and commits it to stable storage.
func (s *FileSink) Flush() error {
	if err := s.buf.Flush(); err != nil {
		return err
	}

	return s.file.Sync()
}

// Close flushes and closes the file.
func (s *FileSink) Close() error {
	return errors.Join(s.Flush(), s.file.Close())
}
