package brotli

import (
	"errors"
	"io"
)

// WriterOptions configures Writer, following the teacher's typed-option
// shape (WriterOptions{Quality, LGWin} in the original writer.go). Quality
// is accepted but ignored: this module implements a single compressor
// tier, not the reference library's 0-11 quality ladder.
type WriterOptions struct {
	Quality int
	LGWin   int
}

var errWriterClosed = errors.New("brotli: Writer is closed")

// Writer buffers everything written to it and emits one Brotli stream on
// Close, mirroring this module's buffer-in/buffer-out Compress rather than
// the teacher's incremental BrotliEncoderCompressStream state machine.
type Writer struct {
	dst     io.Writer
	opts    WriterOptions
	pending []byte
	closed  bool
}

// NewWriter initializes a new Writer instance.
func NewWriter(dst io.Writer, options WriterOptions) *Writer {
	return &Writer{dst: dst, opts: options}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errWriterClosed
	}
	w.pending = append(w.pending, p...)
	return len(p), nil
}

// Close compresses everything written so far and flushes it to the
// underlying writer. Close must be called exactly once.
func (w *Writer) Close() error {
	if w.closed {
		return errWriterClosed
	}
	w.closed = true
	compressed, err := (CompressOptions{LGWin: w.opts.LGWin}).Compress(w.pending)
	if err != nil {
		return err
	}
	_, err = w.dst.Write(compressed)
	return err
}
