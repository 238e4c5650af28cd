package brotli

import (
	"bytes"
	"errors"
	"io"
)

var errReaderClosed = errors.New("brotli: Reader is closed")

// Reader decodes a Brotli stream read from an underlying io.Reader. Unlike
// the teacher's streaming decoder state machine, this Reader is a thin
// io.Reader façade over the buffer-in/buffer-out Decompress: on first use
// it reads src to completion, decodes the whole stream once, and serves
// Read calls from the decoded buffer. That trade-off follows directly from
// this module's explicit non-goal of incremental/checkpointed decode.
type Reader struct {
	src     io.Reader
	out     *bytes.Reader
	decoded bool
}

// NewReader initializes a new Reader instance.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.src == nil && r.out == nil {
		return 0, errReaderClosed
	}
	if !r.decoded {
		raw, err := io.ReadAll(r.src)
		if err != nil {
			return 0, err
		}
		decoded, err := Decompress(raw)
		if err != nil {
			return 0, err
		}
		r.out = bytes.NewReader(decoded)
		r.decoded = true
	}
	return r.out.Read(p)
}
