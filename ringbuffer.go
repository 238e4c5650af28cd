package brotli

// Sliding-window output (spec.md §3, §4.7): every copy command references
// bytes already written earlier in the stream, at most (1<<WBITS)-16 bytes
// back. The teacher's RingBuffer is a true circular buffer sized for
// streaming encode with bounded memory; this implementation is
// buffer-in/buffer-out (static dictionary support and incremental/
// checkpointed decode are both explicitly out of scope), so the decoded
// output is kept as one growing slice rather than wrapped storage, and the
// window size is enforced as a distance-validity bound instead of a
// storage limit.
type outputBuffer struct {
	buf         []byte
	maxDistance uint32
}

func newOutputBuffer(maxDistance uint32) *outputBuffer {
	return &outputBuffer{buf: []byte{}, maxDistance: maxDistance}
}

func (o *outputBuffer) Len() int { return len(o.buf) }

func (o *outputBuffer) AppendLiteral(b byte) {
	o.buf = append(o.buf, b)
}

func (o *outputBuffer) AppendLiterals(b []byte) {
	o.buf = append(o.buf, b...)
}

// Copy appends length bytes read from distance bytes before the current
// end of the buffer, one byte at a time so that overlapping copies (where
// distance < length) reproduce the repeating pattern LZ77 requires.
func (o *outputBuffer) Copy(distance, length uint32) error {
	if distance == 0 || uint64(distance) > uint64(len(o.buf)) {
		return decodeErrorf(InvalidDistance, "distance %d exceeds output length %d", distance, len(o.buf))
	}
	if o.maxDistance > 0 && distance > o.maxDistance {
		return decodeErrorf(InvalidDistance, "distance %d exceeds window size %d", distance, o.maxDistance)
	}
	start := len(o.buf) - int(distance)
	for i := uint32(0); i < length; i++ {
		o.buf = append(o.buf, o.buf[start+int(i)])
	}
	return nil
}

func (o *outputBuffer) Bytes() []byte { return o.buf }

// LastTwo returns the two most recently written bytes (0, 0 before enough
// output exists), used to seed the literal context id.
func (o *outputBuffer) LastTwo() (p1, p2 byte) {
	n := len(o.buf)
	if n >= 1 {
		p1 = o.buf[n-1]
	}
	if n >= 2 {
		p2 = o.buf[n-2]
	}
	return p1, p2
}
