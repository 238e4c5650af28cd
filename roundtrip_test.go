package brotli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// End-to-end scenarios from spec.md §8. Most exercise self-consistency
// (decompress(compress(x)) == x against this implementation's own
// encoder); TestFallbackParity... below instead hand-compute the exact
// wire bytes from spec.md §4.7/§4.8's literal bit layout, independent of
// this package's own writer functions, and assert Compress produces them
// verbatim — the Parity property from spec.md §8.

func assertRoundTrip(t *testing.T, x []byte) {
	t.Helper()
	compressed, err := Compress(x)
	assert.NoError(t, err)
	got, err := Decompress(compressed)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(got, x), "round trip mismatch for %d bytes", len(x))
}

func TestRoundTripEmptyString(t *testing.T) {
	assertRoundTrip(t, []byte(""))
}

func TestRoundTripSingleByte(t *testing.T) {
	assertRoundTrip(t, []byte("a"))
}

func TestRoundTripHelloWorld(t *testing.T) {
	assertRoundTrip(t, []byte("Hello, World!"))
}

func TestRoundTripRepeatedRun(t *testing.T) {
	assertRoundTrip(t, []byte(strings.Repeat("A", 100)))
}

func TestRoundTripRepeatedPhrase(t *testing.T) {
	assertRoundTrip(t, []byte(strings.Repeat("Hello, World! ", 1000)))
}

func TestRoundTripFullByteRange(t *testing.T) {
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i)
	}
	assertRoundTrip(t, buf)
}

func TestRoundTripAcrossMultipleEncodeChunks(t *testing.T) {
	buf := make([]byte, encodeChunkSize*3+12345)
	for i := range buf {
		buf[i] = byte(i * 7 % 251)
	}
	assertRoundTrip(t, buf)
}

func TestRoundTripWithCustomWindow(t *testing.T) {
	x := []byte(strings.Repeat("the quick brown fox ", 500))
	compressed, err := CompressOptions{LGWin: 18}.Compress(x)
	assert.NoError(t, err)
	got, err := Decompress(compressed)
	assert.NoError(t, err)
	assert.Equal(t, x, got)
}

func TestDecompressRejectsTruncatedStream(t *testing.T) {
	x := []byte(strings.Repeat("pattern", 50))
	compressed, err := Compress(x)
	assert.NoError(t, err)
	_, err = Decompress(compressed[:len(compressed)-2])
	assert.Error(t, err)
}

func TestDecompressHandlesHandBuiltUncompressedStream(t *testing.T) {
	bw := newBitWriter()
	writeWindowHeader(bw, 16)
	writeMetaBlockHeader(bw, false, true, 1)
	bw.WriteBytes([]byte{'x'})
	writeFinalEmptyBlock(bw)
	bw.Align()

	got, err := Decompress(bw.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}

// TestFallbackParityEmptyString hand-derives, bit by bit from spec.md
// §4.7/§4.8's literal layout, the wire bytes for the empty-string case:
// a default-window (WBITS=22) header immediately followed by the
// ISLAST&&ISEMPTY terminator, byte-aligned.
//
//	bit 0:        1            (WBITS present flag, wbits != 16)
//	bits 1-3:     101 (5)      (w = wbits-17 = 5 -> WBITS = 22)
//	bit 4:        1            (ISLAST)
//	bit 5:        1            (ISEMPTY)
//	bits 6-7:     00           (alignment pad)
//
// packed LSB-first: 1 + 2*1 + 4*0 + 8*1 + 16*1 + 32*1 = 0x3b.
func TestFallbackParityEmptyString(t *testing.T) {
	want := []byte{0x3b}
	got, err := Compress([]byte(""))
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	decoded, err := Decompress(got)
	assert.NoError(t, err)
	assert.Equal(t, []byte(""), decoded)
}

// TestFallbackParitySingleByte hand-derives the fallback-path wire bytes
// for a 1-byte input (spec.md §8 scenario 2): WBITS=22, one non-last
// uncompressed meta-block with MLEN=1 carrying 0x61 ('a'), then the
// empty-last terminator. Computed independently of writeWindowHeader/
// writeMetaBlockHeader by hand-packing spec.md §4.7's bit layout, so this
// is a genuine Parity assertion rather than a self-consistency check.
func TestFallbackParitySingleByte(t *testing.T) {
	want := []byte{0x0b, 0x00, 0x80, 0x61, 0x03}
	got, err := CompressOptions{Fallback: true}.Compress([]byte("a"))
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	decoded, err := Decompress(got)
	assert.NoError(t, err)
	assert.Equal(t, []byte("a"), decoded)
}

// TestFallbackParityHelloWorld is spec.md §8 scenario 3: 13 bytes through
// the fallback encoder, checked against bytes hand-packed from spec.md
// §4.7/§4.8's literal formulas (WBITS=22 header, one uncompressed
// meta-block with MLEN=13, the 13 raw bytes, the empty-last terminator).
func TestFallbackParityHelloWorld(t *testing.T) {
	want := []byte{
		0x0b, 0x06, 0x80,
		'H', 'e', 'l', 'l', 'o', ',', ' ', 'W', 'o', 'r', 'l', 'd', '!',
		0x03,
	}
	got, err := CompressOptions{Fallback: true}.Compress([]byte("Hello, World!"))
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	decoded, err := Decompress(got)
	assert.NoError(t, err)
	assert.Equal(t, []byte("Hello, World!"), decoded)
}

// TestInteropUpHandBuiltStreamWithoutWriterHelpers is an Interop-up-style
// check (spec.md §8): it builds a wire stream using only raw bit
// literals standing in for a third-party encoder's output — never
// calling writeWindowHeader/writeMetaBlockHeader/writeFinalEmptyBlock —
// and confirms Decompress accepts it. The bytes are the same ones
// TestFallbackParitySingleByte derives for "a", reused here to phrase the
// assertion as "an arbitrary conformant encoder's bytes decode
// correctly" rather than "this package's own encoder's bytes do."
func TestInteropUpHandBuiltStreamWithoutWriterHelpers(t *testing.T) {
	stream := []byte{0x0b, 0x00, 0x80, 0x61, 0x03}
	got, err := Decompress(stream)
	assert.NoError(t, err)
	assert.Equal(t, []byte("a"), got)
}

// TestInteropDownHeaderFieldsAreSpecLiteral decodes the default Compress("")
// output's raw bits directly against spec.md §4.7's WBITS/ISLAST/ISEMPTY
// field layout (not via readWindowHeader/readMetaBlockHeader), confirming
// any RFC-7932-conformant reader parsing those fields by the spec's literal
// bit order would agree with this encoder, independent of this package's
// own decoder.
func TestInteropDownHeaderFieldsAreSpecLiteral(t *testing.T) {
	got, err := Compress([]byte(""))
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	b := got[0]
	wbitsPresent := b & 1
	w := (b >> 1) & 7
	isLast := (b >> 4) & 1
	isEmpty := (b >> 5) & 1

	assert.EqualValues(t, 1, wbitsPresent)
	assert.EqualValues(t, 5, w) // wbits = 17+5 = 22 = defaultLGWin
	assert.EqualValues(t, 1, isLast)
	assert.EqualValues(t, 1, isEmpty)
}
