package brotli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte(strings.Repeat("Hello, World! ", 1000)),
	}
	for _, x := range inputs {
		compressed, err := CompressOptions{Fallback: true}.Compress(x)
		assert.NoError(t, err)
		got, err := Decompress(compressed)
		assert.NoError(t, err)
		assert.Equal(t, x, got)
	}
}

func TestFallbackSplitsIntoBoundedChunks(t *testing.T) {
	x := make([]byte, fallbackChunkSize*2+10)
	for i := range x {
		x[i] = byte(i)
	}
	compressed, err := CompressOptions{Fallback: true}.Compress(x)
	assert.NoError(t, err)
	got, err := Decompress(compressed)
	assert.NoError(t, err)
	assert.Equal(t, x, got)
}

func TestFallbackAlwaysUsesDefaultWindow(t *testing.T) {
	compressed, err := CompressOptions{Fallback: true, LGWin: 10}.Compress([]byte("hi"))
	assert.NoError(t, err)

	br := newBitReader(compressed)
	wbits, err := readWindowHeader(br)
	assert.NoError(t, err)
	assert.EqualValues(t, defaultLGWin, wbits)
}
