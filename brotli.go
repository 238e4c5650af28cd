package brotli

// Package brotli implements RFC 7932 Brotli compression and
// decompression as two buffer-in/buffer-out operations. It is a
// from-scratch, single-quality-tier implementation: no streaming API, no
// static dictionary, and no multithreaded block splitting (see
// the Non-goals in SPEC_FULL.md).

// CompressOptions configures Compress. The zero value selects the
// default window size and the normal (LZ77 + Huffman) compressor.
type CompressOptions struct {
	// LGWin is the base-2 logarithm of the sliding window size, 16..24;
	// smaller values are raised to 16 and larger ones lowered to 24.
	// Zero selects defaultLGWin.
	LGWin int

	// Fallback selects the all-uncompressed correctness floor (spec.md
	// §4.8) instead of the normal compressor. Useful when the caller
	// wants the cheap, allocation-light fallback path directly, or to
	// exercise the fallback's byte-identical-at-low-quality parity
	// property in tests.
	Fallback bool
}

// Compress encodes src as a Brotli stream using the default options.
func Compress(src []byte) ([]byte, error) {
	return CompressOptions{}.Compress(src)
}

// Compress encodes src as a Brotli stream.
func (o CompressOptions) Compress(src []byte) ([]byte, error) {
	if o.Fallback {
		return fallbackDriver(src), nil
	}
	return compressedDriver(src, resolveLGWin(o.LGWin)), nil
}

// Decompress decodes a Brotli stream back into the original bytes.
func Decompress(src []byte) ([]byte, error) {
	return decompressDriver(src)
}
