package brotli

// Top-level compress/decompress drivers (spec.md §4.7, §4.8) tying the
// meta-block, context, command, and distance machinery together into the
// two public byte-in/byte-out operations.

// defaultLGWin is used by Compress and by CompressOptions.Compress when
// LGWin is left at its zero value.
const defaultLGWin = 22

// compressedDriver splits src into encodeChunkSize pieces, emitting one
// compressed meta-block per piece followed by the stream-terminating
// empty block. Every data meta-block is written with ISLAST = 0 (even the
// final one), mirroring the fallback encoder's approach of keeping the
// "last and empty" terminator a separate, trivial block; this sidesteps
// any question of whether a last meta-block may itself be compressed or
// uncompressed.
func compressedDriver(src []byte, wbits uint) []byte {
	bw := newBitWriter()
	writeWindowHeader(bw, wbits)

	if len(src) == 0 {
		writeFinalEmptyBlock(bw)
		bw.Align()
		return bw.Bytes()
	}

	for off := 0; off < len(src); off += encodeChunkSize {
		end := off + encodeChunkSize
		if end > len(src) {
			end = len(src)
		}
		chunk := src[off:end]
		writeMetaBlockHeader(bw, false, false, uint32(len(chunk)))
		compressMetaBlock(bw, chunk, wbits)
	}

	writeFinalEmptyBlock(bw)
	bw.Align()
	return bw.Bytes()
}

// fallbackChunkSize is the maximum size of one uncompressed meta-block in
// the fallback encoder (spec.md §4.8).
const fallbackChunkSize = 65536

// fallbackDriver implements the all-uncompressed correctness floor: fixed
// WBITS = 22, a sequence of ISUNCOMPRESSED meta-blocks of at most 65536
// bytes each, followed by the empty terminator.
func fallbackDriver(src []byte) []byte {
	bw := newBitWriter()
	writeWindowHeader(bw, defaultLGWin)

	for off := 0; off < len(src); off += fallbackChunkSize {
		end := off + fallbackChunkSize
		if end > len(src) {
			end = len(src)
		}
		chunk := src[off:end]
		writeMetaBlockHeader(bw, false, true, uint32(len(chunk)))
		bw.WriteBytes(chunk)
	}

	writeFinalEmptyBlock(bw)
	bw.Align()
	return bw.Bytes()
}

// decompressDriver parses the window header and then every meta-block in
// turn until the stream-terminating empty block is seen.
func decompressDriver(src []byte) ([]byte, error) {
	br := newBitReader(src)
	wbits, err := readWindowHeader(br)
	if err != nil {
		return nil, err
	}
	maxDistance := (uint32(1) << wbits) - 16
	out := newOutputBuffer(maxDistance)

	for {
		hdr, isEmpty, err := readMetaBlockHeader(br)
		if err != nil {
			if de, ok := err.(*DecodeError); ok && de.Code == EndOfStream {
				return nil, decodeErrorf(TruncatedStream, "stream ended before a final empty meta-block")
			}
			return nil, err
		}
		if isEmpty {
			break
		}

		switch {
		case hdr.isMetadata:
			if hdr.mlen > 0 {
				if _, err := br.ReadBytes(int(hdr.mlen)); err != nil {
					return nil, err
				}
			}
		case hdr.isUncompressed:
			data, err := br.ReadBytes(int(hdr.mlen))
			if err != nil {
				return nil, err
			}
			out.AppendLiterals(data)
		default:
			if err := decodeCompressedMetaBlock(br, out, hdr.mlen, wbits); err != nil {
				return nil, err
			}
		}

		if hdr.isLast {
			break
		}
	}

	return out.Bytes(), nil
}

// resolveLGWin clamps a requested window-bits value to the supported
// range, substituting defaultLGWin for the zero value.
func resolveLGWin(lgwin int) uint {
	if lgwin == 0 {
		return defaultLGWin
	}
	if lgwin < minWindowBits {
		return minWindowBits
	}
	if lgwin > maxWindowBits {
		return maxWindowBits
	}
	return uint(lgwin)
}
